package domain

import (
	"context"
	"time"
)

// DateLayout is the wire and storage format of a customer's birth date.
const DateLayout = "2006-01-02"

// MaxSalary is the largest salary accepted for a customer.
const MaxSalary = 999_999_999

// Customer is the single persisted record managed by the application.
type Customer struct {
	ID     int64
	NIK    string // national ID, unique across customers
	Name   string
	Born   *time.Time
	Active int // 0 or 1
	Salary int64
}

// IsActive reports whether the customer is flagged active.
func (c Customer) IsActive() bool {
	return c.Active != 0
}

// BornString returns the birth date as YYYY-MM-DD, or "" when unknown.
func (c Customer) BornString() string {
	if c.Born == nil {
		return ""
	}
	return c.Born.Format(DateLayout)
}

// CustomerQuery selects one page of customers. An empty Search matches all rows.
type CustomerQuery struct {
	Search string
	Limit  int
	Offset int
}

// CustomerRepository defines persistence operations for customers.
type CustomerRepository interface {
	// List returns the requested page ordered by ID descending, along with
	// the total number of rows matching the search.
	List(ctx context.Context, q CustomerQuery) ([]Customer, int, error)
	// All returns every customer ordered by ID descending.
	All(ctx context.Context) ([]Customer, error)
	GetByID(ctx context.Context, id int64) (*Customer, error)
	Create(ctx context.Context, customer *Customer) error
	Update(ctx context.Context, customer *Customer) error
	Delete(ctx context.Context, id int64) error
}
