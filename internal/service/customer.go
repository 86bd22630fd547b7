package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/msomdec/customer-desk/internal/domain"
)

// CustomerInput carries user-entered customer fields before validation.
// Born is a YYYY-MM-DD string; blank means unknown.
type CustomerInput struct {
	NIK    string `validate:"required"`
	Name   string `validate:"required"`
	Born   string `validate:"omitempty,datetime=2006-01-02"`
	Active int    `validate:"oneof=0 1"`
	Salary int64  `validate:"gte=0,lte=999999999"`
}

// CustomerInputFrom returns the input that would reproduce c.
func CustomerInputFrom(c *domain.Customer) CustomerInput {
	return CustomerInput{
		NIK:    c.NIK,
		Name:   c.Name,
		Born:   c.BornString(),
		Active: c.Active,
		Salary: c.Salary,
	}
}

// CustomerService handles customer listing, validation and persistence.
type CustomerService struct {
	customers domain.CustomerRepository
	validate  *validator.Validate
}

// NewCustomerService creates a new CustomerService.
func NewCustomerService(customers domain.CustomerRepository) *CustomerService {
	return &CustomerService{
		customers: customers,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
	}
}

// List returns one page of customers matching search. Out-of-range page
// and size values are normalised; a page past the end is pulled back to
// the last page.
func (s *CustomerService) List(ctx context.Context, search string, page, size int) (*CustomerPage, error) {
	page, size = NormalizePage(page, size)
	search = strings.TrimSpace(search)

	rows, total, err := s.customers.List(ctx, domain.CustomerQuery{
		Search: search,
		Limit:  size,
		Offset: (page - 1) * size,
	})
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}

	p := &CustomerPage{Customers: rows, Search: search, Page: page, Size: size, Total: total}
	if len(rows) == 0 && page > p.TotalPages() {
		if total == 0 {
			p.Page = 1
			return p, nil
		}
		return s.List(ctx, search, p.TotalPages(), size)
	}
	return p, nil
}

// Get returns a customer by ID.
func (s *CustomerService) Get(ctx context.Context, id int64) (*domain.Customer, error) {
	return s.customers.GetByID(ctx, id)
}

// Create validates in and stores it as a new customer.
func (s *CustomerService) Create(ctx context.Context, in CustomerInput) (*domain.Customer, error) {
	c, err := s.build(in)
	if err != nil {
		return nil, err
	}
	if err := s.customers.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}
	return c, nil
}

// Update validates in and overwrites the customer with the given ID.
func (s *CustomerService) Update(ctx context.Context, id int64, in CustomerInput) (*domain.Customer, error) {
	c, err := s.build(in)
	if err != nil {
		return nil, err
	}
	c.ID = id
	if err := s.customers.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("update customer: %w", err)
	}
	return c, nil
}

// Delete removes the customer with the given ID.
func (s *CustomerService) Delete(ctx context.Context, id int64) error {
	if err := s.customers.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	return nil
}

// build trims and validates in and converts it to a domain.Customer.
func (s *CustomerService) build(in CustomerInput) (*domain.Customer, error) {
	in.NIK = strings.TrimSpace(in.NIK)
	in.Name = strings.TrimSpace(in.Name)
	in.Born = strings.TrimSpace(in.Born)
	if in.Active != 0 {
		in.Active = 1
	}

	if err := s.validate.Struct(in); err != nil {
		return nil, validationError(err)
	}

	c := &domain.Customer{
		NIK:    in.NIK,
		Name:   in.Name,
		Active: in.Active,
		Salary: in.Salary,
	}
	if in.Born != "" {
		born, err := time.Parse(domain.DateLayout, in.Born)
		if err != nil {
			return nil, fmt.Errorf("%w: born must be a date in YYYY-MM-DD format", domain.ErrInvalidInput)
		}
		c.Born = &born
	}
	return c, nil
}

// validationError turns the first failed validator rule into a readable
// domain.ErrInvalidInput.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	fe := verrs[0]
	switch fe.Field() {
	case "NIK", "Name":
		return fmt.Errorf("%w: NIK and name are required", domain.ErrInvalidInput)
	case "Born":
		return fmt.Errorf("%w: born must be a date in YYYY-MM-DD format", domain.ErrInvalidInput)
	case "Salary":
		return fmt.Errorf("%w: salary must be between 0 and %d", domain.ErrInvalidInput, domain.MaxSalary)
	default:
		return fmt.Errorf("%w: %s failed %q", domain.ErrInvalidInput, strings.ToLower(fe.Field()), fe.Tag())
	}
}
