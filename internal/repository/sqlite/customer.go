package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/msomdec/customer-desk/internal/domain"
)

// CustomerRepository implements domain.CustomerRepository using SQLite.
type CustomerRepository struct {
	db *sql.DB
}

// NewCustomerRepository creates a new SQLite-backed CustomerRepository.
func NewCustomerRepository(db *DB) *CustomerRepository {
	return &CustomerRepository{db: db.SqlDB}
}

const customerColumns = `idx, nik, name, born, active, salary`

// Every searchable column, compared as text. born is stored as YYYY-MM-DD.
// Text columns go through casefold so non-ASCII letters match any case.
const customerSearch = ` WHERE casefold(nik) LIKE casefold(?) ESCAPE '\'
	OR casefold(name) LIKE casefold(?) ESCAPE '\'
	OR IFNULL(born, '') LIKE ? ESCAPE '\'
	OR CAST(active AS TEXT) LIKE ? ESCAPE '\'
	OR CAST(salary AS TEXT) LIKE ? ESCAPE '\'`

func (r *CustomerRepository) List(ctx context.Context, q domain.CustomerQuery) ([]domain.Customer, int, error) {
	where := ""
	var args []any
	if term := strings.TrimSpace(q.Search); term != "" {
		where = customerSearch
		pattern := likePattern(term)
		args = []any{pattern, pattern, pattern, pattern, pattern}
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM customer"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count customers: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT "+customerColumns+" FROM customer"+where+" ORDER BY idx DESC LIMIT ? OFFSET ?",
		append(args, q.Limit, q.Offset)...,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	customers, err := scanCustomers(rows)
	if err != nil {
		return nil, 0, err
	}
	return customers, total, nil
}

func (r *CustomerRepository) All(ctx context.Context) ([]domain.Customer, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+customerColumns+" FROM customer ORDER BY idx DESC")
	if err != nil {
		return nil, fmt.Errorf("list all customers: %w", err)
	}
	defer rows.Close()
	return scanCustomers(rows)
}

func (r *CustomerRepository) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+customerColumns+" FROM customer WHERE idx = ?", id)
	c, err := scanCustomer(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return c, nil
}

func (r *CustomerRepository) Create(ctx context.Context, c *domain.Customer) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO customer (nik, name, born, active, salary) VALUES (?, ?, ?, ?, ?)`,
		c.NIK, c.Name, bornValue(c.Born), c.Active, c.Salary,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return domain.ErrDuplicateNIK
		}
		return fmt.Errorf("insert customer: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}
	c.ID = id
	return nil
}

func (r *CustomerRepository) Update(ctx context.Context, c *domain.Customer) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE customer SET nik = ?, name = ?, born = ?, active = ?, salary = ? WHERE idx = ?`,
		c.NIK, c.Name, bornValue(c.Born), c.Active, c.Salary, c.ID,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return domain.ErrDuplicateNIK
		}
		return fmt.Errorf("update customer: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CustomerRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM customer WHERE idx = ?", id)
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCustomer(row rowScanner) (*domain.Customer, error) {
	var (
		c    domain.Customer
		born sql.NullString
	)
	if err := row.Scan(&c.ID, &c.NIK, &c.Name, &born, &c.Active, &c.Salary); err != nil {
		return nil, err
	}
	if born.Valid && born.String != "" {
		t, err := time.Parse(domain.DateLayout, born.String)
		if err != nil {
			return nil, fmt.Errorf("parse born %q of customer %d: %w", born.String, c.ID, err)
		}
		c.Born = &t
	}
	return &c, nil
}

func scanCustomers(rows *sql.Rows) ([]domain.Customer, error) {
	var customers []domain.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		customers = append(customers, *c)
	}
	return customers, rows.Err()
}

func bornValue(born *time.Time) any {
	if born == nil {
		return nil
	}
	return born.Format(domain.DateLayout)
}

// likePattern wraps term for a substring LIKE match, escaping wildcards.
func likePattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(term) + "%"
}
