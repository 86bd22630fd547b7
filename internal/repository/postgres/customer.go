package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/msomdec/customer-desk/internal/domain"
)

// CustomerRepository implements domain.CustomerRepository using PostgreSQL.
type CustomerRepository struct {
	pool *pgxpool.Pool
}

func NewCustomerRepository(db *DB) *CustomerRepository {
	return &CustomerRepository{pool: db.Pool}
}

const customerColumns = `idx, nik, name, born, active, salary`

// $1 is the raw term; '' disables the filter.
const customerSearch = ` WHERE ($1 = '' OR nik ILIKE '%' || $1 || '%'
	OR name ILIKE '%' || $1 || '%'
	OR COALESCE(born::text, '') ILIKE '%' || $1 || '%'
	OR active::text ILIKE '%' || $1 || '%'
	OR salary::text ILIKE '%' || $1 || '%')`

func (r *CustomerRepository) List(ctx context.Context, q domain.CustomerQuery) ([]domain.Customer, int, error) {
	term := escapeLike(strings.TrimSpace(q.Search))

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM customer`+customerSearch, term).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count customers: %w", err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+customerColumns+` FROM customer`+customerSearch+` ORDER BY idx DESC LIMIT $2 OFFSET $3`,
		term, q.Limit, q.Offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list customers: %w", err)
	}
	customers, err := collectCustomers(rows)
	if err != nil {
		return nil, 0, err
	}
	return customers, total, nil
}

func (r *CustomerRepository) All(ctx context.Context) ([]domain.Customer, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+customerColumns+` FROM customer ORDER BY idx DESC`)
	if err != nil {
		return nil, fmt.Errorf("list all customers: %w", err)
	}
	return collectCustomers(rows)
}

func (r *CustomerRepository) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	var c domain.Customer
	err := r.pool.QueryRow(ctx, `SELECT `+customerColumns+` FROM customer WHERE idx = $1`, id).
		Scan(&c.ID, &c.NIK, &c.Name, &c.Born, &c.Active, &c.Salary)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return &c, nil
}

func (r *CustomerRepository) Create(ctx context.Context, c *domain.Customer) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO customer (nik, name, born, active, salary)
		 VALUES ($1, $2, $3, $4, $5) RETURNING idx`,
		c.NIK, c.Name, c.Born, c.Active, c.Salary,
	).Scan(&c.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateNIK
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

func (r *CustomerRepository) Update(ctx context.Context, c *domain.Customer) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE customer SET nik = $1, name = $2, born = $3, active = $4, salary = $5 WHERE idx = $6`,
		c.NIK, c.Name, c.Born, c.Active, c.Salary, c.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateNIK
		}
		return fmt.Errorf("update customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CustomerRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM customer WHERE idx = $1`, id)
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func collectCustomers(rows pgx.Rows) ([]domain.Customer, error) {
	customers, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Customer, error) {
		var c domain.Customer
		err := row.Scan(&c.ID, &c.NIK, &c.Name, &c.Born, &c.Active, &c.Salary)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan customers: %w", err)
	}
	return customers, nil
}

func escapeLike(term string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(term)
}
