package service_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/msomdec/customer-desk/internal/domain"
	"github.com/msomdec/customer-desk/internal/repository/sqlite"
	"github.com/msomdec/customer-desk/internal/service"
)

const testJWTSecret = "test-secret-key-for-unit-tests-000"

func newTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("New DB: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestCustomerService(t *testing.T) *service.CustomerService {
	t.Helper()
	return service.NewCustomerService(newTestDB(t).Customers())
}

// mockCustomerRepo is a testify mock of domain.CustomerRepository.
type mockCustomerRepo struct {
	mock.Mock
}

func (m *mockCustomerRepo) List(ctx context.Context, q domain.CustomerQuery) ([]domain.Customer, int, error) {
	args := m.Called(ctx, q)
	rows, _ := args.Get(0).([]domain.Customer)
	return rows, args.Int(1), args.Error(2)
}

func (m *mockCustomerRepo) All(ctx context.Context) ([]domain.Customer, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).([]domain.Customer)
	return rows, args.Error(1)
}

func (m *mockCustomerRepo) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*domain.Customer)
	return c, args.Error(1)
}

func (m *mockCustomerRepo) Create(ctx context.Context, c *domain.Customer) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockCustomerRepo) Update(ctx context.Context, c *domain.Customer) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockCustomerRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
