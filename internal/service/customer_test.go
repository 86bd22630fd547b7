package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/msomdec/customer-desk/internal/domain"
	"github.com/msomdec/customer-desk/internal/service"
)

func TestCustomerService_Create(t *testing.T) {
	svc := newTestCustomerService(t)
	ctx := context.Background()

	c, err := svc.Create(ctx, service.CustomerInput{
		NIK:    "  3201010101010001 ",
		Name:   " Budi ",
		Born:   "1990-01-31",
		Active: 5,
		Salary: 4_500_000,
	})
	require.NoError(t, err)
	assert.NotZero(t, c.ID)
	assert.Equal(t, "3201010101010001", c.NIK)
	assert.Equal(t, "Budi", c.Name)
	assert.Equal(t, 1, c.Active, "non-zero active is stored as 1")
	assert.Equal(t, "1990-01-31", c.BornString())

	got, err := svc.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, *c, *got)
}

func TestCustomerService_Create_Validation(t *testing.T) {
	svc := newTestCustomerService(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		in      service.CustomerInput
		wantMsg string
	}{
		{"missing_nik", service.CustomerInput{Name: "A"}, "NIK and name are required"},
		{"blank_name", service.CustomerInput{NIK: "1", Name: "   "}, "NIK and name are required"},
		{"bad_born", service.CustomerInput{NIK: "1", Name: "A", Born: "31/01/1990"}, "born must be a date in YYYY-MM-DD format"},
		{"impossible_born", service.CustomerInput{NIK: "1", Name: "A", Born: "1990-02-30"}, "born must be a date"},
		{"negative_salary", service.CustomerInput{NIK: "1", Name: "A", Salary: -1}, "salary must be between 0 and 999999999"},
		{"huge_salary", service.CustomerInput{NIK: "1", Name: "A", Salary: 1_000_000_000}, "salary must be between"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.in)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestCustomerService_Create_BlankBornIsNull(t *testing.T) {
	svc := newTestCustomerService(t)

	c, err := svc.Create(context.Background(), service.CustomerInput{NIK: "1", Name: "A", Born: " "})
	require.NoError(t, err)
	assert.Nil(t, c.Born)
}

func TestCustomerService_Create_DuplicateNIK(t *testing.T) {
	svc := newTestCustomerService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, service.CustomerInput{NIK: "DUP", Name: "One"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, service.CustomerInput{NIK: "DUP", Name: "Two"})
	assert.ErrorIs(t, err, domain.ErrDuplicateNIK)
}

func TestCustomerService_UpdateAndDelete(t *testing.T) {
	svc := newTestCustomerService(t)
	ctx := context.Background()

	c, err := svc.Create(ctx, service.CustomerInput{NIK: "U1", Name: "Before", Born: "1980-05-05"})
	require.NoError(t, err)

	in := service.CustomerInputFrom(c)
	in.Name = "After"
	in.Born = ""
	in.Salary = 99
	updated, err := svc.Update(ctx, c.ID, in)
	require.NoError(t, err)
	assert.Equal(t, c.ID, updated.ID)

	got, err := svc.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "After", got.Name)
	assert.Nil(t, got.Born)
	assert.Equal(t, int64(99), got.Salary)

	require.NoError(t, svc.Delete(ctx, c.ID))
	assert.ErrorIs(t, svc.Delete(ctx, c.ID), domain.ErrNotFound)

	_, err = svc.Update(ctx, c.ID, in)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.Update(ctx, c.ID, service.CustomerInput{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "validation runs before the store is touched")
}

func TestCustomerService_List(t *testing.T) {
	svc := newTestCustomerService(t)
	ctx := context.Background()
	for i := 1; i <= 23; i++ {
		_, err := svc.Create(ctx, service.CustomerInput{NIK: fmt.Sprintf("%04d", i), Name: fmt.Sprintf("Name %d", i)})
		require.NoError(t, err)
	}

	page, err := svc.List(ctx, "", 3, 10)
	require.NoError(t, err)
	assert.Equal(t, 23, page.Total)
	assert.Equal(t, 3, page.TotalPages())
	assert.Len(t, page.Customers, 3)
	assert.Equal(t, 21, page.Start())
	assert.Equal(t, 23, page.End())
	assert.True(t, page.HasPrev())
	assert.False(t, page.HasNext())

	page, err = svc.List(ctx, "  Name 2 ", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, "Name 2", page.Search)
	assert.Equal(t, 5, page.Total, "Name 2, Name 20..23")

	page, err = svc.List(ctx, "", 0, 7)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, service.DefaultPageSize, page.Size)
}

func TestCustomerService_List_PastLastPage(t *testing.T) {
	repo := new(mockCustomerRepo)
	ctx := context.Background()

	repo.On("List", ctx, domain.CustomerQuery{Limit: 5, Offset: 45}).
		Return([]domain.Customer(nil), 12, nil).Once()
	repo.On("List", ctx, domain.CustomerQuery{Limit: 5, Offset: 10}).
		Return([]domain.Customer{{ID: 2}, {ID: 1}}, 12, nil).Once()

	page, err := service.NewCustomerService(repo).List(ctx, "", 10, 5)
	require.NoError(t, err)
	assert.Equal(t, 3, page.Page)
	assert.Len(t, page.Customers, 2)
	repo.AssertExpectations(t)
}

func TestCustomerService_List_EmptyResultPastFirstPage(t *testing.T) {
	svc := newTestCustomerService(t)
	ctx := context.Background()
	_, err := svc.Create(ctx, service.CustomerInput{NIK: "1", Name: "Budi"})
	require.NoError(t, err)

	page, err := svc.List(ctx, "zzz", 3, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 1, page.TotalPages())
	assert.Zero(t, page.Start())
	assert.Zero(t, page.End())
	assert.False(t, page.HasPrev())
	assert.False(t, page.HasNext())
}

func TestCustomerService_List_RepoError(t *testing.T) {
	repo := new(mockCustomerRepo)
	boom := errors.New("db down")
	repo.On("List", mock.Anything, mock.Anything).Return(nil, 0, boom).Once()

	_, err := service.NewCustomerService(repo).List(context.Background(), "x", 1, 10)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	repo.AssertExpectations(t)
}
