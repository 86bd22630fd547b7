package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/msomdec/customer-desk/internal/service"
)

func TestNormalizePage(t *testing.T) {
	tests := []struct {
		page, size         int
		wantPage, wantSize int
	}{
		{1, 10, 1, 10},
		{0, 25, 1, 25},
		{-4, 1, 1, 1},
		{3, 100, 3, 100},
		{2, 7, 2, service.DefaultPageSize},
		{2, 0, 2, service.DefaultPageSize},
		{2, 1000, 2, service.DefaultPageSize},
	}
	for _, tt := range tests {
		page, size := service.NormalizePage(tt.page, tt.size)
		assert.Equal(t, tt.wantPage, page, "page for (%d,%d)", tt.page, tt.size)
		assert.Equal(t, tt.wantSize, size, "size for (%d,%d)", tt.page, tt.size)
	}
}

func TestCustomerPage_Arithmetic(t *testing.T) {
	tests := []struct {
		name              string
		page, size, total int
		pages, start, end int
		hasPrev, hasNext  bool
	}{
		{"empty", 1, 10, 0, 1, 0, 0, false, false},
		{"single_partial", 1, 10, 3, 1, 1, 3, false, false},
		{"exact_fit", 2, 5, 10, 2, 6, 10, true, false},
		{"first_of_many", 1, 25, 101, 5, 1, 25, false, true},
		{"last_partial", 5, 25, 101, 5, 101, 101, true, false},
		{"size_one", 4, 1, 9, 9, 4, 4, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &service.CustomerPage{Page: tt.page, Size: tt.size, Total: tt.total}
			assert.Equal(t, tt.pages, p.TotalPages())
			assert.Equal(t, tt.start, p.Start())
			assert.Equal(t, tt.end, p.End())
			assert.Equal(t, tt.hasPrev, p.HasPrev())
			assert.Equal(t, tt.hasNext, p.HasNext())
		})
	}
}
