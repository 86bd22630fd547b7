package service

import (
	"slices"

	"github.com/msomdec/customer-desk/internal/domain"
)

// DefaultPageSize is used when a requested page size is not offered.
const DefaultPageSize = 10

// PageSizes lists the page sizes offered to the user.
var PageSizes = []int{1, 5, 10, 25, 50, 100}

// NormalizePage clamps page to at least 1 and replaces an unoffered size
// with DefaultPageSize.
func NormalizePage(page, size int) (int, int) {
	if page < 1 {
		page = 1
	}
	if !slices.Contains(PageSizes, size) {
		size = DefaultPageSize
	}
	return page, size
}

// CustomerPage is one page of a customer listing plus its position in the
// full result set.
type CustomerPage struct {
	Customers []domain.Customer
	Search    string
	Page      int
	Size      int
	Total     int
}

// TotalPages is never less than 1, even for an empty result.
func (p *CustomerPage) TotalPages() int {
	if p.Total == 0 || p.Size <= 0 {
		return 1
	}
	return (p.Total + p.Size - 1) / p.Size
}

// Start is the 1-based position of the first row on the page, 0 when empty.
func (p *CustomerPage) Start() int {
	if p.Total == 0 {
		return 0
	}
	return (p.Page-1)*p.Size + 1
}

// End is the 1-based position of the last row on the page.
func (p *CustomerPage) End() int {
	return min(p.Page*p.Size, p.Total)
}

func (p *CustomerPage) HasPrev() bool {
	return p.Page > 1
}

func (p *CustomerPage) HasNext() bool {
	return p.Page < p.TotalPages()
}
