package handler

import (
	"time"

	"github.com/msomdec/customer-desk/internal/domain"
	"github.com/msomdec/customer-desk/internal/service"
)

// UserDTO is the JSON representation of an operator.
type UserDTO struct {
	ID          int64  `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

func toUserDTO(u *domain.User) UserDTO {
	return UserDTO{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		CreatedAt:   u.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   u.UpdatedAt.Format(time.RFC3339),
	}
}

// CustomerDTO is the JSON representation of a customer. Born is null when
// unknown.
type CustomerDTO struct {
	ID     int64   `json:"id"`
	NIK    string  `json:"nik"`
	Name   string  `json:"name"`
	Born   *string `json:"born"`
	Active int     `json:"active"`
	Salary int64   `json:"salary"`
}

func toCustomerDTO(c *domain.Customer) CustomerDTO {
	dto := CustomerDTO{
		ID:     c.ID,
		NIK:    c.NIK,
		Name:   c.Name,
		Active: c.Active,
		Salary: c.Salary,
	}
	if c.Born != nil {
		born := c.BornString()
		dto.Born = &born
	}
	return dto
}

// CustomerRequest is the body of create and update calls.
type CustomerRequest struct {
	NIK    string `json:"nik"`
	Name   string `json:"name"`
	Born   string `json:"born"`
	Active int    `json:"active"`
	Salary int64  `json:"salary"`
}

func (req CustomerRequest) input() service.CustomerInput {
	return service.CustomerInput{
		NIK:    req.NIK,
		Name:   req.Name,
		Born:   req.Born,
		Active: req.Active,
		Salary: req.Salary,
	}
}

// CustomerPageDTO is one page of a listing with its position.
type CustomerPageDTO struct {
	Customers  []CustomerDTO `json:"customers"`
	Search     string        `json:"search"`
	Page       int           `json:"page"`
	Size       int           `json:"size"`
	Total      int           `json:"total"`
	TotalPages int           `json:"totalPages"`
	Start      int           `json:"start"`
	End        int           `json:"end"`
}

func toCustomerPageDTO(p *service.CustomerPage) CustomerPageDTO {
	dtos := make([]CustomerDTO, len(p.Customers))
	for i := range p.Customers {
		dtos[i] = toCustomerDTO(&p.Customers[i])
	}
	return CustomerPageDTO{
		Customers:  dtos,
		Search:     p.Search,
		Page:       p.Page,
		Size:       p.Size,
		Total:      p.Total,
		TotalPages: p.TotalPages(),
		Start:      p.Start(),
		End:        p.End(),
	}
}

// ResultDTO reports the outcome of a mutation.
type ResultDTO struct {
	Success  bool         `json:"success"`
	Message  string       `json:"message"`
	Customer *CustomerDTO `json:"customer,omitempty"`
}

// ImportReportDTO is the JSON form of an import report.
type ImportReportDTO struct {
	Success  bool     `json:"success"`
	Message  string   `json:"message"`
	BatchID  string   `json:"batchId"`
	Imported int      `json:"imported"`
	Failed   int      `json:"failed"`
	Errors   []string `json:"errors"`
}

func toImportReportDTO(r *service.ImportReport) ImportReportDTO {
	errs := r.Errors
	if errs == nil {
		errs = []string{}
	}
	return ImportReportDTO{
		Success:  true,
		Message:  r.Message(),
		BatchID:  r.BatchID,
		Imported: r.Imported,
		Failed:   r.Failed,
		Errors:   errs,
	}
}
