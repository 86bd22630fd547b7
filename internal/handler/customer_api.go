package handler

import (
	"net/http"

	"github.com/msomdec/customer-desk/internal/service"
)

// HandleAPIList returns one page of customers.
// GET /api/customers?search=&page=&size=
func (h *CustomerHandler) HandleAPIList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := h.customers.List(r.Context(), q.Get("search"), atoiOr(q.Get("page"), 1), atoiOr(q.Get("size"), service.DefaultPageSize))
	if err != nil {
		status, msg := customerErrorStatus(err)
		writeError(w, status, msg)
		return
	}
	writeJSON(w, http.StatusOK, toCustomerPageDTO(page))
}

// HandleAPIGet returns a single customer.
// GET /api/customers/{id}
func (h *CustomerHandler) HandleAPIGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	c, err := h.customers.Get(r.Context(), id)
	if err != nil {
		status, msg := customerErrorStatus(err)
		writeError(w, status, msg)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"customer": toCustomerDTO(c)})
}

// HandleAPICreate stores a new customer.
// POST /api/customers
// Request:  {"nik":"...","name":"...","born":"YYYY-MM-DD","active":1,"salary":0}
// Response: {"success":true,"message":"...","customer":{...}}
func (h *CustomerHandler) HandleAPICreate(w http.ResponseWriter, r *http.Request) {
	var req CustomerRequest
	if err := readJSON(w, r, &req); err != nil {
		writeResult(w, http.StatusBadRequest, false, "Invalid request body.")
		return
	}
	c, err := h.customers.Create(r.Context(), req.input())
	if err != nil {
		status, msg := customerErrorStatus(err)
		writeResult(w, status, false, msg)
		return
	}
	writeJSON(w, http.StatusCreated, ResultDTO{Success: true, Message: notices["created"], Customer: ptr(toCustomerDTO(c))})
}

// HandleAPIUpdate overwrites an existing customer.
// PUT /api/customers/{id}
func (h *CustomerHandler) HandleAPIUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req CustomerRequest
	if err := readJSON(w, r, &req); err != nil {
		writeResult(w, http.StatusBadRequest, false, "Invalid request body.")
		return
	}
	c, err := h.customers.Update(r.Context(), id, req.input())
	if err != nil {
		status, msg := customerErrorStatus(err)
		writeResult(w, status, false, msg)
		return
	}
	writeJSON(w, http.StatusOK, ResultDTO{Success: true, Message: notices["updated"], Customer: ptr(toCustomerDTO(c))})
}

// HandleAPIDelete removes a customer.
// DELETE /api/customers/{id}
func (h *CustomerHandler) HandleAPIDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.customers.Delete(r.Context(), id); err != nil {
		status, msg := customerErrorStatus(err)
		writeResult(w, status, false, msg)
		return
	}
	writeResult(w, http.StatusOK, true, notices["deleted"])
}

// HandleAPIImport imports a multipart "file" upload and returns the report.
// POST /api/customers/import
func (h *CustomerHandler) HandleAPIImport(w http.ResponseWriter, r *http.Request) {
	report, status, msg := h.importUpload(w, r)
	if report == nil {
		writeResult(w, status, false, msg)
		return
	}
	writeJSON(w, http.StatusOK, toImportReportDTO(report))
}

func ptr[T any](v T) *T {
	return &v
}
