package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/starfederation/datastar-go/datastar"

	"github.com/msomdec/customer-desk/internal/domain"
	"github.com/msomdec/customer-desk/internal/service"
	"github.com/msomdec/customer-desk/internal/view"
)

var notices = map[string]string{
	"created": "Customer saved.",
	"updated": "Customer updated.",
	"deleted": "Customer deleted.",
}

// CustomerHandler serves the customer pages and the live table fragment.
type CustomerHandler struct {
	customers *service.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler.
func NewCustomerHandler(customers *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customers: customers}
}

// HandleList renders the customer list page. Query parameters search,
// page and size select the initial view.
func (h *CustomerHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	q := r.URL.Query()

	page, err := h.customers.List(r.Context(), q.Get("search"), atoiOr(q.Get("page"), 1), atoiOr(q.Get("size"), service.DefaultPageSize))
	if err != nil {
		slog.Error("list customers", "error", err)
		renderError(w, r, http.StatusInternalServerError, "An unexpected error occurred. Please try again.")
		return
	}

	view.CustomersPage(user.DisplayName, page, notices[q.Get("notice")]).Render(r.Context(), w)
}

// tableSignals mirrors the datastar signals on the list page. Select
// bindings may send numbers as strings.
type tableSignals struct {
	Search string  `json:"search"`
	Page   flexInt `json:"page"`
	Size   flexInt `json:"size"`
}

type flexInt int

func (n *flexInt) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*n = 0
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	*n = flexInt(v)
	return nil
}

var _ json.Unmarshaler = (*flexInt)(nil)

// HandleTable patches #customer-table for the current search and paging
// signals and pushes the normalised page and size back to the browser.
func (h *CustomerHandler) HandleTable(w http.ResponseWriter, r *http.Request) {
	var signals tableSignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	page, err := h.customers.List(r.Context(), signals.Search, int(signals.Page), int(signals.Size))
	if err != nil {
		slog.Error("list customers", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	sse := datastar.NewSSE(w, r)
	if err := sse.PatchElementTempl(view.CustomerTable(page), datastar.WithSelectorID("customer-table")); err != nil {
		slog.Warn("patch customer table", "error", err)
		return
	}
	if err := sse.MarshalAndPatchSignals(map[string]any{"page": page.Page, "size": page.Size}); err != nil {
		slog.Warn("patch table signals", "error", err)
	}
}

// HandleNew renders an empty customer form.
func (h *CustomerHandler) HandleNew(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	view.CustomerFormPage(user.DisplayName, 0, service.CustomerInput{Active: 1}, "").Render(r.Context(), w)
}

// HandleEdit renders the form for an existing customer.
func (h *CustomerHandler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	c, err := h.customers.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			renderError(w, r, http.StatusNotFound, "Customer not found.")
			return
		}
		slog.Error("get customer", "id", id, "error", err)
		renderError(w, r, http.StatusInternalServerError, "An unexpected error occurred. Please try again.")
		return
	}

	view.CustomerFormPage(user.DisplayName, id, service.CustomerInputFrom(c), "").Render(r.Context(), w)
}

// HandleCreate processes the add form.
func (h *CustomerHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	in, err := customerInputFromForm(r)
	if err != nil {
		h.renderFormError(w, r, 0, in, err)
		return
	}
	if _, err := h.customers.Create(r.Context(), in); err != nil {
		h.renderFormError(w, r, 0, in, err)
		return
	}
	http.Redirect(w, r, "/customers?notice=created", http.StatusSeeOther)
}

// HandleUpdate processes the edit form.
func (h *CustomerHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	in, err := customerInputFromForm(r)
	if err != nil {
		h.renderFormError(w, r, id, in, err)
		return
	}
	if _, err := h.customers.Update(r.Context(), id, in); err != nil {
		h.renderFormError(w, r, id, in, err)
		return
	}
	http.Redirect(w, r, "/customers?notice=updated", http.StatusSeeOther)
}

// HandleDelete removes a customer and returns to the list.
func (h *CustomerHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.customers.Delete(r.Context(), id); err != nil {
		status, msg := customerErrorStatus(err)
		renderError(w, r, status, msg)
		return
	}
	http.Redirect(w, r, "/customers?notice=deleted", http.StatusSeeOther)
}

func (h *CustomerHandler) renderFormError(w http.ResponseWriter, r *http.Request, id int64, in service.CustomerInput, err error) {
	user := UserFromContext(r.Context())
	status, msg := customerErrorStatus(err)
	if status == http.StatusNotFound {
		renderError(w, r, status, msg)
		return
	}
	w.WriteHeader(status)
	view.CustomerFormPage(user.DisplayName, id, in, msg).Render(r.Context(), w)
}

// customerInputFromForm reads the add/edit form. A missing active box
// means inactive; a blank salary means 0.
func customerInputFromForm(r *http.Request) (service.CustomerInput, error) {
	if err := r.ParseForm(); err != nil {
		return service.CustomerInput{}, fmt.Errorf("%w: malformed form", domain.ErrInvalidInput)
	}
	in := service.CustomerInput{
		NIK:  r.PostFormValue("nik"),
		Name: r.PostFormValue("name"),
		Born: r.PostFormValue("born"),
	}
	if r.PostFormValue("active") != "" {
		in.Active = 1
	}
	if v := strings.TrimSpace(r.PostFormValue("salary")); v != "" {
		salary, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return in, fmt.Errorf("%w: salary must be a whole number", domain.ErrInvalidInput)
		}
		in.Salary = salary
	}
	return in, nil
}

// customerErrorStatus maps a customer operation error to a status code
// and a message safe to show the operator.
func customerErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusUnprocessableEntity, strings.TrimPrefix(err.Error(), domain.ErrInvalidInput.Error()+": ")
	case errors.Is(err, domain.ErrDuplicateNIK):
		return http.StatusConflict, "A customer with that NIK already exists."
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "Customer not found."
	default:
		slog.Error("customer operation", "error", err)
		return http.StatusInternalServerError, "An unexpected error occurred. Please try again."
	}
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func atoiOr(s string, fallback int) int {
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return fallback
}

func renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	w.WriteHeader(status)
	view.ErrorPage(status, http.StatusText(status), message).Render(r.Context(), w)
}
