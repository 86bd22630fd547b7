// Package view renders the operator web UI as templ components. Handlers
// render pages directly and stream CustomerTable through datastar.
package view

//go:generate templ generate

import (
	"encoding/json"

	"github.com/a-h/templ"

	"github.com/msomdec/customer-desk/internal/service"
)

// TableSignals returns the datastar signal object matching p.
func TableSignals(p *service.CustomerPage) map[string]any {
	return map[string]any{"search": p.Search, "page": p.Page, "size": p.Size}
}

func tableSignalsJSON(p *service.CustomerPage) string {
	b, _ := json.Marshal(TableSignals(p))
	return string(b)
}

func formTitle(id int64) string {
	if id == 0 {
		return "Add Customer"
	}
	return "Edit Customer"
}

func formAction(id int64) templ.SafeURL {
	if id == 0 {
		return "/customers"
	}
	return templ.URL("/customers/" + formatID(id))
}
