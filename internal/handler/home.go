package handler

import (
	"net/http"
)

// HandleHome sends the root path to the customer list and 404s anything
// else the mux falls through to.
func HandleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		renderError(w, r, http.StatusNotFound, "Page not found.")
		return
	}
	http.Redirect(w, r, "/customers", http.StatusSeeOther)
}
