package handler

import (
	"net/http"

	"github.com/msomdec/customer-desk/internal/service"
)

// RegisterRoutes sets up all HTTP routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, db Pinger, auth *service.AuthService, customers *service.CustomerService, loginLimiter *service.TokenBucket, cookieSecure bool) {
	authHandler := NewAuthHandler(auth, cookieSecure)
	customerHandler := NewCustomerHandler(customers)

	protected := func(h http.HandlerFunc) http.Handler {
		return RequireAuth(auth, h)
	}
	limited := func(h http.HandlerFunc) http.Handler {
		return RateLimit(loginLimiter, h)
	}

	mux.HandleFunc("GET /healthz", HandleHealthz(db))
	mux.HandleFunc("GET /", HandleHome)

	// Operator sign-in.
	mux.HandleFunc("GET /login", authHandler.HandleLoginPage)
	mux.Handle("POST /login", limited(authHandler.HandleLoginForm))
	mux.HandleFunc("POST /logout", authHandler.HandleLogoutForm)
	mux.Handle("POST /api/auth/login", limited(authHandler.HandleLogin))
	mux.HandleFunc("POST /api/auth/logout", authHandler.HandleLogout)
	mux.Handle("GET /api/auth/me", protected(authHandler.HandleMe))
	mux.Handle("POST /api/auth/register", protected(authHandler.HandleRegister))

	// Customer pages.
	mux.Handle("GET /customers", protected(customerHandler.HandleList))
	mux.Handle("GET /customers/table", protected(customerHandler.HandleTable))
	mux.Handle("GET /customers/new", protected(customerHandler.HandleNew))
	mux.Handle("GET /customers/{id}/edit", protected(customerHandler.HandleEdit))
	mux.Handle("POST /customers", protected(customerHandler.HandleCreate))
	mux.Handle("POST /customers/{id}", protected(customerHandler.HandleUpdate))
	mux.Handle("POST /customers/{id}/delete", protected(customerHandler.HandleDelete))
	mux.Handle("POST /customers/import", protected(customerHandler.HandleImport))
	mux.Handle("GET /customers/export", protected(customerHandler.HandleExport))

	// Customer JSON API.
	mux.Handle("GET /api/customers", protected(customerHandler.HandleAPIList))
	mux.Handle("GET /api/customers/{id}", protected(customerHandler.HandleAPIGet))
	mux.Handle("POST /api/customers", protected(customerHandler.HandleAPICreate))
	mux.Handle("PUT /api/customers/{id}", protected(customerHandler.HandleAPIUpdate))
	mux.Handle("DELETE /api/customers/{id}", protected(customerHandler.HandleAPIDelete))
	mux.Handle("GET /api/customers/export", protected(customerHandler.HandleExport))
	mux.Handle("POST /api/customers/import", protected(customerHandler.HandleAPIImport))
}
