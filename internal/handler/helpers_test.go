package handler_test

import (
	"context"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"testing"

	"github.com/msomdec/customer-desk/internal/handler"
	"github.com/msomdec/customer-desk/internal/repository/sqlite"
	"github.com/msomdec/customer-desk/internal/service"
)

const (
	testJWTSecret = "test-secret-for-handler-tests-0000"
	testEmail     = "operator@example.com"
	testPassword  = "password123"
)

type testDeps struct {
	db        *sqlite.DB
	auth      *service.AuthService
	customers *service.CustomerService
}

func newTestDeps(t *testing.T) testDeps {
	t.Helper()
	db, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("New DB: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	auth := service.NewAuthService(db.Users(), testJWTSecret, 4)
	if err := auth.EnsureOperator(context.Background(), testEmail, "Test Operator", testPassword); err != nil {
		t.Fatalf("EnsureOperator: %v", err)
	}
	return testDeps{db: db, auth: auth, customers: service.NewCustomerService(db.Customers())}
}

// newTestServer starts the full route table with a generous login limit.
func newTestServer(t *testing.T) (*httptest.Server, testDeps) {
	t.Helper()
	deps := newTestDeps(t)
	return newTestServerWithLimiter(t, deps, service.NewTokenBucket(t.Context(), 100, 100)), deps
}

func newTestServerWithLimiter(t *testing.T, deps testDeps, limiter *service.TokenBucket) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, deps.db, deps.auth, deps.customers, limiter, false)
	srv := httptest.NewServer(handler.SecurityHeaders(mux))
	t.Cleanup(srv.Close)
	return srv
}

// newClient returns a client with a cookie jar that does not follow redirects.
func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("create cookie jar: %v", err)
	}
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

// loggedInClient signs in the seeded operator through the login form.
func loggedInClient(t *testing.T, srv *httptest.Server) *http.Client {
	t.Helper()
	client := newClient(t)
	resp, err := client.PostForm(srv.URL+"/login", url.Values{
		"email":    {testEmail},
		"password": {testPassword},
	})
	if err != nil {
		t.Fatalf("POST /login: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("login: expected 303, got %d", resp.StatusCode)
	}
	return client
}
