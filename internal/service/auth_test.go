package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/msomdec/customer-desk/internal/domain"
	"github.com/msomdec/customer-desk/internal/service"
)

func newTestAuthService(t *testing.T) *service.AuthService {
	t.Helper()
	// Use cost 4 for fast tests.
	return service.NewAuthService(newTestDB(t).Users(), testJWTSecret, 4)
}

func registerAndLogin(t *testing.T, auth *service.AuthService, email string) (*domain.User, string) {
	t.Helper()
	ctx := context.Background()
	user, err := auth.Register(ctx, email, "Operator", "password123", "password123")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	token, err := auth.Login(ctx, email, "password123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	return user, token
}

func TestAuthService_Register_Success(t *testing.T) {
	auth := newTestAuthService(t)

	user, err := auth.Register(context.Background(), " new@example.com ", "New User", "password123", "password123")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.ID == 0 {
		t.Fatal("expected user ID to be set")
	}
	if user.Email != "new@example.com" {
		t.Fatalf("expected email new@example.com, got %s", user.Email)
	}
	if user.PasswordHash == "password123" {
		t.Fatal("password stored in clear text")
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	auth := newTestAuthService(t)
	ctx := context.Background()

	if _, err := auth.Register(ctx, "dup@example.com", "User 1", "password123", "password123"); err != nil {
		t.Fatalf("first register: %v", err)
	}

	_, err := auth.Register(ctx, "dup@example.com", "User 2", "password456", "password456")
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestAuthService_Register_InvalidInput(t *testing.T) {
	auth := newTestAuthService(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		display  string
		password string
		confirm  string
	}{
		{"empty email", "", "Name", "password123", "password123"},
		{"empty display name", "a@b.com", " ", "password123", "password123"},
		{"empty password", "a@b.com", "Name", "", ""},
		{"weak password", "a@b.com", "Name", "short", "short"},
		{"mismatch", "a@b.com", "Name", "password123", "different456"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := auth.Register(ctx, tc.email, tc.display, tc.password, tc.confirm)
			if !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestAuthService_EnsureOperator(t *testing.T) {
	auth := newTestAuthService(t)
	ctx := context.Background()

	if err := auth.EnsureOperator(ctx, "admin@example.com", "Admin", "password123"); err != nil {
		t.Fatalf("EnsureOperator: %v", err)
	}
	// A second call with another password leaves the account alone.
	if err := auth.EnsureOperator(ctx, "admin@example.com", "Admin", "otherpassword"); err != nil {
		t.Fatalf("EnsureOperator again: %v", err)
	}

	if _, err := auth.Login(ctx, "admin@example.com", "password123"); err != nil {
		t.Fatalf("Login with first password: %v", err)
	}
	if _, err := auth.Login(ctx, "admin@example.com", "otherpassword"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for replaced password, got %v", err)
	}
}

func TestAuthService_EnsureOperator_WeakPassword(t *testing.T) {
	auth := newTestAuthService(t)

	err := auth.EnsureOperator(context.Background(), "admin@example.com", "Admin", "short")
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAuthService_Login_Failures(t *testing.T) {
	auth := newTestAuthService(t)
	ctx := context.Background()
	registerAndLogin(t, auth, "login@example.com")

	if _, err := auth.Login(ctx, "login@example.com", "wrongpassword"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("wrong password: expected ErrUnauthorized, got %v", err)
	}
	if _, err := auth.Login(ctx, "nobody@example.com", "password123"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("unknown email: expected ErrUnauthorized, got %v", err)
	}
}

func TestAuthService_Login_EmailCaseInsensitive(t *testing.T) {
	auth := newTestAuthService(t)
	registerAndLogin(t, auth, "Mixed@Example.com")

	if _, err := auth.Login(context.Background(), "mixed@example.com", "password123"); err != nil {
		t.Fatalf("Login: %v", err)
	}
}

func TestAuthService_JWT_GenerateAndValidate(t *testing.T) {
	auth := newTestAuthService(t)
	user, token := registerAndLogin(t, auth, "jwt@example.com")

	userID, err := auth.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if userID != user.ID {
		t.Fatalf("expected user ID %d, got %d", user.ID, userID)
	}

	got, err := auth.GetUserByID(context.Background(), userID)
	if err != nil {
		t.Fatalf("GetUserByID: %v", err)
	}
	if got.Email != "jwt@example.com" {
		t.Fatalf("expected jwt@example.com, got %s", got.Email)
	}
}

func TestAuthService_JWT_Rejected(t *testing.T) {
	auth := newTestAuthService(t)
	_, token := registerAndLogin(t, auth, "reject@example.com")

	other := service.NewAuthService(newTestDB(t).Users(), "a-completely-different-secret-value", 4)

	tests := []struct {
		name  string
		auth  *service.AuthService
		token string
	}{
		{"garbage", auth, "not-a-valid-jwt"},
		{"tampered signature", auth, token[:len(token)-5] + "XXXXX"},
		{"wrong secret", other, token},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := tc.auth.ValidateToken(tc.token); !errors.Is(err, domain.ErrUnauthorized) {
				t.Fatalf("expected ErrUnauthorized, got %v", err)
			}
		})
	}
}

func TestAuthService_JWT_Expired(t *testing.T) {
	auth := newTestAuthService(t)
	issued := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	auth.SetNow(func() time.Time { return issued })
	_, token := registerAndLogin(t, auth, "expired@example.com")

	auth.SetNow(func() time.Time { return issued.Add(service.SessionTTL - time.Minute) })
	if _, err := auth.ValidateToken(token); err != nil {
		t.Fatalf("token should still be valid: %v", err)
	}

	auth.SetNow(func() time.Time { return issued.Add(service.SessionTTL + time.Minute) })
	if _, err := auth.ValidateToken(token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for expired token, got %v", err)
	}
}
