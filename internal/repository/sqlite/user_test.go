package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/msomdec/customer-desk/internal/domain"
	"github.com/msomdec/customer-desk/internal/repository/sqlite"
)

func TestUserRepository_Create(t *testing.T) {
	repo := sqlite.NewUserRepository(newTestDB(t))
	ctx := context.Background()

	user := &domain.User{
		Email:        "  Operator@Example.com ",
		DisplayName:  "Operator",
		PasswordHash: "hashedpw",
	}
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if user.ID == 0 {
		t.Fatal("expected user ID to be set after create")
	}
	if user.CreatedAt.IsZero() {
		t.Fatal("expected CreatedAt to be set")
	}
	if user.Email != "operator@example.com" {
		t.Fatalf("expected normalised email, got %q", user.Email)
	}
}

func TestUserRepository_Create_DuplicateEmail(t *testing.T) {
	repo := sqlite.NewUserRepository(newTestDB(t))
	ctx := context.Background()

	if err := repo.Create(ctx, &domain.User{Email: "dup@example.com", DisplayName: "One", PasswordHash: "h"}); err != nil {
		t.Fatalf("Create first: %v", err)
	}
	err := repo.Create(ctx, &domain.User{Email: "DUP@example.com", DisplayName: "Two", PasswordHash: "h"})
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestUserRepository_GetByIDAndEmail(t *testing.T) {
	repo := sqlite.NewUserRepository(newTestDB(t))
	ctx := context.Background()

	user := &domain.User{Email: "find@example.com", DisplayName: "Finder", PasswordHash: "hash"}
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("Create: %v", err)
	}

	byID, err := repo.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if byID.DisplayName != "Finder" {
		t.Fatalf("expected display name Finder, got %q", byID.DisplayName)
	}

	byEmail, err := repo.GetByEmail(ctx, "Find@Example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if byEmail.ID != user.ID {
		t.Fatalf("expected id %d, got %d", user.ID, byEmail.ID)
	}
}

func TestUserRepository_NotFound(t *testing.T) {
	repo := sqlite.NewUserRepository(newTestDB(t))
	ctx := context.Background()

	if _, err := repo.GetByID(ctx, 99999); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("GetByID: expected ErrNotFound, got %v", err)
	}
	if _, err := repo.GetByEmail(ctx, "nobody@example.com"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("GetByEmail: expected ErrNotFound, got %v", err)
	}
}
