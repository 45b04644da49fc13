package service

import (
	"testing"
	"time"

	"go-3pl-warehouse/internal/repository"
	"go-3pl-warehouse/pkg/jwt"
)

func TestSeedAdminAndLogin(t *testing.T) {
	db := newTestDB(t)
	users := repository.NewUserRepo(db)
	svc := NewAuthService(users, jwt.NewSigner("test-secret", time.Hour))

	if err := svc.SeedAdmin(" Admin@Example.com ", "s3cret!"); err != nil {
		t.Fatalf("SeedAdmin: %v", err)
	}
	// Idempotent
	if err := svc.SeedAdmin("admin@example.com", "s3cret!"); err != nil {
		t.Fatalf("SeedAdmin again: %v", err)
	}

	resp, err := svc.Login("ADMIN@example.com", "s3cret!")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.Token == "" || resp.User.Email != "admin@example.com" || resp.User.LastLoginAt == nil {
		t.Fatalf("unexpected login response %+v", resp)
	}

	user, err := svc.ValidateToken(resp.Token)
	if err != nil || user.Email != "admin@example.com" {
		t.Fatalf("ValidateToken: %+v, %v", user, err)
	}

	if _, err := svc.Login("admin@example.com", "wrong"); err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	_, err = svc.Login("", "")
	expectKind(t, err, ErrValidation)
	_, err = svc.ValidateToken("garbage")
	expectKind(t, err, ErrUnauthorized)
}

func TestSeedAdminResetsChangedPassword(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(repository.NewUserRepo(db), jwt.NewSigner("test-secret", time.Hour))

	if err := svc.SeedAdmin("admin@example.com", "first"); err != nil {
		t.Fatal(err)
	}
	if err := svc.SeedAdmin("admin@example.com", "second"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Login("admin@example.com", "second"); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
	if _, err := svc.Login("admin@example.com", "first"); err == nil {
		t.Fatal("old password still accepted")
	}
}

func TestLoginInactiveUser(t *testing.T) {
	db := newTestDB(t)
	users := repository.NewUserRepo(db)
	svc := NewAuthService(users, jwt.NewSigner("test-secret", time.Hour))
	if err := svc.SeedAdmin("admin@example.com", "pw"); err != nil {
		t.Fatal(err)
	}
	if err := db.Exec("UPDATE users SET is_active = ?", false).Error; err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Login("admin@example.com", "pw"); err != ErrUserInactive {
		t.Fatalf("expected ErrUserInactive, got %v", err)
	}
}
