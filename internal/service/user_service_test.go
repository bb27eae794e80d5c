package service

import (
	"Nexus/internal/api/dto"
	"Nexus/internal/pkg/security"
	"errors"
	"testing"
)

func registerDTO(username string) *dto.RegisterDTO {
	return &dto.RegisterDTO{
		Email:     username + "@example.com",
		Username:  username,
		Password:  "secret-password",
		FirstName: username,
	}
}

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()

	if err := env.userSvc.Register(ctx, registerDTO("alice")); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	token, err := env.userSvc.Login(ctx, &dto.CredentialDTO{Username: "alice", Password: "secret-password"})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	claims, err := security.ValidateToken(token)
	if err != nil {
		t.Fatalf("issued token failed validation: %v", err)
	}
	if claims.UserID == 0 {
		t.Fatal("claims should carry the user id")
	}
}

func TestLoginByEmail(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()

	if err := env.userSvc.Register(ctx, registerDTO("alice")); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	if _, err := env.userSvc.Login(ctx, &dto.CredentialDTO{
		Username: "alice@example.com",
		Password: "secret-password",
	}); err != nil {
		t.Fatalf("login by email returned error: %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()

	if err := env.userSvc.Register(ctx, registerDTO("alice")); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	_, err := env.userSvc.Login(ctx, &dto.CredentialDTO{Username: "alice", Password: "wrong"})
	if !errors.Is(err, ErrCredentialsIncorrect) {
		t.Fatalf("expected ErrCredentialsIncorrect, got %v", err)
	}
}

func TestLoginUnknownUser(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.userSvc.Login(t.Context(), &dto.CredentialDTO{Username: "ghost", Password: "whatever"})
	if !errors.Is(err, ErrCredentialsIncorrect) {
		t.Fatalf("expected ErrCredentialsIncorrect, got %v", err)
	}
}

func TestRegisterRejectsInvalidInput(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()

	badEmail := registerDTO("alice")
	badEmail.Email = "not-an-email"
	if err := env.userSvc.Register(ctx, badEmail); err == nil {
		t.Fatal("malformed email must be rejected")
	}

	shortPassword := registerDTO("alice")
	shortPassword.Password = "x"
	if err := env.userSvc.Register(ctx, shortPassword); err == nil {
		t.Fatal("short password must be rejected")
	}

	shortUsername := registerDTO("alice")
	shortUsername.Username = "ab"
	if err := env.userSvc.Register(ctx, shortUsername); err == nil {
		t.Fatal("short username must be rejected")
	}
}

func TestRegisterDuplicate(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()

	if err := env.userSvc.Register(ctx, registerDTO("alice")); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	if err := env.userSvc.Register(ctx, registerDTO("alice")); !errors.Is(err, ErrEmailExist) {
		t.Fatalf("expected ErrEmailExist, got %v", err)
	}

	dup := registerDTO("alice")
	dup.Email = "other@example.com"
	if err := env.userSvc.Register(ctx, dup); !errors.Is(err, ErrUsernameExist) {
		t.Fatalf("expected ErrUsernameExist, got %v", err)
	}
}
