package service

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/bullyguard/bullyguard/internal/core/domain"
)

var discardLogger = zerolog.Nop()

type stubCredentialRepo struct {
	users     []*domain.User
	createErr error
	findErr   error
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubCredentialRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	stored := cloneUser(user)
	stored.ID = strconv.Itoa(len(r.users) + 1)
	r.users = append(r.users, stored)
	return cloneUser(stored), nil
}

func (r *stubCredentialRepo) FindByUsername(_ context.Context, username string) ([]*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	var out []*domain.User
	for _, u := range r.users {
		if u.Username == username {
			out = append(out, cloneUser(u))
		}
	}
	return out, nil
}

func newTestAuthService(repo *stubCredentialRepo) *AuthService {
	return NewAuthService(repo, bcrypt.MinCost, discardLogger)
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := &stubCredentialRepo{}
	svc := newTestAuthService(repo)

	user, err := svc.Register(context.Background(), "alice", "pw1")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.ID == "" {
		t.Fatal("expected an assigned id")
	}
	if user.PasswordHash == "pw1" {
		t.Fatal("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pw1")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.CreatedAt.IsZero() {
		t.Error("CreatedAt must not be zero")
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc := newTestAuthService(&stubCredentialRepo{})

	if _, err := svc.Register(context.Background(), "", "pw"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Register(context.Background(), "bob", ""); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAuthService_Register_DuplicateUsernameAllowed(t *testing.T) {
	repo := &stubCredentialRepo{}
	svc := newTestAuthService(repo)

	first, err := svc.Register(context.Background(), "bob", "one")
	if err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	second, err := svc.Register(context.Background(), "bob", "two")
	if err != nil {
		t.Fatalf("duplicate register failed: %v", err)
	}
	if first.ID == second.ID {
		t.Fatal("duplicate registrations must get distinct ids")
	}

	got, err := svc.Verify(context.Background(), "bob", "two")
	if err != nil {
		t.Fatalf("verify second password: %v", err)
	}
	if got.ID != second.ID {
		t.Fatalf("expected id %s, got %s", second.ID, got.ID)
	}
}

func TestAuthService_Register_RepoError(t *testing.T) {
	svc := newTestAuthService(&stubCredentialRepo{createErr: domain.ErrStorage})

	if _, err := svc.Register(context.Background(), "alice", "pw"); !errors.Is(err, domain.ErrStorage) {
		t.Fatalf("expected ErrStorage, got %v", err)
	}
}

func TestAuthService_Verify_Success(t *testing.T) {
	repo := &stubCredentialRepo{}
	svc := newTestAuthService(repo)

	registered, _ := svc.Register(context.Background(), "alice", "pw1")

	user, err := svc.Verify(context.Background(), "alice", "pw1")
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if user.ID != registered.ID {
		t.Fatalf("expected id %s, got %s", registered.ID, user.ID)
	}
}

func TestAuthService_Verify_WrongPassword(t *testing.T) {
	repo := &stubCredentialRepo{}
	svc := newTestAuthService(repo)

	_, _ = svc.Register(context.Background(), "alice", "pw1")

	if _, err := svc.Verify(context.Background(), "alice", "nope"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Verify_UnknownUser(t *testing.T) {
	svc := newTestAuthService(&stubCredentialRepo{})

	if _, err := svc.Verify(context.Background(), "ghost", "pw"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Verify_RepoError(t *testing.T) {
	svc := newTestAuthService(&stubCredentialRepo{findErr: domain.ErrStorage})

	if _, err := svc.Verify(context.Background(), "alice", "pw"); !errors.Is(err, domain.ErrStorage) {
		t.Fatalf("expected ErrStorage, got %v", err)
	}
}

func TestAuthService_Register_PasswordTooLong(t *testing.T) {
	svc := newTestAuthService(&stubCredentialRepo{})

	long := make([]byte, 73)
	for i := range long {
		long[i] = 'a'
	}
	if _, err := svc.Register(context.Background(), "alice", string(long)); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
