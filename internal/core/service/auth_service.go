package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/bullyguard/bullyguard/internal/core/domain"
	"github.com/bullyguard/bullyguard/internal/core/ports"
)

// AuthService implements registration and credential checks.
type AuthService struct {
	repo   ports.CredentialRepository
	cost   int
	logger zerolog.Logger
}

// NewAuthService returns an AuthService hashing with the given bcrypt cost.
// A cost below bcrypt.MinCost selects bcrypt.DefaultCost.
func NewAuthService(repo ports.CredentialRepository, cost int, logger zerolog.Logger) *AuthService {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	return &AuthService{repo: repo, cost: cost, logger: logger}
}

// Register stores a new account. Duplicate usernames are accepted.
func (s *AuthService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, fmt.Errorf("password exceeds 72 bytes: %w", domain.ErrInvalidInput)
	}
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	created, err := s.repo.Create(ctx, &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("create user: %w: %w", domain.ErrStorage, err)
	}

	s.logger.Info().Str("user_id", created.ID).Str("username", username).Msg("user registered")
	return created, nil
}

// Verify returns the first account with this username whose password matches.
func (s *AuthService) Verify(ctx context.Context, username, password string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	candidates, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("find user: %w: %w", domain.ErrStorage, err)
	}

	for _, u := range candidates {
		err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
		if err == nil {
			return u, nil
		}
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			break
		}
		if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			s.logger.Warn().Err(err).Str("user_id", u.ID).Msg("unreadable password hash")
		}
	}
	return nil, domain.ErrInvalidCredentials
}
