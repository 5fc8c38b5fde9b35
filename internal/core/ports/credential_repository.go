package ports

import (
	"context"

	"github.com/bullyguard/bullyguard/internal/core/domain"
)

// CredentialRepository persists user accounts.
type CredentialRepository interface {
	// Create inserts user and returns it with ID and CreatedAt set.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// FindByUsername returns every user with that username in insertion
	// order. An unknown username yields an empty slice, not an error.
	FindByUsername(ctx context.Context, username string) ([]*domain.User, error)
}
