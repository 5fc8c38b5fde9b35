package ports

import (
	"context"

	"github.com/bullyguard/bullyguard/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, username, password string) (*domain.User, error)
	Verify(ctx context.Context, username, password string) (*domain.User, error)
}
