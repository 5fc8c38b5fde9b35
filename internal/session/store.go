// Package session binds browser cookies to authenticated user ids.
package session

import (
	"context"
	"errors"
)

var ErrSessionNotFound = errors.New("session not found")

// Store maps opaque session tokens to user ids.
type Store interface {
	// Create starts a session for userID and returns its token.
	Create(ctx context.Context, userID string) (string, error)
	// Lookup returns the user id bound to token, or ErrSessionNotFound.
	Lookup(ctx context.Context, token string) (string, error)
	Delete(ctx context.Context, token string) error
}
