package ports

import (
	"context"

	"github.com/bullyguard/bullyguard/internal/core/domain"
)

// HistoryRepository persists classification history, one row per request.
type HistoryRepository interface {
	// Append inserts record and sets its ID.
	Append(ctx context.Context, record *domain.HistoryRecord) error
	// ListFor returns the user's records in insertion order.
	ListFor(ctx context.Context, userID string) ([]*domain.HistoryRecord, error)
	CountByLabel(ctx context.Context, userID string, label domain.Label) (int, error)
	// TextsFor returns only the submitted texts, in insertion order.
	TextsFor(ctx context.Context, userID string) ([]string, error)
}
