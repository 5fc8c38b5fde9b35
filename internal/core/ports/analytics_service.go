package ports

import (
	"context"
	"io"

	"github.com/bullyguard/bullyguard/internal/core/domain"
)

// WordCloudRenderer draws a word-frequency image for text into w.
// Empty text must still produce a valid image. Render returns ctx.Err() if
// ctx ends before drawing starts.
type WordCloudRenderer interface {
	Render(ctx context.Context, w io.Writer, text string) error
}

type AnalyticsService interface {
	Render(ctx context.Context, userID string) (*domain.Analytics, error)
}
