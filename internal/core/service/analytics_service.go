package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/bullyguard/bullyguard/internal/core/domain"
	"github.com/bullyguard/bullyguard/internal/core/ports"
)

// AnalyticsService computes per-user label counts and redraws the shared
// word-cloud image on every call.
type AnalyticsService struct {
	history  ports.HistoryRepository
	renderer ports.WordCloudRenderer
	// outputPath is the file overwritten on each render; webPath is the URL
	// it is served under.
	outputPath string
	webPath    string
	logger     zerolog.Logger
}

func NewAnalyticsService(history ports.HistoryRepository, renderer ports.WordCloudRenderer, outputPath, webPath string, logger zerolog.Logger) *AnalyticsService {
	return &AnalyticsService{
		history:    history,
		renderer:   renderer,
		outputPath: outputPath,
		webPath:    webPath,
		logger:     logger,
	}
}

// Render returns the user's counts. A failed image render is logged and
// leaves ImagePath empty instead of failing the call.
func (s *AnalyticsService) Render(ctx context.Context, userID string) (*domain.Analytics, error) {
	bullying, err := s.history.CountByLabel(ctx, userID, domain.LabelBullying)
	if err != nil {
		return nil, fmt.Errorf("count bullying: %w: %w", domain.ErrStorage, err)
	}
	notBullying, err := s.history.CountByLabel(ctx, userID, domain.LabelNotBullying)
	if err != nil {
		return nil, fmt.Errorf("count notbullying: %w: %w", domain.ErrStorage, err)
	}
	texts, err := s.history.TextsFor(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load texts: %w: %w", domain.ErrStorage, err)
	}

	out := &domain.Analytics{
		BullyingCount:    bullying,
		NotBullyingCount: notBullying,
	}

	if err := s.writeImage(ctx, strings.Join(texts, " ")); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("word cloud render failed")
		return out, nil
	}
	out.ImagePath = s.webPath + "?v=" + strconv.FormatInt(time.Now().UnixNano(), 10)
	return out, nil
}

// writeImage renders into a temp file next to outputPath and renames it into
// place, so a concurrent reader never sees a partially written image.
func (s *AnalyticsService) writeImage(ctx context.Context, text string) error {
	dir := filepath.Dir(s.outputPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".wordcloud-*.png")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := s.renderer.Render(ctx, tmp, text); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("render: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	return os.Rename(tmpName, s.outputPath)
}
