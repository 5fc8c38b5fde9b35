package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/bullyguard/bullyguard/internal/core/domain"
	"github.com/bullyguard/bullyguard/internal/core/ports"
)

type PredictionService struct {
	classifier ports.Classifier
	history    ports.HistoryRepository
	logger     zerolog.Logger
	now        func() time.Time
}

func NewPredictionService(classifier ports.Classifier, history ports.HistoryRepository, logger zerolog.Logger) *PredictionService {
	return &PredictionService{
		classifier: classifier,
		history:    history,
		logger:     logger,
		now:        time.Now,
	}
}

// Predict classifies text, appends it to the user's history and returns the
// stored record together with the remediation steps for its label.
// Blank text is rejected with domain.ErrInvalidInput before the classifier runs.
func (s *PredictionService) Predict(ctx context.Context, userID, text string) (*ports.PredictionResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("text is required: %w", domain.ErrInvalidInput)
	}

	pred, err := s.classifier.Classify(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("classify: %w: %w", domain.ErrClassifier, err)
	}

	record := &domain.HistoryRecord{
		UserID:     userID,
		Text:       text,
		Label:      pred.Label,
		Confidence: pred.Confidence,
		Timestamp:  s.now(),
	}
	if err := s.history.Append(ctx, record); err != nil {
		return nil, fmt.Errorf("append history: %w: %w", domain.ErrStorage, err)
	}

	s.logger.Info().
		Str("user_id", userID).
		Str("record_id", record.ID).
		Str("label", string(pred.Label)).
		Float64("confidence", pred.Confidence).
		Msg("text classified")

	return &ports.PredictionResult{
		Record: record,
		Steps:  domain.RemediationSteps(pred.Label),
	}, nil
}

// History returns every record the user has submitted, oldest first.
func (s *PredictionService) History(ctx context.Context, userID string) ([]*domain.HistoryRecord, error) {
	records, err := s.history.ListFor(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list history: %w: %w", domain.ErrStorage, err)
	}
	return records, nil
}
