package ports

import (
	"context"

	"github.com/bullyguard/bullyguard/internal/core/domain"
)

// Classifier maps raw text to a label and confidence.
type Classifier interface {
	Classify(ctx context.Context, text string) (domain.Prediction, error)
}

// PredictionResult is what the prediction page renders.
type PredictionResult struct {
	Record *domain.HistoryRecord
	Steps  []string
}

// PredictionService runs the classify → persist path for a signed-in user.
type PredictionService interface {
	Predict(ctx context.Context, userID, text string) (*PredictionResult, error)
	History(ctx context.Context, userID string) ([]*domain.HistoryRecord, error)
}
