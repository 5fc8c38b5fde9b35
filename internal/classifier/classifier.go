package classifier

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/bullyguard/bullyguard/internal/core/domain"
)

// Classifier implements ports.Classifier on top of an Embedder and a Model.
type Classifier struct {
	embedder Embedder
	model    *Model
	logger   zerolog.Logger
}

func New(embedder Embedder, model *Model, logger zerolog.Logger) (*Classifier, error) {
	if d := embedder.Dimensions(); d > 0 && d != model.Width() {
		return nil, fmt.Errorf("%w: embedder %s produces %d, model expects %d",
			ErrDimensionMismatch, embedder.Name(), d, model.Width())
	}
	return &Classifier{embedder: embedder, model: model, logger: logger}, nil
}

func (c *Classifier) Classify(ctx context.Context, text string) (domain.Prediction, error) {
	vec, err := c.embedder.Embed(ctx, text)
	if err != nil {
		return domain.Prediction{}, fmt.Errorf("embed: %w", err)
	}

	class, probs, err := c.model.Predict(vec)
	if err != nil {
		return domain.Prediction{}, err
	}

	conf := probs[class]
	if conf > 1 {
		conf = 1
	} else if conf < 0 {
		conf = 0
	}

	c.logger.Debug().
		Str("embedder", c.embedder.Name()).
		Int("class", class).
		Float64("confidence", conf).
		Msg("text classified")

	return domain.Prediction{Label: domain.LabelForClass(class), Confidence: conf}, nil
}
