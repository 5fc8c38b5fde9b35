package metrics

import (
	"context"
	"io"
	"time"

	"github.com/bullyguard/bullyguard/internal/core/domain"
	"github.com/bullyguard/bullyguard/internal/core/ports"
)

type instrumentedClassifier struct {
	next ports.Classifier
}

// InstrumentClassifier records ClassificationDuration and PredictionsTotal
// around every Classify call.
func InstrumentClassifier(next ports.Classifier) ports.Classifier {
	return &instrumentedClassifier{next: next}
}

func (c *instrumentedClassifier) Classify(ctx context.Context, text string) (domain.Prediction, error) {
	start := time.Now()
	p, err := c.next.Classify(ctx, text)
	ClassificationDuration.Observe(time.Since(start).Seconds())
	if err == nil {
		PredictionsTotal.WithLabelValues(string(p.Label)).Inc()
	}
	return p, err
}

type instrumentedRenderer struct {
	next ports.WordCloudRenderer
}

// InstrumentRenderer records WordCloudRendersTotal around every Render call.
func InstrumentRenderer(next ports.WordCloudRenderer) ports.WordCloudRenderer {
	return &instrumentedRenderer{next: next}
}

func (r *instrumentedRenderer) Render(ctx context.Context, w io.Writer, text string) error {
	if err := r.next.Render(ctx, w, text); err != nil {
		WordCloudRendersTotal.WithLabelValues("error").Inc()
		return err
	}
	WordCloudRendersTotal.WithLabelValues("ok").Inc()
	return nil
}
