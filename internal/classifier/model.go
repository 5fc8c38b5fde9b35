package classifier

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
)

var (
	ErrDimensionMismatch = errors.New("embedding width does not match model")
	ErrInvalidModel      = errors.New("invalid model")
)

// Model is a pretrained linear classifier. With more than one row it is a
// softmax over rows; a single row is binary logistic regression where the
// row scores class 1.
type Model struct {
	Classes []string    `json:"classes,omitempty"`
	Weights [][]float64 `json:"weights"`
	Bias    []float64   `json:"bias"`
}

// LoadModel reads and validates a JSON model file.
func LoadModel(path string) (*Model, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model %s: %w", path, err)
	}

	var m Model
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("decode model %s: %w: %w", path, ErrInvalidModel, err)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("model %s: %w", path, err)
	}
	return &m, nil
}

// NewModel builds a validated model from in-memory weights.
func NewModel(weights [][]float64, bias []float64) (*Model, error) {
	m := &Model{Weights: weights, Bias: bias}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Model) Validate() error {
	if len(m.Weights) == 0 {
		return fmt.Errorf("%w: no weight rows", ErrInvalidModel)
	}
	width := len(m.Weights[0])
	if width == 0 {
		return fmt.Errorf("%w: empty weight row", ErrInvalidModel)
	}
	for i, row := range m.Weights {
		if len(row) != width {
			return fmt.Errorf("%w: row %d has width %d, want %d", ErrInvalidModel, i, len(row), width)
		}
	}
	if len(m.Bias) != len(m.Weights) {
		return fmt.Errorf("%w: %d bias terms for %d rows", ErrInvalidModel, len(m.Bias), len(m.Weights))
	}
	if len(m.Classes) > 0 && len(m.Classes) != m.NumClasses() {
		return fmt.Errorf("%w: %d class names for %d classes", ErrInvalidModel, len(m.Classes), m.NumClasses())
	}
	return nil
}

// Width is the expected embedding width.
func (m *Model) Width() int { return len(m.Weights[0]) }

func (m *Model) NumClasses() int {
	if len(m.Weights) == 1 {
		return 2
	}
	return len(m.Weights)
}

// Predict returns the argmax class (lowest index on ties) and the class
// probabilities.
func (m *Model) Predict(x []float32) (int, []float64, error) {
	if len(x) != m.Width() {
		return 0, nil, fmt.Errorf("%w: got %d, want %d", ErrDimensionMismatch, len(x), m.Width())
	}

	var probs []float64
	if len(m.Weights) == 1 {
		p1 := sigmoid(dot(m.Weights[0], x) + m.Bias[0])
		probs = []float64{1 - p1, p1}
	} else {
		logits := make([]float64, len(m.Weights))
		for i, row := range m.Weights {
			logits[i] = dot(row, x) + m.Bias[i]
		}
		probs = softmax(logits)
	}

	best := 0
	for i := 1; i < len(probs); i++ {
		if probs[i] > probs[best] {
			best = i
		}
	}
	return best, probs, nil
}

func dot(w []float64, x []float32) float64 {
	var s float64
	for i := range w {
		s += w[i] * float64(x[i])
	}
	return s
}

func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}

func softmax(logits []float64) []float64 {
	maxLogit := logits[0]
	for _, l := range logits[1:] {
		if l > maxLogit {
			maxLogit = l
		}
	}

	out := make([]float64, len(logits))
	var sum float64
	for i, l := range logits {
		out[i] = math.Exp(l - maxLogit)
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}
