package classifier

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"strings"
	"unicode"
)

// DefaultDimensions matches the width of all-MiniLM-L6-v2 sentence embeddings.
const DefaultDimensions = 384

// HashingEmbedder is an offline embedder: signed feature hashing of lower-cased
// word unigrams and bigrams, L2-normalised.
type HashingEmbedder struct {
	dims int
}

func NewHashingEmbedder(dims int) *HashingEmbedder {
	if dims <= 0 {
		dims = DefaultDimensions
	}
	return &HashingEmbedder{dims: dims}
}

func (e *HashingEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	acc := make([]float64, e.dims)

	words := Tokenize(text)
	for i, w := range words {
		e.add(acc, w)
		if i > 0 {
			e.add(acc, words[i-1]+" "+w)
		}
	}

	var norm float64
	for _, v := range acc {
		norm += v * v
	}
	norm = math.Sqrt(norm)

	out := make([]float32, e.dims)
	if norm == 0 {
		return out, nil
	}
	for i, v := range acc {
		out[i] = float32(v / norm)
	}
	return out, nil
}

// add hashes feature into a bucket; the top bit of the hash picks the sign so
// collisions tend to cancel rather than accumulate.
func (e *HashingEmbedder) add(acc []float64, feature string) {
	h := fnv.New64a()
	_, _ = h.Write([]byte(feature))
	sum := h.Sum64()

	idx := int(sum % uint64(e.dims))
	if sum>>63 == 1 {
		acc[idx]--
	} else {
		acc[idx]++
	}
}

func (e *HashingEmbedder) Dimensions() int { return e.dims }

func (e *HashingEmbedder) Name() string { return fmt.Sprintf("hashing:%d", e.dims) }

// Tokenize lower-cases text and splits it into words made of letters, digits
// and apostrophes.
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
}
