// Package wordcloud draws PNG word clouds from free text.
package wordcloud

import (
	"context"
	"fmt"
	"image/color"
	"io"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	DefaultWidth    = 500
	DefaultHeight   = 300
	DefaultMaxWords = 200
	MinFontSize     = 10.0
	MaxFontSize     = 64.0

	placeholderText = "No history yet"
)

var palette = []color.RGBA{
	{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff},
	{R: 0xd6, G: 0x27, B: 0x28, A: 0xff},
	{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff},
	{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff},
	{R: 0x94, G: 0x67, B: 0xbd, A: 0xff},
	{R: 0x8c, G: 0x56, B: 0x4b, A: 0xff},
	{R: 0x17, G: 0xbe, B: 0xcf, A: 0xff},
}

// Renderer implements ports.WordCloudRenderer. The parsed font is shared;
// each Render builds its own faces and canvas, so Render may run concurrently.
type Renderer struct {
	font     *truetype.Font
	width    int
	height   int
	maxWords int
}

func NewRenderer(width, height, maxWords int) (*Renderer, error) {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	if maxWords <= 0 {
		maxWords = DefaultMaxWords
	}
	return &Renderer{font: f, width: width, height: height, maxWords: maxWords}, nil
}

// Render writes a PNG word cloud of text to w. Text without countable words
// yields a placeholder image.
func (r *Renderer) Render(ctx context.Context, w io.Writer, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dc := gg.NewContext(r.width, r.height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	words := TopWords(Frequencies(text), r.maxWords)
	if len(words) == 0 {
		r.drawPlaceholder(dc)
		return dc.EncodePNG(w)
	}

	faces := map[float64]font.Face{}
	face := func(size float64) font.Face {
		if f, ok := faces[size]; ok {
			return f
		}
		f := truetype.NewFace(r.font, &truetype.Options{Size: size})
		faces[size] = f
		return f
	}
	defer func() {
		for _, f := range faces {
			_ = f.Close()
		}
	}()

	measure := func(word string, size float64) (float64, float64) {
		dc.SetFontFace(face(size))
		return dc.MeasureString(word)
	}

	for i, p := range Layout(words, r.width, r.height, MinFontSize, MaxFontSize, measure) {
		dc.SetFontFace(face(p.Size))
		dc.SetColor(palette[i%len(palette)])
		dc.DrawStringAnchored(p.Word, p.Box.X+p.Box.W/2, p.Box.Y+p.Box.H/2, 0.5, 0.5)
	}

	return dc.EncodePNG(w)
}

func (r *Renderer) drawPlaceholder(dc *gg.Context) {
	face := truetype.NewFace(r.font, &truetype.Options{Size: 24})
	defer face.Close()

	dc.SetFontFace(face)
	dc.SetRGB(0.6, 0.6, 0.6)
	dc.DrawStringAnchored(placeholderText, float64(r.width)/2, float64(r.height)/2, 0.5, 0.5)
}
