package wordcloud

import "math"

// Box is an axis-aligned rectangle in canvas pixels.
type Box struct {
	X, Y, W, H float64
}

func (b Box) intersects(o Box) bool {
	return b.X < o.X+o.W && o.X < b.X+b.W && b.Y < o.Y+o.H && o.Y < b.Y+b.H
}

func (b Box) inside(width, height float64) bool {
	return b.X >= 0 && b.Y >= 0 && b.X+b.W <= width && b.Y+b.H <= height
}

// Placement is a word positioned on the canvas. Box is the word's bounding
// box; the text is drawn centred in it.
type Placement struct {
	WordCount
	Size float64
	Box  Box
}

// MeasureFunc returns the rendered width and height of word at size.
type MeasureFunc func(word string, size float64) (w, h float64)

const (
	spiralStep   = 0.1
	spiralGrowth = 1.5
	boxPadding   = 2
)

// FontSize scales linearly between minSize and maxSize by count relative to
// the most frequent word.
func FontSize(count, maxCount int, minSize, maxSize float64) float64 {
	if maxCount <= 0 {
		return minSize
	}
	return minSize + (maxSize-minSize)*float64(count)/float64(maxCount)
}

// Layout walks an Archimedean spiral out from the canvas centre for each word
// and keeps the first spot whose box fits the canvas and overlaps nothing
// already placed. Words with no such spot are skipped.
func Layout(words []WordCount, width, height int, minSize, maxSize float64, measure MeasureFunc) []Placement {
	if len(words) == 0 {
		return nil
	}

	w, h := float64(width), float64(height)
	cx, cy := w/2, h/2
	maxRadius := math.Hypot(cx, cy)
	aspect := h / w
	maxCount := words[0].Count
	for _, wc := range words {
		if wc.Count > maxCount {
			maxCount = wc.Count
		}
	}

	placed := make([]Placement, 0, len(words))
	for _, wc := range words {
		size := FontSize(wc.Count, maxCount, minSize, maxSize)
		tw, th := measure(wc.Word, size)
		tw += 2 * boxPadding
		th += 2 * boxPadding

		for theta := 0.0; ; theta += spiralStep {
			r := spiralGrowth * theta
			if r > maxRadius {
				break
			}
			x := cx + r*math.Cos(theta)
			y := cy + r*math.Sin(theta)*aspect
			box := Box{X: x - tw/2, Y: y - th/2, W: tw, H: th}
			if !box.inside(w, h) || collides(box, placed) {
				continue
			}
			placed = append(placed, Placement{WordCount: wc, Size: size, Box: box})
			break
		}
	}
	return placed
}

func collides(b Box, placed []Placement) bool {
	for _, p := range placed {
		if b.intersects(p.Box) {
			return true
		}
	}
	return false
}
