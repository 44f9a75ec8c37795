package fan

import "github.com/matzehuels/fanchart/pkg/geom"

// Span is a vertical band of the fan. Top is above Bottom, so Top <= Bottom
// in canvas coordinates.
type Span struct {
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
}

// Height returns the extent of the span.
func (s Span) Height() float64 { return s.Bottom - s.Top }

// PartitionLayers splits [top, bottom] into consecutive spans, one per
// weight, in order. Each span's share is weight/total. The first span starts
// at top and the last one ends exactly at bottom. When the weights sum to
// zero the span is split evenly.
func PartitionLayers(top, bottom float64, weights []float64) []Span {
	n := len(weights)
	spans := make([]Span, n)
	if n == 0 {
		return spans
	}

	var total float64
	for _, w := range weights {
		total += w
	}

	extent := bottom - top
	y := top
	for i, w := range weights {
		share := 1 / float64(n)
		if total > 0 {
			share = w / total
		}
		next := y + extent*share
		if i == n-1 {
			next = bottom
		}
		spans[i] = Span{Top: y, Bottom: next}
		y = next
	}
	return spans
}

// Fan is the overall chart outline: a slanted left edge from Start (the
// base) to End (the apex side) and a vertical right edge at x = Right.
type Fan struct {
	Start geom.Point `json:"start"`
	End   geom.Point `json:"end"`
	Right float64    `json:"right"`
}

// Span returns the fan's full vertical extent.
func (f Fan) Span() Span { return Span{Top: f.End.Y, Bottom: f.Start.Y} }

// XAt returns the x coordinate of the slanted edge at height y.
func (f Fan) XAt(y float64) float64 {
	dy := f.Start.Y - f.End.Y
	if dy == 0 {
		return f.Start.X
	}
	t := (y - f.End.Y) / dy
	return f.End.X + (f.Start.X-f.End.X)*t
}

// Trapezoid returns the corners of the band covering s.
func (f Fan) Trapezoid(s Span) Trapezoid {
	return Trapezoid{
		Origin:      geom.Point{X: f.XAt(s.Bottom), Y: s.Bottom},
		TopLeft:     geom.Point{X: f.XAt(s.Top), Y: s.Top},
		TopRight:    geom.Point{X: f.Right, Y: s.Top},
		BottomRight: geom.Point{X: f.Right, Y: s.Bottom},
	}
}
