package fan

import "github.com/matzehuels/fanchart/pkg/geom"

const eps = 1e-9

// Trapezoid is one layer's band of the fan.
type Trapezoid struct {
	Origin      geom.Point `json:"origin"`       // bottom-left, on the slanted edge
	TopLeft     geom.Point `json:"top_left"`     // top-left, on the slanted edge
	TopRight    geom.Point `json:"top_right"`    // top-right, on the vertical edge
	BottomRight geom.Point `json:"bottom_right"` // bottom-right, on the vertical edge
}

// TopWidth returns the length of the top edge.
func (t Trapezoid) TopWidth() float64 { return t.TopRight.X - t.TopLeft.X }

// BottomWidth returns the horizontal distance from Origin to the right edge.
func (t Trapezoid) BottomWidth() float64 { return t.BottomRight.X - t.Origin.X }

// Height returns the vertical extent of the band.
func (t Trapezoid) Height() float64 { return t.Origin.Y - t.TopLeft.Y }

// MaxTopEdgeArea is the area of the triangle Origin, TopLeft, TopRight.
func (t Trapezoid) MaxTopEdgeArea() float64 { return 0.5 * t.Height() * t.TopWidth() }

// RightEdgeArea is the area of the triangle Origin, TopRight, BottomRight.
func (t Trapezoid) RightEdgeArea() float64 { return 0.5 * t.Height() * t.BottomWidth() }

// TotalArea is the area of the whole trapezoid.
func (t Trapezoid) TotalArea() float64 {
	return 0.5 * t.Height() * (t.TopWidth() + t.BottomWidth())
}

// Polygon returns the outline of the trapezoid.
func (t Trapezoid) Polygon() geom.Polygon {
	return geom.NewQuad(t.Origin, t.TopLeft, t.TopRight, t.BottomRight)
}

// ClosingRatio is the ratio of the far corner where the sweep ends: 2 for a
// real trapezoid, 1 when the bottom edge has collapsed and the band is a
// triangle that closes at TopRight.
func (t Trapezoid) ClosingRatio() float64 {
	if t.BottomWidth() <= eps {
		return 1
	}
	return 2
}

// RatioForArea returns the sweep ratio at which the cumulative area reaches
// fraction f of the total area.
//
// f <= 0 maps to 0 and f >= 1 maps to [Trapezoid.ClosingRatio]. A band with
// no area maps f linearly onto [0, ClosingRatio] so its polygons degenerate
// instead of producing NaN.
func (t Trapezoid) RatioForArea(f float64) float64 {
	if f <= 0 {
		return 0
	}
	closing := t.ClosingRatio()
	if f >= 1 {
		return closing
	}

	total := t.TotalArea()
	if total <= eps {
		return f * closing
	}

	target := f * total
	top := t.MaxTopEdgeArea()
	if target <= top {
		return target / top
	}

	right := t.RightEdgeArea()
	if right <= eps {
		return 1
	}
	s := (target - top) / right
	return 1 + min(1, s)
}

// AreaForRatio returns the area swept from ratio 0 to r. It is the inverse
// of RatioForArea and is what tessellation results are checked against.
func (t Trapezoid) AreaForRatio(r float64) float64 {
	switch {
	case r <= 0:
		return 0
	case r <= 1:
		return r * t.MaxTopEdgeArea()
	default:
		return t.MaxTopEdgeArea() + min(r-1, 1)*t.RightEdgeArea()
	}
}

// PointAt returns the boundary point for sweep ratio r.
func (t Trapezoid) PointAt(r float64) geom.Point {
	if r <= 1 {
		return geom.Lerp(t.TopLeft, t.TopRight, max(r, 0))
	}
	return geom.Lerp(t.TopRight, t.BottomRight, min(r-1, 1))
}
