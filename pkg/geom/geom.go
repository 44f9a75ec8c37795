// Package geom holds the small amount of plane geometry the fan tessellator
// needs: points, triangle/quad polygons, shoelace area and vertex centroids.
//
// Coordinates follow canvas conventions: x grows to the right, y grows
// downward.
package geom

import (
	"fmt"
	"math"
)

// Point is a position in canvas units.
type Point struct {
	X float64 `json:"x" toml:"x"`
	Y float64 `json:"y" toml:"y"`
}

// Lerp returns the point at fraction t along the segment from a to b.
func Lerp(a, b Point, t float64) Point {
	return Point{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
}

// Dist returns the Euclidean distance between a and b.
func Dist(a, b Point) float64 { return math.Hypot(b.X-a.X, b.Y-a.Y) }

// Kind classifies a tessellation polygon.
type Kind int

const (
	Triangle Kind = iota
	Quad
)

func (k Kind) String() string {
	switch k {
	case Triangle:
		return "triangle"
	case Quad:
		return "quad"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText decodes a kind name produced by MarshalText.
func (k *Kind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "triangle":
		*k = Triangle
	case "quad":
		*k = Quad
	default:
		return fmt.Errorf("unknown polygon kind %q", b)
	}
	return nil
}

// Polygon is a simple polygon with three (Triangle) or four (Quad) vertices.
type Polygon struct {
	Kind     Kind    `json:"kind"`
	Vertices []Point `json:"vertices"`
}

// NewTriangle builds a triangle polygon.
func NewTriangle(a, b, c Point) Polygon {
	return Polygon{Kind: Triangle, Vertices: []Point{a, b, c}}
}

// NewQuad builds a quadrilateral polygon.
func NewQuad(a, b, c, d Point) Polygon {
	return Polygon{Kind: Quad, Vertices: []Point{a, b, c, d}}
}

// Area returns the unsigned shoelace area of the polygon.
func (p Polygon) Area() float64 { return Area(p.Vertices) }

// Centroid returns the unweighted average of the vertices. It is a label
// anchor, not the area centroid.
func (p Polygon) Centroid() Point { return Centroid(p.Vertices) }

// Area returns the unsigned shoelace area of the closed polygon pts.
func Area(pts []Point) float64 {
	n := len(pts)
	if n < 3 {
		return 0
	}
	var sum float64
	for i := range n {
		j := (i + 1) % n
		sum += pts[i].X*pts[j].Y - pts[j].X*pts[i].Y
	}
	return math.Abs(sum) / 2
}

// Centroid returns the arithmetic mean of pts, or the zero point for none.
func Centroid(pts []Point) Point {
	if len(pts) == 0 {
		return Point{}
	}
	var c Point
	for _, p := range pts {
		c.X += p.X
		c.Y += p.Y
	}
	n := float64(len(pts))
	return Point{X: c.X / n, Y: c.Y / n}
}

// Bounds returns the axis-aligned bounding box of pts as (min, max).
func Bounds(pts []Point) (lo, hi Point) {
	if len(pts) == 0 {
		return Point{}, Point{}
	}
	lo, hi = pts[0], pts[0]
	for _, p := range pts[1:] {
		lo.X, lo.Y = min(lo.X, p.X), min(lo.Y, p.Y)
		hi.X, hi.Y = max(hi.X, p.X), max(hi.Y, p.Y)
	}
	return lo, hi
}
