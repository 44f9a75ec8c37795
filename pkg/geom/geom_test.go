package geom

import (
	"math"
	"testing"
)

func TestArea(t *testing.T) {
	tests := []struct {
		name string
		pts  []Point
		want float64
	}{
		{"right triangle", []Point{{0, 0}, {4, 0}, {0, 3}}, 6},
		{"clockwise square", []Point{{0, 0}, {0, 2}, {2, 2}, {2, 0}}, 4},
		{"counter-clockwise square", []Point{{0, 0}, {2, 0}, {2, 2}, {0, 2}}, 4},
		{"degenerate line", []Point{{0, 0}, {1, 1}, {2, 2}}, 0},
		{"too few points", []Point{{0, 0}, {1, 1}}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Area(tt.pts); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Area() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCentroid(t *testing.T) {
	got := NewQuad(Point{0, 0}, Point{4, 0}, Point{4, 2}, Point{0, 2}).Centroid()
	if got != (Point{2, 1}) {
		t.Errorf("Centroid() = %v, want {2 1}", got)
	}
	if got := Centroid(nil); got != (Point{}) {
		t.Errorf("Centroid(nil) = %v, want zero", got)
	}
}

func TestLerp(t *testing.T) {
	a, b := Point{0, 10}, Point{10, 0}
	if got := Lerp(a, b, 0.25); got != (Point{2.5, 7.5}) {
		t.Errorf("Lerp() = %v", got)
	}
	if got := Lerp(a, b, 1); got != b {
		t.Errorf("Lerp(1) = %v, want %v", got, b)
	}
}

func TestKindText(t *testing.T) {
	for _, k := range []Kind{Triangle, Quad} {
		b, _ := k.MarshalText()
		var got Kind
		if err := got.UnmarshalText(b); err != nil || got != k {
			t.Errorf("round trip %v: got %v, err %v", k, got, err)
		}
	}
	var k Kind
	if err := k.UnmarshalText([]byte("hexagon")); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestBounds(t *testing.T) {
	lo, hi := Bounds([]Point{{3, 1}, {-1, 5}, {2, -2}})
	if lo != (Point{-1, -2}) || hi != (Point{3, 5}) {
		t.Errorf("Bounds() = %v, %v", lo, hi)
	}
}
