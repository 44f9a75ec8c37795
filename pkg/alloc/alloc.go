// Package alloc keeps percentage allocations valid while items are added,
// removed or edited.
//
// The same rules apply at both levels of a chart: segments within a layer
// and layers within a chart. Every function is pure and total. Inputs are
// never modified; a fresh slice is always returned, and out-of-range
// indexes yield an unchanged copy. NaN or negative shares are not
// sanitized here; callers validate them first.
package alloc

import (
	"math"
	"slices"
)

// Total is the sum every normalized sequence adds up to.
const Total = 100.0

// Tolerance is the absolute slack allowed when checking that shares sum to
// [Total].
const Tolerance = 1e-6

// Weighted is implemented by items that carry a percentage share.
// WithShare returns a copy of the item with its share replaced.
type Weighted[T any] interface {
	Share() float64
	WithShare(p float64) T
}

// Percent is a bare share, for callers that only have numbers.
type Percent float64

func (p Percent) Share() float64            { return float64(p) }
func (Percent) WithShare(v float64) Percent { return Percent(v) }

// Percents converts plain numbers into a Percent slice.
func Percents(vs []float64) []Percent {
	out := make([]Percent, len(vs))
	for i, v := range vs {
		out[i] = Percent(v)
	}
	return out
}

// Values returns the shares of items in order.
func Values[T Weighted[T]](items []T) []float64 {
	out := make([]float64, len(items))
	for i, it := range items {
		out[i] = it.Share()
	}
	return out
}

// Sum returns the total share of items.
func Sum[T Weighted[T]](items []T) float64 {
	var s float64
	for _, it := range items {
		s += it.Share()
	}
	return s
}

// IsNormalized reports whether the shares of items sum to Total within tol.
// An empty sequence is considered normalized.
func IsNormalized[T Weighted[T]](items []T, tol float64) bool {
	if len(items) == 0 {
		return true
	}
	return math.Abs(Sum(items)-Total) <= tol
}

// Normalize rescales every share to share/sum*100, preserving order and
// proportions. A zero sum is passed through unchanged.
func Normalize[T Weighted[T]](items []T) []T {
	out := slices.Clone(items)
	total := Sum(items)
	if total == 0 {
		return out
	}
	for i, it := range items {
		out[i] = it.WithShare(it.Share() / total * Total)
	}
	return out
}

// SetOneAndRescaleOthers sets items[index] to p (clamped to [0, 100]) and
// scales all other shares by (100-p)/otherTotal so the result sums to 100.
// When the other items hold no share they stay at zero.
func SetOneAndRescaleOthers[T Weighted[T]](items []T, index int, p float64) []T {
	out := slices.Clone(items)
	if index < 0 || index >= len(items) {
		return out
	}
	p = clamp(p)

	var otherTotal float64
	for i, it := range items {
		if i != index {
			otherTotal += it.Share()
		}
	}

	var scale float64
	if otherTotal != 0 {
		scale = (Total - p) / otherTotal
	}
	for i, it := range items {
		if i == index {
			out[i] = it.WithShare(p)
			continue
		}
		out[i] = it.WithShare(it.Share() * scale)
	}
	return out
}

// InsertWithDefaultShare appends item, keeping its share P, and scales the
// existing items by (100-P)/existingTotal.
func InsertWithDefaultShare[T Weighted[T]](items []T, item T) []T {
	return InsertAt(items, len(items), item)
}

// InsertAt is InsertWithDefaultShare at an arbitrary position. index is
// clamped to [0, len(items)].
func InsertAt[T Weighted[T]](items []T, index int, item T) []T {
	index = max(0, min(index, len(items)))
	p := clamp(item.Share())

	existing := Sum(items)
	var scale float64
	if existing != 0 {
		scale = (Total - p) / existing
	}

	out := make([]T, 0, len(items)+1)
	for _, it := range items[:index] {
		out = append(out, it.WithShare(it.Share()*scale))
	}
	out = append(out, item.WithShare(p))
	for _, it := range items[index:] {
		out = append(out, it.WithShare(it.Share()*scale))
	}
	return out
}

// RemoveAndRenormalize drops items[index] and normalizes the rest.
// Removing the last item yields an empty, non-nil slice.
func RemoveAndRenormalize[T Weighted[T]](items []T, index int) []T {
	if index < 0 || index >= len(items) {
		return slices.Clone(items)
	}
	rest := slices.Delete(slices.Clone(items), index, index+1)
	if len(rest) == 0 {
		return []T{}
	}
	return Normalize(rest)
}

// Move relocates items[from] to position to. Shares are untouched: a move
// is a structural edit only.
func Move[T any](items []T, from, to int) []T {
	out := slices.Clone(items)
	if from < 0 || from >= len(items) || to < 0 || to >= len(items) || from == to {
		return out
	}
	it := out[from]
	out = slices.Delete(out, from, from+1)
	return slices.Insert(out, to, it)
}

// EqualShare is the default share for an item joining n existing ones.
func EqualShare(n int) float64 {
	return Total / float64(max(n, 0)+1)
}

func clamp(p float64) float64 {
	return max(0, min(Total, p))
}
