package chart

import (
	"fmt"
	"math"

	"github.com/matzehuels/fanchart/pkg/alloc"
	"github.com/matzehuels/fanchart/pkg/errors"
)

// SumTolerance is the slack, in percentage points, allowed when checking
// that percents add up to 100.
const SumTolerance = 0.01

// ValidateOption configures [Validate].
type ValidateOption func(*validation)

type validation struct {
	sums bool
}

// SkipSums leaves percent sums unchecked. Callers that lay the chart out
// anyway get sum problems back as layout diagnostics instead.
func SkipSums() ValidateOption { return func(v *validation) { v.sums = false } }

// Validate checks a config before it is laid out or saved. All problems are
// reported together under [errors.ErrCodeInvalidConfig].
func Validate(c *Config, opts ...ValidateOption) error {
	v := validation{sums: true}
	for _, opt := range opts {
		opt(&v)
	}
	if c == nil {
		return errors.New(errors.ErrCodeInvalidConfig, "config is nil")
	}
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if !positive(c.Canvas.Width) || !positive(c.Canvas.Height) {
		fail("canvas: width and height must be positive (got %gx%g)", c.Canvas.Width, c.Canvas.Height)
	}

	f := c.Fan
	if f.Start.Y <= f.End.Y {
		fail("fan: start.y (%g) must be below end.y (%g)", f.Start.Y, f.End.Y)
	}
	if f.Right < f.Start.X || f.Right < f.End.X {
		fail("fan: right edge (%g) must not be left of the slanted edge", f.Right)
	}
	for _, v := range []float64{f.Start.X, f.Start.Y, f.End.X, f.End.Y, f.Right} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			fail("fan: coordinates must be finite")
			break
		}
	}
	if positive(c.Canvas.Width) && positive(c.Canvas.Height) {
		if f.Right > c.Canvas.Width || f.Start.Y > c.Canvas.Height || f.End.Y < 0 || min(f.Start.X, f.End.X) < 0 {
			fail("fan: outline must lie inside the %gx%g canvas", c.Canvas.Width, c.Canvas.Height)
		}
	}
	if f.Stroke < 0 || f.SeparatorStroke < 0 {
		fail("fan: stroke widths must not be negative")
	}
	if f.StrokeColor != "" {
		if _, err := ParseColor(f.StrokeColor); err != nil {
			fail("fan: %v", err)
		}
	}

	ids := make(map[string]string)
	seen := func(id, what string) {
		if err := errors.ValidateID(id); err != nil {
			fail("%s: %s", what, errors.UserMessage(err))
			return
		}
		if prev, ok := ids[id]; ok {
			fail("%s: id %q already used by %s", what, id, prev)
			return
		}
		ids[id] = what
	}

	mode := ModeOf(c.Layers)
	for i, l := range c.Layers {
		what := fmt.Sprintf("layer %d", i)
		seen(l.ID, what)
		if l.Height < 0 || math.IsNaN(l.Height) {
			fail("%s: height must not be negative", what)
		}
		if mode == WeightPercent {
			if l.Percent == nil {
				fail("%s: percent missing while other layers define one", what)
			} else if !inRange(*l.Percent) {
				fail("%s: percent %g outside [0, 100]", what, *l.Percent)
			}
		}
		for j, s := range l.Segments {
			swhat := fmt.Sprintf("layer %d segment %d", i, j)
			seen(s.ID, swhat)
			if !inRange(s.Percent) {
				fail("%s: percent %g outside [0, 100]", swhat, s.Percent)
			}
			if _, err := ParseColor(s.Color); err != nil {
				fail("%s: %v", swhat, err)
			}
		}
		if v.sums && !alloc.IsNormalized(l.Segments, SumTolerance) {
			fail("%s: segment percents sum to %g, want 100", what, alloc.Sum(l.Segments))
		}
	}
	if v.sums && mode == WeightPercent && !alloc.IsNormalized(c.Layers, SumTolerance) {
		fail("layers: percents sum to %g, want 100", alloc.Sum(c.Layers))
	}

	switch c.Legend.Position {
	case "", LegendRight, LegendBottom:
	default:
		fail("legend: unknown position %q", c.Legend.Position)
	}
	if !positive(c.Typography.FontSize) {
		fail("typography: font size must be positive")
	}
	if c.Typography.LabelColor != "" {
		if _, err := ParseColor(c.Typography.LabelColor); err != nil {
			fail("typography: %v", err)
		}
	}

	return errors.Join(errors.ErrCodeInvalidConfig, "invalid chart config", errs...)
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

func inRange(p float64) bool {
	return p >= 0 && p <= alloc.Total
}
