package layout

import (
	"github.com/matzehuels/fanchart/pkg/chart"
	"github.com/matzehuels/fanchart/pkg/fan"
)

// Layout is the computed geometry of a chart in canvas units.
type Layout struct {
	Title           string           `json:"title,omitempty"`
	Width           float64          `json:"width"`
	Height          float64          `json:"height"`
	Mode            chart.WeightMode `json:"mode"`
	Fan             fan.Fan          `json:"fan"`
	Stroke          float64          `json:"stroke"`
	SeparatorStroke float64          `json:"separator_stroke"`
	StrokeColor     string           `json:"stroke_color,omitempty"`
	ShowAxes        bool             `json:"show_axes"`
	Legend          chart.Legend     `json:"legend"`
	Typography      chart.Typography `json:"typography"`
	Layers          []Layer          `json:"layers"`
}

// Layer is one band of the fan with its tessellation.
type Layer struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Value        *float64         `json:"value,omitempty"`
	Weight       float64          `json:"weight"`
	Span         fan.Span         `json:"span"`
	Trapezoid    fan.Trapezoid    `json:"trapezoid"`
	Segments     []Segment        `json:"segments"`
	Tessellation fan.Tessellation `json:"tessellation"`
}

// Segment carries the display attributes of a tessellated piece. Segments
// and Tessellation.Pieces share indexes.
type Segment struct {
	ID      string  `json:"id"`
	Label   string  `json:"label"`
	Percent float64 `json:"percent"`
	Color   string  `json:"color"`
}

// Issue is a diagnostic tied to the layer it was found in.
type Issue struct {
	Layer string `json:"layer"`
	fan.Issue
}

// Option configures [Build].
type Option func(*builder)

type builder struct {
	sumTol  float64
	areaTol float64
}

// WithTolerance sets the allowed deviation of a layer's segment percents
// from 100, in percentage points.
func WithTolerance(tol float64) Option { return func(b *builder) { b.sumTol = tol } }

// WithAreaTolerance sets the allowed deviation between a polygon's area and
// its percent, in percentage points.
func WithAreaTolerance(tol float64) Option { return func(b *builder) { b.areaTol = tol } }

// Build computes the layout of cfg. Layers are stacked from the top of the
// fan (Fan.End.Y) to its base (Fan.Start.Y) in configuration order.
func Build(cfg *chart.Config, opts ...Option) Layout {
	b := builder{sumTol: fan.DefaultSumTolerance, areaTol: fan.DefaultAreaTolerance}
	for _, opt := range opts {
		opt(&b)
	}

	geo := cfg.Fan.Geometry()
	mode, weights := chart.ResolveWeights(cfg.Layers)
	span := geo.Span()
	spans := fan.PartitionLayers(span.Top, span.Bottom, weights)

	l := Layout{
		Title:           cfg.Title,
		Width:           cfg.Canvas.Width,
		Height:          cfg.Canvas.Height,
		Mode:            mode,
		Fan:             geo,
		Stroke:          cfg.Fan.Stroke,
		SeparatorStroke: cfg.Fan.SeparatorStroke,
		StrokeColor:     cfg.Fan.StrokeColor,
		ShowAxes:        cfg.ShowAxes,
		Legend:          cfg.Legend,
		Typography:      cfg.Typography,
		Layers:          make([]Layer, len(cfg.Layers)),
	}
	tessOpts := []fan.Option{fan.WithSumTolerance(b.sumTol), fan.WithAreaTolerance(b.areaTol)}
	for i, cl := range cfg.Layers {
		trap := geo.Trapezoid(spans[i])
		segs := make([]Segment, len(cl.Segments))
		for j, s := range cl.Segments {
			segs[j] = Segment{ID: s.ID, Label: s.Label, Percent: s.Percent, Color: s.Color}
		}
		l.Layers[i] = Layer{
			ID:           cl.ID,
			Name:         cl.Name,
			Value:        copyValue(cl.Value),
			Weight:       weights[i],
			Span:         spans[i],
			Trapezoid:    trap,
			Segments:     segs,
			Tessellation: fan.Tessellate(trap, cl.Percents(), tessOpts...),
		}
	}
	return l
}

func copyValue(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// Issues returns every diagnostic across all layers, in layer order.
func (l Layout) Issues() []Issue {
	var out []Issue
	for _, layer := range l.Layers {
		for _, is := range layer.Tessellation.Report.Issues {
			out = append(out, Issue{Layer: layer.ID, Issue: is})
		}
	}
	return out
}

// OK reports whether no layer has diagnostics.
func (l Layout) OK() bool {
	for _, layer := range l.Layers {
		if !layer.Tessellation.Report.OK() {
			return false
		}
	}
	return true
}
