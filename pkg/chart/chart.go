package chart

import (
	"github.com/matzehuels/fanchart/pkg/fan"
	"github.com/matzehuels/fanchart/pkg/geom"
)

// Segment is a percentage-weighted region within a layer.
type Segment struct {
	ID      string  `json:"id" toml:"id"`
	Label   string  `json:"label" toml:"label"`
	Percent float64 `json:"percent" toml:"percent"`
	Color   string  `json:"color" toml:"color"`
}

// Share implements alloc.Weighted.
func (s Segment) Share() float64 { return s.Percent }

// WithShare implements alloc.Weighted.
func (s Segment) WithShare(p float64) Segment { s.Percent = p; return s }

// Layer is one horizontal band of the fan. Percent and Value are optional.
type Layer struct {
	ID       string    `json:"id" toml:"id"`
	Name     string    `json:"name" toml:"name"`
	Height   float64   `json:"height" toml:"height"`
	Percent  *float64  `json:"percent,omitempty" toml:"percent,omitempty"`
	Value    *float64  `json:"value,omitempty" toml:"value,omitempty"`
	Segments []Segment `json:"segments" toml:"segments"`
}

// Share implements alloc.Weighted. An undefined percent counts as zero.
func (l Layer) Share() float64 {
	if l.Percent == nil {
		return 0
	}
	return *l.Percent
}

// WithShare implements alloc.Weighted.
func (l Layer) WithShare(p float64) Layer {
	l.Percent = &p
	return l
}

// Percents returns the segment percents in order.
func (l Layer) Percents() []float64 {
	out := make([]float64, len(l.Segments))
	for i, s := range l.Segments {
		out[i] = s.Percent
	}
	return out
}

func (l Layer) clone() Layer {
	c := l
	if l.Percent != nil {
		p := *l.Percent
		c.Percent = &p
	}
	if l.Value != nil {
		v := *l.Value
		c.Value = &v
	}
	if l.Segments != nil {
		c.Segments = append([]Segment(nil), l.Segments...)
	}
	return c
}

// Canvas is the drawing area in canvas units.
type Canvas struct {
	Width  float64 `json:"width" toml:"width"`
	Height float64 `json:"height" toml:"height"`
}

// FanSettings places the fan on the canvas and sets its strokes.
type FanSettings struct {
	Start           geom.Point `json:"start" toml:"start"`
	End             geom.Point `json:"end" toml:"end"`
	Right           float64    `json:"right" toml:"right"`
	Stroke          float64    `json:"stroke" toml:"stroke"`
	SeparatorStroke float64    `json:"separator_stroke" toml:"separator_stroke"`
	StrokeColor     string     `json:"stroke_color,omitempty" toml:"stroke_color,omitempty"`
}

// Geometry returns the fan outline used for layout.
func (f FanSettings) Geometry() fan.Fan {
	return fan.Fan{Start: f.Start, End: f.End, Right: f.Right}
}

// Legend positions.
const (
	LegendRight  = "right"
	LegendBottom = "bottom"
)

// Legend controls the segment legend.
type Legend struct {
	Show     bool   `json:"show" toml:"show"`
	Position string `json:"position,omitempty" toml:"position,omitempty"`
}

// Typography controls label text.
type Typography struct {
	FontFamily string  `json:"font_family" toml:"font_family"`
	FontSize   float64 `json:"font_size" toml:"font_size"`
	LabelColor string  `json:"label_color" toml:"label_color"`
}

// Config is a complete chart.
type Config struct {
	Title      string      `json:"title,omitempty" toml:"title,omitempty"`
	Canvas     Canvas      `json:"canvas" toml:"canvas"`
	ShowAxes   bool        `json:"show_axes" toml:"show_axes"`
	Fan        FanSettings `json:"fan" toml:"fan"`
	Layers     []Layer     `json:"layers" toml:"layers"`
	Legend     Legend      `json:"legend" toml:"legend"`
	Typography Typography  `json:"typography" toml:"typography"`
}

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	out := *c
	if c.Layers != nil {
		out.Layers = make([]Layer, len(c.Layers))
		for i, l := range c.Layers {
			out.Layers[i] = l.clone()
		}
	}
	return &out
}

// LayerIndex returns the index of the layer with the given ID, or -1.
func (c *Config) LayerIndex(id string) int {
	for i, l := range c.Layers {
		if l.ID == id {
			return i
		}
	}
	return -1
}

// SegmentCount returns the total number of segments across all layers.
func (c *Config) SegmentCount() int {
	n := 0
	for _, l := range c.Layers {
		n += len(l.Segments)
	}
	return n
}
