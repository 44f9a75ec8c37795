package chart

import (
	"github.com/google/uuid"

	"github.com/matzehuels/fanchart/pkg/geom"
)

// Default canvas and fan settings.
const (
	DefaultWidth           = 800.0
	DefaultHeight          = 600.0
	DefaultStroke          = 2.0
	DefaultSeparatorStroke = 1.0
	DefaultFontSize        = 12.0
	DefaultFontFamily      = "Helvetica, Arial, sans-serif"
)

// Default returns the starter chart: a three-layer capital structure stacked
// by percent.
func Default() *Config {
	return &Config{
		Title:  "Capital structure",
		Canvas: Canvas{Width: DefaultWidth, Height: DefaultHeight},
		Fan: FanSettings{
			Start:           geom.Point{X: 80, Y: 560},
			End:             geom.Point{X: 480, Y: 60},
			Right:           720,
			Stroke:          DefaultStroke,
			SeparatorStroke: DefaultSeparatorStroke,
			StrokeColor:     "#333333",
		},
		Layers: []Layer{
			{
				ID: "equity", Name: "Equity", Height: 1, Percent: ptr(20.0),
				Segments: []Segment{
					{ID: "equity-sponsor", Label: "Sponsor", Percent: 70, Color: PaletteColor(0)},
					{ID: "equity-management", Label: "Management", Percent: 30, Color: PaletteColor(1)},
				},
			},
			{
				ID: "mezzanine", Name: "Mezzanine", Height: 1, Percent: ptr(30.0),
				Segments: []Segment{
					{ID: "mezzanine-fund", Label: "Mezz fund", Percent: 100, Color: PaletteColor(2)},
				},
			},
			{
				ID: "senior", Name: "Senior debt", Height: 1, Percent: ptr(50.0),
				Segments: []Segment{
					{ID: "senior-term-a", Label: "Term loan A", Percent: 40, Color: PaletteColor(3)},
					{ID: "senior-term-b", Label: "Term loan B", Percent: 35, Color: PaletteColor(4)},
					{ID: "senior-rcf", Label: "Revolver", Percent: 25, Color: PaletteColor(5)},
				},
			},
		},
		Legend: Legend{Show: true, Position: LegendRight},
		Typography: Typography{
			FontFamily: DefaultFontFamily,
			FontSize:   DefaultFontSize,
			LabelColor: "#1f2933",
		},
	}
}

// NewID returns a fresh identifier for a layer or segment.
func NewID() string { return uuid.NewString() }

func ptr[T any](v T) *T { return &v }
