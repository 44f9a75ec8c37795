// Package pipeline runs the layout → render pipeline for fan charts.
//
// Both the CLI and the HTTP API go through [Runner], so caching, logging
// and diagnostics behave the same everywhere.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, cfg, pipeline.Options{
//	    Formats: []string{"svg", "png"},
//	    Style:   "simple",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Layout diagnostics (percent sums off, area mismatches) are logged as
// warnings and returned in [Result.Issues]; they never fail a run.
package pipeline

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/fanchart/pkg/errors"
	"github.com/matzehuels/fanchart/pkg/fan"
	"github.com/matzehuels/fanchart/pkg/layout"
	"github.com/matzehuels/fanchart/pkg/render/styles"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// DefaultStyle is the default visual style.
const DefaultStyle = "simple"

// Cache lifetimes. Entries are keyed by content, so they only expire to
// bound disk and memory use.
const (
	TTLLayout   = 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// Options configures one pipeline run. It is JSON-serializable for API
// requests.
type Options struct {
	// Layout options
	SumTolerance  float64 `json:"sum_tolerance,omitempty"`
	AreaTolerance float64 `json:"area_tolerance,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Style    string   `json:"style,omitempty"`
	NoLabels bool     `json:"no_labels,omitempty"`
	Legend   *bool    `json:"legend,omitempty"` // overrides the chart setting
	Axes     *bool    `json:"axes,omitempty"`   // overrides the chart setting
	Scale    float64  `json:"scale,omitempty"`  // PNG only

	// Refresh bypasses cache reads; results are still written.
	Refresh bool `json:"refresh,omitempty"`

	// Logger overrides the runner's logger for this run.
	Logger *log.Logger `json:"-"`
}

// ValidateAndSetDefaults checks the options and fills in defaults.
func (o *Options) ValidateAndSetDefaults() error {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if err := ValidateStyle(o.Style); err != nil {
		return err
	}
	if o.SumTolerance <= 0 {
		o.SumTolerance = fan.DefaultSumTolerance
	}
	if o.AreaTolerance <= 0 {
		o.AreaTolerance = fan.DefaultAreaTolerance
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must not be negative")
	}
	if o.Scale == 0 {
		o.Scale = 1
	}
	return nil
}

// ValidateFormat checks that format is supported. Names are case-sensitive.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q (want svg, png, pdf or json)", format)
	}
	return nil
}

// ValidateFormats checks every format.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that style names a built-in style.
func ValidateStyle(style string) error {
	if style == "" {
		return errors.New(errors.ErrCodeInvalidStyle, "style cannot be empty")
	}
	_, err := styles.ByName(style)
	return err
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// ChartHash is the content hash of the input chart.
	ChartHash string

	// Layout is the computed geometry.
	Layout layout.Layout

	// Issues are the layout diagnostics, also logged as warnings.
	Issues []layout.Issue

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains run statistics.
type Stats struct {
	Layers     int
	Segments   int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo records which stages were served from the cache.
type CacheInfo struct {
	LayoutHit bool
	RenderHit bool
}

func (s Stats) String() string {
	return fmt.Sprintf("%d layers, %d segments, layout %s, render %s",
		s.Layers, s.Segments, s.LayoutTime.Round(time.Microsecond), s.RenderTime.Round(time.Microsecond))
}

func layoutOptions(o Options) []layout.Option {
	return []layout.Option{layout.WithTolerance(o.SumTolerance), layout.WithAreaTolerance(o.AreaTolerance)}
}
