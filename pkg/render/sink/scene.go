package sink

import (
	"fmt"
	"math"

	"github.com/matzehuels/fanchart/pkg/chart"
	"github.com/matzehuels/fanchart/pkg/geom"
	"github.com/matzehuels/fanchart/pkg/layout"
	"github.com/matzehuels/fanchart/pkg/render/styles"
)

const (
	titleOffset   = 28.0
	legendPadding = 16.0
	swatchSize    = 12.0
	swatchGap     = 6.0
	rowSpacing    = 1.6
	axisOffset    = 12.0
	tickLength    = 5.0
	layerLabelGap = 8.0
)

// Option configures every sink.
type Option func(*renderer)

type renderer struct {
	style  styles.Style
	labels bool
	legend *bool
	axes   *bool
	scale  float64
}

// WithStyle sets the visual style. The default is [styles.Simple].
func WithStyle(s styles.Style) Option { return func(r *renderer) { r.style = s } }

// WithLabels toggles segment and layer labels. Labels are on by default.
func WithLabels(on bool) Option { return func(r *renderer) { r.labels = on } }

// WithLegend overrides the legend visibility stored in the layout.
func WithLegend(on bool) Option { return func(r *renderer) { r.legend = &on } }

// WithAxes overrides the axis visibility stored in the layout.
func WithAxes(on bool) Option { return func(r *renderer) { r.axes = &on } }

// WithScale sets the PNG scale factor (default 1).
func WithScale(s float64) Option { return func(r *renderer) { r.scale = s } }

func newRenderer(opts ...Option) renderer {
	r := renderer{style: styles.Simple{}, labels: true, scale: 1}
	for _, opt := range opts {
		opt(&r)
	}
	if r.style == nil {
		r.style = styles.Simple{}
	}
	if r.scale <= 0 {
		r.scale = 1
	}
	return r
}

func (r renderer) printing() bool {
	_, ok := r.style.(styles.Print)
	return ok
}

// scene is the flattened drawing shared by all formats. Coordinates are
// canvas units with y pointing down.
type scene struct {
	width, height float64
	fontFamily    string
	title         *styles.Label
	pieces        []styles.Piece
	separators    []styles.Separator
	outlines      []styles.Outline
	labels        []styles.Label
	legend        []swatch
	axis          *axis
}

type swatch struct {
	X, Y, Size float64
	Color      string
	Label      styles.Label
}

type axis struct {
	X, Top, Bottom float64
	Width          float64
	Color          string
	Ticks          []tick
}

type tick struct {
	Y     float64
	Label styles.Label
}

func buildScene(l layout.Layout, r renderer) scene {
	fontSize := l.Typography.FontSize
	if fontSize <= 0 {
		fontSize = chart.DefaultFontSize
	}
	family := l.Typography.FontFamily
	if family == "" {
		family = chart.DefaultFontFamily
	}
	textColor := l.Typography.LabelColor

	s := scene{width: l.Width, height: l.Height, fontFamily: family}
	if l.Title != "" {
		s.title = &styles.Label{
			For: "title", Text: l.Title,
			X: l.Width / 2, Y: titleOffset/2 + 4,
			FontSize: fontSize * 1.4, FontFamily: family, Color: textColor,
		}
	}

	for _, layer := range l.Layers {
		tess := layer.Tessellation
		for j, p := range tess.Pieces {
			seg := layer.Segments[j]
			s.pieces = append(s.pieces, styles.Piece{
				ID:      seg.ID,
				LayerID: layer.ID,
				Label:   seg.Label,
				Percent: seg.Percent,
				Points:  p.Polygon.Vertices,
				Fill:    seg.Color,
			})
			if r.labels && seg.Percent > 0 {
				s.labels = append(s.labels, pieceLabel(p.Polygon, seg, tess.LabelAnchors[j], fontSize, family))
			}
		}
		origin := layer.Trapezoid.Origin
		for _, c := range tess.CutPoints {
			s.separators = append(s.separators, styles.Separator{
				X1: origin.X, Y1: origin.Y, X2: c.X, Y2: c.Y,
				Width: l.SeparatorStroke,
			})
		}
		s.outlines = append(s.outlines, styles.Outline{
			ID:     layer.ID,
			Points: layer.Trapezoid.Polygon().Vertices,
			Width:  l.Stroke,
			Color:  l.StrokeColor,
		})
		if r.labels && layer.Name != "" {
			mid := geom.Lerp(layer.Trapezoid.TopLeft, origin, 0.5)
			s.labels = append(s.labels, styles.Label{
				For: layer.ID, Text: layer.Name,
				X: mid.X - layerLabelGap, Y: mid.Y,
				FontSize: fontSize, FontFamily: family, Color: textColor,
				Anchor: "end",
			})
		}
	}

	showAxes := l.ShowAxes
	if r.axes != nil {
		showAxes = *r.axes
	}
	if showAxes && len(l.Layers) > 0 {
		s.axis = buildAxis(l, fontSize*0.85, family, textColor)
		s.width = max(s.width, s.axis.X+axisLabelWidth(fontSize*0.85)+legendPadding)
	}

	showLegend := l.Legend.Show
	if r.legend != nil {
		showLegend = *r.legend
	}
	if showLegend {
		s.addLegend(l, fontSize, family, textColor)
	}
	return s
}

func pieceLabel(poly geom.Polygon, seg layout.Segment, anchor geom.Point, maxSize float64, family string) styles.Label {
	text := fmt.Sprintf("%s %s", seg.Label, formatPercent(seg.Percent))
	lo, hi := geom.Bounds(poly.Vertices)
	fs := styles.FontSize(poly.Vertices, len([]rune(text)), maxSize)
	return styles.Label{
		For:        seg.ID,
		Text:       styles.TruncateLabel(text, hi.X-lo.X, fs),
		X:          anchor.X,
		Y:          anchor.Y,
		FontSize:   fs,
		FontFamily: family,
		Color:      chart.ContrastText(seg.Color),
	}
}

func formatPercent(p float64) string {
	if p == math.Trunc(p) {
		return fmt.Sprintf("%.0f%%", p)
	}
	return fmt.Sprintf("%.1f%%", p)
}

func buildAxis(l layout.Layout, fontSize float64, family, color string) *axis {
	span := l.Fan.Span()
	a := &axis{
		X:      l.Fan.Right + axisOffset,
		Top:    span.Top,
		Bottom: span.Bottom,
		Width:  1,
		Color:  l.StrokeColor,
	}
	ys := []float64{l.Layers[0].Span.Top}
	for _, layer := range l.Layers {
		ys = append(ys, layer.Span.Bottom)
	}
	for _, y := range ys {
		pct := 0.0
		if h := span.Height(); h > 0 {
			pct = (y - span.Top) / h * 100
		}
		a.Ticks = append(a.Ticks, tick{
			Y: y,
			Label: styles.Label{
				For: "axis", Text: formatPercent(math.Round(pct*10) / 10),
				X: a.X + tickLength + 3, Y: y,
				FontSize: fontSize, FontFamily: family, Color: color,
				Anchor: "start",
			},
		})
	}
	return a
}

func axisLabelWidth(fontSize float64) float64 {
	return tickLength + 3 + styles.TextWidth("100%", fontSize)
}

func (s *scene) addLegend(l layout.Layout, fontSize float64, family, color string) {
	type entry struct{ text, color string }
	var entries []entry
	var widest float64
	for _, layer := range l.Layers {
		for _, seg := range layer.Segments {
			text := seg.Label
			if layer.Name != "" {
				text = layer.Name + " / " + seg.Label
			}
			entries = append(entries, entry{text, seg.Color})
			widest = max(widest, styles.TextWidth(text, fontSize))
		}
	}
	if len(entries) == 0 {
		return
	}

	row := fontSize * rowSpacing
	entryWidth := swatchSize + swatchGap + widest
	place := func(i int, x, y float64) {
		e := entries[i]
		s.legend = append(s.legend, swatch{
			X: x, Y: y - swatchSize/2, Size: swatchSize, Color: e.color,
			Label: styles.Label{
				For: "legend", Text: e.text,
				X: x + swatchSize + swatchGap, Y: y,
				FontSize: fontSize, FontFamily: family, Color: color,
				Anchor: "start",
			},
		})
	}

	if l.Legend.Position == chart.LegendBottom {
		cols := max(1, int((s.width-2*legendPadding)/(entryWidth+legendPadding)))
		rows := (len(entries) + cols - 1) / cols
		top := l.Height + legendPadding/2
		for i := range entries {
			x := legendPadding + float64(i%cols)*(entryWidth+legendPadding)
			y := top + float64(i/cols)*row + row/2
			place(i, x, y)
		}
		s.height = top + float64(rows)*row + legendPadding
		return
	}

	left := s.width + legendPadding
	top := titleOffset + legendPadding
	for i := range entries {
		place(i, left, top+float64(i)*row+row/2)
	}
	s.width = left + entryWidth + legendPadding
	s.height = max(s.height, top+float64(len(entries))*row+legendPadding)
}
