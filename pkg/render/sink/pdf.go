package sink

import (
	"bytes"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"

	"github.com/matzehuels/fanchart/pkg/errors"
	"github.com/matzehuels/fanchart/pkg/geom"
	"github.com/matzehuels/fanchart/pkg/layout"
	"github.com/matzehuels/fanchart/pkg/render/styles"
)

// RenderPDF renders the layout as a single-page PDF, one point per canvas
// unit.
func RenderPDF(l layout.Layout, opts ...Option) ([]byte, error) {
	r := newRenderer(opts...)
	s := buildScene(l, r)
	if s.width <= 0 || s.height <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "cannot draw a %gx%g page", s.width, s.height)
	}

	d := pdfDrawing{p: plot.New(), height: s.height, printing: r.printing()}
	d.p.HideAxes()
	d.p.X.Min, d.p.X.Max = 0, s.width
	d.p.Y.Min, d.p.Y.Max = 0, s.height

	for _, p := range s.pieces {
		fill := styles.RGBA(p.Fill, fallback)
		if d.printing {
			fill = white
		}
		if err := d.polygon(p.Points, fill, 0.75); err != nil {
			return nil, err
		}
	}
	for _, sep := range s.separators {
		col := white
		if d.printing {
			col = ink
		}
		if err := d.line(sep.Width, col, geom.Point{X: sep.X1, Y: sep.Y1}, geom.Point{X: sep.X2, Y: sep.Y2}); err != nil {
			return nil, err
		}
	}
	for _, o := range s.outlines {
		if err := d.outline(o.Points, o.Width, styles.RGBA(o.Color, ink)); err != nil {
			return nil, err
		}
	}

	labels := append([]styles.Label(nil), s.labels...)
	if s.title != nil {
		labels = append(labels, *s.title)
	}
	if a := s.axis; a != nil {
		col := styles.RGBA(a.Color, ink)
		if err := d.line(a.Width, col, geom.Point{X: a.X, Y: a.Top}, geom.Point{X: a.X, Y: a.Bottom}); err != nil {
			return nil, err
		}
		for _, t := range a.Ticks {
			if err := d.line(a.Width, col, geom.Point{X: a.X, Y: t.Y}, geom.Point{X: a.X + tickLength, Y: t.Y}); err != nil {
				return nil, err
			}
			labels = append(labels, t.Label)
		}
	}
	for _, e := range s.legend {
		sq := []geom.Point{{X: e.X, Y: e.Y}, {X: e.X + e.Size, Y: e.Y}, {X: e.X + e.Size, Y: e.Y + e.Size}, {X: e.X, Y: e.Y + e.Size}}
		fill := styles.RGBA(e.Color, fallback)
		if d.printing {
			fill = white
		}
		if err := d.polygon(sq, fill, 0.5); err != nil {
			return nil, err
		}
		labels = append(labels, e.Label)
	}
	if err := d.labels(labels); err != nil {
		return nil, err
	}

	wt, err := d.p.WriterTo(vg.Points(s.width), vg.Points(s.height), "pdf")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create pdf canvas")
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "write pdf")
	}
	return buf.Bytes(), nil
}

// pdfDrawing adds scene shapes to a plot, flipping y so the canvas origin
// stays at the top-left.
type pdfDrawing struct {
	p        *plot.Plot
	height   float64
	printing bool
}

func (d pdfDrawing) xys(pts []geom.Point) plotter.XYs {
	out := make(plotter.XYs, len(pts))
	for i, p := range pts {
		out[i] = plotter.XY{X: p.X, Y: d.height - p.Y}
	}
	return out
}

func (d pdfDrawing) polygon(pts []geom.Point, fill color.Color, stroke float64) error {
	poly, err := plotter.NewPolygon(d.xys(pts))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "build polygon")
	}
	poly.Color = fill
	poly.LineStyle.Width = 0
	if d.printing {
		poly.LineStyle.Width = vg.Points(stroke)
		poly.LineStyle.Color = ink
	}
	d.p.Add(poly)
	return nil
}

// outline strokes the closed ring through pts. Fewer than two points draw
// nothing.
func (d pdfDrawing) outline(pts []geom.Point, width float64, col color.Color) error {
	if len(pts) < 2 {
		return nil
	}
	closed := append(append([]geom.Point(nil), pts...), pts[0])
	return d.line(width, col, closed...)
}

func (d pdfDrawing) line(width float64, col color.Color, pts ...geom.Point) error {
	if width <= 0 {
		return nil
	}
	ln, err := plotter.NewLine(d.xys(pts))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "build line")
	}
	ln.LineStyle.Width = vg.Points(width)
	ln.LineStyle.Color = col
	if d.printing && col == ink {
		ln.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	}
	d.p.Add(ln)
	return nil
}

func (d pdfDrawing) labels(ls []styles.Label) error {
	if len(ls) == 0 {
		return nil
	}
	xyl := plotter.XYLabels{
		XYs:    make([]plotter.XY, len(ls)),
		Labels: make([]string, len(ls)),
	}
	for i, l := range ls {
		xyl.XYs[i] = plotter.XY{X: l.X, Y: d.height - l.Y}
		xyl.Labels[i] = l.Text
	}
	labels, err := plotter.NewLabels(xyl)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "build labels")
	}
	for i, l := range ls {
		ts := &labels.TextStyle[i]
		ts.Font.Size = vg.Points(l.FontSize)
		ts.Color = styles.RGBA(l.Color, ink)
		if d.printing {
			ts.Color = color.Black
		}
		ts.YAlign = text.YCenter
		switch l.Anchor {
		case "start":
			ts.XAlign = text.XLeft
		case "end":
			ts.XAlign = text.XRight
		default:
			ts.XAlign = text.XCenter
		}
	}
	d.p.Add(labels)
	return nil
}
