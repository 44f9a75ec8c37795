package sink

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/matzehuels/fanchart/pkg/errors"
	"github.com/matzehuels/fanchart/pkg/geom"
	"github.com/matzehuels/fanchart/pkg/layout"
	"github.com/matzehuels/fanchart/pkg/render/styles"
)

var (
	white    = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	ink      = color.RGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}
	fallback = color.RGBA{R: 0xbb, G: 0xbb, B: 0xbb, A: 0xff}
)

// RenderPNG rasterizes the layout. Labels use a fixed 7x13 bitmap font, so
// their size does not follow the typography settings.
func RenderPNG(l layout.Layout, opts ...Option) ([]byte, error) {
	r := newRenderer(opts...)
	s := buildScene(l, r)

	w := int(math.Ceil(s.width * r.scale))
	h := int(math.Ceil(s.height * r.scale))
	if w <= 0 || h <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "cannot rasterize a %dx%d image", w, h)
	}

	c := newCanvas(w, h, r.scale)
	c.fill(white)

	printing := r.printing()
	for _, p := range s.pieces {
		fill := styles.RGBA(p.Fill, fallback)
		if printing {
			fill = white
		}
		c.polygon(p.Points, fill)
		if printing {
			c.outline(p.Points, 0.75, ink)
		}
	}
	for _, sep := range s.separators {
		col := white
		if printing {
			col = ink
		}
		c.line(geom.Point{X: sep.X1, Y: sep.Y1}, geom.Point{X: sep.X2, Y: sep.Y2}, sep.Width, col)
	}
	for _, o := range s.outlines {
		c.outline(o.Points, o.Width, styles.RGBA(o.Color, ink))
	}
	for _, lb := range s.labels {
		c.text(lb, printing)
	}
	if s.title != nil {
		c.text(*s.title, printing)
	}
	if a := s.axis; a != nil {
		col := styles.RGBA(a.Color, ink)
		c.line(geom.Point{X: a.X, Y: a.Top}, geom.Point{X: a.X, Y: a.Bottom}, a.Width, col)
		for _, t := range a.Ticks {
			c.line(geom.Point{X: a.X, Y: t.Y}, geom.Point{X: a.X + tickLength, Y: t.Y}, a.Width, col)
			c.text(t.Label, printing)
		}
	}
	for _, e := range s.legend {
		sq := []geom.Point{{X: e.X, Y: e.Y}, {X: e.X + e.Size, Y: e.Y}, {X: e.X + e.Size, Y: e.Y + e.Size}, {X: e.X, Y: e.Y + e.Size}}
		if printing {
			c.polygon(sq, white)
			c.outline(sq, 1, ink)
		} else {
			c.polygon(sq, styles.RGBA(e.Color, fallback))
		}
		c.text(e.Label, printing)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, c.img); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

type canvas struct {
	img   *image.RGBA
	z     *vector.Rasterizer
	scale float64
}

func newCanvas(w, h int, scale float64) *canvas {
	return &canvas{
		img:   image.NewRGBA(image.Rect(0, 0, w, h)),
		z:     vector.NewRasterizer(w, h),
		scale: scale,
	}
}

func (c *canvas) fill(col color.Color) {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{}, draw.Src)
}

func (c *canvas) polygon(pts []geom.Point, col color.Color) {
	if len(pts) < 3 {
		return
	}
	b := c.img.Bounds()
	c.z.Reset(b.Dx(), b.Dy())
	c.z.DrawOp = draw.Over
	c.z.MoveTo(c.pt(pts[0]))
	for _, p := range pts[1:] {
		c.z.LineTo(c.pt(p))
	}
	c.z.ClosePath()
	c.z.Draw(c.img, b, image.NewUniform(col), image.Point{})
}

// line strokes a segment as a thin quad around it.
func (c *canvas) line(a, b geom.Point, width float64, col color.Color) {
	if width <= 0 {
		return
	}
	d := geom.Dist(a, b)
	if d == 0 {
		return
	}
	nx, ny := -(b.Y-a.Y)/d*width/2, (b.X-a.X)/d*width/2
	c.polygon([]geom.Point{
		{X: a.X + nx, Y: a.Y + ny},
		{X: b.X + nx, Y: b.Y + ny},
		{X: b.X - nx, Y: b.Y - ny},
		{X: a.X - nx, Y: a.Y - ny},
	}, col)
}

func (c *canvas) outline(pts []geom.Point, width float64, col color.Color) {
	for i := range pts {
		c.line(pts[i], pts[(i+1)%len(pts)], width, col)
	}
}

func (c *canvas) text(l styles.Label, printing bool) {
	col := styles.RGBA(l.Color, ink)
	if printing {
		col = color.RGBA{A: 0xff}
	}
	d := font.Drawer{Dst: c.img, Src: image.NewUniform(col), Face: basicfont.Face7x13}
	w := d.MeasureString(l.Text).Ceil()
	x := int(math.Round(l.X * c.scale))
	switch l.Anchor {
	case "start":
	case "end":
		x -= w
	default:
		x -= w / 2
	}
	// Face7x13 has an ascent of 11; center the cap height on Y.
	y := int(math.Round(l.Y*c.scale)) + 4
	d.Dot = fixed.P(x, y)
	d.DrawString(l.Text)
}

func (c *canvas) pt(p geom.Point) (float32, float32) {
	return float32(p.X * c.scale), float32(p.Y * c.scale)
}
