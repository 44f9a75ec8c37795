package styles

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/fanchart/pkg/geom"
)

// Simple fills every segment with its configured color and draws thin white
// separators between them.
type Simple struct{}

func (Simple) RenderDefs(*bytes.Buffer) {}

func (Simple) RenderPiece(buf *bytes.Buffer, p Piece) {
	fmt.Fprintf(buf, `  <polygon id="piece-%s" class="piece" data-layer="%s" points="%s" fill="%s" stroke="none"><title>%s (%.1f%%)</title></polygon>`+"\n",
		EscapeXML(p.ID), EscapeXML(p.LayerID), Points(p.Points), EscapeXML(FillColor(p.Fill)), EscapeXML(p.Label), p.Percent)
}

func (Simple) RenderSeparator(buf *bytes.Buffer, s Separator) {
	color := s.Color
	if color == "" {
		color = "white"
	}
	fmt.Fprintf(buf, `  <line class="separator" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%.2f"/>`+"\n",
		s.X1, s.Y1, s.X2, s.Y2, EscapeXML(color), s.Width)
}

func (Simple) RenderLabel(buf *bytes.Buffer, l Label) {
	renderText(buf, l, l.Color)
}

func (Simple) RenderLayerOutline(buf *bytes.Buffer, o Outline) {
	renderOutline(buf, o, o.Color)
}

// Print draws outlines only, so charts stay legible in monochrome.
type Print struct{}

func (Print) RenderDefs(*bytes.Buffer) {}

func (Print) RenderPiece(buf *bytes.Buffer, p Piece) {
	fmt.Fprintf(buf, `  <polygon id="piece-%s" class="piece" data-layer="%s" points="%s" fill="white" stroke="#333" stroke-width="0.75"><title>%s (%.1f%%)</title></polygon>`+"\n",
		EscapeXML(p.ID), EscapeXML(p.LayerID), Points(p.Points), EscapeXML(p.Label), p.Percent)
}

func (Print) RenderSeparator(buf *bytes.Buffer, s Separator) {
	fmt.Fprintf(buf, `  <line class="separator" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="#333" stroke-width="%.2f" stroke-dasharray="4 2"/>`+"\n",
		s.X1, s.Y1, s.X2, s.Y2, s.Width)
}

func (Print) RenderLabel(buf *bytes.Buffer, l Label) {
	renderText(buf, l, "#000")
}

func (Print) RenderLayerOutline(buf *bytes.Buffer, o Outline) {
	renderOutline(buf, o, "#000")
}

func renderText(buf *bytes.Buffer, l Label, color string) {
	anchor := l.Anchor
	if anchor == "" {
		anchor = "middle"
	}
	if color == "" {
		color = "#1f2933"
	}
	fmt.Fprintf(buf, `  <text class="label" data-for="%s" x="%.2f" y="%.2f" text-anchor="%s" dominant-baseline="middle" font-family="%s" font-size="%.1f" fill="%s">%s</text>`+"\n",
		EscapeXML(l.For), l.X, l.Y, anchor, EscapeXML(l.FontFamily), l.FontSize, EscapeXML(color), EscapeXML(l.Text))
}

func renderOutline(buf *bytes.Buffer, o Outline, color string) {
	if color == "" {
		color = "#333"
	}
	fmt.Fprintf(buf, `  <polygon id="layer-%s" class="layer" points="%s" fill="none" stroke="%s" stroke-width="%.2f" stroke-linejoin="round"/>`+"\n",
		EscapeXML(o.ID), Points(o.Points), EscapeXML(color), o.Width)
}

// Points formats vertices for an SVG points attribute.
func Points(pts []geom.Point) string {
	var b bytes.Buffer
	for i, p := range pts {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%.2f,%.2f", p.X, p.Y)
	}
	return b.String()
}
