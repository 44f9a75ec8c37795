package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/fanchart/pkg/layout"
	"github.com/matzehuels/fanchart/pkg/render/styles"
)

const pieceInteractionCSS = `
    .piece { transition: opacity 0.2s ease; }
    .piece:hover { opacity: 0.8; }
    .label, .legend { pointer-events: none; }`

// RenderSVG renders the layout as a standalone SVG document.
func RenderSVG(l layout.Layout, opts ...Option) []byte {
	r := newRenderer(opts...)
	s := buildScene(l, r)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		s.width, s.height, s.width, s.height)
	fmt.Fprintf(&buf, `  <rect class="background" x="0" y="0" width="%.1f" height="%.1f" fill="white"/>`+"\n", s.width, s.height)

	r.style.RenderDefs(&buf)
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", pieceInteractionCSS)

	if s.title != nil {
		r.style.RenderLabel(&buf, *s.title)
	}
	renderContent(&buf, r.style, s)
	if s.axis != nil {
		renderAxis(&buf, r.style, s.axis)
	}
	if len(s.legend) > 0 {
		renderLegend(&buf, r, s.legend)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderContent(buf *bytes.Buffer, st styles.Style, s scene) {
	for _, p := range s.pieces {
		st.RenderPiece(buf, p)
	}
	for _, sep := range s.separators {
		st.RenderSeparator(buf, sep)
	}
	for _, o := range s.outlines {
		st.RenderLayerOutline(buf, o)
	}
	for _, l := range s.labels {
		st.RenderLabel(buf, l)
	}
}

func renderAxis(buf *bytes.Buffer, st styles.Style, a *axis) {
	color := a.Color
	if color == "" {
		color = "#333"
	}
	buf.WriteString(`  <g class="axis">` + "\n")
	fmt.Fprintf(buf, `    <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%.2f"/>`+"\n",
		a.X, a.Top, a.X, a.Bottom, styles.EscapeXML(color), a.Width)
	for _, t := range a.Ticks {
		fmt.Fprintf(buf, `    <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%.2f"/>`+"\n",
			a.X, t.Y, a.X+tickLength, t.Y, styles.EscapeXML(color), a.Width)
		st.RenderLabel(buf, t.Label)
	}
	buf.WriteString("  </g>\n")
}

func renderLegend(buf *bytes.Buffer, r renderer, entries []swatch) {
	buf.WriteString(`  <g class="legend">` + "\n")
	for _, e := range entries {
		fill := styles.FillColor(e.Color)
		stroke := "none"
		if r.printing() {
			fill, stroke = "white", "#333"
		}
		fmt.Fprintf(buf, `    <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s" stroke="%s"/>`+"\n",
			e.X, e.Y, e.Size, e.Size, fill, stroke)
		r.style.RenderLabel(buf, e.Label)
	}
	buf.WriteString("  </g>\n")
}
