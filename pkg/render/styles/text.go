package styles

import (
	"bytes"
	"encoding/xml"
	"image/color"

	"github.com/matzehuels/fanchart/pkg/chart"
	"github.com/matzehuels/fanchart/pkg/geom"
)

const (
	fontHeightRatio = 0.35
	fontWidthRatio  = 0.6
	fontCharWidth   = 0.55
	fontSizeMin     = 7.0
)

// FontSize returns a font size that fits text of textLen characters inside
// a polygon with the given vertices, capped at max.
func FontSize(pts []geom.Point, textLen int, maxSize float64) float64 {
	lo, hi := geom.Bounds(pts)
	return fontSizeFor(hi.X-lo.X, hi.Y-lo.Y, textLen, maxSize)
}

func fontSizeFor(availWidth, availHeight float64, textLen int, maxSize float64) float64 {
	n := max(1, textLen)
	byHeight := availHeight * fontHeightRatio
	byWidth := (availWidth * fontWidthRatio) / (float64(n) * fontCharWidth)
	return max(fontSizeMin, min(maxSize, min(byHeight, byWidth)))
}

// TruncateLabel shortens label so it fits availWidth at fontSize, ending in
// "..". At least three characters are kept.
func TruncateLabel(label string, availWidth, fontSize float64) string {
	charWidth := fontSize * fontCharWidth
	maxChars := max(3, int(availWidth*fontWidthRatio/charWidth))
	r := []rune(label)
	if len(r) <= maxChars {
		return label
	}
	return string(r[:maxChars-2]) + ".."
}

// TextWidth estimates the rendered width of text at fontSize.
func TextWidth(text string, fontSize float64) float64 {
	return float64(len([]rune(text))) * fontSize * fontCharWidth
}

func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// FillColor normalizes a configured color to "#rrggbb", using grey for
// anything unparseable.
func FillColor(s string) string {
	return chart.HexColor(s, "#bbbbbb")
}

// RGBA converts a configured color for raster and PDF sinks.
func RGBA(s string, fallback color.RGBA) color.RGBA {
	c, err := chart.ParseColor(s)
	if err != nil {
		return fallback
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}
