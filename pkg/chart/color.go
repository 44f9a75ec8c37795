package chart

import (
	"fmt"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Palette is Paul Tol's qualitative palette, used for new segments.
var Palette = []string{
	"#4477AA", // Blue
	"#EE6677", // Rose
	"#228833", // Green
	"#CCBB44", // Olive
	"#66CCEE", // Cyan
	"#AA3377", // Purple
	"#BBBBBB", // Grey
	"#EE8866", // Orange
}

// PaletteColor returns the palette entry for index i, cycling.
func PaletteColor(i int) string {
	return Palette[((i%len(Palette))+len(Palette))%len(Palette)]
}

// ParseColor accepts "#rgb", "#rrggbb", "rgb(r, g, b)" and "rgba(r, g, b, a)".
// The alpha channel is ignored.
func ParseColor(s string) (colorful.Color, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		return colorful.Hex(s)
	}

	lower := strings.ToLower(s)
	var body string
	switch {
	case strings.HasPrefix(lower, "rgba(") && strings.HasSuffix(lower, ")"):
		body = lower[len("rgba(") : len(lower)-1]
	case strings.HasPrefix(lower, "rgb(") && strings.HasSuffix(lower, ")"):
		body = lower[len("rgb(") : len(lower)-1]
	default:
		return colorful.Color{}, fmt.Errorf("unsupported color %q", s)
	}

	parts := strings.Split(body, ",")
	if len(parts) != 3 && len(parts) != 4 {
		return colorful.Color{}, fmt.Errorf("color %q: want 3 or 4 components", s)
	}
	var rgb [3]float64
	for i := range rgb {
		v, err := strconv.ParseFloat(strings.TrimSpace(parts[i]), 64)
		if err != nil || v < 0 || v > 255 {
			return colorful.Color{}, fmt.Errorf("color %q: component %d out of range", s, i)
		}
		rgb[i] = v / 255
	}
	return colorful.Color{R: rgb[0], G: rgb[1], B: rgb[2]}, nil
}

// HexColor normalizes s to "#rrggbb", falling back to def when s does not
// parse.
func HexColor(s, def string) string {
	c, err := ParseColor(s)
	if err != nil {
		return def
	}
	return c.Hex()
}

// ContrastText picks a dark or light label color for text drawn on bg.
func ContrastText(bg string) string {
	c, err := ParseColor(bg)
	if err != nil {
		return "#1f2933"
	}
	l, _, _ := c.Lab()
	if l > 0.6 {
		return "#1f2933"
	}
	return "#ffffff"
}
