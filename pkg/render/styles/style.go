package styles

import (
	"bytes"

	"github.com/matzehuels/fanchart/pkg/errors"
	"github.com/matzehuels/fanchart/pkg/geom"
)

// Style defines the visual appearance of a fan chart.
type Style interface {
	// RenderDefs writes SVG <defs> content (patterns, gradients).
	RenderDefs(buf *bytes.Buffer)
	// RenderPiece writes the polygon of one segment.
	RenderPiece(buf *bytes.Buffer, p Piece)
	// RenderSeparator writes a cut line between two segments.
	RenderSeparator(buf *bytes.Buffer, s Separator)
	// RenderLabel writes a segment or layer label.
	RenderLabel(buf *bytes.Buffer, l Label)
	// RenderLayerOutline writes the border of one layer's trapezoid.
	RenderLayerOutline(buf *bytes.Buffer, o Outline)
}

// Piece is one segment's polygon.
type Piece struct {
	ID      string       // Segment identifier
	LayerID string       // Owning layer
	Label   string       // Display text
	Percent float64      // Share of the layer
	Points  []geom.Point // Polygon vertices in drawing order
	Fill    string       // Configured segment color
}

// Separator is a straight cut from a layer's origin to a boundary point.
type Separator struct {
	X1, Y1, X2, Y2 float64
	Width          float64
	Color          string
}

// Label is positioned text. X and Y are the text's center.
type Label struct {
	For        string // ID of the labeled piece or layer
	Text       string
	X, Y       float64
	FontSize   float64
	FontFamily string
	Color      string
	Anchor     string // "middle" (default), "start" or "end"
}

// Outline is a layer border.
type Outline struct {
	ID     string
	Points []geom.Point
	Width  float64
	Color  string
}

// Names lists the built-in styles.
var Names = []string{"simple", "print"}

// ByName returns the built-in style with the given name. An empty name
// selects [Simple].
func ByName(name string) (Style, error) {
	switch name {
	case "", "simple":
		return Simple{}, nil
	case "print":
		return Print{}, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidStyle, "unknown style %q (want one of %v)", name, Names)
	}
}
