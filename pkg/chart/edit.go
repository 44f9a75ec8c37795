package chart

import (
	"fmt"

	"github.com/matzehuels/fanchart/pkg/alloc"
	"github.com/matzehuels/fanchart/pkg/errors"
)

func (c *Config) checkLayer(i int) error {
	if i < 0 || i >= len(c.Layers) {
		return errors.New(errors.ErrCodeInvalidInput, "layer index %d out of range (have %d)", i, len(c.Layers))
	}
	return nil
}

func (c *Config) checkSegment(layer, seg int) error {
	if err := c.checkLayer(layer); err != nil {
		return err
	}
	if n := len(c.Layers[layer].Segments); seg < 0 || seg >= n {
		return errors.New(errors.ErrCodeInvalidInput, "segment index %d out of range (layer %q has %d)", seg, c.Layers[layer].ID, n)
	}
	return nil
}

// SetSegmentPercent sets one segment's percent and rescales its siblings so
// the layer still sums to 100.
func SetSegmentPercent(c *Config, layer, seg int, p float64) (*Config, error) {
	if err := c.checkSegment(layer, seg); err != nil {
		return nil, err
	}
	out := c.Clone()
	l := &out.Layers[layer]
	l.Segments = alloc.SetOneAndRescaleOthers(l.Segments, seg, p)
	return out, nil
}

// AddSegment appends a segment with an equal share of the layer. An empty
// color picks the next palette entry.
func AddSegment(c *Config, layer int, label, color string) (*Config, error) {
	if err := c.checkLayer(layer); err != nil {
		return nil, err
	}
	out := c.Clone()
	l := &out.Layers[layer]
	n := len(l.Segments)
	if label == "" {
		label = fmt.Sprintf("Segment %d", n+1)
	}
	if color == "" {
		color = PaletteColor(n)
	}
	s := Segment{ID: NewID(), Label: label, Color: color, Percent: alloc.EqualShare(n)}
	l.Segments = alloc.InsertWithDefaultShare(l.Segments, s)
	return out, nil
}

// RemoveSegment drops a segment and renormalizes the rest. Removing the
// last segment leaves the layer empty.
func RemoveSegment(c *Config, layer, seg int) (*Config, error) {
	if err := c.checkSegment(layer, seg); err != nil {
		return nil, err
	}
	out := c.Clone()
	l := &out.Layers[layer]
	l.Segments = alloc.RemoveAndRenormalize(l.Segments, seg)
	return out, nil
}

// MoveSegment reorders a segment within its layer.
func MoveSegment(c *Config, layer, from, to int) (*Config, error) {
	if err := c.checkSegment(layer, from); err != nil {
		return nil, err
	}
	if err := c.checkSegment(layer, to); err != nil {
		return nil, err
	}
	out := c.Clone()
	l := &out.Layers[layer]
	l.Segments = alloc.Move(l.Segments, from, to)
	return out, nil
}

// SetLayerPercent sets one layer's share of the fan height and rescales the
// other layers. A chart still stacked by height is first converted to
// percent mode, seeding each layer's percent from its normalized height.
func SetLayerPercent(c *Config, layer int, p float64) (*Config, error) {
	if err := c.checkLayer(layer); err != nil {
		return nil, err
	}
	out := c.Clone()
	if ModeOf(out.Layers) == WeightHeight {
		out.Layers = seedPercents(out.Layers)
	}
	out.Layers = alloc.SetOneAndRescaleOthers(out.Layers, layer, p)
	return out, nil
}

func seedPercents(layers []Layer) []Layer {
	out := make([]Layer, len(layers))
	for i, l := range layers {
		out[i] = l.WithShare(l.Height)
	}
	return alloc.Normalize(out)
}

// AddLayer appends a layer holding a single full-width segment. In percent
// mode it takes an equal share and the others are rescaled; in height mode
// it gets the average height of the existing layers.
func AddLayer(c *Config, name string) (*Config, error) {
	out := c.Clone()
	n := len(out.Layers)
	if name == "" {
		name = fmt.Sprintf("Layer %d", n+1)
	}
	l := Layer{
		ID:     NewID(),
		Name:   name,
		Height: averageHeight(out.Layers),
		Segments: []Segment{
			{ID: NewID(), Label: "Segment 1", Percent: alloc.Total, Color: PaletteColor(n)},
		},
	}
	if ModeOf(out.Layers) == WeightPercent {
		out.Layers = alloc.InsertWithDefaultShare(out.Layers, l.WithShare(alloc.EqualShare(n)))
		return out, nil
	}
	out.Layers = append(out.Layers, l)
	return out, nil
}

func averageHeight(layers []Layer) float64 {
	if len(layers) == 0 {
		return 1
	}
	var sum float64
	for _, l := range layers {
		sum += l.Height
	}
	if sum <= 0 {
		return 1
	}
	return sum / float64(len(layers))
}

// RemoveLayer drops a layer. In percent mode the remaining layer percents
// are renormalized.
func RemoveLayer(c *Config, layer int) (*Config, error) {
	if err := c.checkLayer(layer); err != nil {
		return nil, err
	}
	out := c.Clone()
	if ModeOf(out.Layers) == WeightPercent {
		out.Layers = alloc.RemoveAndRenormalize(out.Layers, layer)
		return out, nil
	}
	out.Layers = append(out.Layers[:layer], out.Layers[layer+1:]...)
	return out, nil
}

// MoveLayer changes the stacking order. Percents are not touched.
func MoveLayer(c *Config, from, to int) (*Config, error) {
	if err := c.checkLayer(from); err != nil {
		return nil, err
	}
	if err := c.checkLayer(to); err != nil {
		return nil, err
	}
	out := c.Clone()
	out.Layers = alloc.Move(out.Layers, from, to)
	return out, nil
}

// NormalizeAll normalizes every layer's segments and, in percent mode, the
// layer percents.
func NormalizeAll(c *Config) *Config {
	out := c.Clone()
	for i := range out.Layers {
		out.Layers[i].Segments = alloc.Normalize(out.Layers[i].Segments)
	}
	if ModeOf(out.Layers) == WeightPercent {
		out.Layers = alloc.Normalize(out.Layers)
	}
	return out
}
