package chart

import "fmt"

// WeightMode selects how layers share the fan's height.
type WeightMode int

const (
	// WeightHeight uses each layer's Height as a relative weight.
	WeightHeight WeightMode = iota
	// WeightPercent uses layer percents, which sum to 100.
	WeightPercent
)

func (m WeightMode) String() string {
	switch m {
	case WeightHeight:
		return "height"
	case WeightPercent:
		return "percent"
	default:
		return fmt.Sprintf("WeightMode(%d)", int(m))
	}
}

// MarshalText encodes the mode by name.
func (m WeightMode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText decodes a mode name.
func (m *WeightMode) UnmarshalText(b []byte) error {
	switch string(b) {
	case "height":
		*m = WeightHeight
	case "percent":
		*m = WeightPercent
	default:
		return fmt.Errorf("unknown weight mode %q", b)
	}
	return nil
}

// ModeOf returns WeightPercent if any layer defines a percent.
func ModeOf(layers []Layer) WeightMode {
	for _, l := range layers {
		if l.Percent != nil {
			return WeightPercent
		}
	}
	return WeightHeight
}

// ResolveWeights picks one weight per layer for the whole chart. In percent
// mode a layer without a percent weighs zero; heights are never mixed in.
func ResolveWeights(layers []Layer) (WeightMode, []float64) {
	mode := ModeOf(layers)
	weights := make([]float64, len(layers))
	for i, l := range layers {
		if mode == WeightPercent {
			weights[i] = l.Share()
		} else {
			weights[i] = l.Height
		}
	}
	return mode, weights
}
