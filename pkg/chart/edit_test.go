package chart

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/matzehuels/fanchart/pkg/alloc"
	"github.com/matzehuels/fanchart/pkg/errors"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func segmentPercents(c *Config, layer int) []float64 {
	return c.Layers[layer].Percents()
}

func layerPercents(c *Config) []float64 {
	return alloc.Values(c.Layers)
}

func TestSetSegmentPercent(t *testing.T) {
	orig := Default()
	got, err := SetSegmentPercent(orig, 2, 0, 60)
	if err != nil {
		t.Fatal(err)
	}
	// 35 and 25 share the remaining 40 in proportion.
	want := []float64{60, 40 * 35.0 / 60, 40 * 25.0 / 60}
	if diff := cmp.Diff(want, segmentPercents(got, 2), approx); diff != "" {
		t.Errorf("percents mismatch (-want +got):\n%s", diff)
	}
	if orig.Layers[2].Segments[0].Percent != 40 {
		t.Error("original config was modified")
	}
}

func TestEditIndexErrors(t *testing.T) {
	c := Default()
	tests := []struct {
		name string
		fn   func() (*Config, error)
	}{
		{"set segment bad layer", func() (*Config, error) { return SetSegmentPercent(c, 9, 0, 10) }},
		{"set segment bad segment", func() (*Config, error) { return SetSegmentPercent(c, 0, 5, 10) }},
		{"add segment bad layer", func() (*Config, error) { return AddSegment(c, -1, "", "") }},
		{"remove segment", func() (*Config, error) { return RemoveSegment(c, 1, 1) }},
		{"move segment", func() (*Config, error) { return MoveSegment(c, 0, 0, 2) }},
		{"set layer", func() (*Config, error) { return SetLayerPercent(c, 3, 10) }},
		{"remove layer", func() (*Config, error) { return RemoveLayer(c, 3) }},
		{"move layer", func() (*Config, error) { return MoveLayer(c, 0, 3) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.fn()
			if got != nil {
				t.Error("expected nil config on error")
			}
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("error = %v, want code %s", err, errors.ErrCodeInvalidInput)
			}
		})
	}
}

func TestAddSegment(t *testing.T) {
	got, err := AddSegment(Default(), 0, "Co-invest", "")
	if err != nil {
		t.Fatal(err)
	}
	segs := got.Layers[0].Segments
	if len(segs) != 3 {
		t.Fatalf("len(segments) = %d, want 3", len(segs))
	}
	want := []float64{70 * 2.0 / 3, 30 * 2.0 / 3, 100.0 / 3}
	if diff := cmp.Diff(want, segmentPercents(got, 0), approx); diff != "" {
		t.Errorf("percents mismatch (-want +got):\n%s", diff)
	}
	added := segs[2]
	if added.Label != "Co-invest" || added.Color != PaletteColor(2) || added.ID == "" {
		t.Errorf("added segment = %+v", added)
	}
	if err := Validate(got); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestRemoveSegment(t *testing.T) {
	got, err := RemoveSegment(Default(), 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{40.0 / 75 * 100, 35.0 / 75 * 100}
	if diff := cmp.Diff(want, segmentPercents(got, 2), approx); diff != "" {
		t.Errorf("percents mismatch (-want +got):\n%s", diff)
	}

	// Removing the only segment empties the layer.
	got, err = RemoveSegment(Default(), 1, 0)
	if err != nil {
		t.Fatal(err)
	}
	if n := len(got.Layers[1].Segments); n != 0 {
		t.Errorf("len(segments) = %d, want 0", n)
	}
}

func TestMoveSegmentKeepsPercents(t *testing.T) {
	got, err := MoveSegment(Default(), 2, 0, 2)
	if err != nil {
		t.Fatal(err)
	}
	var ids []string
	for _, s := range got.Layers[2].Segments {
		ids = append(ids, s.ID)
	}
	if diff := cmp.Diff([]string{"senior-term-b", "senior-rcf", "senior-term-a"}, ids); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{35, 25, 40}, segmentPercents(got, 2)); diff != "" {
		t.Errorf("percents mismatch (-want +got):\n%s", diff)
	}
}

func TestSetLayerPercent(t *testing.T) {
	t.Run("percent mode", func(t *testing.T) {
		got, err := SetLayerPercent(Default(), 0, 50)
		if err != nil {
			t.Fatal(err)
		}
		want := []float64{50, 30 * 50.0 / 80, 50 * 50.0 / 80}
		if diff := cmp.Diff(want, layerPercents(got), approx); diff != "" {
			t.Errorf("percents mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("height mode seeds from heights", func(t *testing.T) {
		c := Default()
		for i := range c.Layers {
			c.Layers[i].Percent = nil
		}
		c.Layers[0].Height = 1
		c.Layers[1].Height = 1
		c.Layers[2].Height = 2

		got, err := SetLayerPercent(c, 2, 20)
		if err != nil {
			t.Fatal(err)
		}
		if ModeOf(got.Layers) != WeightPercent {
			t.Fatal("expected percent mode after edit")
		}
		want := []float64{40, 40, 20}
		if diff := cmp.Diff(want, layerPercents(got), approx); diff != "" {
			t.Errorf("percents mismatch (-want +got):\n%s", diff)
		}
		if ModeOf(c.Layers) != WeightHeight {
			t.Error("original config was modified")
		}
	})
}

func TestAddLayer(t *testing.T) {
	t.Run("percent mode", func(t *testing.T) {
		got, err := AddLayer(Default(), "Preferred")
		if err != nil {
			t.Fatal(err)
		}
		want := []float64{15, 22.5, 37.5, 25}
		if diff := cmp.Diff(want, layerPercents(got), approx); diff != "" {
			t.Errorf("percents mismatch (-want +got):\n%s", diff)
		}
		l := got.Layers[3]
		if l.Name != "Preferred" || len(l.Segments) != 1 || l.Segments[0].Percent != 100 {
			t.Errorf("added layer = %+v", l)
		}
		if err := Validate(got); err != nil {
			t.Errorf("Validate() = %v", err)
		}
	})

	t.Run("height mode", func(t *testing.T) {
		c := &Config{Layers: []Layer{{ID: "a", Height: 2}, {ID: "b", Height: 4}}}
		got, err := AddLayer(c, "")
		if err != nil {
			t.Fatal(err)
		}
		if n := len(got.Layers); n != 3 {
			t.Fatalf("len(layers) = %d, want 3", n)
		}
		l := got.Layers[2]
		if l.Height != 3 || l.Percent != nil || l.Name != "Layer 3" {
			t.Errorf("added layer = %+v", l)
		}
	})

	t.Run("empty config", func(t *testing.T) {
		got, err := AddLayer(&Config{}, "first")
		if err != nil {
			t.Fatal(err)
		}
		if got.Layers[0].Height != 1 {
			t.Errorf("height = %v, want 1", got.Layers[0].Height)
		}
	})
}

func TestRemoveLayer(t *testing.T) {
	got, err := RemoveLayer(Default(), 0)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{37.5, 62.5}
	if diff := cmp.Diff(want, layerPercents(got), approx); diff != "" {
		t.Errorf("percents mismatch (-want +got):\n%s", diff)
	}

	heights := &Config{Layers: []Layer{{ID: "a", Height: 2}, {ID: "b", Height: 4}}}
	got, err = RemoveLayer(heights, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Layers) != 1 || got.Layers[0].ID != "b" || got.Layers[0].Percent != nil {
		t.Errorf("layers = %+v", got.Layers)
	}
	if len(heights.Layers) != 2 || heights.Layers[0].ID != "a" {
		t.Error("original config was modified")
	}
}

func TestMoveLayer(t *testing.T) {
	got, err := MoveLayer(Default(), 2, 0)
	if err != nil {
		t.Fatal(err)
	}
	if got.Layers[0].ID != "senior" || *got.Layers[0].Percent != 50 {
		t.Errorf("first layer = %+v", got.Layers[0])
	}
}

func TestNormalizeAll(t *testing.T) {
	c := Default()
	c.Layers[0].Segments[0].Percent = 10
	c.Layers[0].Segments[1].Percent = 30
	*c.Layers[2].Percent = 150

	got := NormalizeAll(c)
	if diff := cmp.Diff([]float64{25, 75}, segmentPercents(got, 0), approx); diff != "" {
		t.Errorf("segments mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{10, 15, 75}, layerPercents(got), approx); diff != "" {
		t.Errorf("layers mismatch (-want +got):\n%s", diff)
	}
}
