package sink

import (
	"encoding/json"

	"github.com/matzehuels/fanchart/pkg/chart"
	"github.com/matzehuels/fanchart/pkg/fan"
	"github.com/matzehuels/fanchart/pkg/geom"
	"github.com/matzehuels/fanchart/pkg/layout"
)

type jsonOutput struct {
	Title  string           `json:"title,omitempty"`
	Width  float64          `json:"width"`
	Height float64          `json:"height"`
	Mode   chart.WeightMode `json:"mode"`
	Fan    fan.Fan          `json:"fan"`
	Layers []jsonLayer      `json:"layers"`
	Issues []layout.Issue   `json:"issues,omitempty"`
}

type jsonLayer struct {
	ID        string        `json:"id"`
	Name      string        `json:"name,omitempty"`
	Value     *float64      `json:"value,omitempty"`
	Weight    float64       `json:"weight"`
	Span      fan.Span      `json:"span"`
	Trapezoid fan.Trapezoid `json:"trapezoid"`
	Area      float64       `json:"area"`
	Closing   float64       `json:"closing_ratio"`
	Pieces    []jsonPiece   `json:"pieces"`
	CutPoints []geom.Point  `json:"cut_points"`
	Report    fan.Report    `json:"report"`
}

type jsonPiece struct {
	ID         string       `json:"id"`
	Label      string       `json:"label"`
	Color      string       `json:"color"`
	Percent    float64      `json:"percent"`
	StartRatio float64      `json:"start_ratio"`
	EndRatio   float64      `json:"end_ratio"`
	Kind       geom.Kind    `json:"kind"`
	Vertices   []geom.Point `json:"vertices"`
	Area       float64      `json:"area"`
	Anchor     geom.Point   `json:"anchor"`
}

// RenderJSON exports the layout geometry: every polygon with its ratios,
// label anchor and area, the cut points of each layer, and all diagnostics.
func RenderJSON(l layout.Layout) ([]byte, error) {
	out := jsonOutput{
		Title:  l.Title,
		Width:  l.Width,
		Height: l.Height,
		Mode:   l.Mode,
		Fan:    l.Fan,
		Layers: make([]jsonLayer, 0, len(l.Layers)),
		Issues: l.Issues(),
	}
	for _, layer := range l.Layers {
		tess := layer.Tessellation
		jl := jsonLayer{
			ID:        layer.ID,
			Name:      layer.Name,
			Value:     layer.Value,
			Weight:    layer.Weight,
			Span:      layer.Span,
			Trapezoid: layer.Trapezoid,
			Area:      layer.Trapezoid.TotalArea(),
			Closing:   layer.Trapezoid.ClosingRatio(),
			Pieces:    make([]jsonPiece, 0, len(tess.Pieces)),
			CutPoints: tess.CutPoints,
			Report:    tess.Report,
		}
		for i, p := range tess.Pieces {
			seg := layer.Segments[i]
			jl.Pieces = append(jl.Pieces, jsonPiece{
				ID:         seg.ID,
				Label:      seg.Label,
				Color:      seg.Color,
				Percent:    p.Percent,
				StartRatio: p.StartRatio,
				EndRatio:   p.EndRatio,
				Kind:       p.Polygon.Kind,
				Vertices:   p.Polygon.Vertices,
				Area:       p.Polygon.Area(),
				Anchor:     tess.LabelAnchors[i],
			})
		}
		out.Layers = append(out.Layers, jl)
	}
	return json.MarshalIndent(out, "", "  ")
}
