// Package render groups the fan chart renderers.
//
// Rendering happens in two steps. The [sink] package turns a
// [layout.Layout] into a scene (pieces, separators, outlines, labels, axis
// and legend) and draws that scene in one output format. The [styles]
// package decides how scene elements look in SVG.
//
//	l := layout.Build(cfg)
//	svg := sink.RenderSVG(l, sink.WithStyle(styles.Print{}))
//	png, err := sink.RenderPNG(l, sink.WithScale(2))
//	pdf, err := sink.RenderPDF(l)
//	js, err := sink.RenderJSON(l)
//
// SVG is written directly. PNG is rasterized with golang.org/x/image/vector
// and PDF is drawn with gonum.org/v1/plot, so no external converter is
// needed. All formats share the same scene, so they show the same chart.
//
// [layout.Layout]: github.com/matzehuels/fanchart/pkg/layout.Layout
// [sink]: github.com/matzehuels/fanchart/pkg/render/sink
// [styles]: github.com/matzehuels/fanchart/pkg/render/styles
package render
