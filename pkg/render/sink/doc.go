// Package sink renders a computed [layout.Layout] into output formats.
//
// # Formats
//
//   - SVG: [RenderSVG], vector output drawn through a [styles.Style]
//   - JSON: [RenderJSON], the full geometry for external tools
//   - PNG: [RenderPNG], rasterized in-process with golang.org/x/image/vector
//   - PDF: [RenderPDF], drawn with gonum.org/v1/plot
//
// All formats draw the same scene: segment polygons, separators from each
// layer's origin to its cut points, layer outlines, labels at the label
// anchors, and optionally a legend and a percent axis. The scene is built
// once per call from the layout and the options, so every format places
// things identically.
//
// Basic usage:
//
//	l := layout.Build(cfg)
//	svg := sink.RenderSVG(l, sink.WithStyle(styles.Print{}))
//	png, err := sink.RenderPNG(l, sink.WithScale(2))
//
// # Options
//
//   - [WithStyle]: visual style ([styles.Simple] or [styles.Print])
//   - [WithLabels]: toggle segment and layer labels
//   - [WithLegend]: override the chart's legend setting
//   - [WithAxes]: override the chart's axis setting
//   - [WithScale]: PNG pixel scale factor
package sink
