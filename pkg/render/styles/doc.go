// Package styles defines how the pieces of a fan chart are drawn as SVG.
//
// A [Style] receives flat, precomputed shapes ([Piece], [Separator],
// [Label], [Outline]) and writes SVG elements into a buffer. The sink
// package decides what to draw and in which order; a style only decides how
// it looks.
//
// Two styles ship with the package:
//
//   - [Simple]: segments filled with their configured color.
//   - [Print]: outline-only, for monochrome printing.
//
// The text helpers ([FontSize], [TruncateLabel], [EscapeXML]) are shared by
// all raster and vector sinks so labels fit the same way in every format.
package styles
