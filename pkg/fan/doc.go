// Package fan converts percentage allocations into area-accurate polygons
// over the trapezoidal bands of a fan chart.
//
// # Geometry
//
// A layer is a [Trapezoid] with a slanted left edge (from Origin at the
// bottom to TopLeft at the top) and a vertical right edge (TopRight to
// BottomRight). Cut points are located by sweeping a ray from Origin across
// the top edge, left to right, and then down the right edge. The sweep is
// parameterized by a ratio in [0, 2]:
//
//   - ratio in [0, 1] is a point on the top edge
//   - ratio in (1, 2] is a point on the right edge
//
// Because every region shares the apex Origin, the area swept up to a given
// ratio is linear in the ratio on each edge. [Trapezoid.RatioForArea]
// inverts that relation, so each segment's polygon covers exactly its share
// of the trapezoid's area rather than its share of the edge length.
//
// # Tessellation
//
// [Tessellate] walks the ordered percents, producing one triangle or
// quadrilateral per segment, the internal cut points used for separator
// lines, and label anchors. The last segment always closes at the far corner
// ([Trapezoid.ClosingRatio]) regardless of accumulated rounding.
//
// Problems are reported through [Report] rather than logged: inputs that do
// not sum to 100 produce [IssuePercentSum], and a polygon whose area diverges
// from its percent produces [IssueAreaMismatch].
//
// # Stacking
//
// [PartitionLayers] splits the fan's vertical span between layers in order,
// and [Fan.Trapezoid] derives each layer's corners from the global fan.
//
// Everything in this package is a pure function of its arguments and safe
// for concurrent use.
package fan
