// Package chart defines the fan chart configuration and the operations that
// edit it.
//
// A [Config] is the aggregate root: canvas size, fan geometry, the ordered
// [Layer] list (each with ordered [Segment]s), legend and typography.
// Configurations are snapshots. Every editing function in this package
// returns a new *Config and leaves its argument untouched, so concurrent
// renders never observe a half-applied edit.
//
// Percent edits apply the rules of package alloc at two levels: segments
// within a layer, and layers within the chart. Layer stacking uses a single
// [WeightMode] resolved for the whole chart by [ResolveWeights].
//
// [Validate] is the gatekeeper for imported configurations; the geometry
// core assumes its input passed validation.
package chart
