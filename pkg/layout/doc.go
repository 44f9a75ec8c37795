// Package layout turns a chart configuration into concrete geometry.
//
// [Build] stacks the chart's layers down the fan with [fan.PartitionLayers]
// and tessellates each layer's trapezoid with [fan.Tessellate]. The result
// carries everything the sinks need to draw the chart, so renderers never
// look at the configuration again.
//
// Build does not fail. Percent sums that are off, or polygons whose area
// disagrees with their percent, end up in each layer's [fan.Report]; use
// [Layout.Issues] to collect them.
package layout
