// Package io reads and writes chart configurations as JSON or TOML.
//
// # Formats
//
// Both formats carry the same fields as [chart.Config]. A minimal TOML
// chart looks like:
//
//	title = "Capital structure"
//
//	[canvas]
//	width = 800.0
//	height = 600.0
//
//	[fan]
//	right = 720.0
//	stroke = 2.0
//	start = { x = 80.0, y = 560.0 }
//	end = { x = 480.0, y = 60.0 }
//
//	[[layers]]
//	id = "equity"
//	name = "Equity"
//	height = 1.0
//	percent = 20.0
//
//	  [[layers.segments]]
//	  id = "sponsor"
//	  label = "Sponsor"
//	  percent = 100.0
//	  color = "#4477aa"
//
// Unknown keys are rejected in both formats so typos do not silently fall
// back to zero values.
//
// # Reading vs importing
//
// [ReadJSON] and [ReadTOML] only decode. [Import] decodes a file and then
// runs [chart.Validate], so anything it returns is safe to lay out.
// [Export] writes a file in the format named by its extension.
package io
