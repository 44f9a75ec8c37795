// Package pkg provides the core libraries for fanchart.
//
// # Overview
//
// A fan chart stacks layers of a whole (a capital structure, a budget, a
// cap table) inside a fan-shaped outline: a slanted left edge and a
// vertical right edge. Each layer is a trapezoid, and each segment of a
// layer is a polygon whose area is exactly its share of the layer.
//
// The packages are organized in three tiers:
//
//  1. Core, pure and error-free: [alloc] (percent lists that sum to 100),
//     [geom] (points and polygons), [fan] (layer partition and area-true
//     tessellation).
//  2. Model: [chart] (configuration, editing, validation), [layout]
//     (geometry for a whole chart), [io] (TOML and JSON files).
//  3. Delivery: [render] (SVG, PNG, PDF and JSON), [pipeline] (cached
//     layout and render), [server] (HTTP API), [cache], [observability],
//     [errors] and [buildinfo].
//
// # Data flow
//
//	chart file (TOML/JSON)
//	         ↓
//	    [io] package (read + validate)
//	         ↓
//	    [layout] package (layer spans, trapezoids, tessellations)
//	         ↓
//	    [render/sink] package (scene → SVG/PNG/PDF/JSON)
//
// # Quick Start
//
//	cfg, err := io.Import("chart.toml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	l := layout.Build(cfg)
//	for _, is := range l.Issues() {
//	    log.Printf("%s: %s", is.Layer, is)
//	}
//	svg := sink.RenderSVG(l)
//
// Or through the cached pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	res, err := runner.Execute(ctx, cfg, pipeline.Options{Formats: []string{"svg", "pdf"}})
package pkg
