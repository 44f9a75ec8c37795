// Package server exposes the fan chart pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz                 build info and liveness
//	POST /v1/layout               chart config in, layout JSON out
//	POST /v1/render/{format}      chart config in, svg|png|pdf|json out
//	POST /v1/allocate/{op}        normalize|set|insert|remove on a list of percents
//
// Request bodies for layout and render carry the chart under "chart" and
// optional [pipeline.Options] under "options". Errors are returned as
// {"code": "...", "error": "..."} with a status derived from the code.
package server
