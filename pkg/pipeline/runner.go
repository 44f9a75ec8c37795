package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/fanchart/pkg/cache"
	"github.com/matzehuels/fanchart/pkg/chart"
	"github.com/matzehuels/fanchart/pkg/errors"
	"github.com/matzehuels/fanchart/pkg/layout"
	"github.com/matzehuels/fanchart/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it so the caching logic lives in one place.
//
// The Runner holds no results. Multiple goroutines can use the same Runner
// with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// A nil keyer means DefaultKeyer, a nil cache disables caching.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Close releases the runner's cache.
func (r *Runner) Close() error {
	return r.Cache.Close()
}

// Execute validates cfg, computes its layout and renders every requested
// format. Percent sums that are off are reported as issues, not errors.
func (r *Runner) Execute(ctx context.Context, cfg *chart.Config, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	hash, err := ChartHash(cfg)
	if err != nil {
		return nil, err
	}
	result := &Result{
		ChartHash: hash,
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Layout
	layoutStart := time.Now()
	l, layoutHit, err := r.LayoutWithCacheInfo(ctx, cfg, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = l
	result.Issues = l.Issues()
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.Layers = len(l.Layers)
	result.Stats.Segments = cfg.SegmentCount()
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Debug("computed layout",
		"layers", len(l.Layers),
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)
	for _, is := range result.Issues {
		r.Logger.Warn("layout issue", "layer", is.Layer, "kind", is.Kind, "detail", is.String())
	}

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, hash, l, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Debug("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LayoutWithCacheInfo validates cfg and computes its layout, reporting
// whether the layout came from the cache.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, cfg *chart.Config, opts Options) (layout.Layout, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return layout.Layout{}, false, err
	}
	if err := chart.Validate(cfg, chart.SkipSums()); err != nil {
		return layout.Layout{}, false, err
	}
	hash, err := ChartHash(cfg)
	if err != nil {
		return layout.Layout{}, false, err
	}
	key := r.Keyer.LayoutKey(hash, layoutKeyOpts(opts))

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var cached layout.Layout
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return cached, true, nil
			}
			// Undecodable entries are recomputed and overwritten.
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	hooks := observability.Pipeline()
	start := time.Now()
	hooks.OnLayoutStart(ctx, len(cfg.Layers))
	l := layout.Build(cfg, layoutOptions(opts)...)
	hooks.OnLayoutComplete(ctx, len(l.Layers), len(l.Issues()), time.Since(start))

	if data, err := json.Marshal(l); err == nil {
		if err := r.Cache.Set(ctx, key, data, TTLLayout); err != nil {
			r.Logger.Debug("layout not cached", "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}
	return l, false, nil
}

// Layout is LayoutWithCacheInfo without the cache hit info.
func (r *Runner) Layout(ctx context.Context, cfg *chart.Config, opts Options) (layout.Layout, error) {
	l, _, err := r.LayoutWithCacheInfo(ctx, cfg, opts)
	return l, err
}

// RenderWithCacheInfo renders l in every requested format. The returned
// flag is true only if every artifact came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, chartHash string, l layout.Layout, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(chartHash, artifactKeyOpts(format, opts))
		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, "artifact")
				artifacts[format] = data
				continue
			}
			observability.Cache().OnCacheMiss(ctx, "artifact")
		}
		missing = append(missing, format)
	}
	if len(missing) == 0 {
		return artifacts, true, nil
	}

	renderOpts := opts
	renderOpts.Formats = missing
	rendered, err := RenderFromLayout(ctx, l, renderOpts)
	if err != nil {
		return nil, false, err
	}
	for format, data := range rendered {
		artifacts[format] = data
		key := r.Keyer.ArtifactKey(chartHash, artifactKeyOpts(format, opts))
		if err := r.Cache.Set(ctx, key, data, TTLArtifact); err != nil {
			r.Logger.Debug("artifact not cached", "format", format, "error", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}
	return artifacts, false, nil
}

// ChartHash returns the content hash of cfg used in cache keys.
func ChartHash(cfg *chart.Config) (string, error) {
	if cfg == nil {
		return "", errors.New(errors.ErrCodeInvalidConfig, "chart config is nil")
	}
	data, err := json.Marshal(cfg)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "hash chart config")
	}
	return cache.Hash(data), nil
}

func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger != nil {
		r.Logger = opts.Logger
	}
}

func layoutKeyOpts(o Options) cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{SumTolerance: o.SumTolerance, AreaTolerance: o.AreaTolerance}
}

func artifactKeyOpts(format string, o Options) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format:        format,
		Style:         o.Style,
		Labels:        !o.NoLabels,
		Legend:        o.Legend,
		Axes:          o.Axes,
		LayoutKeyOpts: layoutKeyOpts(o),
	}
	if format == FormatPNG {
		k.Scale = o.Scale
	}
	return k
}
