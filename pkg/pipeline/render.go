package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/fanchart/pkg/errors"
	"github.com/matzehuels/fanchart/pkg/layout"
	"github.com/matzehuels/fanchart/pkg/observability"
	"github.com/matzehuels/fanchart/pkg/render/sink"
	"github.com/matzehuels/fanchart/pkg/render/styles"
)

// RenderFromLayout renders l in every format listed in opts.Formats.
// It does not consult any cache.
func RenderFromLayout(ctx context.Context, l layout.Layout, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	start := time.Now()
	hooks.OnRenderStart(ctx, opts.Formats)

	artifacts, err := renderAll(ctx, l, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return artifacts, nil
}

func renderAll(ctx context.Context, l layout.Layout, opts Options) (map[string][]byte, error) {
	sinkOpts, err := buildSinkOptions(opts)
	if err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := renderFormat(l, format, sinkOpts)
		if err != nil {
			code := errors.GetCode(err)
			if code == "" {
				code = errors.ErrCodeInternal
			}
			return nil, errors.Wrap(code, err, "render %s", format)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderFormat(l layout.Layout, format string, opts []sink.Option) ([]byte, error) {
	switch format {
	case FormatSVG:
		return sink.RenderSVG(l, opts...), nil
	case FormatPNG:
		return sink.RenderPNG(l, opts...)
	case FormatPDF:
		return sink.RenderPDF(l, opts...)
	case FormatJSON:
		return sink.RenderJSON(l)
	default:
		return nil, ValidateFormat(format)
	}
}

func buildSinkOptions(opts Options) ([]sink.Option, error) {
	st, err := styles.ByName(opts.Style)
	if err != nil {
		return nil, err
	}
	out := []sink.Option{
		sink.WithStyle(st),
		sink.WithLabels(!opts.NoLabels),
		sink.WithScale(opts.Scale),
	}
	if opts.Legend != nil {
		out = append(out, sink.WithLegend(*opts.Legend))
	}
	if opts.Axes != nil {
		out = append(out, sink.WithAxes(*opts.Axes))
	}
	return out, nil
}
