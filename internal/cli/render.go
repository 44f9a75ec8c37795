package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/fanchart/pkg/errors"
	"github.com/matzehuels/fanchart/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output        string  // output file (one format) or base path (several)
	formats       string  // comma-separated output formats
	style         string  // visual style: simple or print
	noLabels      bool    // hide segment and layer labels
	legend        bool    // only applied when the flag is set
	axes          bool    // only applied when the flag is set
	scale         float64 // PNG pixel density
	sumTolerance  float64 // percentage points a percent sum may be off
	areaTolerance float64 // percentage points an area may be off
	noCache       bool
	refresh       bool
	strict        bool // fail when the layout has diagnostics
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{style: pipeline.DefaultStyle, scale: 1}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a chart to SVG, PNG, PDF or layout JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			po := pipeline.Options{
				Formats:       parseFormats(opts.formats),
				Style:         opts.style,
				NoLabels:      opts.noLabels,
				Scale:         opts.scale,
				SumTolerance:  opts.sumTolerance,
				AreaTolerance: opts.areaTolerance,
				Refresh:       opts.refresh,
			}
			if cmd.Flags().Changed("legend") {
				po.Legend = &opts.legend
			}
			if cmd.Flags().Changed("axes") {
				po.Axes = &opts.axes
			}
			return c.runRender(cmd, args[0], opts, po)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().StringVar(&opts.style, "style", opts.style, "visual style: simple (default), print")
	cmd.Flags().BoolVar(&opts.noLabels, "no-labels", false, "hide labels")
	cmd.Flags().BoolVar(&opts.legend, "legend", false, "show or hide the legend (overrides the chart)")
	cmd.Flags().BoolVar(&opts.axes, "axes", false, "show or hide the percent axis (overrides the chart)")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG pixel density")
	cmd.Flags().Float64Var(&opts.sumTolerance, "tolerance", 0, "allowed percent sum error in points (default 0.01)")
	cmd.Flags().Float64Var(&opts.areaTolerance, "area-tolerance", 0, "allowed area error in points (default 0.1)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached results")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "fail when the layout reports issues")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, input string, opts renderOpts, po pipeline.Options) error {
	cfg, err := loadChart(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	res, err := runner.Execute(cmd.Context(), cfg, po)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("rendered %d format(s)", len(res.Artifacts)))

	out := cmd.OutOrStdout()
	printIssues(out, res.Issues)
	if opts.strict && len(res.Issues) > 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "layout reported %d issue(s)", len(res.Issues))
	}

	multi := len(po.Formats) > 1
	var written []string
	for _, format := range po.Formats {
		path, err := outputPath(input, opts.output, format, multi)
		if err != nil {
			return err
		}
		if err := errors.ValidateOutputPath(path); err != nil {
			return err
		}
		if err := os.WriteFile(path, res.Artifacts[format], 0o644); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
		}
		written = append(written, path)
	}

	printSuccess(out, "Rendered %s", cfg.Title)
	printStats(out, res.Stats.Layers, res.Stats.Segments, res.CacheInfo.RenderHit)
	for _, p := range written {
		printFile(out, p)
	}
	return nil
}
