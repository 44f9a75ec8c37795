// Package cli implements the fanchart command-line interface.
//
// Commands:
//   - init: write a starter chart
//   - render: draw a chart as SVG, PNG, PDF or layout JSON
//   - inspect: print layers, segments and layout diagnostics
//   - segment, layer, normalize: edit a chart file in place
//   - edit: interactive percent editor
//   - serve: run the HTTP API
//   - cache: manage the render cache
//
// All commands support --verbose (-v) for debug-level logging, which also
// routes pipeline and cache events to the log.
package cli

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/fanchart/pkg/buildinfo"
	"github.com/matzehuels/fanchart/pkg/cache"
	"github.com/matzehuels/fanchart/pkg/chart"
	"github.com/matzehuels/fanchart/pkg/errors"
	chartio "github.com/matzehuels/fanchart/pkg/io"
	"github.com/matzehuels/fanchart/pkg/observability"
	"github.com/matzehuels/fanchart/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "fanchart"

	// defaultChartFile is written by init when no path is given.
	defaultChartFile = "fanchart.toml"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger  *log.Logger
	verbose bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Fanchart draws allocation fan charts",
		Long:         `Fanchart lays out stacked allocations as a fan of trapezoids whose areas match their percentages, and renders them as SVG, PNG or PDF.`,
		Version:      buildinfo.Get().Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
				observability.NewLogHooks(c.Logger).Install()
			}
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(c.initCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.segmentCommand())
	root.AddCommand(c.layerCommand())
	root.AddCommand(c.normalizeCommand())
	root.AddCommand(c.editCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cc, err := c.newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cc, nil, c.Logger), nil
}

// newCache opens the file cache. An unusable cache directory disables
// caching rather than failing the command.
func (c *CLI) newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cache.DefaultDir()
	if err != nil {
		c.Logger.Debug("cache disabled", "error", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Chart Files
// =============================================================================

// loadChart reads a chart file. Percent sums are not enforced here so
// that charts mid-edit can still be inspected and rendered.
func loadChart(path string) (*chart.Config, error) {
	return chartio.Import(path, chart.SkipSums())
}

// saveChart writes cfg to path after a full validation minus sums.
func saveChart(path string, cfg *chart.Config) error {
	if err := chart.Validate(cfg, chart.SkipSums()); err != nil {
		return err
	}
	return chartio.Export(path, cfg)
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// outputPath picks the file for one rendered format. With several formats
// the extension of output (or of the input) is replaced per format.
func outputPath(input, output, format string, multi bool) (string, error) {
	var path string
	switch {
	case output != "" && !multi:
		path = output
	case output != "":
		path = strings.TrimSuffix(output, filepath.Ext(output)) + "." + format
	default:
		path = strings.TrimSuffix(input, filepath.Ext(input)) + "." + format
	}
	if filepath.Clean(path) == filepath.Clean(input) {
		return "", errors.New(errors.ErrCodeInvalidPath, "output %s would overwrite the chart file", path)
	}
	return path, nil
}
