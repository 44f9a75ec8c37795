package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/fanchart/pkg/chart"
	"github.com/matzehuels/fanchart/pkg/errors"
)

// Layers and segments are addressed by index or by ID. IDs win when a
// chart happens to use numeric IDs.

func resolveLayer(cfg *chart.Config, ref string) (int, error) {
	if i := cfg.LayerIndex(ref); i >= 0 {
		return i, nil
	}
	if i, err := strconv.Atoi(ref); err == nil && i >= 0 && i < len(cfg.Layers) {
		return i, nil
	}
	return -1, errors.New(errors.ErrCodeNotFound, "no layer %q", ref)
}

func resolveSegment(cfg *chart.Config, layer int, ref string) (int, error) {
	for i, s := range cfg.Layers[layer].Segments {
		if s.ID == ref {
			return i, nil
		}
	}
	if i, err := strconv.Atoi(ref); err == nil && i >= 0 && i < len(cfg.Layers[layer].Segments) {
		return i, nil
	}
	return -1, errors.New(errors.ErrCodeNotFound, "no segment %q in layer %q", ref, cfg.Layers[layer].ID)
}

func parsePercent(s string) (float64, error) {
	p, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidInput, err, "percent %q", s)
	}
	return p, nil
}

// parsePosition parses a target index for move commands.
func parsePosition(s string) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidInput, err, "position %q", s)
	}
	return i, nil
}

// chartEdit loads the chart in args[0], applies fn and writes the result
// to the same file (or --output).
type chartEdit func(cfg *chart.Config, args []string) (out *chart.Config, what string, layer int, err error)

func (c *CLI) editRunner(fn chartEdit, output *string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := loadChart(args[0])
		if err != nil {
			return err
		}
		out, what, layer, err := fn(cfg, args[1:])
		if err != nil {
			return err
		}
		path := args[0]
		if *output != "" {
			path = *output
		}
		if err := saveChart(path, out); err != nil {
			return err
		}
		c.Logger.Debug("chart edited", "file", path, "change", what)
		printEdit(cmd.OutOrStdout(), path, what, out, layer)
		return nil
	}
}

// =============================================================================
// segment
// =============================================================================

func (c *CLI) segmentCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "segment",
		Short: "Edit the segments of a layer",
	}
	var output string
	cmd.PersistentFlags().StringVarP(&output, "output", "o", "", "write the edited chart here instead of in place")

	var label, color string
	add := &cobra.Command{
		Use:   "add [file] [layer]",
		Short: "Add a segment with an equal share, rescaling the others",
		Args:  cobra.ExactArgs(2),
		RunE: c.editRunner(func(cfg *chart.Config, args []string) (*chart.Config, string, int, error) {
			li, err := resolveLayer(cfg, args[0])
			if err != nil {
				return nil, "", -1, err
			}
			out, err := chart.AddSegment(cfg, li, label, color)
			if err != nil {
				return nil, "", -1, err
			}
			segs := out.Layers[li].Segments
			return out, fmt.Sprintf("Added %q to %s", segs[len(segs)-1].Label, out.Layers[li].Name), li, nil
		}, &output),
	}
	add.Flags().StringVar(&label, "label", "", "segment label")
	add.Flags().StringVar(&color, "color", "", "segment color (default: next palette color)")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "set [file] [layer] [segment] [percent]",
			Short: "Set a segment's percent, rescaling its siblings",
			Args:  cobra.ExactArgs(4),
			RunE: c.editRunner(func(cfg *chart.Config, args []string) (*chart.Config, string, int, error) {
				li, si, err := resolveBoth(cfg, args[0], args[1])
				if err != nil {
					return nil, "", -1, err
				}
				p, err := parsePercent(args[2])
				if err != nil {
					return nil, "", -1, err
				}
				out, err := chart.SetSegmentPercent(cfg, li, si, p)
				if err != nil {
					return nil, "", -1, err
				}
				return out, fmt.Sprintf("Set %s to %s", out.Layers[li].Segments[si].Label, formatPercent(out.Layers[li].Segments[si].Percent)), li, nil
			}, &output),
		},
		add,
		&cobra.Command{
			Use:   "remove [file] [layer] [segment]",
			Short: "Remove a segment and renormalize the rest",
			Args:  cobra.ExactArgs(3),
			RunE: c.editRunner(func(cfg *chart.Config, args []string) (*chart.Config, string, int, error) {
				li, si, err := resolveBoth(cfg, args[0], args[1])
				if err != nil {
					return nil, "", -1, err
				}
				label := cfg.Layers[li].Segments[si].Label
				out, err := chart.RemoveSegment(cfg, li, si)
				if err != nil {
					return nil, "", -1, err
				}
				return out, fmt.Sprintf("Removed %q", label), li, nil
			}, &output),
		},
		&cobra.Command{
			Use:   "move [file] [layer] [segment] [position]",
			Short: "Move a segment within its layer",
			Args:  cobra.ExactArgs(4),
			RunE: c.editRunner(func(cfg *chart.Config, args []string) (*chart.Config, string, int, error) {
				li, si, err := resolveBoth(cfg, args[0], args[1])
				if err != nil {
					return nil, "", -1, err
				}
				to, err := parsePosition(args[2])
				if err != nil {
					return nil, "", -1, err
				}
				out, err := chart.MoveSegment(cfg, li, si, to)
				if err != nil {
					return nil, "", -1, err
				}
				return out, fmt.Sprintf("Moved %q to position %d", cfg.Layers[li].Segments[si].Label, to), li, nil
			}, &output),
		},
	)
	return cmd
}

func resolveBoth(cfg *chart.Config, layerRef, segRef string) (int, int, error) {
	li, err := resolveLayer(cfg, layerRef)
	if err != nil {
		return -1, -1, err
	}
	si, err := resolveSegment(cfg, li, segRef)
	if err != nil {
		return -1, -1, err
	}
	return li, si, nil
}

// =============================================================================
// layer
// =============================================================================

func (c *CLI) layerCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layer",
		Short: "Edit the layers of a chart",
	}
	var output string
	cmd.PersistentFlags().StringVarP(&output, "output", "o", "", "write the edited chart here instead of in place")

	var name string
	add := &cobra.Command{
		Use:   "add [file]",
		Short: "Add a layer holding one full segment",
		Args:  cobra.ExactArgs(1),
		RunE: c.editRunner(func(cfg *chart.Config, _ []string) (*chart.Config, string, int, error) {
			out, err := chart.AddLayer(cfg, name)
			if err != nil {
				return nil, "", -1, err
			}
			last := len(out.Layers) - 1
			return out, fmt.Sprintf("Added layer %q", out.Layers[last].Name), last, nil
		}, &output),
	}
	add.Flags().StringVar(&name, "name", "", "layer name")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "set [file] [layer] [percent]",
			Short: "Set a layer's percent, rescaling the other layers",
			Args:  cobra.ExactArgs(3),
			RunE: c.editRunner(func(cfg *chart.Config, args []string) (*chart.Config, string, int, error) {
				li, err := resolveLayer(cfg, args[0])
				if err != nil {
					return nil, "", -1, err
				}
				p, err := parsePercent(args[1])
				if err != nil {
					return nil, "", -1, err
				}
				out, err := chart.SetLayerPercent(cfg, li, p)
				if err != nil {
					return nil, "", -1, err
				}
				return out, fmt.Sprintf("Set layer %s to %s", out.Layers[li].Name, formatPercent(p)), -1, nil
			}, &output),
		},
		add,
		&cobra.Command{
			Use:   "remove [file] [layer]",
			Short: "Remove a layer",
			Args:  cobra.ExactArgs(2),
			RunE: c.editRunner(func(cfg *chart.Config, args []string) (*chart.Config, string, int, error) {
				li, err := resolveLayer(cfg, args[0])
				if err != nil {
					return nil, "", -1, err
				}
				name := cfg.Layers[li].Name
				out, err := chart.RemoveLayer(cfg, li)
				if err != nil {
					return nil, "", -1, err
				}
				return out, fmt.Sprintf("Removed layer %q", name), -1, nil
			}, &output),
		},
		&cobra.Command{
			Use:   "move [file] [layer] [position]",
			Short: "Move a layer; position 0 is the top of the fan",
			Args:  cobra.ExactArgs(3),
			RunE: c.editRunner(func(cfg *chart.Config, args []string) (*chart.Config, string, int, error) {
				li, err := resolveLayer(cfg, args[0])
				if err != nil {
					return nil, "", -1, err
				}
				to, err := parsePosition(args[1])
				if err != nil {
					return nil, "", -1, err
				}
				out, err := chart.MoveLayer(cfg, li, to)
				if err != nil {
					return nil, "", -1, err
				}
				return out, fmt.Sprintf("Moved layer %q to position %d", cfg.Layers[li].Name, to), -1, nil
			}, &output),
		},
	)
	return cmd
}

// =============================================================================
// normalize
// =============================================================================

func (c *CLI) normalizeCommand() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "normalize [file]",
		Short: "Rescale every percent list to sum to 100",
		Args:  cobra.ExactArgs(1),
		RunE: c.editRunner(func(cfg *chart.Config, _ []string) (*chart.Config, string, int, error) {
			return chart.NormalizeAll(cfg), "Normalized all percents", -1, nil
		}, &output),
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the edited chart here instead of in place")
	return cmd
}
