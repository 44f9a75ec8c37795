package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/fanchart/pkg/alloc"
	"github.com/matzehuels/fanchart/pkg/chart"
	"github.com/matzehuels/fanchart/pkg/layout"
	"github.com/matzehuels/fanchart/pkg/pipeline"
)

// inspectCommand creates the inspect command, which prints the layer and
// segment table with computed weights and any layout diagnostics.
func (c *CLI) inspectCommand() *cobra.Command {
	var tolerance float64

	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Show layers, segments and layout diagnostics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadChart(args[0])
			if err != nil {
				return err
			}
			runner := pipeline.NewRunner(nil, nil, c.Logger)
			l, err := runner.Layout(cmd.Context(), cfg, pipeline.Options{SumTolerance: tolerance})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			renderInspect(out, cfg, l)
			return nil
		},
	}

	cmd.Flags().Float64Var(&tolerance, "tolerance", 0, "allowed percent sum error in points (default 0.01)")
	return cmd
}

func renderInspect(w io.Writer, cfg *chart.Config, l layout.Layout) {
	title := cfg.Title
	if title == "" {
		title = "Untitled chart"
	}
	fmt.Fprintln(w, styleTitle.Render(title))
	printDetail(w, "stacked by %s · %d layers · %d segments", l.Mode, len(cfg.Layers), cfg.SegmentCount())
	fmt.Fprintln(w)

	fmt.Fprintln(w, inspectTable(cfg, l).Render())

	issues := l.Issues()
	if len(issues) == 0 {
		printSuccess(w, "Layout is consistent")
		return
	}
	printIssues(w, issues)
}

func inspectTable(cfg *chart.Config, l layout.Layout) *table.Table {
	var total float64
	for _, ll := range l.Layers {
		total += ll.Weight
	}

	var rows [][]string
	var layerRows []bool
	for i, cl := range cfg.Layers {
		var share float64
		if total > 0 {
			share = l.Layers[i].Weight / total * alloc.Total
		}
		sum := alloc.Sum(cl.Segments)
		rows = append(rows, []string{
			strconv.Itoa(i),
			cl.ID,
			cl.Name,
			formatPercent(share),
			formatPercent(sum),
		})
		layerRows = append(layerRows, true)
		for j, s := range cl.Segments {
			rows = append(rows, []string{
				fmt.Sprintf("  %d.%d", i, j),
				s.ID,
				s.Label,
				"",
				formatPercent(s.Percent),
			})
			layerRows = append(layerRows, false)
		}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "ID", "Name", "Share", "Percent").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if row < 0 || row >= len(layerRows) {
				return base
			}
			if layerRows[row] {
				return base.Bold(true).Foreground(colorWhite)
			}
			if col == 4 {
				return base.Foreground(colorCyan)
			}
			return base.Foreground(colorGray)
		})
}
