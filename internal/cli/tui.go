package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/fanchart/pkg/alloc"
	"github.com/matzehuels/fanchart/pkg/chart"
)

var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	listBarStyle      = lipgloss.NewStyle().Foreground(colorGreen)
	listOffStyle      = lipgloss.NewStyle().Foreground(colorYellow)
)

// barWidth is the width of a 100% bar in the editor.
const barWidth = 30

// editCommand creates the interactive editor command.
func (c *CLI) editCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "edit [file]",
		Short: "Edit layer and segment percents interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			cfg, err := loadChart(path)
			if err != nil {
				return err
			}
			m := NewEditorModel(cfg, func(cfg *chart.Config) error { return saveChart(path, cfg) })
			final, err := tea.NewProgram(m, tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return err
			}
			if em, ok := final.(EditorModel); ok && em.Saves > 0 {
				printSuccess(cmd.OutOrStdout(), "Saved %d change(s)", em.Saves)
				printFile(cmd.OutOrStdout(), path)
			}
			return nil
		},
	}
}

// =============================================================================
// EditorModel - Interactive percent editor
// =============================================================================

// editorRow is one line of the editor: a layer (seg < 0) or a segment.
type editorRow struct {
	layer, seg int
}

// EditorModel is the bubbletea model for the percent editor. Every edit
// produces a new chart snapshot; Save writes the current one.
type EditorModel struct {
	Chart  *chart.Config
	Cursor int
	Step   float64
	Dirty  bool
	Saves  int
	Status string

	save    func(*chart.Config) error
	quitArm bool
}

// NewEditorModel creates an editor over cfg. save persists a snapshot.
func NewEditorModel(cfg *chart.Config, save func(*chart.Config) error) EditorModel {
	return EditorModel{Chart: cfg, Step: 1, save: save}
}

func (m EditorModel) rows() []editorRow {
	var rows []editorRow
	for i, l := range m.Chart.Layers {
		rows = append(rows, editorRow{layer: i, seg: -1})
		for j := range l.Segments {
			rows = append(rows, editorRow{layer: i, seg: j})
		}
	}
	return rows
}

func (m EditorModel) current() (editorRow, bool) {
	rows := m.rows()
	if m.Cursor < 0 || m.Cursor >= len(rows) {
		return editorRow{}, false
	}
	return rows[m.Cursor], true
}

func (m EditorModel) Init() tea.Cmd {
	return nil
}

func (m EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	k := key.String()
	if k != "q" && k != "esc" {
		m.quitArm = false
	}

	switch k {
	case "ctrl+c":
		return m, tea.Quit
	case "q", "esc":
		if m.Dirty && !m.quitArm {
			m.quitArm = true
			m.Status = "unsaved changes: press q again to discard"
			return m, nil
		}
		return m, tea.Quit
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.rows())-1 {
			m.Cursor++
		}
	case "right", "l", "+", "=":
		m = m.adjust(m.Step)
	case "left", "h", "-":
		m = m.adjust(-m.Step)
	case "]":
		m = m.adjust(10 * m.Step)
	case "[":
		m = m.adjust(-10 * m.Step)
	case "n":
		m.Chart = chart.NormalizeAll(m.Chart)
		m.Dirty = true
		m.Status = "normalized"
	case "a":
		m = m.addSegment()
	case "x":
		m = m.removeSegment()
	case "s":
		if err := m.save(m.Chart); err != nil {
			m.Status = "save failed: " + err.Error()
			return m, nil
		}
		m.Dirty = false
		m.Saves++
		m.Status = "saved"
	}
	return m, nil
}

func (m EditorModel) adjust(delta float64) EditorModel {
	row, ok := m.current()
	if !ok {
		return m
	}
	var (
		out *chart.Config
		err error
	)
	if row.seg < 0 {
		shares := layerShares(m.Chart)
		out, err = chart.SetLayerPercent(m.Chart, row.layer, shares[row.layer]+delta)
	} else {
		p := m.Chart.Layers[row.layer].Segments[row.seg].Percent
		out, err = chart.SetSegmentPercent(m.Chart, row.layer, row.seg, p+delta)
	}
	if err != nil {
		m.Status = err.Error()
		return m
	}
	m.Chart = out
	m.Dirty = true
	m.Status = ""
	return m
}

func (m EditorModel) addSegment() EditorModel {
	row, ok := m.current()
	if !ok {
		return m
	}
	out, err := chart.AddSegment(m.Chart, row.layer, "", "")
	if err != nil {
		m.Status = err.Error()
		return m
	}
	m.Chart = out
	m.Dirty = true
	m.Status = "segment added"
	return m
}

func (m EditorModel) removeSegment() EditorModel {
	row, ok := m.current()
	if !ok || row.seg < 0 {
		m.Status = "select a segment to remove"
		return m
	}
	out, err := chart.RemoveSegment(m.Chart, row.layer, row.seg)
	if err != nil {
		m.Status = err.Error()
		return m
	}
	m.Chart = out
	m.Dirty = true
	m.Status = "segment removed"
	if n := len(m.rows()); m.Cursor >= n {
		m.Cursor = n - 1
	}
	return m
}

// layerShares returns each layer's share of the fan height in percent,
// whichever mode the chart is stacked by.
func layerShares(cfg *chart.Config) []float64 {
	_, weights := chart.ResolveWeights(cfg.Layers)
	return alloc.Values(alloc.Normalize(alloc.Percents(weights)))
}

func (m EditorModel) View() string {
	var b strings.Builder

	title := m.Chart.Title
	if title == "" {
		title = "Untitled chart"
	}
	if m.Dirty {
		title += " *"
	}
	b.WriteString(styleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ select  ←/→ ±1  [/] ±10  n normalize  a add  x remove  s save  q quit"))
	b.WriteString("\n\n")

	shares := layerShares(m.Chart)
	for i, row := range m.rows() {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		var line string
		if row.seg < 0 {
			l := m.Chart.Layers[row.layer]
			sum := alloc.Sum(l.Segments)
			sumStyle := listDimStyle
			if len(l.Segments) > 0 && !alloc.IsNormalized(l.Segments, chart.SumTolerance) {
				sumStyle = listOffStyle
			}
			line = fmt.Sprintf("%s%-24s %7s  %s", cursor, l.Name, formatPercent(shares[row.layer]),
				sumStyle.Render("segments "+formatPercent(sum)))
		} else {
			s := m.Chart.Layers[row.layer].Segments[row.seg]
			line = fmt.Sprintf("%s  %-22s %7s  %s", cursor, s.Label, formatPercent(s.Percent), bar(s.Percent))
		}

		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	if m.Status != "" {
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render(m.Status))
		b.WriteString("\n")
	}
	return b.String()
}

func bar(p float64) string {
	n := int(p / alloc.Total * barWidth)
	n = max(0, min(barWidth, n))
	return listBarStyle.Render(strings.Repeat("█", n)) + listDimStyle.Render(strings.Repeat("·", barWidth-n))
}
