package controller

import (
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	m "github.com/mouse-blink/earlyexit/internal/model"
)

var (
	fixedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	unchangedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	hunkStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	addedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	removedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// TUI implements UI with lipgloss styling and an interactive Bubble Tea
// report for checks that do not fit the terminal.
type TUI struct {
	output io.Writer
	mode   StartMode
	// runProgram runs an interactive model; replaced in tests.
	runProgram func(model tea.Model) error
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	t := &TUI{output: output}
	t.runProgram = func(model tea.Model) error {
		_, err := tea.NewProgram(model, tea.WithOutput(t.output), tea.WithAltScreen()).Run()
		return err
	}

	return t
}

// Start initializes the UI.
func (t *TUI) Start(options ...StartOption) error {
	t.mode = newStartConfig(options).mode
	return nil
}

// Close finalizes the UI.
func (t *TUI) Close() {}

// DisplayFileResult prints one styled status line.
func (t *TUI) DisplayFileResult(result m.FileResult) {
	line := statusMessage(t.mode, result)

	switch result.Status {
	case m.StatusFixed:
		line = fixedStyle.Render(line)
	case m.StatusFailed:
		line = errorStyle.Render(line)
	default:
		line = unchangedStyle.Render(line)
	}

	_, _ = fmt.Fprintln(t.output, line)
}

// DisplayDiff prints a colored unified diff.
func (t *TUI) DisplayDiff(_ m.Path, unified string) {
	if unified == "" {
		return
	}

	for _, line := range strings.Split(strings.TrimSuffix(unified, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			line = lipgloss.NewStyle().Bold(true).Render(line)
		case strings.HasPrefix(line, "@@"):
			line = hunkStyle.Render(line)
		case strings.HasPrefix(line, "+"):
			line = addedStyle.Render(line)
		case strings.HasPrefix(line, "-"):
			line = removedStyle.Render(line)
		}

		_, _ = fmt.Fprintln(t.output, line)
	}
}

// DisplaySummary prints totals. After a check with findings it shows the
// report, interactively when it does not fit the terminal.
func (t *TUI) DisplaySummary(results []m.FileResult) error {
	if len(results) == 0 {
		_, _ = fmt.Fprintln(t.output, "No source files found")
		return nil
	}

	counts := countResults(results)

	if t.mode != ModeFix && counts.changed+counts.failed > 0 {
		if err := t.displayReport(results); err != nil {
			return err
		}
	}

	verb := "Fixed"
	if t.mode != ModeFix {
		verb = "Pending"
	}

	summary := fmt.Sprintf("%s %s across %d of %d files, %d errors",
		verb, pluralChanges(counts.changes), counts.changed, counts.files, counts.failed)
	_, _ = fmt.Fprintf(t.output, "\n%s\n%s\n", summary, fixedStyle.Render("✓ Done"))

	return nil
}

func (t *TUI) displayReport(results []m.FileResult) error {
	model := newReportModel().handleReportMsg(reportMsg{mode: t.mode, results: results})

	width, height, ok := terminalSize(t.output)
	if ok {
		model.width = width
		model.height = height
	}

	if !ok || model.fits() {
		if !ok {
			model.height = len(model.fileList.Items()) + reportChromeHeight
		}

		_, err := fmt.Fprintln(t.output, model.View())

		return err
	}

	return t.runProgram(model)
}
