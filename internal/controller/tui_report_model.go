package controller

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	m "github.com/mouse-blink/earlyexit/internal/model"
)

// Lines around the list: title, summary, footer, borders and headers.
const reportChromeHeight = 9

type reportDelegate struct{}

func (d reportDelegate) Height() int  { return 1 }
func (d reportDelegate) Spacing() int { return 0 }
func (d reportDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d reportDelegate) Render(w io.Writer, lm list.Model, index int, item list.Item) {
	file, ok := item.(fileItem)
	if !ok {
		return
	}

	countStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true).Width(6).Align(lipgloss.Right)
	statusStyle := lipgloss.NewStyle().Width(8)
	pathStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("14"))

	switch file.status {
	case "error":
		statusStyle = statusStyle.Foreground(lipgloss.Color("9"))
	case "pending", "fixed":
		statusStyle = statusStyle.Foreground(lipgloss.Color("10"))
	}

	if index == lm.Index() {
		pathStyle = pathStyle.Foreground(lipgloss.Color("0")).Background(lipgloss.Color("6")).Bold(true)
	}

	width := lm.Width() - 16 // count (6) + status (8) + spacing (2)
	line := fmt.Sprintf("%s  %s%s",
		countStyle.Render(fmt.Sprintf("%d", file.count)),
		statusStyle.Render(file.status),
		pathStyle.Render(truncateToWidth(file.path, width)),
	)
	_, _ = fmt.Fprint(w, line)
}

func truncateToWidth(text string, width int) string {
	if width <= 0 {
		return ""
	}

	if lipgloss.Width(text) <= width {
		return text
	}

	const ellipsis = "…"

	runes := []rune(text)
	for len(runes) > 0 && lipgloss.Width(string(runes))+lipgloss.Width(ellipsis) > width {
		runes = runes[:len(runes)-1]
	}

	return string(runes) + ellipsis
}

// reportModel lists files with pending changes or errors after a check.
type reportModel struct {
	width    int
	height   int
	fileList list.Model
	mode     StartMode
	counts   summaryCounts
	rendered bool
}

func newReportModel() reportModel {
	fileList := list.New([]list.Item{}, reportDelegate{}, 80, 20)
	fileList.SetShowPagination(false)
	fileList.SetShowFilter(true)
	fileList.SetShowHelp(false)
	fileList.SetShowTitle(false)
	fileList.SetShowStatusBar(false)
	fileList.FilterInput.Placeholder = "Filter by path…"

	return reportModel{fileList: fileList, width: 80, height: 24}
}

func (rm reportModel) Init() tea.Cmd {
	return nil
}

func (rm reportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		rm.width = msg.Width
		rm.height = msg.Height

	case tea.KeyMsg:
		if rm.fileList.FilterState() != list.Filtering {
			switch msg.String() {
			case "q", "esc":
				return rm, tea.Quit
			}
		}

		if msg.Type == tea.KeyCtrlC {
			return rm, tea.Quit
		}

		rm.fileList, cmd = rm.fileList.Update(msg)

	case reportMsg:
		rm = rm.handleReportMsg(msg)
	}

	return rm, cmd
}

func (rm reportModel) handleReportMsg(msg reportMsg) reportModel {
	rm.mode = msg.mode
	rm.counts = countResults(msg.results)

	items := make([]list.Item, 0, len(msg.results))

	for _, result := range msg.results {
		if result.Status == m.StatusUnchanged {
			continue
		}

		items = append(items, fileItem{
			path:   string(result.Path),
			count:  result.Changes,
			status: statusLabel(msg.mode, result.Status),
		})
	}

	rm.fileList.SetItems(items)
	rm.rendered = true

	return rm
}

// fits reports whether every item is visible without scrolling.
func (rm reportModel) fits() bool {
	return len(rm.fileList.Items())+reportChromeHeight <= rm.height
}

func (rm reportModel) View() string {
	if !rm.rendered {
		return "Checking files…\n"
	}

	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("205")).
		Bold(true).
		Padding(1, 0, 0, 2)

	summaryStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252")).
		Padding(0, 0, 1, 2)

	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	title := titleStyle.Render("earlyexit check report")

	summary := summaryStyle.Render(fmt.Sprintf(
		"Pending changes: %s   Files: %s   Errors: %s",
		accentStyle.Render(fmt.Sprintf("%d", rm.counts.changes)),
		accentStyle.Render(fmt.Sprintf("%d", rm.counts.changed)),
		accentStyle.Render(fmt.Sprintf("%d", rm.counts.failed)),
	))

	footer := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Align(lipgloss.Center).
		Width(rm.width).
		Render("↑/k up • ↓/j down • / filter • q quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		summary,
		rm.renderTable(),
		footer,
	)
}

func (rm reportModel) renderTable() string {
	listHeight := max(rm.height-reportChromeHeight, 5)
	listWidth := rm.width - 6

	rm.fileList.SetHeight(listHeight)
	rm.fileList.SetWidth(listWidth)

	headers := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Bold(true).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("8")).
		Width(listWidth).
		Render(fmt.Sprintf("%6s  %-8s%s", "Count", "Status", "File Path"))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("6")).
		Margin(0, 1).
		Padding(0, 1).
		Render(lipgloss.JoinVertical(lipgloss.Left, headers, rm.fileList.View()))
}
