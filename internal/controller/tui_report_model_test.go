package controller

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	m "github.com/mouse-blink/earlyexit/internal/model"
)

func TestTruncateToWidth(t *testing.T) {
	if got := truncateToWidth("hello", 0); got != "" {
		t.Fatalf("truncateToWidth width 0 = %q, want empty", got)
	}

	if got := truncateToWidth("hello", 10); got != "hello" {
		t.Fatalf("truncateToWidth no truncation = %q", got)
	}

	if got := truncateToWidth("hello", 1); got != "…" {
		t.Fatalf("truncateToWidth width 1 = %q, want ellipsis", got)
	}

	if got := truncateToWidth("hello", 2); got != "h…" {
		t.Fatalf("truncateToWidth width 2 = %q, want h…", got)
	}
}

func sampleResults() []m.FileResult {
	return []m.FileResult{
		{Path: "src/a.ts", Status: m.StatusFixed, Changes: 2},
		{Path: "src/b.ts", Status: m.StatusUnchanged},
		{Path: "src/c.ts", Status: m.StatusFailed, Err: errors.New("boom")},
	}
}

func TestReportModel_HandleReportMsgAndView(t *testing.T) {
	rm := newReportModel()
	if got := rm.View(); got != "Checking files…\n" {
		t.Fatalf("View() before render = %q", got)
	}

	rm = rm.handleReportMsg(reportMsg{mode: ModeCheck, results: sampleResults()})
	if !rm.rendered {
		t.Fatalf("handleReportMsg did not set rendered")
	}

	if rm.counts.changes != 2 || rm.counts.changed != 1 || rm.counts.failed != 1 {
		t.Fatalf("counts = %+v", rm.counts)
	}

	items := rm.fileList.Items()
	if len(items) != 2 {
		t.Fatalf("items = %d, want 2 (unchanged files are hidden)", len(items))
	}

	first := items[0].(fileItem)
	if first.path != "src/a.ts" || first.count != 2 || first.status != "pending" {
		t.Fatalf("first item = %+v", first)
	}

	if items[1].(fileItem).status != "error" {
		t.Fatalf("second item status = %q, want error", items[1].(fileItem).status)
	}

	rm.width = 80
	rm.height = 25

	view := rm.View()
	if !strings.Contains(view, "earlyexit check report") {
		t.Fatalf("View() missing title\n%s", view)
	}

	if !strings.Contains(view, "Pending changes") {
		t.Fatalf("View() missing summary\n%s", view)
	}

	if cmd := rm.Init(); cmd != nil {
		t.Fatalf("Init() returned cmd")
	}

	table := rm.renderTable()
	if !strings.Contains(table, "Count") || !strings.Contains(table, "File Path") {
		t.Fatalf("renderTable missing headers\n%s", table)
	}

	// force small height to hit min list height branch
	rm.height = 0
	rm.width = 20
	_ = rm.renderTable()
}

func TestReportModel_Fits(t *testing.T) {
	rm := newReportModel().handleReportMsg(reportMsg{mode: ModeCheck, results: sampleResults()})

	rm.height = reportChromeHeight + 2
	if !rm.fits() {
		t.Fatalf("fits() = false with room for every item")
	}

	rm.height = reportChromeHeight + 1
	if rm.fits() {
		t.Fatalf("fits() = true with too little room")
	}
}

func TestReportModel_UpdateBranches(t *testing.T) {
	rm := newReportModel()

	model, _ := rm.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	updated := model.(reportModel)
	if updated.width != 100 || updated.height != 40 {
		t.Fatalf("window size not applied")
	}

	model, _ = updated.Update(reportMsg{mode: ModeCheck, results: sampleResults()})
	updated = model.(reportModel)
	if !updated.rendered {
		t.Fatalf("expected rendered after reportMsg")
	}

	model, _ = updated.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	updated = model.(reportModel)
	if updated.fileList.Index() != 1 {
		t.Fatalf("Index() = %d, want 1 after moving down", updated.fileList.Index())
	}

	_, cmd := updated.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatalf("expected quit cmd")
	}

	_, cmd = updated.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatalf("expected quit cmd on ctrl+c")
	}
}

func TestReportDelegate_Render(t *testing.T) {
	delegate := reportDelegate{}
	items := []list.Item{fileItem{path: "path/to/file.ts", count: 2, status: "pending"}}
	lm := list.New(items, delegate, 40, 5)

	var buf bytes.Buffer
	delegate.Render(&buf, lm, 0, items[0])
	if !strings.Contains(buf.String(), "path") {
		t.Fatalf("render output missing path")
	}

	buf.Reset()
	delegate.Render(&buf, lm, 1, fileItem{path: "x.ts", status: "error"})
	if buf.Len() == 0 {
		t.Fatalf("render output empty")
	}

	// Render with bad item type should not panic
	buf.Reset()
	delegate.Render(&buf, lm, 0, struct{ list.Item }{})
	if buf.Len() != 0 {
		t.Fatalf("render output for foreign item = %q", buf.String())
	}

	if delegate.Height() != 1 {
		t.Fatalf("Height() = %d, want 1", delegate.Height())
	}
	if delegate.Spacing() != 0 {
		t.Fatalf("Spacing() = %d, want 0", delegate.Spacing())
	}
	if cmd := delegate.Update(nil, &lm); cmd != nil {
		t.Fatalf("Update() returned cmd")
	}
}
