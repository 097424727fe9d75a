package controller

import (
	"bytes"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/mouse-blink/earlyexit/internal/model"
)

func TestTUI_DisplayFileResult(t *testing.T) {
	var out bytes.Buffer

	tui := NewTUI(&out)
	require.NoError(t, tui.Start(WithFixMode()))

	tui.DisplayFileResult(m.FileResult{Path: "a.ts", Status: m.StatusFixed, Changes: 1})
	tui.DisplayFileResult(m.FileResult{Path: "b.ts", Status: m.StatusFailed, Err: errors.New("denied")})
	tui.DisplayFileResult(m.FileResult{Path: "c.ts", Status: m.StatusUnchanged})

	assert.Contains(t, out.String(), "Fixed 1 change in a.ts")
	assert.Contains(t, out.String(), "Error processing b.ts: denied")
	assert.Contains(t, out.String(), "No changes needed in c.ts")
}

func TestTUI_DisplayDiff(t *testing.T) {
	var out bytes.Buffer

	tui := NewTUI(&out)
	tui.DisplayDiff("a.ts", "")
	assert.Empty(t, out.String())

	tui.DisplayDiff("a.ts", "--- a/a.ts\n+++ b/a.ts\n@@ -1,1 +1,2 @@\n res.json(x);\n+return;\n")
	assert.Contains(t, out.String(), "@@ -1,1 +1,2 @@")
	assert.Contains(t, out.String(), "+return;")
	assert.Contains(t, out.String(), "res.json(x);")
}

func TestTUI_DisplaySummary(t *testing.T) {
	t.Run("no files", func(t *testing.T) {
		var out bytes.Buffer

		tui := NewTUI(&out)
		require.NoError(t, tui.DisplaySummary(nil))
		assert.Equal(t, "No source files found\n", out.String())
	})

	t.Run("fix mode skips the report", func(t *testing.T) {
		var out bytes.Buffer

		tui := NewTUI(&out)
		tui.runProgram = func(tea.Model) error {
			t.Fatalf("interactive report started in fix mode")
			return nil
		}
		require.NoError(t, tui.Start(WithFixMode()))
		require.NoError(t, tui.DisplaySummary(sampleResults()))

		assert.Contains(t, out.String(), "Fixed 2 changes across 1 of 3 files, 1 errors")
		assert.Contains(t, out.String(), "✓ Done")
		assert.NotContains(t, out.String(), "earlyexit check report")
	})

	t.Run("check mode prints static report off a terminal", func(t *testing.T) {
		var out bytes.Buffer

		tui := NewTUI(&out)
		tui.runProgram = func(tea.Model) error {
			t.Fatalf("interactive report started without a terminal")
			return nil
		}
		require.NoError(t, tui.Start(WithCheckMode()))
		require.NoError(t, tui.DisplaySummary(sampleResults()))

		assert.Contains(t, out.String(), "earlyexit check report")
		assert.Contains(t, out.String(), "src/a.ts")
		assert.Contains(t, out.String(), "Pending 2 changes")
	})

	t.Run("check mode with nothing pending", func(t *testing.T) {
		var out bytes.Buffer

		tui := NewTUI(&out)
		require.NoError(t, tui.Start(WithCheckMode()))
		require.NoError(t, tui.DisplaySummary([]m.FileResult{{Path: "a.ts", Status: m.StatusUnchanged}}))

		assert.NotContains(t, out.String(), "earlyexit check report")
		assert.Contains(t, out.String(), "Pending 0 changes across 0 of 1 files")
	})
}
