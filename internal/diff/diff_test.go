package diff

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnified_InsertedLine(t *testing.T) {
	oldContent := "a\n  res.json(x);\nc\n"
	newContent := "a\n  res.json(x);\n  return;\nc\n"

	want := "--- a/x.ts\n" +
		"+++ b/x.ts\n" +
		"@@ -1,3 +1,4 @@\n" +
		" a\n" +
		"   res.json(x);\n" +
		"+  return;\n" +
		" c\n"

	assert.Equal(t, want, Unified("x.ts", []byte(oldContent), []byte(newContent)))
}

func TestUnified_ReplacedLine(t *testing.T) {
	oldContent := "  return res.json(x);\n}\n"
	newContent := "  res.json(x);\n  return;\n}\n"

	got := Unified("x.ts", []byte(oldContent), []byte(newContent))

	assert.Contains(t, got, "@@ -1,2 +1,3 @@\n")
	assert.Contains(t, got, "-  return res.json(x);\n")
	assert.Contains(t, got, "+  res.json(x);\n")
	assert.Contains(t, got, "+  return;\n")
	assert.Contains(t, got, " }\n")
}

func TestUnified_NoChanges(t *testing.T) {
	assert.Empty(t, Unified("x.ts", []byte("a\n"), []byte("a\n")))
}

func TestUnified_CRLF(t *testing.T) {
	got := Unified("x.ts", []byte("a\r\n"), []byte("a\r\nb\r\n"))

	assert.NotContains(t, got, "\r")
	assert.Contains(t, got, "+b\n")
}

func TestComputeDiff_SeparateHunks(t *testing.T) {
	var oldLines, newLines []string
	for i := 1; i <= 20; i++ {
		line := fmt.Sprintf("line %d", i)
		oldLines = append(oldLines, line)
		newLines = append(newLines, line)

		if i == 2 || i == 18 {
			newLines = append(newLines, "return;")
		}
	}

	oldContent := strings.Join(oldLines, "\n") + "\n"
	newContent := strings.Join(newLines, "\n") + "\n"

	d := NewEngine(1).ComputeDiff("x.ts", "x.ts", oldContent, newContent)
	require.Len(t, d.Hunks, 2)

	assert.Equal(t, 2, d.Hunks[0].OldStart)
	assert.Equal(t, 2, d.Hunks[0].OldCount)
	assert.Equal(t, 3, d.Hunks[0].NewCount)
	assert.Equal(t, 18, d.Hunks[1].OldStart)
	assert.Equal(t, 19, d.Hunks[1].NewStart)

	d = NewEngine(10).ComputeDiff("x.ts", "x.ts", oldContent, newContent)
	assert.Len(t, d.Hunks, 1, "close changes merge into one hunk")
}

func TestNewEngine_NegativeContext(t *testing.T) {
	d := NewEngine(-1).ComputeDiff("x.ts", "x.ts", "a\nb\n", "a\nc\n")

	require.Len(t, d.Hunks, 1)
	for _, line := range d.Hunks[0].Lines {
		assert.NotEqual(t, LineContext, line.Type)
	}
}
