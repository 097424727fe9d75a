// Package diff renders unified diffs of rewritten files using the
// sergi/go-diff line mode.
package diff

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// LineType represents the type of diff line
type LineType int

const (
	LineContext LineType = iota // Unchanged context line
	LineAdded                   // Added line
	LineRemoved                 // Removed line
)

// Line is a single line of a hunk.
type Line struct {
	OldNum  int // 0 for added lines
	NewNum  int // 0 for removed lines
	Content string
	Type    LineType
}

// Hunk represents a group of changes
type Hunk struct {
	OldStart int
	OldCount int
	NewStart int
	NewCount int
	Lines    []Line
}

// FileDiff represents changes to a single file
type FileDiff struct {
	OldPath string
	NewPath string
	Hunks   []Hunk
}

// Engine computes line diffs.
type Engine struct {
	dmp     *diffmatchpatch.DiffMatchPatch
	context int
}

// NewEngine creates an engine emitting the given number of context lines.
func NewEngine(context int) *Engine {
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0

	if context < 0 {
		context = 0
	}

	return &Engine{dmp: dmp, context: context}
}

// DefaultEngine emits three lines of context, like diff -u.
var DefaultEngine = NewEngine(3)

// ComputeDiff creates a FileDiff from old and new content.
func (e *Engine) ComputeDiff(oldPath, newPath, oldContent, newContent string) *FileDiff {
	// Line-level reduction avoids diffs that split lines apart.
	a, b, lineArray := e.dmp.DiffLinesToChars(oldContent, newContent)
	diffs := e.dmp.DiffMain(a, b, false)
	diffs = e.dmp.DiffCharsToLines(diffs, lineArray)

	return &FileDiff{
		OldPath: oldPath,
		NewPath: newPath,
		Hunks:   e.convertToHunks(toLines(diffs)),
	}
}

// toLines flattens line-mode diffs into numbered lines.
func toLines(diffs []diffmatchpatch.Diff) []Line {
	var lines []Line

	oldNum, newNum := 1, 1

	for _, d := range diffs {
		for _, text := range splitLines(d.Text) {
			switch d.Type {
			case diffmatchpatch.DiffEqual:
				lines = append(lines, Line{OldNum: oldNum, NewNum: newNum, Content: text, Type: LineContext})
				oldNum++
				newNum++
			case diffmatchpatch.DiffDelete:
				lines = append(lines, Line{OldNum: oldNum, Content: text, Type: LineRemoved})
				oldNum++
			case diffmatchpatch.DiffInsert:
				lines = append(lines, Line{NewNum: newNum, Content: text, Type: LineAdded})
				newNum++
			}
		}
	}

	return lines
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}

	text = strings.TrimSuffix(text, "\n")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}

	return lines
}

// convertToHunks groups changed lines that are at most 2*context apart.
func (e *Engine) convertToHunks(lines []Line) []Hunk {
	var hunks []Hunk

	for i := 0; i < len(lines); {
		if lines[i].Type == LineContext {
			i++
			continue
		}

		start := max(0, i-e.context)

		end := i
		for j := i; j < len(lines); j++ {
			if lines[j].Type == LineContext {
				continue
			}

			if j-end-1 > 2*e.context {
				break
			}

			end = j
		}

		stop := min(len(lines), end+e.context+1)
		hunks = append(hunks, newHunk(lines[start:stop]))
		i = stop
	}

	return hunks
}

func newHunk(lines []Line) Hunk {
	hunk := Hunk{Lines: lines}

	oldNext, newNext := 0, 0

	for _, line := range lines {
		switch line.Type {
		case LineContext:
			hunk.OldCount++
			hunk.NewCount++
		case LineRemoved:
			hunk.OldCount++
		case LineAdded:
			hunk.NewCount++
		}

		if hunk.OldStart == 0 && line.OldNum > 0 {
			hunk.OldStart = line.OldNum
		}

		if hunk.NewStart == 0 && line.NewNum > 0 {
			hunk.NewStart = line.NewNum
		}

		oldNext, newNext = nextNums(line, oldNext, newNext)
	}

	// A side without lines in the hunk is anchored after the preceding line.
	if hunk.OldStart == 0 {
		hunk.OldStart = oldNext
	}

	if hunk.NewStart == 0 {
		hunk.NewStart = newNext
	}

	return hunk
}

func nextNums(line Line, oldNext, newNext int) (int, int) {
	if line.OldNum > 0 {
		oldNext = line.OldNum
	}

	if line.NewNum > 0 {
		newNext = line.NewNum
	}

	return oldNext, newNext
}

// Unified renders d in unified diff format. An empty string means no changes.
func (d *FileDiff) Unified() string {
	if len(d.Hunks) == 0 {
		return ""
	}

	var sb strings.Builder

	fmt.Fprintf(&sb, "--- a/%s\n+++ b/%s\n", d.OldPath, d.NewPath)

	for _, hunk := range d.Hunks {
		fmt.Fprintf(&sb, "@@ -%d,%d +%d,%d @@\n", hunk.OldStart, hunk.OldCount, hunk.NewStart, hunk.NewCount)

		for _, line := range hunk.Lines {
			switch line.Type {
			case LineAdded:
				sb.WriteString("+")
			case LineRemoved:
				sb.WriteString("-")
			default:
				sb.WriteString(" ")
			}

			sb.WriteString(line.Content)
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

// Unified is a shortcut for DefaultEngine.ComputeDiff(path, path, ...).Unified().
func Unified(path string, oldContent, newContent []byte) string {
	return DefaultEngine.ComputeDiff(path, path, string(oldContent), string(newContent)).Unified()
}
