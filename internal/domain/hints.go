package domain

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	m "github.com/mouse-blink/earlyexit/internal/model"
)

// TypeScript compiler diagnostics:
//
//	src/routes/drugs.ts(47,5): error TS7030: Not all code paths return a value.
//	src/routes/drugs.ts:47:5 - error TS7030: Not all code paths return a value.
var (
	tscParenRe = regexp.MustCompile(`^\s*(\S.*?)\((\d+),\d+\):\s*error\s+TS\d+`)
	tscColonRe = regexp.MustCompile(`^\s*(\S.*?):(\d+):\d+\s+-\s+error\s+TS\d+`)
	ansiRe     = regexp.MustCompile("\x1b\\[[0-9;]*m")
)

// ParseHint parses a "path:line" hint.
func ParseHint(s string) (m.Hint, error) {
	idx := strings.LastIndex(s, ":")
	if idx <= 0 || idx == len(s)-1 {
		return m.Hint{}, fmt.Errorf("invalid hint %q: want path:line", s)
	}

	line, err := strconv.Atoi(s[idx+1:])
	if err != nil || line < 1 {
		return m.Hint{}, fmt.Errorf("invalid hint %q: line must be a positive number", s)
	}

	return m.Hint{Path: m.Path(s[:idx]), Line: line}, nil
}

// ParseHintLog extracts hints from TypeScript compiler output. Lines that are
// not diagnostics are ignored; duplicates are dropped.
func ParseHintLog(r io.Reader) ([]m.Hint, error) {
	seen := make(map[m.Hint]struct{})

	var hints []m.Hint

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		text := ansiRe.ReplaceAllString(scanner.Text(), "")

		match := tscParenRe.FindStringSubmatch(text)
		if match == nil {
			match = tscColonRe.FindStringSubmatch(text)
		}

		if match == nil {
			continue
		}

		line, err := strconv.Atoi(match[2])
		if err != nil || line < 1 {
			continue
		}

		hint := m.Hint{Path: m.Path(strings.TrimSpace(match[1])), Line: line}
		if _, ok := seen[hint]; ok {
			continue
		}

		seen[hint] = struct{}{}
		hints = append(hints, hint)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read hints: %w", err)
	}

	return hints, nil
}

// hintIndex groups hinted line numbers by absolute file path.
type hintIndex map[string][]int

func newHintIndex(hints []m.Hint) hintIndex {
	index := make(hintIndex)

	for _, hint := range hints {
		key := hintKey(hint.Path)
		index[key] = append(index[key], hint.Line)
	}

	return index
}

// For returns the hinted lines of path, nil when the file has none.
func (ix hintIndex) For(path m.Path) []int {
	return ix[hintKey(path)]
}

func hintKey(path m.Path) string {
	abs, err := filepath.Abs(string(path))
	if err != nil {
		return filepath.Clean(string(path))
	}

	return abs
}

// eligible reports whether stmt is selected by hints: a hinted line falls
// inside it or on the line right before it. No hints selects everything.
func eligible(stmt m.LogicalStatement, hints []int) bool {
	if len(hints) == 0 {
		return true
	}

	for _, hint := range hints {
		idx := hint - 1
		if idx >= stmt.Start-1 && idx <= stmt.End {
			return true
		}
	}

	return false
}
