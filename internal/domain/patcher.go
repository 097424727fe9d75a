package domain

import (
	"regexp"
	"slices"
	"sort"
	"strings"

	m "github.com/mouse-blink/earlyexit/internal/model"
)

// exitStatement is the bare exit inserted after response-emitting statements.
const exitStatement = exitKeyword + ";"

var leadingExitRe = regexp.MustCompile(`^` + exitKeyword + `[ \t]+`)

// ExitPatches computes the edits that make site end in a bare exit. A
// leading "return" is stripped from the statement itself and a separate
// "return;" is inserted after its last line, unless one is already there.
func ExitPatches(site m.Site) []m.Patch {
	stmt := site.Statement

	var patches []m.Patch

	if site.LeadingExit {
		firstLine := stmt.Text
		if idx := strings.IndexByte(firstLine, '\n'); idx >= 0 {
			firstLine = firstLine[:idx]
		}

		body := firstLine[len(stmt.Indent):]
		if token := leadingExitRe.FindString(body); token != "" {
			patches = append(patches, m.Patch{
				Kind:  m.PatchDeleteToken,
				Line:  stmt.Start,
				Col:   len(stmt.Indent),
				Token: token,
			})
		}
	}

	if !site.TrailingExit {
		patches = append(patches, m.Patch{
			Kind: m.PatchInsertLine,
			Line: stmt.End,
			Text: site.Indent() + exitStatement,
		})
	}

	return patches
}

// ApplyPatches edits file in place and returns how many patches applied.
// Patches are applied furthest line first so that insertions never shift a
// line another pending patch is anchored to. Token patches whose token is no
// longer found at their column are skipped.
func ApplyPatches(file *m.SourceFile, patches []m.Patch) int {
	ordered := slices.Clone(patches)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if a.Line != b.Line {
			return a.Line > b.Line
		}

		if (a.Kind == m.PatchInsertLine) != (b.Kind == m.PatchInsertLine) {
			return a.Kind == m.PatchInsertLine
		}

		return a.Col > b.Col
	})

	applied := 0

	for _, patch := range ordered {
		if patch.Line < 0 || patch.Line >= len(file.Lines) {
			continue
		}

		switch patch.Kind {
		case m.PatchInsertLine:
			insertLineAfter(file, patch.Line, patch.Text)
		case m.PatchDeleteToken, m.PatchReplaceToken:
			if !replaceToken(&file.Lines[patch.Line], patch) {
				continue
			}
		default:
			continue
		}

		applied++
	}

	return applied
}

func insertLineAfter(file *m.SourceFile, idx int, text string) {
	eol := file.Lines[idx].EOL
	if eol == m.EOLNone {
		// idx is the unterminated last line: it gains a terminator and the
		// new line takes over the missing trailing newline.
		file.Lines[idx].EOL = dominantEOL(file)
	}

	file.Lines = slices.Insert(file.Lines, idx+1, m.Line{Text: text, EOL: eol})
}

func replaceToken(line *m.Line, patch m.Patch) bool {
	end := patch.Col + len(patch.Token)
	if patch.Col < 0 || end > len(line.Text) || line.Text[patch.Col:end] != patch.Token {
		return false
	}

	replacement := ""
	if patch.Kind == m.PatchReplaceToken {
		replacement = patch.Text
	}

	line.Text = line.Text[:patch.Col] + replacement + line.Text[end:]

	return true
}
