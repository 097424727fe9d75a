package domain

import (
	"strings"

	m "github.com/mouse-blink/earlyexit/internal/model"
)

// MergeStatements groups physical lines into logical statements. A line for
// which opens returns true starts a statement that absorbs following lines
// until its parentheses balance; every other line is a statement of its own.
// Lines that begin inside a literal or block comment are marked Quoted.
// A statement still open at end of file ends at the last line.
func MergeStatements(lines []m.Line, opens func(text string) bool) []m.LogicalStatement {
	stmts := make([]m.LogicalStatement, 0, len(lines))

	var st lexState

	for i := 0; i < len(lines); i++ {
		startsInside := st.inside()
		masked := st.mask(lines[i].Text)
		end := i

		if !startsInside && opens(lines[i].Text) {
			depth := parenDelta(masked)
			for depth > 0 && end+1 < len(lines) {
				end++
				depth += parenDelta(st.mask(lines[end].Text))
			}
		}

		stmt := newStatement(lines, i, end)
		stmt.Quoted = startsInside
		stmts = append(stmts, stmt)
		i = end
	}

	return stmts
}

func newStatement(lines []m.Line, start, end int) m.LogicalStatement {
	texts := make([]string, 0, end-start+1)
	for _, line := range lines[start : end+1] {
		texts = append(texts, line.Text)
	}

	return m.LogicalStatement{
		Start:  start,
		End:    end,
		Indent: leadingWhitespace(lines[start].Text),
		Text:   strings.Join(texts, "\n"),
	}
}
