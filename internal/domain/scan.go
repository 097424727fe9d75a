package domain

// lexState carries string and comment context from one chunk of source to
// the next. It only knows enough JavaScript to keep parentheses inside
// literals and comments from being counted.
type lexState struct {
	quote        byte // active string delimiter, 0 outside strings
	blockComment bool
	lineComment  bool
}

// inside reports whether the next chunk starts inside a literal or comment.
func (st *lexState) inside() bool {
	return st.quote != 0 || st.blockComment
}

// mask returns s with string literals and comments blanked out. Offsets are
// preserved so positions found in the mask index into s. Single and double
// quoted strings never continue past a newline; template literals and block
// comments do.
func (st *lexState) mask(s string) string {
	out := []byte(s)

	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\n' {
			st.endLine()
			continue
		}

		switch {
		case st.lineComment:
			out[i] = ' '
		case st.blockComment:
			out[i] = ' '

			if c == '*' && i+1 < len(s) && s[i+1] == '/' {
				st.blockComment = false
				out[i+1] = ' '
				i++
			}
		case st.quote != 0:
			out[i] = ' '

			if c == '\\' && i+1 < len(s) && s[i+1] != '\n' {
				out[i+1] = ' '
				i++
			} else if c == st.quote {
				st.quote = 0
			}
		case c == '/' && i+1 < len(s) && s[i+1] == '/':
			st.lineComment = true
			out[i] = ' '
		case c == '/' && i+1 < len(s) && s[i+1] == '*':
			st.blockComment = true
			out[i], out[i+1] = ' ', ' '
			i++
		case c == '\'' || c == '"' || c == '`':
			st.quote = c
			out[i] = ' '
		}
	}

	st.endLine()

	return string(out)
}

func (st *lexState) endLine() {
	st.lineComment = false
	if st.quote == '\'' || st.quote == '"' {
		st.quote = 0
	}
}

// maskCode blanks literals and comments of a self-contained snippet.
func maskCode(s string) string {
	var st lexState
	return st.mask(s)
}

// parenDelta is the net change in parenthesis depth across masked text.
func parenDelta(masked string) int {
	delta := 0

	for i := 0; i < len(masked); i++ {
		switch masked[i] {
		case '(':
			delta++
		case ')':
			delta--
		}
	}

	return delta
}

// closingParen returns the index of the parenthesis that closes the one
// opened at open, or -1 when masked ends first.
func closingParen(masked string, open int) int {
	depth := 0

	for i := open; i < len(masked); i++ {
		switch masked[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}
