package domain

import (
	"bytes"
	"strings"

	m "github.com/mouse-blink/earlyexit/internal/model"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseSource splits content into physical lines, remembering each line's
// terminator and a leading byte order mark.
func ParseSource(path m.Path, content []byte) *m.SourceFile {
	file := &m.SourceFile{Path: path}

	if bytes.HasPrefix(content, utf8BOM) {
		file.BOM = true
		content = content[len(utf8BOM):]
	}

	rest := string(content)
	for rest != "" {
		idx := strings.IndexByte(rest, '\n')
		if idx < 0 {
			file.Lines = append(file.Lines, m.Line{Text: rest, EOL: m.EOLNone})
			break
		}

		text, eol := rest[:idx], m.EOLLF
		if strings.HasSuffix(text, "\r") {
			text = text[:len(text)-1]
			eol = m.EOLCRLF
		}

		file.Lines = append(file.Lines, m.Line{Text: text, EOL: eol})
		rest = rest[idx+1:]
	}

	return file
}

// RenderSource is the inverse of ParseSource.
func RenderSource(file *m.SourceFile) []byte {
	var buf bytes.Buffer

	if file.BOM {
		buf.Write(utf8BOM)
	}

	for _, line := range file.Lines {
		buf.WriteString(line.Text)
		buf.WriteString(line.EOL)
	}

	return buf.Bytes()
}

// dominantEOL returns the terminator used by the first terminated line.
func dominantEOL(file *m.SourceFile) string {
	for _, line := range file.Lines {
		if line.EOL != m.EOLNone {
			return line.EOL
		}
	}

	return m.EOLLF
}

func leadingWhitespace(s string) string {
	return s[:len(s)-len(strings.TrimLeft(s, " \t"))]
}

func isCommentLine(trimmed string) bool {
	return strings.HasPrefix(trimmed, "//") ||
		strings.HasPrefix(trimmed, "/*") ||
		strings.HasPrefix(trimmed, "*")
}
