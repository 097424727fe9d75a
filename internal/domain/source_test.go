package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/mouse-blink/earlyexit/internal/model"
)

func TestParseSource_RoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "empty", content: ""},
		{name: "lf", content: "a\nb\n"},
		{name: "crlf", content: "a\r\nb\r\n"},
		{name: "mixed", content: "a\r\nb\nc"},
		{name: "no trailing newline", content: "a\nb"},
		{name: "bom", content: "\xEF\xBB\xBFa\n"},
		{name: "blank lines", content: "\n\n\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := ParseSource("x.ts", []byte(tt.content))
			assert.Equal(t, tt.content, string(RenderSource(file)))
		})
	}
}

func TestParseSource_Lines(t *testing.T) {
	file := ParseSource("x.ts", []byte("\xEF\xBB\xBFone\r\ntwo\nthree"))

	assert.True(t, file.BOM)
	require.Len(t, file.Lines, 3)
	assert.Equal(t, m.Line{Text: "one", EOL: m.EOLCRLF}, file.Lines[0])
	assert.Equal(t, m.Line{Text: "two", EOL: m.EOLLF}, file.Lines[1])
	assert.Equal(t, m.Line{Text: "three", EOL: m.EOLNone}, file.Lines[2])
}

func TestDominantEOL(t *testing.T) {
	assert.Equal(t, m.EOLCRLF, dominantEOL(ParseSource("x.ts", []byte("a\r\nb\nc"))))
	assert.Equal(t, m.EOLLF, dominantEOL(ParseSource("x.ts", []byte("a"))))
}

func TestLeadingWhitespace(t *testing.T) {
	assert.Equal(t, "  \t", leadingWhitespace("  \tres.json(x);"))
	assert.Equal(t, "", leadingWhitespace("res.json(x);"))
	assert.Equal(t, "   ", leadingWhitespace("   "))
}
