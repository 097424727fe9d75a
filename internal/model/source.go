// Package model defines the data structures shared by the rewrite pipeline.
package model

import "strings"

// Path represents a file system path.
type Path string

// Line terminators recognized when splitting a source file.
const (
	EOLNone = ""
	EOLLF   = "\n"
	EOLCRLF = "\r\n"
)

// Line is a single physical line together with its own terminator, so files
// with mixed line endings round-trip unchanged.
type Line struct {
	Text string
	EOL  string
}

// SourceFile is the in-memory line buffer of a file being rewritten.
type SourceFile struct {
	Path Path
	// BOM is true when the file started with a UTF-8 byte order mark. The mark
	// is not part of Lines[0].Text.
	BOM   bool
	Lines []Line
}

// LogicalStatement is a contiguous run of physical lines forming one
// syntactic statement. Start and End are 0-based and inclusive.
type LogicalStatement struct {
	Start  int
	End    int
	Indent string // leading whitespace of the first line
	Text   string // physical lines joined with "\n"
	// Quoted is true when the first line starts inside a multi-line string,
	// template literal or block comment. Such statements are never code.
	Quoted bool
}

// IndentWidth returns the number of leading space characters of the
// statement's first line.
func (s LogicalStatement) IndentWidth() int {
	return len(s.Indent) - len(strings.TrimLeft(s.Indent, " "))
}

// Lines reports how many physical lines the statement spans.
func (s LogicalStatement) Lines() int {
	return s.End - s.Start + 1
}

// Site is a logical statement classified as response-emitting.
type Site struct {
	Statement LogicalStatement
	// LeadingExit is true for "return res.json(...)" forms.
	LeadingExit bool
	// TrailingExit is true when the next statement is a bare exit.
	TrailingExit bool
}

// Indent is the indentation any inserted exit must use.
func (s Site) Indent() string {
	return s.Statement.Indent
}

// NeedsPatch reports whether the site violates the early-exit contract.
func (s Site) NeedsPatch() bool {
	return s.LeadingExit || !s.TrailingExit
}
