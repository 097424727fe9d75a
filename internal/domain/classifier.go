package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	m "github.com/mouse-blink/earlyexit/internal/model"
)

const exitKeyword = "return"

var identifierRe = regexp.MustCompile(`^[A-Za-z_$][\w$]*$`)

// ResponseShape names the pieces of a response-emitting call such as
// res.status(404).json(body).
type ResponseShape struct {
	Identifier   string
	StatusMethod string // optional chained call before the send method
	SendMethods  []string
}

// DefaultResponseShape matches res.json(...) and res.status(...).json(...).
func DefaultResponseShape() ResponseShape {
	return ResponseShape{
		Identifier:   "res",
		StatusMethod: "status",
		SendMethods:  []string{"json"},
	}
}

// Classifier recognizes response-emitting statements lexically.
type Classifier struct {
	start *regexp.Regexp
}

// NewClassifier compiles the recognizer for shape.
func NewClassifier(shape ResponseShape) (*Classifier, error) {
	if !identifierRe.MatchString(shape.Identifier) {
		return nil, fmt.Errorf("invalid response identifier %q", shape.Identifier)
	}

	if shape.StatusMethod != "" && !identifierRe.MatchString(shape.StatusMethod) {
		return nil, fmt.Errorf("invalid status method %q", shape.StatusMethod)
	}

	if len(shape.SendMethods) == 0 {
		return nil, errors.New("at least one send method is required")
	}

	sends := make([]string, 0, len(shape.SendMethods))
	for _, method := range shape.SendMethods {
		if !identifierRe.MatchString(method) {
			return nil, fmt.Errorf("invalid send method %q", method)
		}

		sends = append(sends, regexp.QuoteMeta(method))
	}

	status := ""
	if shape.StatusMethod != "" {
		status = `(?:` + regexp.QuoteMeta(shape.StatusMethod) + `\s*\([^()]*\)\s*\.\s*)?`
	}

	pattern := `^(` + exitKeyword + `[ \t]+)?` +
		regexp.QuoteMeta(shape.Identifier) + `\s*\.\s*` +
		status +
		`(?:` + strings.Join(sends, "|") + `)\s*\(`

	return &Classifier{start: regexp.MustCompile(pattern)}, nil
}

// OpensResponse reports whether a physical line begins a response-emitting
// call. It is the opener predicate handed to MergeStatements.
func (c *Classifier) OpensResponse(text string) bool {
	trimmed := strings.TrimSpace(text)
	if isCommentLine(trimmed) {
		return false
	}

	return c.start.MatchString(trimmed)
}

// Classify inspects stmts[i] and returns it as a Site when it is a
// response-emitting statement. Statements that start like a response call
// but carry anything besides the call are not sites.
func (c *Classifier) Classify(stmts []m.LogicalStatement, i int) (m.Site, bool) {
	stmt := stmts[i]
	if stmt.Quoted {
		return m.Site{}, false
	}

	trimmed := strings.TrimSpace(stmt.Text)
	if isCommentLine(trimmed) {
		return m.Site{}, false
	}

	loc := c.start.FindStringSubmatchIndex(trimmed)
	if loc == nil {
		return m.Site{}, false
	}

	if !wholeCall(trimmed, loc[1]-1) {
		return m.Site{}, false
	}

	return m.Site{
		Statement:    stmt,
		LeadingExit:  loc[2] >= 0,
		TrailingExit: followedByExit(stmts, i),
	}, true
}

// wholeCall checks that nothing but an optional semicolon follows the call
// whose argument list opens at open. An unterminated call counts as whole.
func wholeCall(text string, open int) bool {
	masked := maskCode(text)

	closing := closingParen(masked, open)
	if closing < 0 {
		return true
	}

	rest := strings.TrimSpace(masked[closing+1:])

	return rest == "" || rest == ";"
}

func followedByExit(stmts []m.LogicalStatement, i int) bool {
	for _, next := range stmts[i+1:] {
		trimmed := strings.TrimSpace(next.Text)
		if trimmed == "" || isCommentLine(trimmed) {
			continue
		}

		return isBareExit(trimmed)
	}

	return false
}

func isBareExit(trimmed string) bool {
	code := strings.TrimSpace(maskCode(trimmed))

	return code == exitKeyword || code == exitKeyword+";"
}
