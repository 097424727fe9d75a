package domain

import (
	"strings"

	m "github.com/mouse-blink/earlyexit/internal/model"
)

const ignoreDirective = "earlyexit:ignore"

// Patch families an ignore directive can name.
const (
	familyExit      = "exit"
	familySignature = "signature"
)

type ignoreRule struct {
	all   bool
	names map[string]struct{}
}

func (r ignoreRule) ignores(family string) bool {
	if r.all {
		return true
	}

	if len(r.names) == 0 {
		return false
	}

	_, ok := r.names[family]

	return ok
}

func mergeIgnoreRule(dst *ignoreRule, src ignoreRule) {
	if src.all {
		dst.all = true
		dst.names = nil

		return
	}

	if dst.all || len(src.names) == 0 {
		return
	}

	if dst.names == nil {
		dst.names = make(map[string]struct{}, len(src.names))
	}

	for name := range src.names {
		dst.names[name] = struct{}{}
	}
}

// parseIgnoreDirective parses "// earlyexit:ignore [exit,signature]".
func parseIgnoreDirective(commentText string) (ignoreRule, bool) {
	s := strings.TrimSpace(commentText)

	switch {
	case strings.HasPrefix(s, "//"):
		s = strings.TrimSpace(strings.TrimPrefix(s, "//"))
	case strings.HasPrefix(s, "/*"):
		s = strings.TrimSpace(strings.TrimPrefix(s, "/*"))
		s = strings.TrimSpace(strings.TrimSuffix(s, "*/"))
	case strings.HasPrefix(s, "*"):
		s = strings.TrimSpace(strings.TrimPrefix(s, "*"))
	}

	if !strings.HasPrefix(s, ignoreDirective) {
		return ignoreRule{}, false
	}

	rest := strings.TrimPrefix(s, ignoreDirective)
	if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
		// e.g. "earlyexit:ignored" is not a directive
		return ignoreRule{}, false
	}

	parts := strings.FieldsFunc(rest, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})

	rule := ignoreRule{names: make(map[string]struct{}, len(parts))}

	for _, part := range parts {
		rule.names[strings.ToLower(part)] = struct{}{}
	}

	if len(rule.names) == 0 {
		rule.all = true
		rule.names = nil
	}

	return rule, true
}

type ignoreIndex struct {
	file ignoreRule
	line map[int]ignoreRule
}

func (ix ignoreIndex) ignores(line int, family string) bool {
	if ix.file.ignores(family) {
		return true
	}

	return ix.line[line].ignores(family)
}

// buildIgnoreIndex collects ignore directives. A directive in the comment
// block that opens the file applies to the whole file; a directive on a
// comment-only line applies to the next line; a trailing directive applies to
// its own line.
func buildIgnoreIndex(lines []m.Line) ignoreIndex {
	index := ignoreIndex{line: make(map[int]ignoreRule)}
	header := true

	for i, line := range lines {
		trimmed := strings.TrimSpace(line.Text)
		commentOnly := isCommentLine(trimmed)

		if trimmed != "" && !commentOnly {
			header = false
		}

		comment, ok := directiveComment(line.Text)
		if !ok {
			continue
		}

		rule, ok := parseIgnoreDirective(comment)
		if !ok {
			continue
		}

		switch {
		case header:
			mergeIgnoreRule(&index.file, rule)
		case commentOnly:
			current := index.line[i+1]
			mergeIgnoreRule(&current, rule)
			index.line[i+1] = current
		default:
			current := index.line[i]
			mergeIgnoreRule(&current, rule)
			index.line[i] = current
		}
	}

	return index
}

// directiveComment returns the comment text holding an ignore directive.
func directiveComment(text string) (string, bool) {
	idx := strings.Index(text, ignoreDirective)
	if idx < 0 {
		return "", false
	}

	before := text[:idx]

	start := strings.LastIndex(before, "//")
	if block := strings.LastIndex(before, "/*"); block > start {
		start = block
	}

	if start < 0 {
		if strings.HasPrefix(strings.TrimSpace(before), "*") {
			return strings.TrimSpace(text), true
		}

		return "", false
	}

	return text[start:], true
}
