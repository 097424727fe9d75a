package model

// PatchKind represents the category of an edit.
type PatchKind int

const (
	// PatchInsertLine inserts Text as a new line after line Line.
	PatchInsertLine PatchKind = iota
	// PatchDeleteToken removes Token found at column Col of line Line.
	PatchDeleteToken
	// PatchReplaceToken replaces Token found at column Col of line Line with Text.
	PatchReplaceToken
)

func (k PatchKind) String() string {
	switch k {
	case PatchInsertLine:
		return "insert-line"
	case PatchDeleteToken:
		return "delete-token"
	case PatchReplaceToken:
		return "replace-token"
	default:
		return "unknown"
	}
}

// Patch is a single edit anchored to a 0-based line index.
type Patch struct {
	Kind  PatchKind
	Line  int
	Col   int
	Token string
	Text  string
}

// AnnotationMode selects which way handler signatures are normalized.
type AnnotationMode string

const (
	// AnnotationKeep leaves signatures untouched.
	AnnotationKeep AnnotationMode = "keep"
	// AnnotationAdd adds ": Promise<void>" to handler signatures.
	AnnotationAdd AnnotationMode = "add"
	// AnnotationRemove strips ": Promise<void>" from handler signatures.
	AnnotationRemove AnnotationMode = "remove"
)

// Valid reports whether the mode is one of the known directions.
func (a AnnotationMode) Valid() bool {
	switch a {
	case AnnotationKeep, AnnotationAdd, AnnotationRemove:
		return true
	default:
		return false
	}
}

// Hint scopes patching to statements at or right after a 1-based line.
type Hint struct {
	Path Path
	Line int
}
