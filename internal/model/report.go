package model

import "fmt"

// FileStatus is the outcome of processing one file.
type FileStatus string

const (
	StatusFixed     FileStatus = "fixed"
	StatusUnchanged FileStatus = "unchanged"
	StatusFailed    FileStatus = "failed"
)

// FileResult holds the rewrite outcome for a single file.
type FileResult struct {
	Path    Path
	Status  FileStatus
	Changes int   // sites and signatures patched
	Err     error // set when Status is StatusFailed
	// Original and Updated hold the file content before and after the
	// rewrite. Updated is nil when nothing changed.
	Original []byte
	Updated  []byte
}

// FileAccessError reports a file that could not be read or written.
type FileAccessError struct {
	Path Path
	Op   string
	Err  error
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileAccessError) Unwrap() error {
	return e.Err
}
