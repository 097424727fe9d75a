package controller

import m "github.com/mouse-blink/earlyexit/internal/model"

// Message types.
type reportMsg struct {
	mode    StartMode
	results []m.FileResult
}

// List item types.
type fileItem struct {
	path   string
	count  int
	status string
}

func (f fileItem) FilterValue() string {
	return f.path
}
