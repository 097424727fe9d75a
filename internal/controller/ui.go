// Package controller provides output adapters for displaying rewrite results.
package controller

import (
	m "github.com/mouse-blink/earlyexit/internal/model"
)

// StartMode defines the mode of operation for the UI.
type StartMode int

// Available StartMode values.
const (
	ModeFix StartMode = iota
	ModeCheck
	ModeDiff
)

// StartOption is a functional option for Start method.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	mode StartMode
}

// WithFixMode reports files as rewritten in place.
func WithFixMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeFix
	}
}

// WithCheckMode reports pending changes without writing.
func WithCheckMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeCheck
	}
}

// WithDiffMode reports pending changes as diffs without writing.
func WithDiffMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeDiff
	}
}

func newStartConfig(options []StartOption) StartConfig {
	cfg := StartConfig{mode: ModeFix}
	for _, opt := range options {
		opt(&cfg)
	}

	return cfg
}

// UI defines the interface for reporting rewrite progress.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	Start(options ...StartOption) error
	Close()
	DisplayFileResult(result m.FileResult)
	DisplayDiff(path m.Path, unified string)
	DisplaySummary(results []m.FileResult) error
}
