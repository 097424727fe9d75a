package controller

import (
	"errors"
	"fmt"

	m "github.com/mouse-blink/earlyexit/internal/model"
)

func pluralChanges(n int) string {
	if n == 1 {
		return "1 change"
	}

	return fmt.Sprintf("%d changes", n)
}

// statusMessage is the per-file status line without styling.
func statusMessage(mode StartMode, result m.FileResult) string {
	switch result.Status {
	case m.StatusFailed:
		var accessErr *m.FileAccessError
		if errors.As(result.Err, &accessErr) {
			return fmt.Sprintf("✗ Error: %v", result.Err)
		}

		return fmt.Sprintf("✗ Error processing %s: %v", result.Path, result.Err)
	case m.StatusFixed:
		if mode == ModeFix {
			return fmt.Sprintf("✓ Fixed %s in %s", pluralChanges(result.Changes), result.Path)
		}

		return fmt.Sprintf("• %s needed in %s", pluralChanges(result.Changes), result.Path)
	default:
		return fmt.Sprintf("  No changes needed in %s", result.Path)
	}
}

type summaryCounts struct {
	files   int
	changed int
	changes int
	failed  int
}

func countResults(results []m.FileResult) summaryCounts {
	counts := summaryCounts{files: len(results)}

	for _, result := range results {
		switch result.Status {
		case m.StatusFixed:
			counts.changed++
			counts.changes += result.Changes
		case m.StatusFailed:
			counts.failed++
		}
	}

	return counts
}

func statusLabel(mode StartMode, status m.FileStatus) string {
	switch status {
	case m.StatusFixed:
		if mode == ModeFix {
			return "fixed"
		}

		return "pending"
	case m.StatusFailed:
		return "error"
	default:
		return "ok"
	}
}
