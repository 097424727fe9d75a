package domain

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/mouse-blink/earlyexit/internal/adapter"
	"github.com/mouse-blink/earlyexit/internal/controller"
	"github.com/mouse-blink/earlyexit/internal/diff"
	m "github.com/mouse-blink/earlyexit/internal/model"
)

// FixArgs contains the arguments shared by every rewrite operation.
type FixArgs struct {
	// Paths to process, in order. "dir/..." walks dir recursively.
	Paths []m.Path
	// Exclude holds regular expressions matched against discovered paths.
	Exclude []string
	// Extensions accepted when walking directories.
	Extensions []string
	// Hints narrow which sites are patched in the files they name.
	Hints   []m.Hint
	Options Options
	// ShowDiff prints a diff of every file written by Fix.
	ShowDiff bool
}

// Workflow defines the high-level operations of the CLI.
type Workflow interface {
	// Fix rewrites files in place.
	Fix(args FixArgs) error
	// Check reports files that need changes without writing them.
	Check(args FixArgs) error
	// Diff prints the pending changes as unified diffs without writing them.
	Diff(args FixArgs) error
}

// WorkflowOption configures a Workflow.
type WorkflowOption func(*workflow)

// WithLogger sets the logger used for diagnostics. The global zap logger is
// used when none is given.
func WithLogger(logger *zap.Logger) WorkflowOption {
	return func(w *workflow) {
		w.logger = logger
	}
}

type workflow struct {
	fsAdapter adapter.SourceFSAdapter
	ui        controller.UI
	logger    *zap.Logger
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(fsAdapter adapter.SourceFSAdapter, ui controller.UI, opts ...WorkflowOption) Workflow {
	w := &workflow{
		fsAdapter: fsAdapter,
		ui:        ui,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

func (w *workflow) Fix(args FixArgs) error {
	return w.run(args, controller.ModeFix)
}

func (w *workflow) Check(args FixArgs) error {
	return w.run(args, controller.ModeCheck)
}

func (w *workflow) Diff(args FixArgs) error {
	return w.run(args, controller.ModeDiff)
}

func (w *workflow) log() *zap.Logger {
	if w.logger != nil {
		return w.logger
	}

	return zap.L()
}

func (w *workflow) run(args FixArgs, mode controller.StartMode) error {
	rewriter, err := NewRewriter(args.Options)
	if err != nil {
		return err
	}

	excludes, err := adapter.CompileExcludes(args.Exclude)
	if err != nil {
		return err
	}

	if err := w.ui.Start(startOption(mode)); err != nil {
		return fmt.Errorf("failed to start UI: %w", err)
	}
	defer w.ui.Close()

	discover := adapter.DiscoverOptions{Extensions: args.Extensions, Exclude: excludes}
	hints := newHintIndex(args.Hints)
	dryRun := mode != controller.ModeFix
	showDiff := mode == controller.ModeDiff || args.ShowDiff
	seen := make(map[string]struct{})

	var results []m.FileResult

	for _, root := range args.Paths {
		paths, err := w.fsAdapter.Expand(root, discover)
		if err != nil {
			result := m.FileResult{
				Path:   root,
				Status: m.StatusFailed,
				Err:    &m.FileAccessError{Path: root, Op: "stat", Err: err},
			}
			w.report(result, false)
			results = append(results, result)

			continue
		}

		for _, path := range paths {
			key := hintKey(path)
			if _, ok := seen[key]; ok {
				continue
			}

			seen[key] = struct{}{}

			result := rewriter.RewriteFile(w.fsAdapter, path, hints.For(path), dryRun)
			w.report(result, showDiff)
			results = append(results, result)
		}
	}

	return w.ui.DisplaySummary(results)
}

func (w *workflow) report(result m.FileResult, showDiff bool) {
	switch result.Status {
	case m.StatusFailed:
		var accessErr *m.FileAccessError
		if errors.As(result.Err, &accessErr) {
			w.log().Warn("file skipped",
				zap.String("path", string(accessErr.Path)),
				zap.String("op", accessErr.Op),
				zap.Error(accessErr.Err))
		} else {
			w.log().Warn("file skipped", zap.String("path", string(result.Path)), zap.Error(result.Err))
		}
	case m.StatusFixed:
		w.log().Debug("file rewritten",
			zap.String("path", string(result.Path)),
			zap.Int("changes", result.Changes))
	default:
		w.log().Debug("file unchanged", zap.String("path", string(result.Path)))
	}

	w.ui.DisplayFileResult(result)

	if showDiff && result.Updated != nil {
		w.ui.DisplayDiff(result.Path, diff.Unified(string(result.Path), result.Original, result.Updated))
	}
}

func startOption(mode controller.StartMode) controller.StartOption {
	switch mode {
	case controller.ModeCheck:
		return controller.WithCheckMode()
	case controller.ModeDiff:
		return controller.WithDiffMode()
	default:
		return controller.WithFixMode()
	}
}
