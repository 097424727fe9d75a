package domain

import (
	"bytes"
	"fmt"

	m "github.com/mouse-blink/earlyexit/internal/model"
)

// Options configures a Rewriter.
type Options struct {
	Response   ResponseShape
	Handler    HandlerShape
	Annotation m.AnnotationMode
}

// DefaultOptions matches Express handlers and leaves signatures alone.
func DefaultOptions() Options {
	return Options{
		Response:   DefaultResponseShape(),
		Handler:    DefaultHandlerShape(),
		Annotation: m.AnnotationKeep,
	}
}

// Plan is the set of edits computed for one file.
type Plan struct {
	Sites      []m.Site // sites that receive exit patches
	Signatures int      // handler signatures that receive annotation patches
	Patches    []m.Patch
}

// Changes counts patched sites and signatures.
func (p Plan) Changes() int {
	return len(p.Sites) + p.Signatures
}

// Result is the outcome of rewriting an in-memory file.
type Result struct {
	Content []byte
	Changed bool
	Plan    Plan
}

// FileStore is the file access the rewriter needs to rewrite files in place.
type FileStore interface {
	ReadFile(path m.Path) ([]byte, error)
	WriteFile(path m.Path, content []byte) error
}

// Rewriter runs the merge, classify and patch pipeline over source files.
type Rewriter struct {
	opts       Options
	classifier *Classifier
	signatures *SignatureNormalizer
}

// NewRewriter validates opts and builds a Rewriter.
func NewRewriter(opts Options) (*Rewriter, error) {
	if opts.Annotation == "" {
		opts.Annotation = m.AnnotationKeep
	}

	if !opts.Annotation.Valid() {
		return nil, fmt.Errorf("unsupported annotation mode: %q", opts.Annotation)
	}

	classifier, err := NewClassifier(opts.Response)
	if err != nil {
		return nil, err
	}

	signatures, err := NewSignatureNormalizer(opts.Handler)
	if err != nil {
		return nil, err
	}

	return &Rewriter{
		opts:       opts,
		classifier: classifier,
		signatures: signatures,
	}, nil
}

// Plan classifies every statement of file and returns the patches needed.
// Hints are 1-based line numbers; when present only sites at or right after
// a hinted line are patched. Hints never affect signature normalization.
func (r *Rewriter) Plan(file *m.SourceFile, hints []int) Plan {
	var plan Plan

	ignore := buildIgnoreIndex(file.Lines)
	stmts := MergeStatements(file.Lines, r.classifier.OpensResponse)
	quoted := make(map[int]bool)

	for i := range stmts {
		if stmts[i].Quoted {
			quoted[stmts[i].Start] = true
		}

		site, ok := r.classifier.Classify(stmts, i)
		if !ok || !site.NeedsPatch() {
			continue
		}

		if ignore.ignores(site.Statement.Start, familyExit) || !eligible(site.Statement, hints) {
			continue
		}

		plan.Sites = append(plan.Sites, site)
		plan.Patches = append(plan.Patches, ExitPatches(site)...)
	}

	signatures := r.signatures.Patches(file.Lines, r.opts.Annotation, func(line int) bool {
		return quoted[line] || ignore.ignores(line, familySignature)
	})
	plan.Signatures = len(signatures)
	plan.Patches = append(plan.Patches, signatures...)

	return plan
}

// Rewrite runs the pipeline over content and returns the patched content.
func (r *Rewriter) Rewrite(path m.Path, content []byte, hints []int) Result {
	file := ParseSource(path, content)
	plan := r.Plan(file, hints)

	if len(plan.Patches) == 0 {
		return Result{Content: content, Plan: plan}
	}

	ApplyPatches(file, plan.Patches)
	updated := RenderSource(file)

	return Result{
		Content: updated,
		Changed: !bytes.Equal(updated, content),
		Plan:    plan,
	}
}

// RewriteFile reads path from store, rewrites it and writes it back when the
// content changed and dryRun is false. Failures are reported in the result,
// never returned, so one bad file cannot stop a batch.
func (r *Rewriter) RewriteFile(store FileStore, path m.Path, hints []int, dryRun bool) m.FileResult {
	content, err := store.ReadFile(path)
	if err != nil {
		return m.FileResult{
			Path:   path,
			Status: m.StatusFailed,
			Err:    &m.FileAccessError{Path: path, Op: "read", Err: err},
		}
	}

	result := r.Rewrite(path, content, hints)
	if !result.Changed {
		return m.FileResult{Path: path, Status: m.StatusUnchanged, Original: content}
	}

	if !dryRun {
		if err := store.WriteFile(path, result.Content); err != nil {
			return m.FileResult{
				Path:     path,
				Status:   m.StatusFailed,
				Err:      &m.FileAccessError{Path: path, Op: "write", Err: err},
				Original: content,
			}
		}
	}

	return m.FileResult{
		Path:     path,
		Status:   m.StatusFixed,
		Changes:  result.Plan.Changes(),
		Original: content,
		Updated:  result.Content,
	}
}
