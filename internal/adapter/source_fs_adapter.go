// Package adapter contains infrastructure adapters for the earlyexit CLI.
package adapter

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"

	m "github.com/mouse-blink/earlyexit/internal/model"
)

// DefaultExtensions are the file extensions collected when walking a
// directory and no extension list is configured.
var DefaultExtensions = []string{".ts", ".js"}

var skipDirs = map[string]struct{}{
	"node_modules": {},
	".git":         {},
	".hg":          {},
	".svn":         {},
	"dist":         {},
	"build":        {},
	"coverage":     {},
}

// SourceFSAdapter abstracts filesystem-specific operations that the domain layer
// relies on when rewriting user projects. It hides direct `os` access so the
// workflow logic can be tested without touching the disk.
type SourceFSAdapter interface {
	// Expand resolves a root argument into the files to process. "dir/..."
	// walks dir recursively, a plain directory is read one level deep and a
	// file path is returned as is.
	Expand(root m.Path, opts DiscoverOptions) ([]m.Path, error)

	// Walk traverses the provided root path. When recursive is false the
	// implementation should limit itself to the root directory (no sub-dirs).
	Walk(root m.Path, recursive bool, fn FilepathWalkFunc) error

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(path m.Path) ([]byte, error)

	// WriteFile replaces the content of an existing file, keeping its mode.
	// Readers never observe a partially written file.
	WriteFile(path m.Path, content []byte) error

	// FileInfo returns metadata for a path.
	FileInfo(path m.Path) (os.FileInfo, error)
}

// FilepathWalkFunc mirrors the callback shape used by filepath.Walk. It is
// defined here to avoid leaking the standard-library type directly into the
// domain layer.
type FilepathWalkFunc func(path string, info os.FileInfo, err error) error

// DiscoverOptions filters the files collected by Expand.
type DiscoverOptions struct {
	// Extensions accepted while walking directories. Empty means DefaultExtensions.
	Extensions []string
	// Exclude drops any path matching one of the expressions.
	Exclude []*regexp.Regexp
}

func (o DiscoverOptions) excluded(path string) bool {
	slashed := filepath.ToSlash(path)
	for _, re := range o.Exclude {
		if re.MatchString(slashed) {
			return true
		}
	}

	return false
}

func (o DiscoverOptions) accepts(name string) bool {
	// Declaration files carry no handler bodies.
	if strings.HasSuffix(name, ".d.ts") {
		return false
	}

	extensions := o.Extensions
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}

	for _, ext := range extensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}

	return false
}

// CompileExcludes compiles exclude expressions.
func CompileExcludes(patterns []string) ([]*regexp.Regexp, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))

	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}

		compiled = append(compiled, re)
	}

	return compiled, nil
}

// LocalSourceFSAdapter is the os-backed SourceFSAdapter.
type LocalSourceFSAdapter struct{}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter instance ready to
// be wired into the workflow.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{}
}

// Expand collects the files named by root.
func (a *LocalSourceFSAdapter) Expand(root m.Path, opts DiscoverOptions) ([]m.Path, error) {
	rootStr, recursive := parseRootPath(string(root))

	info, err := a.FileInfo(m.Path(rootStr))
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if opts.excluded(rootStr) {
			return nil, nil
		}

		return []m.Path{m.Path(rootStr)}, nil
	}

	gitignore := loadGitignore(rootStr)

	var paths []m.Path

	err = a.Walk(m.Path(rootStr), recursive, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if path == rootStr {
			return nil
		}

		rel, relErr := filepath.Rel(rootStr, path)
		if relErr != nil {
			return relErr
		}

		ignored := gitignore != nil && gitignore.MatchesPath(filepath.ToSlash(rel))

		if info.IsDir() {
			if _, skip := skipDirs[info.Name()]; skip || ignored {
				return filepath.SkipDir
			}

			return nil
		}

		if ignored || !opts.accepts(info.Name()) || opts.excluded(path) {
			return nil
		}

		paths = append(paths, m.Path(path))

		return nil
	})
	if err != nil {
		return nil, err
	}

	return paths, nil
}

// Walk iterates over files under root, optionally descending into subdirectories.
func (a *LocalSourceFSAdapter) Walk(root m.Path, recursive bool, fn FilepathWalkFunc) error {
	rootStr := string(root)

	return filepath.Walk(rootStr, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return fn(path, info, err)
		}

		if info.IsDir() && !recursive && path != rootStr {
			return filepath.SkipDir
		}

		return fn(path, info, nil)
	})
}

// ReadFile loads file contents from disk.
func (a *LocalSourceFSAdapter) ReadFile(path m.Path) ([]byte, error) {
	return os.ReadFile(string(path))
}

// WriteFile writes content to a temporary sibling and renames it over path.
func (a *LocalSourceFSAdapter) WriteFile(path m.Path, content []byte) error {
	target := string(path)

	info, err := os.Stat(target)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), "."+filepath.Base(target)+".earlyexit-*")
	if err != nil {
		return err
	}

	tmpName := tmp.Name()

	defer func() {
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		return err
	}

	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Chmod(tmpName, info.Mode().Perm()); err != nil {
		return err
	}

	return os.Rename(tmpName, target)
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalSourceFSAdapter) FileInfo(path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}

func parseRootPath(rootStr string) (path string, recursive bool) {
	switch {
	case rootStr == "...":
		return ".", true
	case strings.HasSuffix(rootStr, "/..."):
		path = strings.TrimSuffix(rootStr, "/...")
		if path == "" {
			path = "/"
		}

		return path, true
	case rootStr == "":
		return ".", false
	default:
		return rootStr, false
	}
}

func loadGitignore(root string) *ignore.GitIgnore {
	gi, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}

	return gi
}
