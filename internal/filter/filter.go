// Package filter selects files under a resource root based on include/exclude patterns.
package filter

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/idelchi/rescrypt/pkg/pathmatch"
)

// ErrSelectorResolution is returned when the resource root cannot be walked.
var ErrSelectorResolution = errors.New("resolving file set")

// Filter selects files based on include/exclude patterns.
// Empty includes means "match all". Excludes always win.
type Filter struct {
	includes *pathmatch.Matcher
	excludes *pathmatch.Matcher
}

// NewFilter compiles include/exclude patterns into a reusable filter.
func NewFilter(includes, excludes []string) (*Filter, error) {
	inc, err := pathmatch.NewMatcher(includes)
	if err != nil {
		return nil, fmt.Errorf("compiling include patterns: %w", err)
	}

	exc, err := pathmatch.NewMatcher(excludes)
	if err != nil {
		return nil, fmt.Errorf("compiling exclude patterns: %w", err)
	}

	return &Filter{includes: inc, excludes: exc}, nil
}

// Match reports whether the slash-separated relative path should be included.
func (f *Filter) Match(path string) bool {
	included := f.includes.Len() == 0 || f.includes.MatchAny(path)
	excluded := f.excludes.MatchAny(path)

	return included && !excluded
}

// Resolve walks root and returns the regular files, relative to root with
// forward slashes and in lexical order, that pass the include/exclude patterns.
// It also returns the number of regular files scanned.
// No match is not an error: the result is simply empty.
func Resolve(root string, includes, excludes []string) (files []string, scanned int, err error) {
	flt, err := NewFilter(includes, excludes)
	if err != nil {
		return nil, 0, err
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrSelectorResolution, err)
	}

	if !info.IsDir() {
		return nil, 0, fmt.Errorf("%w: %q is not a directory", ErrSelectorResolution, root)
	}

	// WalkDir does not descend into a symlinked root.
	resolved, err := filepath.EvalSymlinks(root)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrSelectorResolution, err)
	}

	files, scanned, err = walkDir(resolved, flt)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrSelectorResolution, err)
	}

	sort.Strings(files)

	return files, scanned, nil
}

// Candidates returns every regular file under root, relative and slash-separated.
func Candidates(root string) ([]string, error) {
	files, _, err := Resolve(root, nil, nil)

	return files, err
}

// walkDir walks root recursively, returning files that pass the filter.
// Symlinks and other non-regular files are skipped.
func walkDir(root string, flt *Filter) (files []string, total int, err error) {
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.Type().IsRegular() {
			return nil
		}

		total++

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("relative path of %q: %w", path, err)
		}

		// Use forward slashes for pattern matching consistency.
		rel = filepath.ToSlash(rel)

		if !flt.Match(rel) {
			return nil
		}

		files = append(files, rel)

		return nil
	})
	if err != nil {
		return nil, 0, fmt.Errorf("walking %q: %w", root, err)
	}

	return files, total, nil
}
