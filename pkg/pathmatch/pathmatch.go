// Package pathmatch implements Ant/Gradle style include pattern matching.
//
// Patterns are matched against slash-separated paths relative to a root:
//   - * matches any characters except /
//   - ** matches zero or more whole path segments
//   - ? matches exactly one character except /
//   - [...] and [!...] match one character from (or not in) the set
//   - {a,b} matches either alternative
//   - \ escapes the next character
//
// A pattern ending in / matches everything below that directory, and a
// leading ./ is ignored.
package pathmatch

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Match reports whether path matches the pattern.
func Match(pattern, path string) (bool, error) {
	normalized, err := normalize(pattern)
	if err != nil {
		return false, err
	}

	return doublestar.Match(normalized, path)
}

// Matcher holds validated patterns for reuse across many paths.
type Matcher struct {
	patterns []string
}

// NewMatcher validates the given patterns into a reusable matcher.
func NewMatcher(patterns []string) (*Matcher, error) {
	matcher := &Matcher{patterns: make([]string, len(patterns))}

	for idx, p := range patterns {
		normalized, err := normalize(p)
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", p, err)
		}

		matcher.patterns[idx] = normalized
	}

	return matcher, nil
}

// Len returns the number of patterns in the matcher.
func (m *Matcher) Len() int {
	return len(m.patterns)
}

// MatchAny reports whether path matches any of the patterns.
func (m *Matcher) MatchAny(path string) bool {
	for _, p := range m.patterns {
		// Patterns are validated up front, so matching cannot fail.
		if ok, _ := doublestar.Match(p, path); ok {
			return true
		}
	}

	return false
}

// normalize strips a leading ./, expands a trailing / to /** and validates the result.
func normalize(pattern string) (string, error) {
	for strings.HasPrefix(pattern, "./") {
		pattern = strings.TrimPrefix(pattern, "./")
	}

	if strings.HasSuffix(pattern, "/") {
		pattern += "**"
	}

	if pattern == "" {
		return "", fmt.Errorf("%w: empty pattern", doublestar.ErrBadPattern)
	}

	if !doublestar.ValidatePattern(pattern) {
		return "", fmt.Errorf("%w: %q", doublestar.ErrBadPattern, pattern)
	}

	return pattern, nil
}
