package filter

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/tidwall/jsonc"
)

// ErrEmptyPattern is returned when a pattern file contains an empty entry.
var ErrEmptyPattern = errors.New("empty pattern")

// LoadPatterns reads a JSONC file containing an array of glob patterns,
// as used by --include-from and --exclude-from.
// Entries are trimmed and a leading "./" is removed, so they read the same as
// patterns given on the command line. An entry left empty is an error.
func LoadPatterns(path string) ([]string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is from user-supplied config
	if err != nil {
		return nil, fmt.Errorf("reading patterns file %q: %w", path, err)
	}

	var patterns []string
	if err := json.Unmarshal(jsonc.ToJSONInPlace(data), &patterns); err != nil {
		return nil, fmt.Errorf("parsing patterns file %q: %w", path, err)
	}

	for i, pattern := range patterns {
		pattern = strings.TrimPrefix(strings.TrimSpace(pattern), "./")
		if pattern == "" {
			return nil, fmt.Errorf("patterns file %q, entry %d: %w", path, i+1, ErrEmptyPattern)
		}

		patterns[i] = pattern
	}

	return patterns, nil
}
