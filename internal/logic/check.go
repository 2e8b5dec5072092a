package logic

import (
	"errors"
	"fmt"

	"github.com/idelchi/rescrypt/internal/config"
	"github.com/idelchi/rescrypt/internal/filter"
	"github.com/idelchi/rescrypt/internal/logging"
	"github.com/idelchi/rescrypt/pkg/pathmatch"
)

// ErrUnmatchedPatterns is returned by RunCheck when a pattern matches no file.
var ErrUnmatchedPatterns = errors.New("pattern(s) matched no files")

// RunCheck validates that every include/exclude pattern matches at least one file under the root.
func RunCheck(cfg *config.Config, log logging.Logger) error {
	includes, excludes, err := loadPatterns(cfg)
	if err != nil {
		return err
	}

	if len(includes) == 0 && len(excludes) == 0 {
		return errors.New("no include or exclude patterns to check")
	}

	candidates, err := filter.Candidates(cfg.Root)
	if err != nil {
		return fmt.Errorf("listing files: %w", err)
	}

	var failures int

	failures += checkPatterns("include", includes, candidates, log)
	failures += checkPatterns("exclude", excludes, candidates, log)

	if failures > 0 {
		return fmt.Errorf("%d %w", failures, ErrUnmatchedPatterns)
	}

	return nil
}

// checkPatterns tests each pattern individually against candidates.
// Returns the number of patterns that matched zero files or failed to compile.
func checkPatterns(kind string, patterns, candidates []string, log logging.Logger) int {
	var failures int

	for _, pattern := range patterns {
		matcher, err := pathmatch.NewMatcher([]string{pattern})
		if err != nil {
			log.Errorf("%s %q: invalid pattern: %v", kind, pattern, err)

			failures++

			continue
		}

		var count int

		for _, path := range candidates {
			if matcher.MatchAny(path) {
				count++
			}
		}

		if count == 0 {
			log.Errorf("%s %q: 0 files", kind, pattern)

			failures++
		} else {
			log.Infof("%s %q: %d files", kind, pattern, count)
		}
	}

	return failures
}
