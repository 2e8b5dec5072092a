// Package logic implements the encryptResources and decryptResources entry points.
package logic

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/idelchi/rescrypt/internal/config"
	"github.com/idelchi/rescrypt/internal/encryption"
	"github.com/idelchi/rescrypt/internal/filter"
	"github.com/idelchi/rescrypt/internal/logging"
	"github.com/idelchi/rescrypt/pkg/cryptor"
)

// Summary describes the outcome of a run.
type Summary struct {
	// Scanned is the number of regular files found under the root.
	Scanned int
	// Excluded is the number of scanned files the selector did not match.
	Excluded int
	// Processed is the number of files rewritten.
	Processed int
	// Size is the total size of the rewritten files.
	Size     int64
	Duration time.Duration
}

// EncryptResources encrypts every selected file under cfg.Root in place.
func EncryptResources(ctx context.Context, cfg *config.Config, log logging.Logger) (Summary, error) {
	return Run(ctx, cfg, cryptor.Encrypt, log)
}

// DecryptResources decrypts every selected file under cfg.Root in place.
func DecryptResources(ctx context.Context, cfg *config.Config, log logging.Logger) (Summary, error) {
	return Run(ctx, cfg, cryptor.Decrypt, log)
}

// Run resolves the file set and transforms every file in one direction.
// A selector that matches nothing is a successful run with nothing processed.
func Run(ctx context.Context, cfg *config.Config, direction cryptor.Direction, log logging.Logger) (Summary, error) {
	start := time.Now()

	summary, err := resolveFiles(cfg)
	if err != nil {
		return summary, fmt.Errorf("resolving files: %w", err)
	}

	log.Debugf("%d of %d files under %q selected", len(cfg.Files), summary.Scanned, cfg.Root)

	if cfg.Dry {
		summary = dryRun(cfg, direction, summary, log)
		summary.Duration = time.Since(start)

		if cfg.Stats {
			printStats(summary, 0)
		}

		return summary, nil
	}

	proc, err := encryption.NewProcessor(cfg, direction, log)
	if err != nil {
		return summary, fmt.Errorf("creating processor: %w", err)
	}

	summary.Processed, summary.Size, err = proc.ProcessFiles(ctx)
	summary.Duration = time.Since(start)

	if cfg.Stats {
		errored := 0
		if err != nil {
			errored = 1
		}

		printStats(summary, errored)
	}

	if err != nil {
		return summary, fmt.Errorf("%sing resources: %w", direction, err)
	}

	return summary, nil
}

// resolveFiles merges CLI and file-based patterns and stores the matched
// files in cfg.Files.
func resolveFiles(cfg *config.Config) (Summary, error) {
	includes, excludes, err := loadPatterns(cfg)
	if err != nil {
		return Summary{}, err
	}

	files, scanned, err := filter.Resolve(cfg.Root, includes, excludes)
	if err != nil {
		return Summary{}, fmt.Errorf("filtering files: %w", err)
	}

	cfg.Files = files

	return Summary{Scanned: scanned, Excluded: scanned - len(files)}, nil
}

// loadPatterns merges CLI and file-based include/exclude patterns.
func loadPatterns(cfg *config.Config) (includes, excludes []string, err error) {
	includes = append(includes, cfg.Include...)
	excludes = append(excludes, cfg.Exclude...)

	if cfg.IncludeFrom != "" {
		patterns, err := filter.LoadPatterns(cfg.IncludeFrom)
		if err != nil {
			return nil, nil, fmt.Errorf("loading include patterns: %w", err)
		}

		includes = append(includes, patterns...)
	}

	if cfg.ExcludeFrom != "" {
		patterns, err := filter.LoadPatterns(cfg.ExcludeFrom)
		if err != nil {
			return nil, nil, fmt.Errorf("loading exclude patterns: %w", err)
		}

		excludes = append(excludes, patterns...)
	}

	return includes, excludes, nil
}

// dryRun lists what would be processed without reading or writing any content.
func dryRun(cfg *config.Config, direction cryptor.Direction, summary Summary, log logging.Logger) Summary {
	for _, file := range cfg.Files {
		log.Infof("would %s %q", direction, file)

		if info, err := os.Stat(filepath.Join(cfg.Root, filepath.FromSlash(file))); err == nil {
			summary.Size += info.Size()
		}
	}

	summary.Processed = len(cfg.Files)

	return summary
}

func printStats(summary Summary, errored int) {
	fmt.Fprintf(os.Stderr, "\nStats\n")
	fmt.Fprintf(os.Stderr, "  Scanned:   %d\n", summary.Scanned)
	fmt.Fprintf(os.Stderr, "  Excluded:  %d\n", summary.Excluded)
	fmt.Fprintf(os.Stderr, "  Processed: %d\n", summary.Processed)
	fmt.Fprintf(os.Stderr, "  Errors:    %d\n", errored)
	//nolint:gosec // size is always non-negative (sum of file sizes)
	fmt.Fprintf(os.Stderr, "  Size:      %s\n", humanize.IBytes(uint64(max(0, summary.Size))))
	fmt.Fprintf(os.Stderr, "  Duration:  %s\n", summary.Duration.Round(time.Millisecond))
}

// String renders the summary as a single line.
func (s Summary) String() string {
	var b strings.Builder

	fmt.Fprintf(&b, "%d file(s) processed", s.Processed)

	if s.Excluded > 0 {
		fmt.Fprintf(&b, ", %d excluded", s.Excluded)
	}

	fmt.Fprintf(&b, " (%s)", humanize.IBytes(uint64(max(0, s.Size)))) //nolint:gosec

	return b.String()
}
