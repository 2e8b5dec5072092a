// Package fileutil provides atomic in-place file replacement.
package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// TempContext holds state for an atomic file write operation.
type TempContext struct {
	SrcInfo os.FileInfo
	TmpFile *os.File
	TmpName string
}

// NewTempContext stats the target file and creates a temp file next to it.
// Caller must defer CleanupOnError.
func NewTempContext(filename string) (*TempContext, error) {
	info, err := os.Stat(filename)
	if err != nil {
		return nil, fmt.Errorf("getting file info for %q: %w", filename, err)
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(filename), ".tmp-*")
	if err != nil {
		return nil, fmt.Errorf("creating temporary file: %w", err)
	}

	return &TempContext{
		SrcInfo: info,
		TmpFile: tmpFile,
		TmpName: tmpFile.Name(),
	}, nil
}

// CleanupOnError closes the temp file and removes it if the write failed.
func (tc *TempContext) CleanupOnError(errp *error) {
	tc.TmpFile.Close() //nolint:errcheck,gosec // best-effort cleanup

	if *errp != nil {
		os.Remove(tc.TmpName) //nolint:errcheck,gosec // best-effort cleanup
	}
}

// Replace atomically replaces filename with data. The file keeps its
// permission bits and, if preserveTimestamps is set, its modification time.
// The rename is the last step: on error the original file is left untouched,
// and once the rename succeeds no error is returned.
// It returns the size of the written file.
func Replace(filename string, data []byte, preserveTimestamps bool) (size int64, err error) {
	tc, err := NewTempContext(filename)
	if err != nil {
		return 0, fmt.Errorf("preparing atomic write: %w", err)
	}

	defer tc.CleanupOnError(&err)

	if _, err = tc.TmpFile.Write(data); err != nil {
		return 0, fmt.Errorf("writing content: %w", err)
	}

	if err = tc.TmpFile.Sync(); err != nil {
		return 0, fmt.Errorf("syncing temporary file: %w", err)
	}

	if err = os.Chmod(tc.TmpName, tc.SrcInfo.Mode().Perm()); err != nil {
		return 0, fmt.Errorf("setting file permissions: %w", err)
	}

	if err = tc.TmpFile.Close(); err != nil {
		return 0, fmt.Errorf("closing temporary file: %w", err)
	}

	if preserveTimestamps {
		modTime := tc.SrcInfo.ModTime()

		if err = os.Chtimes(tc.TmpName, modTime, modTime); err != nil {
			return 0, fmt.Errorf("preserving timestamps: %w", err)
		}
	}

	if err = os.Rename(tc.TmpName, filename); err != nil {
		return 0, fmt.Errorf("renaming output file: %w", err)
	}

	return int64(len(data)), nil
}
