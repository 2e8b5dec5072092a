package encryption

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/idelchi/rescrypt/internal/config"
	"github.com/idelchi/rescrypt/internal/fileutil"
	"github.com/idelchi/rescrypt/internal/logging"
	"github.com/idelchi/rescrypt/pkg/cryptor"
)

// Processor handles the encryption and decryption of resource files.
type Processor struct {
	// cfg contains runtime configuration options
	cfg *config.Config

	// cred is the password and salt for every file
	cred cryptor.Credential

	// direction is fixed for the whole run
	direction cryptor.Direction

	log logging.Logger

	// replace commits one file; fileutil.Replace outside of tests
	replace func(filename string, data []byte, preserveTimestamps bool) (int64, error)
}

// NewProcessor creates a new Processor with the given configuration.
// It resolves the password and salt and fails with cryptor.ErrInvalidCredential
// if either is empty.
func NewProcessor(cfg *config.Config, direction cryptor.Direction, log logging.Logger) (*Processor, error) {
	password, err := cfg.ResolvePassword()
	if err != nil {
		return nil, fmt.Errorf("reading password: %w", err)
	}

	salt, err := cfg.DecodeSalt()
	if err != nil {
		return nil, fmt.Errorf("reading salt: %w", err)
	}

	cred := cryptor.Credential{Password: password, Salt: salt}
	if err := cred.Validate(); err != nil {
		return nil, err
	}

	return &Processor{
		cfg:       cfg,
		cred:      cred,
		direction: direction,
		log:       log,
		replace:   fileutil.Replace,
	}, nil
}

// ProcessFiles transforms all files in the configuration and writes them back.
//
// Every file is transformed before any file is written, so a cipher or read
// error leaves the resource root untouched. Writes happen one file at a time,
// each atomically; if a write fails, files written before it stay rewritten.
// It returns the number of files written and their total size.
func (p *Processor) ProcessFiles(ctx context.Context) (processed int, totalSize int64, err error) {
	results, err := p.transformAll(ctx)
	if err != nil {
		return 0, 0, err
	}

	for _, res := range results {
		size, err := p.replace(p.path(res.Path), res.Output, p.cfg.PreserveTimestamps)
		if err != nil {
			return processed, totalSize, &TransformError{Path: res.Path, Err: err}
		}

		processed++

		totalSize += size

		p.log.Infof("%sed %q", p.direction, res.Path)
	}

	return processed, totalSize, nil
}

// transformAll reads and transforms every file in memory, cfg.Parallel at a time.
// On failure it reports the earliest failing file in selector order.
func (p *Processor) transformAll(ctx context.Context) ([]Result, error) {
	results := make([]Result, len(p.cfg.Files))

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(max(1, p.cfg.Parallel))

	for idx, file := range p.cfg.Files {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[idx] = Result{Path: file, Error: err}

				return err
			}

			output, err := p.transformFile(file)
			results[idx] = Result{Path: file, Output: output, Error: err}

			return err
		})
	}

	if err := group.Wait(); err != nil {
		for _, res := range results {
			if res.Error != nil && !isContextErr(res.Error) {
				return nil, &TransformError{Path: res.Path, Err: res.Error}
			}
		}

		return nil, fmt.Errorf("transforming files: %w", err)
	}

	return results, nil
}

// transformFile reads a single file and applies the cipher to its content.
// The key is derived anew for each file.
func (p *Processor) transformFile(file string) ([]byte, error) {
	input, err := os.ReadFile(p.path(file))
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	output, err := cryptor.Transform(input, p.direction, p.cred)
	if err != nil {
		return nil, fmt.Errorf("%sing file: %w", p.direction, err)
	}

	return output, nil
}

// TransformValue applies the cipher to a single value and returns it as text.
func (p *Processor) TransformValue(value string) (string, error) {
	output, err := cryptor.Transform([]byte(value), p.direction, p.cred)
	if err != nil {
		return "", fmt.Errorf("%sing value: %w", p.direction, err)
	}

	return string(output), nil
}

// path maps a root-relative, slash-separated path to the file system.
func (p *Processor) path(file string) string {
	return filepath.Join(p.cfg.Root, filepath.FromSlash(file))
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
