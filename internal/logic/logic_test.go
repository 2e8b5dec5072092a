package logic_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/rescrypt/internal/config"
	"github.com/idelchi/rescrypt/internal/encryption"
	"github.com/idelchi/rescrypt/internal/filter"
	"github.com/idelchi/rescrypt/internal/logging"
	"github.com/idelchi/rescrypt/internal/logic"
	"github.com/idelchi/rescrypt/pkg/cryptor"
)

//nolint:gochecknoglobals
var binary = []byte{0x00, 0xff, 0x10, 0x80, 'b', 'i', 'n'}

func setup(t *testing.T) *config.Config {
	t.Helper()

	root := t.TempDir()

	files := map[string][]byte{
		"a.txt":     []byte("hello world"),
		"b.bin":     binary,
		"c.cfg":     []byte("mode=prod\n"),
		"sub/d.txt": []byte("nested"),
	}

	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))

		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, content, 0o600))
	}

	return &config.Config{
		Password:     "secret",
		Salt:         "AQIDBAUGBwg=",
		SaltEncoding: config.SaltBase64,
		Root:         root,
		Include:      []string{"*.txt", "*.cfg"},
		Parallel:     2,
	}
}

func read(t *testing.T, cfg *config.Config, name string) []byte {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(cfg.Root, filepath.FromSlash(name)))
	require.NoError(t, err)

	return data
}

func TestEncryptResources_FileSet(t *testing.T) {
	t.Parallel()

	cfg := setup(t)

	summary, err := logic.EncryptResources(context.Background(), cfg, logging.Discard())
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Processed)
	assert.Equal(t, 4, summary.Scanned)
	assert.Equal(t, 2, summary.Excluded)
	assert.Equal(t, []string{"a.txt", "c.cfg"}, cfg.Files)

	assert.Equal(t, "aloBggt6lOsCh+JTe/0m5g==", string(read(t, cfg, "a.txt")))
	assert.NotEqual(t, "mode=prod\n", string(read(t, cfg, "c.cfg")))
	assert.Equal(t, binary, read(t, cfg, "b.bin"))
	assert.Equal(t, "nested", string(read(t, cfg, "sub/d.txt")))

	decrypted, err := cryptor.DecryptBytes(read(t, cfg, "c.cfg"), "secret", []byte{1, 2, 3, 4, 5, 6, 7, 8})
	require.NoError(t, err)
	assert.Equal(t, "mode=prod\n", string(decrypted))
}

func TestRun_EmptyMatchIsNoop(t *testing.T) {
	t.Parallel()

	cfg := setup(t)
	cfg.Include = []string{"*.json"}

	summary, err := logic.EncryptResources(context.Background(), cfg, logging.Discard())
	require.NoError(t, err)
	assert.Zero(t, summary.Processed)
	assert.Equal(t, "hello world", string(read(t, cfg, "a.txt")))
	assert.Equal(t, binary, read(t, cfg, "b.bin"))
}

func TestRun_IdempotentDirectionPairs(t *testing.T) {
	t.Parallel()

	cfg := setup(t)
	cfg.Include = nil

	before := map[string][]byte{}
	for _, name := range []string{"a.txt", "b.bin", "c.cfg", "sub/d.txt"} {
		before[name] = read(t, cfg, name)
	}

	ctx := context.Background()

	for range 2 {
		summary, err := logic.EncryptResources(ctx, cfg, logging.Discard())
		require.NoError(t, err)
		assert.Equal(t, 4, summary.Processed)

		summary, err = logic.DecryptResources(ctx, cfg, logging.Discard())
		require.NoError(t, err)
		assert.Equal(t, 4, summary.Processed)

		for name, content := range before {
			assert.Equal(t, content, read(t, cfg, name), name)
		}
	}
}

func TestRun_WrongCredentialFails(t *testing.T) {
	t.Parallel()

	cfg := setup(t)
	ctx := context.Background()

	_, err := logic.EncryptResources(ctx, cfg, logging.Discard())
	require.NoError(t, err)

	encrypted := read(t, cfg, "a.txt")

	cfg.Password = "not the secret"

	summary, err := logic.DecryptResources(ctx, cfg, logging.Discard())
	if err == nil {
		// A wrong key can pass the padding check; the content must still differ.
		assert.NotEqual(t, "hello world", string(read(t, cfg, "a.txt")))

		return
	}

	var transformErr *encryption.TransformError
	require.ErrorAs(t, err, &transformErr)
	assert.Zero(t, summary.Processed)
	assert.Equal(t, encrypted, read(t, cfg, "a.txt"))
}

func TestRun_DryRun(t *testing.T) {
	t.Parallel()

	cfg := setup(t)
	cfg.Dry = true

	summary, err := logic.EncryptResources(context.Background(), cfg, logging.Discard())
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Processed)
	assert.EqualValues(t, len("hello world")+len("mode=prod\n"), summary.Size)
	assert.Equal(t, "hello world", string(read(t, cfg, "a.txt")))
}

func TestRun_MissingRoot(t *testing.T) {
	t.Parallel()

	cfg := setup(t)
	cfg.Root = filepath.Join(cfg.Root, "missing")

	_, err := logic.EncryptResources(context.Background(), cfg, logging.Discard())
	require.ErrorIs(t, err, filter.ErrSelectorResolution)
}

func TestRun_PatternFiles(t *testing.T) {
	t.Parallel()

	cfg := setup(t)
	cfg.Include = nil
	cfg.IncludeFrom = filepath.Join(t.TempDir(), "include.jsonc")
	cfg.ExcludeFrom = filepath.Join(t.TempDir(), "exclude.jsonc")

	require.NoError(t, os.WriteFile(cfg.IncludeFrom, []byte(`["**/*.txt" /* text */]`), 0o600))
	require.NoError(t, os.WriteFile(cfg.ExcludeFrom, []byte(`["sub/", // nested
]`), 0o600))

	summary, err := logic.EncryptResources(context.Background(), cfg, logging.Discard())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Processed)
	assert.Equal(t, []string{"a.txt"}, cfg.Files)
}

func TestRunCheck(t *testing.T) {
	t.Parallel()

	cfg := setup(t)
	cfg.Exclude = []string{"sub/"}

	require.NoError(t, logic.RunCheck(cfg, logging.Discard()))

	cfg.Include = append(cfg.Include, "*.json", "[broken")

	err := logic.RunCheck(cfg, logging.Discard())
	require.ErrorIs(t, err, logic.ErrUnmatchedPatterns)
	assert.Contains(t, err.Error(), "2 pattern(s)")

	cfg.Include, cfg.Exclude = nil, nil
	require.Error(t, logic.RunCheck(cfg, logging.Discard()))
}

func TestSummaryString(t *testing.T) {
	t.Parallel()

	summary := logic.Summary{Processed: 2, Excluded: 1, Size: 2048}
	assert.Equal(t, "2 file(s) processed, 1 excluded (2.0 KiB)", summary.String())
}
