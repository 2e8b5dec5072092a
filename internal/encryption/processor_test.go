package encryption_test

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/rescrypt/internal/config"
	"github.com/idelchi/rescrypt/internal/encryption"
	"github.com/idelchi/rescrypt/internal/logging"
	"github.com/idelchi/rescrypt/pkg/cryptor"
)

func newConfig(t *testing.T, files map[string]string) *config.Config {
	t.Helper()

	root := t.TempDir()

	cfg := &config.Config{
		Password:     "secret",
		Salt:         "0102030405060708",
		SaltEncoding: config.SaltHex,
		Root:         root,
		Parallel:     1,
	}

	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))

		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		cfg.Files = append(cfg.Files, name)
	}

	sort.Strings(cfg.Files)

	return cfg
}

func read(t *testing.T, cfg *config.Config, name string) string {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(cfg.Root, filepath.FromSlash(name)))
	require.NoError(t, err)

	return string(data)
}

func run(t *testing.T, cfg *config.Config, direction cryptor.Direction) (int, error) {
	t.Helper()

	proc, err := encryption.NewProcessor(cfg, direction, logging.Discard())
	require.NoError(t, err)

	processed, _, err := proc.ProcessFiles(context.Background())

	return processed, err
}

func TestProcessFiles_RoundTrip(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"a.txt":          "hello world",
		"config/app.cfg": "key=value\n",
		"empty.txt":      "",
	}

	for _, parallel := range []int{1, 4} {
		cfg := newConfig(t, files)
		cfg.Parallel = parallel

		for range 2 {
			processed, err := run(t, cfg, cryptor.Encrypt)
			require.NoError(t, err)
			assert.Equal(t, len(files), processed)

			assert.Equal(t, "aloBggt6lOsCh+JTe/0m5g==", read(t, cfg, "a.txt"))

			processed, err = run(t, cfg, cryptor.Decrypt)
			require.NoError(t, err)
			assert.Equal(t, len(files), processed)

			for name, content := range files {
				assert.Equal(t, content, read(t, cfg, name), name)
			}
		}
	}
}

func TestProcessFiles_NoFiles(t *testing.T) {
	t.Parallel()

	cfg := newConfig(t, nil)

	processed, err := run(t, cfg, cryptor.Encrypt)
	require.NoError(t, err)
	assert.Zero(t, processed)
}

func TestProcessFiles_FailureLeavesFilesUntouched(t *testing.T) {
	t.Parallel()

	for _, parallel := range []int{1, 3} {
		cfg := newConfig(t, map[string]string{
			"a.txt": "aloBggt6lOsCh+JTe/0m5g==",
			"b.txt": "this is not ciphertext",
			"c.txt": "aloBggt6lOsCh+JTe/0m5g==",
		})
		cfg.Files = []string{"a.txt", "b.txt", "c.txt"}
		cfg.Parallel = parallel

		processed, err := run(t, cfg, cryptor.Decrypt)
		require.Error(t, err)
		assert.Zero(t, processed)

		var transformErr *encryption.TransformError
		require.ErrorAs(t, err, &transformErr)
		assert.Equal(t, "b.txt", transformErr.Path)
		require.ErrorIs(t, err, cryptor.ErrDecryptionFailed)

		assert.Equal(t, "aloBggt6lOsCh+JTe/0m5g==", read(t, cfg, "a.txt"))
		assert.Equal(t, "this is not ciphertext", read(t, cfg, "b.txt"))
		assert.Equal(t, "aloBggt6lOsCh+JTe/0m5g==", read(t, cfg, "c.txt"))
	}
}

func TestProcessFiles_MissingFile(t *testing.T) {
	t.Parallel()

	cfg := newConfig(t, map[string]string{"a.txt": "plain"})
	cfg.Files = append(cfg.Files, "gone.txt")

	_, err := run(t, cfg, cryptor.Encrypt)

	var transformErr *encryption.TransformError
	require.ErrorAs(t, err, &transformErr)
	assert.Equal(t, "gone.txt", transformErr.Path)
	require.ErrorIs(t, err, os.ErrNotExist)
	assert.Equal(t, "plain", read(t, cfg, "a.txt"))
}

func TestProcessFiles_Canceled(t *testing.T) {
	t.Parallel()

	cfg := newConfig(t, map[string]string{"a.txt": "plain"})

	proc, err := encryption.NewProcessor(cfg, cryptor.Encrypt, logging.Discard())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err = proc.ProcessFiles(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, "plain", read(t, cfg, "a.txt"))
}

func TestNewProcessor_Credential(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		modify  func(cfg *config.Config)
		wantErr error
	}{
		{
			name:    "empty password",
			modify:  func(cfg *config.Config) { cfg.Password = "" },
			wantErr: cryptor.ErrInvalidCredential,
		},
		{
			name:    "empty salt",
			modify:  func(cfg *config.Config) { cfg.Salt = "" },
			wantErr: cryptor.ErrInvalidCredential,
		},
		{
			name:   "bad hex salt",
			modify: func(cfg *config.Config) { cfg.Salt = "zz" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := newConfig(t, nil)
			tt.modify(cfg)

			_, err := encryption.NewProcessor(cfg, cryptor.Encrypt, logging.Discard())
			require.Error(t, err)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestNewProcessor_PasswordFile(t *testing.T) {
	t.Parallel()

	cfg := newConfig(t, map[string]string{"a.txt": "hello world"})
	cfg.Password = ""
	cfg.PasswordFile = filepath.Join(t.TempDir(), "password")

	require.NoError(t, os.WriteFile(cfg.PasswordFile, []byte("secret\r\nignored"), 0o600))

	_, err := run(t, cfg, cryptor.Encrypt)
	require.NoError(t, err)
	assert.Equal(t, "aloBggt6lOsCh+JTe/0m5g==", read(t, cfg, "a.txt"))
}
