package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	perrors "github.com/UriNeri/pyraseq/internal/errors"
)

// isolate points discovery at an empty working directory and home.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("HOME", dir)
	for _, k := range []string{
		"PYRASEQ_THREADS", "PYRASEQ_BATCH_SIZE", "PYRASEQ_PROGRESS_EVERY",
		"PYRASEQ_LOG_LEVEL", "PYRASEQ_LOG_FORMAT", "PYRASEQ_S3_ENDPOINT",
		"PYRASEQ_S3_REGION", "PYRASEQ_S3_INSECURE",
		"AWS_ACCESS_KEY_ID", "AWS_SECRET_ACCESS_KEY", "AWS_SESSION_TOKEN",
	} {
		t.Setenv(k, "")
	}
	return dir
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoadDiscoveredFile(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".pyraseq.yml"), []byte(`
run:
  threads: 4
  batch_size: 64
log:
  format: json
storage:
  endpoint: localhost:9000
`), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Run.Threads)
	assert.Equal(t, 64, cfg.Run.BatchSize)
	assert.Equal(t, uint64(100_000), cfg.Run.ProgressEvery)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "localhost:9000", cfg.Storage.Endpoint)
}

func TestLoadHomeFile(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".pyraseq"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".pyraseq", "config.yaml"), []byte("run:\n  threads: 3\n"), 0o644))
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Run.Threads)
}

func TestEnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("run:\n  threads: 4\nlog:\n  level: debug\n"), 0o644))
	t.Setenv("PYRASEQ_THREADS", "2")
	t.Setenv("PYRASEQ_PROGRESS_EVERY", "0")
	t.Setenv("PYRASEQ_S3_INSECURE", "yes")
	t.Setenv("AWS_ACCESS_KEY_ID", "ak")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "sk")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Run.Threads)
	assert.Zero(t, cfg.Run.ProgressEvery)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Storage.Insecure)
	assert.Equal(t, "ak", cfg.Storage.AccessKey)
	assert.NoError(t, cfg.Validate())
}

func TestLoadErrorsAreConfigKind(t *testing.T) {
	dir := isolate(t)

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, perrors.ErrConfig)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("run: [unterminated"), 0o644))
	_, err = Load(bad)
	assert.ErrorIs(t, err, perrors.ErrConfig)

	t.Setenv("PYRASEQ_BATCH_SIZE", "lots")
	_, err = Load("")
	assert.ErrorIs(t, err, perrors.ErrConfig)
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"negative threads": func(c *Config) { c.Run.Threads = -1 },
		"zero batch":       func(c *Config) { c.Run.BatchSize = 0 },
		"bad level":        func(c *Config) { c.Log.Level = "loud" },
		"bad format":       func(c *Config) { c.Log.Format = "xml" },
		"half credentials": func(c *Config) { c.Storage.AccessKey = "ak" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), perrors.ErrConfig)
		})
	}
}
