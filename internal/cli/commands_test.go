package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UriNeri/pyraseq/internal/config"
	perrors "github.com/UriNeri/pyraseq/internal/errors"
)

type captured struct {
	called bool
	opts   Options
	cfg    *config.Config
}

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("HOME", dir)
	for _, k := range []string{"PYRASEQ_THREADS", "PYRASEQ_BATCH_SIZE", "PYRASEQ_LOG_LEVEL", "PYRASEQ_LOG_FORMAT"} {
		t.Setenv(k, "")
	}
	return dir
}

func execute(t *testing.T, args ...string) (*captured, error) {
	t.Helper()
	c := &captured{}
	root := NewRootCommand(func(_ *cobra.Command, o Options, cfg *config.Config) error {
		c.called = true
		c.opts = o
		c.cfg = cfg
		return nil
	})
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	return c, root.Execute()
}

func TestFilterFlags(t *testing.T) {
	isolate(t)
	c, err := execute(t, "-i", "in.fa", "-o", "out.fa", "-H", "id1,id2", "-v", "-t", "3")
	require.NoError(t, err)
	require.True(t, c.called)
	assert.Equal(t, ModeFilter, c.opts.Mode)
	assert.Equal(t, "in.fa", c.opts.Input)
	assert.Equal(t, "out.fa", c.opts.Output)
	assert.Equal(t, "id1,id2", c.opts.Headers)
	assert.True(t, c.opts.Invert)
	assert.Equal(t, 3, c.opts.Threads)
	assert.Equal(t, 3, c.cfg.Run.Threads)
	assert.Equal(t, 256, c.opts.BatchSize)
}

func TestLongFlags(t *testing.T) {
	isolate(t)
	c, err := execute(t, "--input", "in.fa", "--output", "-", "--headers", "@ids.txt", "--invert", "--threads", "2")
	require.NoError(t, err)
	assert.Equal(t, "-", c.opts.Output)
	assert.Equal(t, "@ids.txt", c.opts.Headers)
	assert.True(t, c.opts.Invert)
}

func TestFilterRequiresHeadersAndOutput(t *testing.T) {
	isolate(t)
	c, err := execute(t, "-i", "in.fa", "-o", "out.fa")
	assert.ErrorIs(t, err, perrors.ErrConfig)
	assert.Contains(t, err.Error(), "--headers is required for filtering mode")
	assert.False(t, c.called)

	_, err = execute(t, "-i", "in.fa", "-H", "a")
	assert.ErrorIs(t, err, perrors.ErrConfig)
	assert.Contains(t, err.Error(), "--output is required")

	_, err = execute(t, "-o", "x", "-H", "a")
	assert.ErrorIs(t, err, perrors.ErrConfig)
}

func TestCountFlagAndSubcommand(t *testing.T) {
	isolate(t)
	c, err := execute(t, "-i", "in.fa", "--count")
	require.NoError(t, err)
	assert.Equal(t, ModeCount, c.opts.Mode)

	c, err = execute(t, "count", "-i", "in.fa", "-t", "4")
	require.NoError(t, err)
	assert.Equal(t, ModeCount, c.opts.Mode)
	assert.Equal(t, 4, c.opts.Threads)
}

func TestJSONSummaryFlag(t *testing.T) {
	isolate(t)
	c, err := execute(t, "count", "-i", "in.fa", "--json")
	require.NoError(t, err)
	assert.True(t, c.opts.JSON)

	c, err = execute(t, "-i", "in.fa", "-o", "out.fa", "-H", "a", "--json")
	require.NoError(t, err)
	assert.True(t, c.opts.JSON)

	for _, out := range []string{"-", "/dev/stdout"} {
		c, err = execute(t, "-i", "in.fa", "-o", out, "-H", "a", "--json")
		assert.ErrorIs(t, err, perrors.ErrConfig)
		assert.Contains(t, err.Error(), "--json needs --output to be a file")
		assert.False(t, c.called)
	}
}

func TestHeadersFlagHelpNamesFilePrefix(t *testing.T) {
	root := NewRootCommand(nil)
	flag := root.Flags().Lookup("headers")
	require.NotNil(t, flag)
	assert.Contains(t, flag.Usage, "a leading @ always names a file")
	assert.Contains(t, root.Long, "a leading '@' always means a file")
}

func TestParseSubcommand(t *testing.T) {
	isolate(t)
	c, err := execute(t, "parse", "-i", "in.fq")
	require.NoError(t, err)
	assert.Equal(t, ModeParse, c.opts.Mode)
	assert.Equal(t, "jsonl", c.opts.Format)

	_, err = execute(t, "parse", "-i", "in.fq", "--format", "xml")
	assert.ErrorIs(t, err, perrors.ErrConfig)
}

func TestHeadersSubcommand(t *testing.T) {
	isolate(t)
	c, err := execute(t, "headers", "ids.txt")
	require.NoError(t, err)
	assert.Equal(t, ModeHeaders, c.opts.Mode)
	assert.Equal(t, "ids.txt", c.opts.Headers)

	_, err = execute(t, "headers")
	assert.ErrorIs(t, err, perrors.ErrConfig)
}

func TestUsageErrorsAreConfigKind(t *testing.T) {
	isolate(t)
	for _, args := range [][]string{
		{"--no-such-flag"},
		{"-t", "many"},
		{"-t", "-1", "-i", "x", "--count"},
		{"stray", "-i", "x", "--count"},
	} {
		_, err := execute(t, args...)
		assert.ErrorIs(t, err, perrors.ErrConfig, "%v", args)
	}
}

func TestConfigFileFeedsUnsetFlags(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("run:\n  threads: 6\n  batch_size: 32\nlog:\n  level: debug\n"), 0o644))

	c, err := execute(t, "--config", path, "-i", "in.fa", "--count", "--batch-size", "8")
	require.NoError(t, err)
	assert.Equal(t, 6, c.opts.Threads)
	assert.Equal(t, 8, c.opts.BatchSize)
	assert.Equal(t, "debug", c.opts.LogLevel)

	c, err = execute(t, "--config", path, "-i", "in.fa", "--count", "-q")
	require.NoError(t, err)
	assert.Equal(t, "warn", c.opts.LogLevel)
}

func TestVersionFlag(t *testing.T) {
	isolate(t)
	c, err := execute(t, "--version")
	require.NoError(t, err)
	assert.False(t, c.called)
}
