// internal/cli/options.go
package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/UriNeri/pyraseq/internal/blobstore"
	"github.com/UriNeri/pyraseq/internal/config"
	perrors "github.com/UriNeri/pyraseq/internal/errors"
	"github.com/UriNeri/pyraseq/internal/writers"
)

// Mode selects the operation a command line runs.
type Mode string

const (
	ModeFilter  Mode = "filter"
	ModeCount   Mode = "count"
	ModeParse   Mode = "parse"
	ModeHeaders Mode = "headers"
)

// Options holds all CLI flags and arguments.
type Options struct {
	Mode Mode

	// Input / output
	Input   string
	Output  string
	Headers string // file path, @file, or comma-separated identifiers
	Invert  bool

	// Performance
	Threads   int
	BatchSize int

	// Parse output format
	Format string

	// JSON prints the filter or count summary as a JSON object on stdout.
	JSON bool

	// Logging
	ConfigPath string
	LogLevel   string
	LogFormat  string
	Quiet      bool
}

// ApplyConfig fills every option the user did not set on the command line
// from cfg, then writes the merged values back into cfg.
func (o *Options) ApplyConfig(cfg *config.Config, changed func(name string) bool) {
	if !changed("threads") {
		o.Threads = cfg.Run.Threads
	}
	if !changed("batch-size") {
		o.BatchSize = cfg.Run.BatchSize
	}
	if !changed("log-level") {
		o.LogLevel = cfg.Log.Level
	}
	if !changed("log-format") {
		o.LogFormat = cfg.Log.Format
	}
	if o.Quiet {
		o.LogLevel = "warn"
	}
	cfg.Run.Threads = o.Threads
	cfg.Run.BatchSize = o.BatchSize
	cfg.Log.Level = o.LogLevel
	cfg.Log.Format = o.LogFormat
}

func usageErr(format string, a ...any) error {
	return fmt.Errorf("%w: %s", perrors.ErrConfig, fmt.Sprintf(format, a...))
}

// Validate checks mode-specific requirements. Errors carry ErrConfig.
func (o *Options) Validate() error {
	if o.Threads < 0 {
		return usageErr("--threads must be >= 0")
	}
	switch o.Mode {
	case ModeHeaders:
		if strings.TrimSpace(o.Headers) == "" {
			return usageErr("a header file is required")
		}
		return nil
	case ModeFilter, ModeCount, ModeParse:
	default:
		return usageErr("unknown mode %q", o.Mode)
	}

	if o.Input == "" {
		return usageErr("--input is required")
	}
	switch o.Mode {
	case ModeFilter:
		if strings.TrimSpace(o.Headers) == "" {
			return usageErr("--headers is required for filtering mode")
		}
		if o.Output == "" {
			return usageErr("--output is required for filtering mode")
		}
		if o.JSON && (o.Output == blobstore.StdioName || o.Output == blobstore.StdoutPath) {
			return usageErr("--json needs --output to be a file while filtering")
		}
	case ModeParse:
		if !slices.Contains(writers.RecordFormats(), o.Format) {
			return usageErr("invalid --format %q (want one of %s)", o.Format, strings.Join(writers.RecordFormats(), ", "))
		}
	}
	return nil
}
