// Package logging is the structured stderr logger used by the CLI and the
// library facade.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// Logger wraps slog.Logger with pyraseq-specific run helpers so field names
// stay consistent between the CLI and the library.
type Logger struct {
	*slog.Logger
}

// Format selects the handler encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// New builds a logger writing to w. A nil w means stderr.
func New(w io.Writer, level slog.Level, format Format) *Logger {
	if w == nil {
		w = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if format == FormatJSON {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	return &Logger{Logger: slog.New(h)}
}

// Noop discards everything.
func Noop() *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(1000)}))}
}

// ParseLevel accepts debug, info, warn/warning and error, case-insensitively.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// ParseFormat accepts text or json.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	}
	return FormatText, fmt.Errorf("unknown log format %q", s)
}

// WithInput tags every line with the input path.
func (l *Logger) WithInput(path string) *Logger {
	return &Logger{Logger: l.Logger.With("input", path)}
}

// LogHeadersLoaded logs the size of the identifier set.
func (l *Logger) LogHeadersLoaded(ctx context.Context, source string, n int) {
	l.InfoContext(ctx, fmt.Sprintf("Loaded %s headers", humanize.Comma(int64(n))),
		"source", source,
		"headers", n,
	)
}

// LogProgress is the periodic best-effort processed count.
func (l *Logger) LogProgress(ctx context.Context, processed uint64) {
	l.InfoContext(ctx, fmt.Sprintf("Processed %s records", humanize.Comma(int64(processed))),
		"processed", processed,
	)
}

// Stream describes the decoded input: record grammar and compression codec.
// Empty fields are omitted.
type Stream struct {
	Format      string
	Compression string
}

func (s Stream) attrs() []any {
	var out []any
	if s.Format != "" {
		out = append(out, "format", s.Format)
	}
	if s.Compression != "" {
		out = append(out, "compression", s.Compression)
	}
	return out
}

// LogFilterDone logs the final filter summary.
func (l *Logger) LogFilterDone(ctx context.Context, in Stream, processed, written uint64, elapsed time.Duration) {
	attrs := append([]any{
		"processed", processed,
		"written", written,
		"elapsed", elapsed.Round(time.Millisecond),
	}, in.attrs()...)
	l.InfoContext(ctx, fmt.Sprintf("Processed %s records, written %s records",
		humanize.Comma(int64(processed)), humanize.Comma(int64(written))), attrs...)
}

// LogCountDone logs the final count summary.
func (l *Logger) LogCountDone(ctx context.Context, in Stream, records, bases uint64, elapsed time.Duration) {
	attrs := append([]any{
		"records", records,
		"bases", bases,
		"elapsed", elapsed.Round(time.Millisecond),
	}, in.attrs()...)
	l.InfoContext(ctx, fmt.Sprintf("Counted %s records, %s bases",
		humanize.Comma(int64(records)), humanize.Comma(int64(bases))), attrs...)
}

// LogFailed logs a run that ended with err.
func (l *Logger) LogFailed(ctx context.Context, op string, err error) {
	l.ErrorContext(ctx, op+" failed", "error", err)
}
