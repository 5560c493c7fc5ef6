// Package errors defines the error kinds a run can fail with. Every fatal
// condition is wrapped around exactly one of these sentinels so the CLI can
// name the kind and choose an exit code.
package errors

import (
	"context"
	"errors"
)

var (
	// ErrSource marks an input that is missing, unreadable or not valid
	// FASTA/FASTQ (including broken compression streams).
	ErrSource = errors.New("source error")

	// ErrDecode marks a record whose sequence or quality bytes are not text.
	ErrDecode = errors.New("decode error")

	// ErrSink marks an output destination that cannot be created or written.
	ErrSink = errors.New("sink error")

	// ErrConfig marks missing or invalid parameters. It is always raised
	// before the first record is processed.
	ErrConfig = errors.New("configuration error")
)

// Kind names the error kind of err, or "" when err carries none.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrConfig):
		return "config"
	case errors.Is(err, ErrDecode):
		return "decode"
	case errors.Is(err, ErrSink):
		return "sink"
	case errors.Is(err, ErrSource):
		return "source"
	}
	return ""
}

// ExitCode maps err to the process exit status.
//
//	nil        -> 0
//	config     -> 2
//	source, decode, sink -> 3
//	cancelled  -> 130
//	other      -> 1
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if errors.Is(err, context.Canceled) {
		return 130
	}
	switch Kind(err) {
	case "config":
		return 2
	case "source", "decode", "sink":
		return 3
	}
	return 1
}
