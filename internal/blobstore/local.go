package blobstore

import (
	"context"
	"io"
	"os"
)

// Stdio names understood by LocalStore.
const (
	StdioName  = "-"
	StdoutPath = "/dev/stdout"
)

// LocalStore implements Store on the local file system and standard streams.
type LocalStore struct {
	Stdin  io.Reader
	Stdout io.Writer
}

// NewLocalStore returns a LocalStore bound to the process stdin and stdout.
func NewLocalStore() *LocalStore {
	return &LocalStore{Stdin: os.Stdin, Stdout: os.Stdout}
}

// IsStdout reports whether name selects standard output.
func IsStdout(name string) bool {
	return name == StdioName || name == StdoutPath
}

// Open opens a file, or stdin for "-".
func (s *LocalStore) Open(_ context.Context, name string) (io.ReadCloser, error) {
	if name == StdioName {
		return io.NopCloser(s.Stdin), nil
	}
	return os.Open(name)
}

// Create creates or truncates a file; "-" and "/dev/stdout" select stdout,
// which is never closed.
func (s *LocalStore) Create(_ context.Context, name string) (io.WriteCloser, error) {
	if IsStdout(name) {
		return nopWriteCloser{s.Stdout}, nil
	}
	return os.Create(name)
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }
