package engine

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sync"

	perrors "github.com/UriNeri/pyraseq/internal/errors"
)

// ErrSinkClosed is returned by Emit after Close.
var ErrSinkClosed = errors.New("sink closed")

// DefaultSinkBuffer is the buffered-writer size used when none is given.
const DefaultSinkBuffer = 256 << 10

// Sink serializes FASTA blocks from concurrent workers onto one stream.
// Each Emit holds the mutex for the whole record, so the header and sequence
// lines of one record are never split by another record's bytes.
type Sink struct {
	mu     sync.Mutex
	bw     *bufio.Writer
	dst    io.Writer
	closed bool
}

// NewSink wraps w. If w is an io.Closer it is closed by Close.
func NewSink(w io.Writer, bufSize int) *Sink {
	if bufSize <= 0 {
		bufSize = DefaultSinkBuffer
	}
	return &Sink{bw: bufio.NewWriterSize(w, bufSize), dst: w}
}

// Emit appends ">id\nseq\n".
func (s *Sink) Emit(id string, seq []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSinkClosed
	}
	_ = s.bw.WriteByte('>')
	_, _ = s.bw.WriteString(id)
	_ = s.bw.WriteByte('\n')
	_, _ = s.bw.Write(seq)
	if err := s.bw.WriteByte('\n'); err != nil {
		// bufio keeps the first write error; any of the calls above
		// failing surfaces here.
		return fmt.Errorf("%w: write record %q: %w", perrors.ErrSink, id, err)
	}
	return nil
}

func (s *Sink) flushLocked() error {
	if err := s.bw.Flush(); err != nil {
		return fmt.Errorf("%w: flush: %w", perrors.ErrSink, err)
	}
	return nil
}

// Close flushes and closes the destination. Calling it again is a no-op.
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	err := s.flushLocked()
	if c, ok := s.dst.(io.Closer); ok {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: close: %w", perrors.ErrSink, cerr)
		}
	}
	return err
}
