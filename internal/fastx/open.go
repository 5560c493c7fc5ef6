package fastx

import (
	"bufio"
	"bytes"
	"compress/bzip2"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/klauspost/pgzip"
	"github.com/pierrec/lz4/v4"
)

// Compression names the container wrapped around a sequence stream.
type Compression string

const (
	None  Compression = "none"
	Gzip  Compression = "gzip"
	Zstd  Compression = "zstd"
	LZ4   Compression = "lz4"
	Bzip2 Compression = "bzip2"
)

var (
	magicGzip  = []byte{0x1f, 0x8b}
	magicZstd  = []byte{0x28, 0xb5, 0x2f, 0xfd}
	magicLZ4   = []byte{0x04, 0x22, 0x4d, 0x18}
	magicBzip2 = []byte("BZh")
)

// multiReadCloser closes multiple io.Closers when Close() is called.
type multiReadCloser struct {
	io.Reader
	closers []io.Closer
}

func (m *multiReadCloser) Close() error {
	var err error
	for _, c := range m.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// Detect sniffs the compression container from the leading bytes.
func Detect(head []byte) Compression {
	switch {
	case bytes.HasPrefix(head, magicGzip):
		return Gzip
	case bytes.HasPrefix(head, magicZstd):
		return Zstd
	case bytes.HasPrefix(head, magicLZ4):
		return LZ4
	case bytes.HasPrefix(head, magicBzip2):
		return Bzip2
	}
	return None
}

// Decompress wraps r in the decoder matching its magic number. Plain input is
// passed through. Closing the result releases decoder resources only; the
// caller still owns r.
func Decompress(r io.Reader) (io.ReadCloser, Compression, error) {
	br := bufio.NewReaderSize(r, 1<<20)
	head, _ := br.Peek(4)

	switch c := Detect(head); c {
	case Gzip:
		gr, err := pgzip.NewReader(br)
		if err != nil {
			return nil, c, err
		}
		return &multiReadCloser{Reader: gr, closers: []io.Closer{gr}}, c, nil
	case Zstd:
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, c, err
		}
		return &multiReadCloser{Reader: zr, closers: []io.Closer{closerFunc(func() error { zr.Close(); return nil })}}, c, nil
	case LZ4:
		return io.NopCloser(lz4.NewReader(br)), c, nil
	case Bzip2:
		return io.NopCloser(bzip2.NewReader(br)), c, nil
	default:
		return io.NopCloser(br), None, nil
	}
}
