// Package fastx decodes FASTA and FASTQ streams into records. The format is
// chosen from the first non-blank byte ('>' or '@'); compression is handled
// separately by Decompress.
package fastx

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	perrors "github.com/UriNeri/pyraseq/internal/errors"
)

// Format is the record grammar of a stream.
type Format string

const (
	FormatUnknown Format = ""
	FASTA         Format = "fasta"
	FASTQ         Format = "fastq"
)

// Record is one decoded entry. Qual is only meaningful when HasQual is set.
type Record struct {
	ID      string
	Seq     []byte
	Qual    []byte
	HasQual bool
}

// Reader yields records one at a time. It is not safe for concurrent use.
type Reader struct {
	br     *bufio.Reader
	format Format
	lineNo int

	// long holds lines that did not fit in br's buffer.
	long []byte

	peeked  []byte
	hasPeek bool

	readErr error
	err     error
}

// NewReader returns a Reader over an uncompressed stream. Line length is
// unbounded.
func NewReader(r io.Reader) *Reader {
	return &Reader{br: bufio.NewReaderSize(r, 64*1024)}
}

// Format reports the detected grammar, FormatUnknown before the first Next.
func (r *Reader) Format() Format { return r.format }

// Next returns the next record, or io.EOF once the input is exhausted. After
// the first error every call returns the same error.
func (r *Reader) Next() (Record, error) {
	if r.err != nil {
		return Record{}, r.err
	}
	if r.format == FormatUnknown {
		line, ok := r.nextNonBlank()
		if !ok {
			r.err = r.endErr()
			return Record{}, r.err
		}
		switch line[0] {
		case '>':
			r.format = FASTA
		case '@':
			r.format = FASTQ
		default:
			r.err = r.malformed("expected '>' or '@' at start of input")
			return Record{}, r.err
		}
		r.unread(line)
	}

	var (
		rec Record
		err error
	)
	if r.format == FASTA {
		rec, err = r.nextFASTA()
	} else {
		rec, err = r.nextFASTQ()
	}
	if err != nil {
		r.err = err
		return Record{}, err
	}
	return rec, nil
}

func (r *Reader) nextFASTA() (Record, error) {
	hdr, ok := r.nextNonBlank()
	if !ok {
		return Record{}, r.endErr()
	}
	if hdr[0] != '>' {
		return Record{}, r.malformed("expected FASTA header")
	}
	rec := Record{ID: parseHeaderID(hdr[1:])}
	for {
		line, ok := r.nextNonBlank()
		if !ok {
			if err := r.ioErr(); err != nil {
				return Record{}, r.scanErr(err)
			}
			break
		}
		if line[0] == '>' {
			r.unread(line)
			break
		}
		rec.Seq = append(rec.Seq, bytes.TrimSpace(line)...)
	}
	return rec, nil
}

func (r *Reader) nextFASTQ() (Record, error) {
	hdr, ok := r.nextNonBlank()
	if !ok {
		return Record{}, r.endErr()
	}
	if hdr[0] != '@' {
		return Record{}, r.malformed("expected FASTQ header")
	}
	rec := Record{ID: parseHeaderID(hdr[1:]), HasQual: true, Qual: []byte{}}

	for {
		line, ok := r.nextLine()
		if !ok {
			return Record{}, r.truncated(rec.ID)
		}
		if len(line) > 0 && line[0] == '+' {
			break
		}
		rec.Seq = append(rec.Seq, bytes.TrimSpace(line)...)
	}
	// The first quality line may start with '@'. Continuation lines are read
	// only while the quality is short and stop at the next '@' header.
	for first := true; first || len(rec.Qual) < len(rec.Seq); first = false {
		line, ok := r.nextLine()
		if !ok {
			if err := r.ioErr(); err != nil {
				return Record{}, r.scanErr(err)
			}
			if first {
				return Record{}, r.truncated(rec.ID)
			}
			break
		}
		if !first && len(line) > 0 && line[0] == '@' {
			r.unread(line)
			break
		}
		rec.Qual = append(rec.Qual, bytes.TrimSpace(line)...)
	}
	if len(rec.Qual) != len(rec.Seq) {
		return Record{}, r.malformed(fmt.Sprintf("record %q: quality length %d != sequence length %d",
			rec.ID, len(rec.Qual), len(rec.Seq)))
	}
	return rec, nil
}

// nextLine returns the next line without its terminator, honoring unread.
func (r *Reader) nextLine() ([]byte, bool) {
	if r.hasPeek {
		r.hasPeek = false
		return r.peeked, true
	}
	if r.readErr != nil {
		return nil, false
	}
	line, err := r.br.ReadSlice('\n')
	if err == bufio.ErrBufferFull {
		r.long = append(r.long[:0], line...)
		for err == bufio.ErrBufferFull {
			line, err = r.br.ReadSlice('\n')
			r.long = append(r.long, line...)
		}
		line = r.long
	}
	if err != nil && err != io.EOF {
		r.readErr = err
		return nil, false
	}
	if err == io.EOF {
		r.readErr = io.EOF
		if len(line) == 0 {
			return nil, false
		}
	}
	r.lineNo++
	line = bytes.TrimSuffix(line, []byte{'\n'})
	return bytes.TrimSuffix(line, []byte{'\r'}), true
}

func (r *Reader) nextNonBlank() ([]byte, bool) {
	for {
		line, ok := r.nextLine()
		if !ok {
			return nil, false
		}
		if len(bytes.TrimSpace(line)) > 0 {
			return line, true
		}
	}
}

// unread pushes line back; it is copied since the read buffer is reused.
func (r *Reader) unread(line []byte) {
	r.peeked = append(r.peeked[:0], line...)
	r.hasPeek = true
}

// ioErr reports a read failure other than the end of input.
func (r *Reader) ioErr() error {
	if r.readErr == io.EOF {
		return nil
	}
	return r.readErr
}

func (r *Reader) endErr() error {
	if err := r.ioErr(); err != nil {
		return r.scanErr(err)
	}
	return io.EOF
}

func (r *Reader) scanErr(err error) error {
	return fmt.Errorf("%w: line %d: %w", perrors.ErrSource, r.lineNo, err)
}

func (r *Reader) malformed(msg string) error {
	return fmt.Errorf("%w: line %d: %s", perrors.ErrSource, r.lineNo, msg)
}

func (r *Reader) truncated(id string) error {
	if err := r.ioErr(); err != nil {
		return r.scanErr(err)
	}
	return r.malformed(fmt.Sprintf("record %q: unexpected end of input", id))
}

func parseHeaderID(hdr []byte) string {
	hdr = bytes.TrimSpace(hdr)
	if i := bytes.IndexAny(hdr, " \t"); i >= 0 {
		return string(hdr[:i])
	}
	return string(hdr)
}
