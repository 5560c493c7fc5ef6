// Package pyraseq filters, counts and parses FASTA/FASTQ files from Go.
//
// Inputs may be plain or gzip/zstd/lz4/bzip2 compressed and are read from
// the local filesystem unless WithStore supplies another backend. Filtering
// writes FASTA ">id\nseq\n" blocks; quality is never written. Failures wrap
// one of ErrSource, ErrDecode, ErrSink or ErrConfig.
package pyraseq

import (
	"context"
	"log/slog"

	"github.com/UriNeri/pyraseq/internal/appcore"
	"github.com/UriNeri/pyraseq/internal/blobstore"
	perrors "github.com/UriNeri/pyraseq/internal/errors"
	"github.com/UriNeri/pyraseq/internal/headerset"
	"github.com/UriNeri/pyraseq/internal/logging"
	"github.com/UriNeri/pyraseq/internal/output"
	"github.com/UriNeri/pyraseq/pkg/api"
)

// Error kinds; test with errors.Is.
var (
	ErrSource = perrors.ErrSource
	ErrDecode = perrors.ErrDecode
	ErrSink   = perrors.ErrSink
	ErrConfig = perrors.ErrConfig
)

// Store opens inputs and creates outputs by name.
type Store = blobstore.Store

// Record is one parsed entry. Qual is nil for FASTA input.
type Record = api.RecordV1

type settings struct {
	invert    bool
	threads   int
	batchSize int
	store     blobstore.Store
	logger    *logging.Logger
}

// Option customizes a call.
type Option func(*settings)

// WithInvert keeps records whose identifier is NOT in the header set.
func WithInvert(invert bool) Option { return func(s *settings) { s.invert = invert } }

// WithThreads sets the worker count; <= 0 means one per CPU.
func WithThreads(n int) Option { return func(s *settings) { s.threads = n } }

// WithBatchSize sets how many records each worker hand-off carries.
func WithBatchSize(n int) Option { return func(s *settings) { s.batchSize = n } }

// WithStore routes input and output names through st.
func WithStore(st Store) Option { return func(s *settings) { s.store = st } }

// WithLogger enables the summary log lines on l. Calls are silent by default.
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = &logging.Logger{Logger: l}
		}
	}
}

func apply(opts []Option) settings {
	var s settings
	for _, o := range opts {
		o(&s)
	}
	return s
}

func (s settings) env() appcore.Env { return appcore.Env{Store: s.store, Logger: s.logger} }

func (s settings) options(input string) appcore.Options {
	return appcore.Options{Input: input, Threads: s.threads, BatchSize: s.batchSize}
}

// FilterByHeaders copies the records of input whose identifier is in headers
// (or not, with WithInvert) to outputPath and returns how many records were
// read and written. "-" or "/dev/stdout" is standard output.
func FilterByHeaders(ctx context.Context, input, outputPath string, headers []string, opts ...Option) (processed, written uint64, err error) {
	s := apply(opts)
	counts, err := appcore.Filter(ctx, s.env(), appcore.FilterOptions{
		Options: s.options(input),
		Output:  outputPath,
		Headers: headerset.New(headers),
		Invert:  s.invert,
	})
	return counts.Processed, counts.Written, err
}

// FilterByHeaderFile is FilterByHeaders with identifiers read from a file,
// one per line.
func FilterByHeaderFile(ctx context.Context, input, outputPath, headerFile string, opts ...Option) (processed, written uint64, err error) {
	ids, err := headerset.LoadFile(headerFile)
	if err != nil {
		return 0, 0, err
	}
	return FilterByHeaders(ctx, input, outputPath, ids, opts...)
}

// LoadHeadersFromFile returns the trimmed non-blank lines of path in file
// order, duplicates included.
func LoadHeadersFromFile(path string) ([]string, error) {
	return headerset.LoadFile(path)
}

// CountRecords returns the number of records and total sequence length.
func CountRecords(ctx context.Context, input string, threads int, opts ...Option) (records, bases uint64, err error) {
	s := apply(append(opts, WithThreads(threads)))
	t, err := appcore.Count(ctx, s.env(), s.options(input))
	return t.Records, t.Bases, err
}

// ParseRecords returns every record of input in file order.
func ParseRecords(ctx context.Context, input string, opts ...Option) ([]Record, error) {
	s := apply(opts)
	recs, err := appcore.Parse(ctx, s.env(), s.options(input))
	if err != nil {
		return nil, err
	}
	out := make([]Record, 0, len(recs))
	for _, c := range recs {
		out = append(out, output.ToAPIRecord(c))
	}
	return out, nil
}
