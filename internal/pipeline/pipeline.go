// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/UriNeri/pyraseq/internal/blobstore"
	perrors "github.com/UriNeri/pyraseq/internal/errors"
	"github.com/UriNeri/pyraseq/internal/fastx"
	"github.com/UriNeri/pyraseq/internal/runutil"
)

// Config controls the record pipeline.
type Config struct {
	BatchSize int // records per hand-off to a worker; <= 0 uses the default
}

// Source reads one input path each time Dispatch is called.
type Source struct {
	path  string
	store blobstore.Store
	cfg   Config

	format      fastx.Format
	compression fastx.Compression
}

// NewSource returns a Source over path. A nil store reads the local
// filesystem ("-" is stdin).
func NewSource(path string, store blobstore.Store, cfg Config) *Source {
	if store == nil {
		store = blobstore.NewLocalStore()
	}
	return &Source{path: path, store: store, cfg: cfg}
}

// Format reports the grammar seen by the last Dispatch.
func (s *Source) Format() fastx.Format { return s.format }

// Compression reports the codec seen by the last Dispatch.
func (s *Source) Compression() fastx.Compression { return s.compression }

func (s *Source) open(ctx context.Context) (*fastx.Reader, io.Closer, error) {
	raw, err := s.store.Open(ctx, s.path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: open %s: %w", perrors.ErrSource, s.path, err)
	}
	rc, comp, err := fastx.Decompress(raw)
	if err != nil {
		_ = raw.Close()
		return nil, nil, fmt.Errorf("%w: %s: %w", perrors.ErrSource, s.path, err)
	}
	s.compression = comp
	return fastx.NewReader(rc), multiCloser{rc, raw}, nil
}

// Dispatch decodes the input and calls fn for every record. With threads == 1
// fn runs on the calling goroutine in input order. Otherwise a reader
// goroutine hands batches to threads workers and the first error from either
// side cancels the rest.
func (s *Source) Dispatch(ctx context.Context, threads int, fn func(fastx.Record) error) error {
	rd, closer, err := s.open(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()
	defer func() { s.format = rd.Format() }()

	threads = runutil.EffectiveThreads(threads)
	if threads == 1 {
		return s.serial(ctx, rd, fn)
	}

	batchSize := runutil.EffectiveBatchSize(s.cfg.BatchSize)
	batches := make(chan []fastx.Record, threads*2)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(batches)
		batch := make([]fastx.Record, 0, batchSize)
		for {
			rec, err := rd.Next()
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				return s.wrap(err)
			}
			batch = append(batch, rec)
			if len(batch) < batchSize {
				continue
			}
			select {
			case batches <- batch:
			case <-gctx.Done():
				return gctx.Err()
			}
			batch = make([]fastx.Record, 0, batchSize)
		}
		if len(batch) == 0 {
			return nil
		}
		select {
		case batches <- batch:
			return nil
		case <-gctx.Done():
			return gctx.Err()
		}
	})
	for w := 0; w < threads; w++ {
		g.Go(func() error {
			for batch := range batches {
				for _, rec := range batch {
					if err := gctx.Err(); err != nil {
						return err
					}
					if err := fn(rec); err != nil {
						return err
					}
				}
			}
			return nil
		})
	}
	return g.Wait()
}

func (s *Source) serial(ctx context.Context, rd *fastx.Reader, fn func(fastx.Record) error) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		rec, err := rd.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return s.wrap(err)
		}
		if err := fn(rec); err != nil {
			return err
		}
	}
}

func (s *Source) wrap(err error) error {
	if errors.Is(err, perrors.ErrSource) {
		return fmt.Errorf("%s: %w", s.path, err)
	}
	return fmt.Errorf("%w: %s: %w", perrors.ErrSource, s.path, err)
}

type multiCloser []io.Closer

func (m multiCloser) Close() error {
	var first error
	for _, c := range m {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
