package engine

import (
	"context"
	"fmt"
	"sync/atomic"
	"unicode/utf8"

	perrors "github.com/UriNeri/pyraseq/internal/errors"
	"github.com/UriNeri/pyraseq/internal/fastx"
	"github.com/UriNeri/pyraseq/internal/runutil"
)

// Source delivers decoded records to fn. With threads > 1, fn runs on several
// goroutines at once in no particular order; with threads == 1 the calls are
// sequential and in input order. A record is only valid during its call.
// The first error returned by fn, or hit while decoding, aborts the dispatch.
type Source interface {
	Dispatch(ctx context.Context, threads int, fn func(fastx.Record) error) error
}

// ProgressFunc observes the processed total after each increment. It runs on
// worker goroutines and must be cheap.
type ProgressFunc func(processed uint64)

// FilterOptions configures Filter.
type FilterOptions struct {
	Set      Membership
	Invert   bool
	Threads  int // <= 0 means one per CPU
	Sink     *Sink
	Progress ProgressFunc
}

// Totals is the terminal result of Count.
type Totals struct {
	Records uint64
	Bases   uint64
}

// Collected is one record copied out by Collect. Qual is nil for records
// without quality.
type Collected struct {
	ID   string
	Seq  string
	Qual *string
}

func decodeErr(id, field string) error {
	return fmt.Errorf("%w: record %q: %s is not valid UTF-8", perrors.ErrDecode, id, field)
}

// Filter writes every record whose identifier passes the membership filter
// to the sink and returns how many records were seen and written. The counts
// are exact for any thread count. On error the returned counts cover only
// the records handled before the abort.
func Filter(ctx context.Context, src Source, o FilterOptions) (Counts, error) {
	if o.Set == nil {
		return Counts{}, fmt.Errorf("%w: filter requires a header set", perrors.ErrConfig)
	}
	if o.Sink == nil {
		return Counts{}, fmt.Errorf("%w: filter requires an output sink", perrors.ErrConfig)
	}

	var c Counters
	err := src.Dispatch(ctx, runutil.EffectiveThreads(o.Threads), func(rec fastx.Record) error {
		if !utf8.Valid(rec.Seq) {
			return decodeErr(rec.ID, "sequence")
		}
		n := c.IncProcessed()
		if o.Progress != nil {
			o.Progress(n)
		}
		if !ShouldEmit(o.Set, o.Invert, rec.ID) {
			return nil
		}
		if err := o.Sink.Emit(rec.ID, rec.Seq); err != nil {
			return err
		}
		c.IncWritten()
		return nil
	})
	return c.Snapshot(), err
}

// Count totals records and sequence bases. No sink, no filtering.
func Count(ctx context.Context, src Source, threads int) (Totals, error) {
	var records, bases atomic.Uint64
	err := src.Dispatch(ctx, runutil.EffectiveThreads(threads), func(rec fastx.Record) error {
		records.Add(1)
		bases.Add(uint64(len(rec.Seq)))
		return nil
	})
	return Totals{Records: records.Load(), Bases: bases.Load()}, err
}

// Collect returns every record in input order. Dispatch is forced onto a
// single worker; order comes from the source, not from sorting afterwards.
func Collect(ctx context.Context, src Source) ([]Collected, error) {
	var out []Collected
	err := src.Dispatch(ctx, 1, func(rec fastx.Record) error {
		if !utf8.Valid(rec.Seq) {
			return decodeErr(rec.ID, "sequence")
		}
		c := Collected{ID: rec.ID, Seq: string(rec.Seq)}
		if rec.HasQual {
			if !utf8.Valid(rec.Qual) {
				return decodeErr(rec.ID, "quality")
			}
			q := string(rec.Qual)
			c.Qual = &q
		}
		out = append(out, c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
