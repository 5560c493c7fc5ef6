// Package appcore runs the filter, count, parse and headers operations end
// to end: it opens inputs and outputs through a blobstore, drives the engine
// over a pipeline source and logs the summary. The CLI and the public
// library share it.
package appcore

import (
	"context"
	"fmt"
	"time"

	"github.com/UriNeri/pyraseq/internal/blobstore"
	"github.com/UriNeri/pyraseq/internal/engine"
	perrors "github.com/UriNeri/pyraseq/internal/errors"
	"github.com/UriNeri/pyraseq/internal/headerset"
	"github.com/UriNeri/pyraseq/internal/logging"
	"github.com/UriNeri/pyraseq/internal/pipeline"
	"github.com/UriNeri/pyraseq/internal/progress"
	"github.com/UriNeri/pyraseq/internal/writers"
)

// Env carries the collaborators shared by every operation.
type Env struct {
	Store  blobstore.Store // nil means the local filesystem
	Logger *logging.Logger // nil means no logging
}

func (e Env) store() blobstore.Store {
	if e.Store == nil {
		return blobstore.NewLocalStore()
	}
	return e.Store
}

func (e Env) logger() *logging.Logger {
	if e.Logger == nil {
		return logging.Noop()
	}
	return e.Logger
}

// Options are the knobs common to every operation.
type Options struct {
	Input         string
	Threads       int
	BatchSize     int
	ProgressEvery uint64
}

func (o Options) source(store blobstore.Store) *pipeline.Source {
	return pipeline.NewSource(o.Input, store, pipeline.Config{BatchSize: o.BatchSize})
}

// FilterOptions configures Filter.
type FilterOptions struct {
	Options
	Output  string
	Headers *headerset.Set
	Invert  bool
}

// Filter copies matching records from Input to Output as FASTA. The output
// is flushed and closed even when the run fails; a broken pipe on close is
// not an error.
func Filter(ctx context.Context, env Env, o FilterOptions) (engine.Counts, error) {
	if o.Input == "" {
		return engine.Counts{}, fmt.Errorf("%w: input path is required", perrors.ErrConfig)
	}
	if o.Output == "" {
		return engine.Counts{}, fmt.Errorf("%w: output path is required for filtering", perrors.ErrConfig)
	}
	if o.Headers == nil {
		return engine.Counts{}, fmt.Errorf("%w: headers are required for filtering", perrors.ErrConfig)
	}

	log := env.logger().WithInput(o.Input)
	store := env.store()
	start := time.Now()

	w, err := store.Create(ctx, o.Output)
	if err != nil {
		return engine.Counts{}, fmt.Errorf("%w: create %s: %w", perrors.ErrSink, o.Output, err)
	}
	sink := engine.NewSink(w, 0)

	eo := engine.FilterOptions{
		Set:     o.Headers,
		Invert:  o.Invert,
		Threads: o.Threads,
		Sink:    sink,
	}
	if rep := progress.New(ctx, o.ProgressEvery, progress.DefaultInterval, log.LogProgress); rep != nil {
		eo.Progress = rep.Observe
	}

	src := o.source(store)
	counts, err := engine.Filter(ctx, src, eo)
	if cerr := sink.Close(); cerr != nil && err == nil && !writers.IsBrokenPipe(cerr) {
		err = cerr
	}
	if writers.IsBrokenPipe(err) {
		err = nil
	}
	if err != nil {
		log.LogFailed(ctx, "filter", err)
		return counts, err
	}
	log.LogFilterDone(ctx, stream(src), counts.Processed, counts.Written, time.Since(start))
	return counts, nil
}

// Count totals records and bases in Input.
func Count(ctx context.Context, env Env, o Options) (engine.Totals, error) {
	if o.Input == "" {
		return engine.Totals{}, fmt.Errorf("%w: input path is required", perrors.ErrConfig)
	}
	log := env.logger().WithInput(o.Input)
	start := time.Now()

	src := o.source(env.store())
	totals, err := engine.Count(ctx, src, o.Threads)
	if err != nil {
		log.LogFailed(ctx, "count", err)
		return totals, err
	}
	log.LogCountDone(ctx, stream(src), totals.Records, totals.Bases, time.Since(start))
	return totals, nil
}

// Parse returns every record of Input in file order.
func Parse(ctx context.Context, env Env, o Options) ([]engine.Collected, error) {
	if o.Input == "" {
		return nil, fmt.Errorf("%w: input path is required", perrors.ErrConfig)
	}
	log := env.logger().WithInput(o.Input)

	src := o.source(env.store())
	recs, err := engine.Collect(ctx, src)
	if err != nil {
		log.LogFailed(ctx, "parse", err)
		return nil, err
	}
	log.DebugContext(ctx, "parsed records", "records", len(recs),
		"format", src.Format(), "compression", src.Compression())
	return recs, nil
}

func stream(src *pipeline.Source) logging.Stream {
	return logging.Stream{Format: string(src.Format()), Compression: string(src.Compression())}
}

// LoadHeaders resolves a header source (file path, @file or comma list)
// and logs how many identifiers it holds.
func LoadHeaders(ctx context.Context, env Env, source string) (*headerset.Set, error) {
	set, err := headerset.Resolve(source)
	if err != nil {
		return nil, err
	}
	env.logger().LogHeadersLoaded(ctx, source, set.Len())
	return set, nil
}
