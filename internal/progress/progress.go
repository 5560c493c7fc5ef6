// Package progress emits best-effort processed counts while a run is in
// flight.
package progress

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultEvery is the record cadence of progress lines.
	DefaultEvery = 100_000
	// DefaultInterval caps how often a line may be written.
	DefaultInterval = time.Second
)

// Reporter is safe for concurrent Observe calls. The zero value is not
// usable; a nil *Reporter ignores everything.
type Reporter struct {
	ctx   context.Context
	every uint64
	lim   *rate.Limiter
	emit  func(ctx context.Context, processed uint64)
}

// New returns a Reporter calling emit on every multiple of every records,
// at most once per interval. every == 0 disables reporting; interval <= 0
// removes the time cap.
func New(ctx context.Context, every uint64, interval time.Duration, emit func(context.Context, uint64)) *Reporter {
	if every == 0 || emit == nil {
		return nil
	}
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &Reporter{ctx: ctx, every: every, lim: rate.NewLimiter(limit, 1), emit: emit}
}

// Observe receives a processed total. Totals arrive out of order from
// concurrent workers, so lines may be skipped or non-monotonic.
func (r *Reporter) Observe(processed uint64) {
	if r == nil || processed%r.every != 0 {
		return
	}
	if !r.lim.Allow() {
		return
	}
	r.emit(r.ctx, processed)
}
