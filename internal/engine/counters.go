package engine

import "sync/atomic"

// Counts is the terminal result of a filter run.
type Counts struct {
	Processed uint64
	Written   uint64
}

// Counters accumulates processed/written totals from any number of workers.
// Values read while a run is in flight are progress hints only.
type Counters struct {
	processed atomic.Uint64
	written   atomic.Uint64
}

// IncProcessed counts one seen record and returns the new total.
func (c *Counters) IncProcessed() uint64 { return c.processed.Add(1) }

// IncWritten counts one emitted record and returns the new total.
func (c *Counters) IncWritten() uint64 { return c.written.Add(1) }

func (c *Counters) Processed() uint64 { return c.processed.Load() }
func (c *Counters) Written() uint64   { return c.written.Load() }

// Snapshot reads both counters. Exact only once every worker has returned.
func (c *Counters) Snapshot() Counts {
	return Counts{Processed: c.processed.Load(), Written: c.written.Load()}
}
