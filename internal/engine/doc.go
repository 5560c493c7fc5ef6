// Package engine is the concurrent record-filtering core: the per-record
// decision, the shared counters, the synchronized sink and the three
// processing modes built from them. It never imports app, cli, writers or
// pipeline; keep it domain-only.
//
// Records arrive through a Source, possibly on many goroutines at once. The
// Header Set is read without locks, counters use atomic adds, and the sink
// serializes whole records behind one mutex.
package engine
