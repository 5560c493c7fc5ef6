// internal/runutil/runutil.go
package runutil

import "runtime"

// DefaultBatchSize is how many records the dispatcher hands a worker at once.
const DefaultBatchSize = 256

// EffectiveThreads returns n, or the CPU count when n <= 0.
func EffectiveThreads(n int) int {
	if n <= 0 {
		return runtime.NumCPU()
	}
	return n
}

// EffectiveBatchSize returns n, or DefaultBatchSize when n <= 0.
func EffectiveBatchSize(n int) int {
	if n <= 0 {
		return DefaultBatchSize
	}
	return n
}

// ValidateThreads returns warnings for thread counts that are legal but
// unlikely to help.
func ValidateThreads(n int) []string {
	var warns []string
	if limit := 4 * runtime.NumCPU(); n > limit {
		warns = append(warns, "--threads exceeds 4x the CPU count; workers will mostly wait on the reader")
	}
	return warns
}
