// Package writers turns collected records and run totals into serialized
// outputs.
//
// Design:
//   - Writers own all presentation knowledge (TSV/JSON/JSONL/FASTX).
//   - Engine stays domain-only; pipeline stays orchestration-only.
//   - JSON/JSONL go through pkg/api (v1) for a stable wire format.
package writers
