// Package pipeline streams decoded FASTA/FASTQ records from a path to a pool
// of workers.
//
// Source is the only type; it satisfies engine.Source, so the engine never
// sees files, compression or object stores.
package pipeline
