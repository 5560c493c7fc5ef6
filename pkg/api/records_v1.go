// pkg/api/records_v1.go
package api

// RecordV1 is the stable JSON/JSONL schema for one collected record.
// Qual is null for FASTA input and a string (possibly empty) for FASTQ.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type RecordV1 struct {
	ID   string  `json:"id"`
	Seq  string  `json:"seq"`
	Qual *string `json:"qual"`
}

// CountsV1 is the result of a filter run.
type CountsV1 struct {
	Processed uint64 `json:"processed"`
	Written   uint64 `json:"written"`
}

// TotalsV1 is the result of a count run.
type TotalsV1 struct {
	Records uint64 `json:"records"`
	Bases   uint64 `json:"bases"`
}
