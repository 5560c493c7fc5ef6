// internal/output/records.go
package output

import (
	"bufio"
	"io"

	"github.com/UriNeri/pyraseq/internal/engine"
	"github.com/UriNeri/pyraseq/internal/jsonlutil"
	"github.com/UriNeri/pyraseq/pkg/api"
)

// ToAPIRecord converts a collected record to the stable wire schema (v1).
func ToAPIRecord(c engine.Collected) api.RecordV1 {
	v := api.RecordV1{ID: c.ID, Seq: c.Seq}
	if c.Qual != nil {
		q := *c.Qual
		v.Qual = &q
	}
	return v
}

// FormatRecordRowTSV returns "id\tseq\tqual" without a trailing newline.
// A missing quality is rendered as ".".
func FormatRecordRowTSV(c engine.Collected) string {
	q := "."
	if c.Qual != nil {
		q = *c.Qual
	}
	return c.ID + "\t" + c.Seq + "\t" + q
}

// WriteRecordsTSV writes an optional header then one row per record.
func WriteRecordsTSV(w io.Writer, list []engine.Collected, header bool) error {
	bw := bufio.NewWriter(w)
	if header {
		if _, err := bw.WriteString(TSVHeaderRecords + "\n"); err != nil {
			return err
		}
	}
	for _, c := range list {
		if _, err := bw.WriteString(FormatRecordRowTSV(c) + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteRecordsJSON writes a single JSON array of v1 records (pretty-indented).
func WriteRecordsJSON(w io.Writer, list []engine.Collected) error {
	out := make([]api.RecordV1, 0, len(list))
	for _, c := range list {
		out = append(out, ToAPIRecord(c))
	}
	return jsonlutil.EncodePretty(w, out)
}

// WriteRecordsFASTX writes records back as FASTA, or FASTQ when quality is
// present.
func WriteRecordsFASTX(w io.Writer, list []engine.Collected) error {
	bw := bufio.NewWriter(w)
	for _, c := range list {
		if c.Qual == nil {
			_, _ = bw.WriteString(">" + c.ID + "\n" + c.Seq + "\n")
			continue
		}
		_, _ = bw.WriteString("@" + c.ID + "\n" + c.Seq + "\n+\n" + *c.Qual + "\n")
	}
	return bw.Flush()
}
