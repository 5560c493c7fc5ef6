// internal/writers/registry.go
package writers

import (
	"fmt"
	"io"
	"sort"

	"github.com/UriNeri/pyraseq/internal/engine"
	"github.com/UriNeri/pyraseq/internal/output"
)

// RecordWriterFunc serializes an ordered record list.
type RecordWriterFunc func(w io.Writer, list []engine.Collected) error

// RecordWriters maps a format name to its handler. Last registration wins.
var RecordWriters = map[string]RecordWriterFunc{}

func RegisterRecords(format string, fn RecordWriterFunc) { RecordWriters[format] = fn }

func init() {
	RegisterRecords("jsonl", writeRecordsJSONL)
	RegisterRecords("json", output.WriteRecordsJSON)
	RegisterRecords("tsv", func(w io.Writer, list []engine.Collected) error {
		return output.WriteRecordsTSV(w, list, true)
	})
	RegisterRecords("fastx", output.WriteRecordsFASTX)
}

// RecordFormats lists registered format names, sorted.
func RecordFormats() []string {
	out := make([]string, 0, len(RecordWriters))
	for k := range RecordWriters {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// WriteRecords dispatches to the writer registered for format. A broken
// pipe downstream is not reported.
func WriteRecords(format string, w io.Writer, list []engine.Collected) error {
	fn, ok := RecordWriters[format]
	if !ok {
		return fmt.Errorf("unknown record format %q (no writer registered)", format)
	}
	if err := fn(w, list); err != nil && !IsBrokenPipe(err) {
		return err
	}
	return nil
}
