// internal/writers/jsonl.go
package writers

import (
	"encoding/json"
	"io"

	"github.com/UriNeri/pyraseq/internal/engine"
	"github.com/UriNeri/pyraseq/internal/jsonlutil"
	"github.com/UriNeri/pyraseq/internal/output"
)

// StartRecordJSONLWriter streams each engine.Collected as one JSON line (v1).
func StartRecordJSONLWriter(out io.Writer, bufSize int) (chan<- engine.Collected, <-chan error) {
	return jsonlutil.Start[engine.Collected](out, bufSize,
		func(enc *json.Encoder, c engine.Collected) error {
			return enc.Encode(output.ToAPIRecord(c))
		},
		IsBrokenPipe,
	)
}

func writeRecordsJSONL(w io.Writer, list []engine.Collected) error {
	in, done := StartRecordJSONLWriter(w, 0)
	for _, c := range list {
		in <- c
	}
	close(in)
	return <-done
}
