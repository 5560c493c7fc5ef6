// internal/output/totals.go
package output

import (
	"fmt"
	"io"

	"github.com/UriNeri/pyraseq/internal/engine"
	"github.com/UriNeri/pyraseq/internal/jsonlutil"
	"github.com/UriNeri/pyraseq/pkg/api"
)

// TSVHeaderRecords is the column header for record TSV output.
const TSVHeaderRecords = "id\tseq\tqual"

// WriteTotals prints "records\tbases\n".
func WriteTotals(w io.Writer, t engine.Totals) error {
	_, err := fmt.Fprintf(w, "%d\t%d\n", t.Records, t.Bases)
	return err
}

// WriteTotalsJSON prints the v1 totals object.
func WriteTotalsJSON(w io.Writer, t engine.Totals) error {
	return jsonlutil.EncodePretty(w, api.TotalsV1{Records: t.Records, Bases: t.Bases})
}

// WriteCountsJSON prints the v1 filter counts object.
func WriteCountsJSON(w io.Writer, c engine.Counts) error {
	return jsonlutil.EncodePretty(w, api.CountsV1{Processed: c.Processed, Written: c.Written})
}
