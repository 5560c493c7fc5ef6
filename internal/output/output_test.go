package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UriNeri/pyraseq/internal/engine"
	"github.com/UriNeri/pyraseq/pkg/api"
)

func strp(s string) *string { return &s }

var sample = []engine.Collected{
	{ID: "A", Seq: "ACGT"},
	{ID: "B", Seq: "GG", Qual: strp("II")},
	{ID: "C", Seq: "", Qual: strp("")},
}

func TestWriteTotals(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTotals(&buf, engine.Totals{Records: 3, Bases: 12}))
	assert.Equal(t, "3\t12\n", buf.String())
}

func TestWriteRecordsTSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteRecordsTSV(&buf, sample, true))
	assert.Equal(t, "id\tseq\tqual\nA\tACGT\t.\nB\tGG\tII\nC\t\t\n", buf.String())
}

func TestWriteRecordsJSONKeepsNullVsEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteRecordsJSON(&buf, sample))

	var raw []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))
	require.Len(t, raw, 3)
	assert.Contains(t, raw[0], "qual")
	assert.Nil(t, raw[0]["qual"])
	assert.Equal(t, "II", raw[1]["qual"])
	assert.Equal(t, "", raw[2]["qual"])
}

func TestToAPIRecordCopiesQuality(t *testing.T) {
	c := engine.Collected{ID: "x", Seq: "A", Qual: strp("I")}
	v := ToAPIRecord(c)
	*c.Qual = "#"
	assert.Equal(t, api.RecordV1{ID: "x", Seq: "A", Qual: strp("I")}, v)
}

func TestWriteRecordsFASTX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteRecordsFASTX(&buf, sample[:2]))
	assert.Equal(t, ">A\nACGT\n@B\nGG\n+\nII\n", buf.String())
}

func TestWriteCountsJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCountsJSON(&buf, engine.Counts{Processed: 3, Written: 2}))
	var got api.CountsV1
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, api.CountsV1{Processed: 3, Written: 2}, got)
}
