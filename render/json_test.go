package render

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/revelaction/svo/storage"
	"github.com/revelaction/svo/svo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONRendererTriplesEmpty(t *testing.T) {
	var buf bytes.Buffer
	r := NewJSONRenderer(&buf)
	require.NoError(t, r.Triples(nil))

	assert.JSONEq(t, `[]`, buf.String())
}

func TestJSONRendererTriples(t *testing.T) {
	var buf bytes.Buffer
	r := NewJSONRenderer(&buf)
	require.NoError(t, r.Triples([]svo.Triple{{Subject: "John", Verb: "reads", Object: "books"}}))

	assert.JSONEq(t, `[{"subject":"John","verb":"reads","object":"books"}]`, buf.String())
}

func TestJSONRendererRecordsFlattensTriple(t *testing.T) {
	var buf bytes.Buffer
	r := NewJSONRenderer(&buf)
	err := r.Records([]storage.TripleRecord{{
		RunId:      "run-1",
		DocId:      2,
		SentenceId: 5,
		Triple:     svo.Triple{Subject: "The cat", Verb: "chased", Object: "the mouse"},
	}})
	require.NoError(t, err)

	var results []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &results))
	require.Len(t, results, 1)
	assert.Equal(t, "run-1", results[0]["run_id"])
	assert.Equal(t, float64(5), results[0]["sentence_id"])
	assert.Equal(t, "the mouse", results[0]["object"])
}
