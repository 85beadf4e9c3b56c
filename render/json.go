package render

import (
	"encoding/json"
	"io"

	"github.com/revelaction/svo/storage"
	"github.com/revelaction/svo/svo"
)

// JSONRenderer writes results as a JSON array to a writer.
type JSONRenderer struct {
	W io.Writer
}

// NewJSONRenderer creates a JSONRenderer writing to w.
func NewJSONRenderer(w io.Writer) *JSONRenderer {
	return &JSONRenderer{W: w}
}

// Triples serializes the triples as a JSON array. No triples is an empty
// array, not null.
func (r *JSONRenderer) Triples(triples []svo.Triple) error {
	if triples == nil {
		triples = []svo.Triple{}
	}
	return json.NewEncoder(r.W).Encode(triples)
}

// Records serializes the records as a JSON array of flat objects.
func (r *JSONRenderer) Records(records []storage.TripleRecord) error {
	if records == nil {
		records = []storage.TripleRecord{}
	}
	return json.NewEncoder(r.W).Encode(records)
}

// compile-time interface check
var _ Renderer = (*JSONRenderer)(nil)
