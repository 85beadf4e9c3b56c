package storage

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	sent "github.com/revelaction/svo/sentence"
	"github.com/revelaction/svo/svo"
)

// ErrNotFound is returned when a doc or run does not exist.
var ErrNotFound = errors.New("not found")

// Cursor for paginated lemma-based queries
type Cursor int64

// DocReader defines read operations for document storage
type DocReader interface {
	// List returns the metadata (Id, Title, Labels) of documents.
	// Content (Sentences) is not loaded.
	List() ([]sent.Doc, error)

	// Read returns a document by ID
	Read(id int) (sent.Doc, error)

	// FindCandidates returns sentences containing ALL given lemmas, resuming
	// after the given cursor. It calls onCandidate for each result.
	// Returns the new cursor; an unchanged cursor means no more results.
	FindCandidates(lemmas []string, after Cursor, limit int, onCandidate func(sent.Sentence) error) (Cursor, error)
}

// DocWriter defines write operations for document storage
type DocWriter interface {
	// Write persists a document and its sentences/lemmas to storage
	Write(doc sent.Doc) error
}

// DocRepository combines read and write operations
type DocRepository interface {
	DocReader
	DocWriter
}

// Run is one extraction pass whose triples were persisted.
type Run struct {
	Id      string
	Created time.Time

	// PredicateComplement records the extractor variant used.
	PredicateComplement bool

	NumTriples int
}

// TripleRecord is a triple with its provenance.
type TripleRecord struct {
	RunId      string `json:"run_id"`
	DocId      int    `json:"doc_id"`
	SentenceId int    `json:"sentence_id"`

	svo.Triple
}

// TripleQuery filters stored triples. Empty fields do not filter.
type TripleQuery struct {
	RunId   string
	Subject string
	Verb    string
	Object  string
	Limit   int
}

// TripleReader defines read operations for triple storage
type TripleReader interface {
	// Runs returns all runs, newest first.
	Runs() ([]Run, error)

	// Triples returns the triples matching q, in run then extraction order.
	Triples(q TripleQuery) ([]TripleRecord, error)
}

// TripleWriter defines write operations for triple storage
type TripleWriter interface {
	// WriteRun persists the run and its triples atomically.
	WriteRun(run Run, records []TripleRecord) error
}

// TripleRepository combines read and write operations
type TripleRepository interface {
	TripleReader
	TripleWriter
}

// NewRun returns a run with a fresh id created now.
func NewRun(predicateComplement bool) Run {
	return Run{
		Id:                  uuid.NewString(),
		Created:             time.Now().UTC(),
		PredicateComplement: predicateComplement,
	}
}
