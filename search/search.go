// Package search selects the sentences of a doc repository that contain a
// set of lemmas.
package search

import (
	"github.com/cockroachdb/errors"
	sent "github.com/revelaction/svo/sentence"
	"github.com/revelaction/svo/storage"
)

const DefaultPageSize = 500

// Search orchestrates the strategy selection for finding the sentences
// containing all lemmas.
type Search struct {
	repo  storage.DocReader
	docID *int
}

func New(dr storage.DocReader) *Search {
	return &Search{repo: dr}
}

// WithDocID restricts the search to a single document ID.
// If set, the single-document strategy (Read) will be favored over
// the indexed strategy (FindCandidates).
func (s *Search) WithDocID(id int) *Search {
	s.docID = &id
	return s
}

// Sentences calls onSentence for each sentence containing all lemmas,
// resuming after cursor. An unchanged cursor means no more results.
func (s *Search) Sentences(lemmas []string, cursor storage.Cursor, limit int, onSentence func(sent.Sentence) error) (storage.Cursor, error) {
	if len(lemmas) == 0 {
		return cursor, errors.New("search needs at least one lemma")
	}

	// Strategy 1: Single Document (No Index)
	if s.docID != nil {
		if cursor > 0 {
			return cursor, nil
		}

		doc, err := s.repo.Read(*s.docID)
		if err != nil {
			return cursor, err
		}

		for _, sentence := range doc.Sentences {
			if !sentence.HasLemmas(lemmas) {
				continue
			}
			sentence.DocId = *s.docID
			if err := onSentence(sentence); err != nil {
				return cursor, err
			}
		}
		return 1, nil
	}

	// Strategy 2: Find candidates (indexed search)
	return s.repo.FindCandidates(lemmas, cursor, limit, onSentence)
}

// All pages through every matching sentence.
func (s *Search) All(lemmas []string, pageSize int, onSentence func(sent.Sentence) error) error {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	cursor := storage.Cursor(0)
	for {
		next, err := s.Sentences(lemmas, cursor, pageSize, onSentence)
		if err != nil {
			return err
		}

		if next == cursor {
			return nil
		}
		cursor = next
	}
}
