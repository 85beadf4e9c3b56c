package filesystem

import (
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	sent "github.com/revelaction/svo/sentence"
	"github.com/revelaction/svo/storage"
)

type DocStore struct {
	docDir string

	// In-memory cache
	docs   []sent.Doc
	loaded []bool
}

var _ storage.DocRepository = (*DocStore)(nil)

// NewDocStore creates a filesystem document handler. Only the doc list is
// read; contents are loaded by LoadAll or on first Read.
func NewDocStore(docDir string) (*DocStore, error) {
	h := &DocStore{docDir: docDir}
	if err := h.LoadList(); err != nil {
		return nil, err
	}
	return h, nil
}

// LoadList (re)reads the names of the json docs of the directory. Ids are
// assigned in directory (lexical) order.
func (h *DocStore) LoadList() error {
	files, err := os.ReadDir(h.docDir)
	if err != nil {
		return errors.Wrapf(err, "reading doc directory %s", h.docDir)
	}

	h.docs = h.docs[:0]
	h.loaded = h.loaded[:0]

	idx := 0
	for _, file := range files {
		if file.IsDir() || filepath.Ext(file.Name()) != ".json" {
			continue
		}

		h.docs = append(h.docs, sent.Doc{
			Id:    idx,
			Title: file.Name(),
		})
		h.loaded = append(h.loaded, false)
		idx++
	}

	return nil
}

// LoadAll preloads all docs into memory.
// The callback is called for each file loaded (total, current_name).
func (h *DocStore) LoadAll(cb func(total int, name string)) error {
	total := len(h.docs)
	for i := range h.docs {
		if cb != nil {
			cb(total, h.docs[i].Title)
		}

		if err := h.load(i); err != nil {
			return err
		}
	}

	return nil
}

func (h *DocStore) load(i int) error {
	if h.loaded[i] {
		return nil
	}

	doc := &h.docs[i] // pointer to modify in place

	fullDoc, err := ReadDoc(filepath.Join(h.docDir, doc.Title))
	if err != nil {
		return err
	}

	// Copy loaded content into existing metadata struct
	doc.Sentences = fullDoc.Sentences
	doc.Labels = fullDoc.Labels
	for j := range doc.Sentences {
		doc.Sentences[j].DocId = doc.Id
	}
	// Title and Id are already set
	h.loaded[i] = true

	return nil
}

func (h *DocStore) List() ([]sent.Doc, error) {
	docs := make([]sent.Doc, len(h.docs))
	for i, d := range h.docs {
		docs[i] = sent.Doc{Id: d.Id, Title: d.Title, Labels: d.Labels}
	}
	return docs, nil
}

func (h *DocStore) Read(id int) (sent.Doc, error) {
	if id < 0 || id >= len(h.docs) {
		return sent.Doc{}, errors.Wrapf(storage.ErrNotFound, "doc id %d", id)
	}

	if err := h.load(id); err != nil {
		return sent.Doc{}, err
	}

	return h.docs[id], nil
}

// FindCandidates scans all docs in memory. There is no index: the first call
// returns every matching sentence and cursor 1, later calls return nothing.
func (h *DocStore) FindCandidates(lemmas []string, after storage.Cursor, limit int, onCandidate func(sent.Sentence) error) (storage.Cursor, error) {
	// If cursor > 0, we already returned everything (EOF).
	if after > 0 {
		return after, nil
	}

	for i := range h.docs {
		if err := h.load(i); err != nil {
			return after, err
		}

		for _, s := range h.docs[i].Sentences {
			if !s.HasLemmas(lemmas) {
				continue
			}

			if err := onCandidate(s); err != nil {
				return after, err
			}
		}
	}

	return 1, nil
}

// Write stores the doc as <Title>.json in the directory. The doc is appended
// to the list if it is new.
func (h *DocStore) Write(doc sent.Doc) error {
	name := doc.Title
	if name == "" {
		return errors.New("doc without title can not be written")
	}

	if filepath.Ext(name) != ".json" {
		name += ".json"
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(err, "JSON encoding error")
	}

	if err := os.WriteFile(filepath.Join(h.docDir, name), data, 0644); err != nil {
		return errors.Wrapf(err, "writing doc %s", name)
	}

	for i, d := range h.docs {
		if d.Title == name {
			// reload on next Read
			h.loaded[i] = false
			return nil
		}
	}

	doc.Id = len(h.docs)
	doc.Title = name
	doc.Sentences = slices.Clone(doc.Sentences)
	for j := range doc.Sentences {
		doc.Sentences[j].DocId = doc.Id
	}
	h.docs = append(h.docs, doc)
	h.loaded = append(h.loaded, true)

	return nil
}

// ReadDoc reads a Doc JSON from the given path and unmarshals it.
func ReadDoc(path string) (sent.Doc, error) {
	f, err := os.ReadFile(path)
	if err != nil {
		return sent.Doc{}, errors.Wrap(err, "IO error")
	}

	var doc sent.Doc
	err = json.Unmarshal(f, &doc)
	if err != nil {
		return sent.Doc{}, errors.Wrapf(err, "JSON decoding error in %s", filepath.Base(path))
	}

	if doc.Title == "" {
		doc.Title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	return doc, nil
}
