package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	sent "github.com/revelaction/svo/sentence"
	"github.com/revelaction/svo/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const johnDoc = `{
  "labels": ["news"],
  "sentences": [
    {"id": 0, "tokens": [
      {"index": 0, "text": "John", "lemma": "John", "pos": "PROPN", "dep": "nsubj", "head": 1},
      {"index": 1, "text": "reads", "lemma": "read", "pos": "VERB", "dep": "ROOT", "head": 1},
      {"index": 2, "text": "books", "lemma": "book", "pos": "NOUN", "dep": "dobj", "head": 1}
    ]},
    {"id": 1, "tokens": [
      {"index": 0, "text": "Birds", "lemma": "bird", "pos": "NOUN", "dep": "nsubj", "head": 1},
      {"index": 1, "text": "fly", "lemma": "fly", "pos": "VERB", "dep": "ROOT", "head": 1}
    ]}
  ]
}`

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestDocStoreListAndRead(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.json", johnDoc)
	writeFile(t, dir, "a.json", `{"sentences": []}`)
	writeFile(t, dir, "notes.txt", "ignored")

	h, err := NewDocStore(dir)
	require.NoError(t, err)

	docs, err := h.List()
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "a.json", docs[0].Title)
	assert.Equal(t, "b.json", docs[1].Title)
	assert.Nil(t, docs[1].Sentences)

	doc, err := h.Read(1)
	require.NoError(t, err)
	assert.Equal(t, 1, doc.Id)
	assert.Equal(t, []string{"news"}, doc.Labels)
	require.Len(t, doc.Sentences, 2)
	assert.Equal(t, 1, doc.Sentences[0].DocId)
	assert.Equal(t, "reads", doc.Sentences[0].Tokens[1].Text)
}

func TestDocStoreLoadAll(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.json", `{"sentences": []}`)
	writeFile(t, dir, "b.json", johnDoc)

	h, err := NewDocStore(dir)
	require.NoError(t, err)

	var names []string
	err = h.LoadAll(func(total int, name string) {
		assert.Equal(t, 2, total)
		names = append(names, name)
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.json", "b.json"}, names)
	assert.Equal(t, []bool{true, true}, h.loaded)

	writeFile(t, dir, "c.json", "{broken")
	require.NoError(t, h.LoadList())
	assert.Error(t, h.LoadAll(nil))
}

func TestDocStoreReadOutOfRange(t *testing.T) {
	h, err := NewDocStore(t.TempDir())
	require.NoError(t, err)

	_, err = h.Read(3)
	assert.True(t, errors.Is(err, storage.ErrNotFound))
}

func TestDocStoreMissingDir(t *testing.T) {
	_, err := NewDocStore(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestDocStoreFindCandidates(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "john.json", johnDoc)

	h, err := NewDocStore(dir)
	require.NoError(t, err)

	var got []sent.Sentence
	cursor, err := h.FindCandidates([]string{"read", "book"}, 0, 10, func(s sent.Sentence) error {
		got = append(got, s)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, storage.Cursor(1), cursor)
	require.Len(t, got, 1)
	assert.Equal(t, 0, got[0].Id)

	// exhausted
	cursor, err = h.FindCandidates([]string{"read"}, cursor, 10, func(s sent.Sentence) error {
		t.Fatal("unexpected candidate")
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, storage.Cursor(1), cursor)
}

func TestDocStoreWrite(t *testing.T) {
	dir := t.TempDir()
	h, err := NewDocStore(dir)
	require.NoError(t, err)

	doc := sent.Doc{Title: "conv", Sentences: []sent.Sentence{{Tokens: []sent.Token{{Text: "Hi"}}}}}
	require.NoError(t, h.Write(doc))

	_, err = os.Stat(filepath.Join(dir, "conv.json"))
	require.NoError(t, err)

	docs, err := h.List()
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "conv.json", docs[0].Title)

	read, err := ReadDoc(filepath.Join(dir, "conv.json"))
	require.NoError(t, err)
	assert.Equal(t, "Hi", read.Sentences[0].Tokens[0].Text)
}

func TestDocStoreWriteWithoutTitle(t *testing.T) {
	h, err := NewDocStore(t.TempDir())
	require.NoError(t, err)
	assert.Error(t, h.Write(sent.Doc{}))
}

func TestReadDocInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bad.json", "{")

	_, err := ReadDoc(filepath.Join(dir, "bad.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JSON decoding error")
}

func TestReadDocTitleFromFileName(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "john.json", johnDoc)

	doc, err := ReadDoc(filepath.Join(dir, "john.json"))
	require.NoError(t, err)
	assert.Equal(t, "john", doc.Title)
}
