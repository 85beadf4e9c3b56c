package zombiezen

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	sent "github.com/revelaction/svo/sentence"
	"github.com/revelaction/svo/storage"
	"github.com/revelaction/svo/svo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"zombiezen.com/go/sqlite/sqlitex"
)

func openTestPool(t *testing.T) *sqlitex.Pool {
	t.Helper()
	pool, err := Open(filepath.Join(t.TempDir(), "svo.db"))
	require.NoError(t, err)
	t.Cleanup(func() { pool.Close() })
	return pool
}

func lemmaTok(index int, text, lemma, pos, dep string, head int) sent.Token {
	return sent.Token{Index: index, Text: text, Lemma: lemma, Pos: pos, Dep: dep, Head: head}
}

func testDoc() sent.Doc {
	return sent.Doc{
		Title:  "john.json",
		Labels: []string{"news", "short"},
		Sentences: []sent.Sentence{
			{Id: 0, Tokens: []sent.Token{
				lemmaTok(0, "John", "John", "PROPN", "nsubj", 1),
				lemmaTok(1, "reads", "read", "VERB", "ROOT", 1),
				lemmaTok(2, "books", "book", "NOUN", "dobj", 1),
			}},
			{Id: 1, Tokens: []sent.Token{
				lemmaTok(0, "Mary", "Mary", "PROPN", "nsubj", 1),
				lemmaTok(1, "reads", "read", "VERB", "ROOT", 1),
				lemmaTok(2, "news", "news", "NOUN", "dobj", 1),
			}},
		},
	}
}

func TestDocStoreWriteRead(t *testing.T) {
	store := NewDocStore(openTestPool(t))
	require.NoError(t, store.Write(testDoc()))

	docs, err := store.List()
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "john.json", docs[0].Title)
	assert.Equal(t, []string{"news", "short"}, docs[0].Labels)

	doc, err := store.Read(docs[0].Id)
	require.NoError(t, err)
	require.Len(t, doc.Sentences, 2)
	assert.Equal(t, 1, doc.Sentences[1].Id)
	assert.Equal(t, docs[0].Id, doc.Sentences[1].DocId)
	assert.Equal(t, testDoc().Sentences[1].Tokens, doc.Sentences[1].Tokens)

	// the stored doc extracts like the original
	e := svo.New(svo.Options{})
	assert.Equal(t, e.Extract(testDoc()), e.Extract(doc))
}

func TestDocStoreReadNotFound(t *testing.T) {
	store := NewDocStore(openTestPool(t))

	_, err := store.Read(42)
	assert.True(t, errors.Is(err, storage.ErrNotFound))
}

func TestDocStoreFindCandidates(t *testing.T) {
	store := NewDocStore(openTestPool(t))
	require.NoError(t, store.Write(testDoc()))

	var got []sent.Sentence
	collect := func(s sent.Sentence) error {
		got = append(got, s)
		return nil
	}

	cursor, err := store.FindCandidates([]string{"read"}, 0, 1, collect)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 0, got[0].Id)

	cursor, err = store.FindCandidates([]string{"read"}, cursor, 1, collect)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[1].Id)

	last, err := store.FindCandidates([]string{"read"}, cursor, 1, collect)
	require.NoError(t, err)
	assert.Equal(t, cursor, last)
	assert.Len(t, got, 2)

	got = nil
	_, err = store.FindCandidates([]string{"read", "news"}, 0, 10, collect)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Mary", got[0].Tokens[0].Text)
}

func TestDocStoreFindCandidatesNoLemmas(t *testing.T) {
	store := NewDocStore(openTestPool(t))

	cursor, err := store.FindCandidates(nil, 7, 10, func(sent.Sentence) error {
		t.Fatal("unexpected candidate")
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, storage.Cursor(7), cursor)
}

func TestTripleStoreWriteRun(t *testing.T) {
	store := NewTripleStore(openTestPool(t))

	first := storage.NewRun(false)
	first.Created = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.WriteRun(first, []storage.TripleRecord{
		{DocId: 1, SentenceId: 0, Triple: svo.Triple{Subject: "John", Verb: "reads", Object: "books"}},
		{DocId: 1, SentenceId: 1, Triple: svo.Triple{Subject: "Mary", Verb: "reads", Object: "news"}},
	}))

	second := storage.NewRun(true)
	second.Created = time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.WriteRun(second, []storage.TripleRecord{
		{DocId: 2, SentenceId: 0, Triple: svo.Triple{Subject: "John", Verb: "is", Object: "a teacher"}},
	}))

	runs, err := store.Runs()
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, second.Id, runs[0].Id)
	assert.True(t, runs[0].PredicateComplement)
	assert.Equal(t, 1, runs[0].NumTriples)
	assert.Equal(t, 2, runs[1].NumTriples)
	assert.True(t, first.Created.Equal(runs[1].Created))

	all, err := store.Triples(storage.TripleQuery{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "books", all[0].Object)
	assert.Equal(t, "a teacher", all[2].Object)

	johns, err := store.Triples(storage.TripleQuery{Subject: "John"})
	require.NoError(t, err)
	assert.Len(t, johns, 2)

	byRun, err := store.Triples(storage.TripleQuery{RunId: first.Id, Verb: "reads", Limit: 1})
	require.NoError(t, err)
	require.Len(t, byRun, 1)
	assert.Equal(t, first.Id, byRun[0].RunId)
	assert.Equal(t, "John", byRun[0].Subject)
}

func TestTripleStoreRunWithoutId(t *testing.T) {
	store := NewTripleStore(openTestPool(t))
	assert.Error(t, store.WriteRun(storage.Run{}, nil))
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "svo.db")

	pool, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, NewDocStore(pool).Write(testDoc()))
	require.NoError(t, pool.Close())

	pool, err = Open(path)
	require.NoError(t, err)
	defer pool.Close()

	docs, err := NewDocStore(pool).List()
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}
