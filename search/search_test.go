package search

import (
	"path/filepath"
	"testing"

	sent "github.com/revelaction/svo/sentence"
	"github.com/revelaction/svo/storage"
	"github.com/revelaction/svo/storage/filesystem"
	"github.com/revelaction/svo/storage/sqlite/zombiezen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tok(index int, text, lemma string) sent.Token {
	return sent.Token{Index: index, Text: text, Lemma: lemma}
}

func testDoc(title string) sent.Doc {
	return sent.Doc{
		Title: title,
		Sentences: []sent.Sentence{
			{Id: 0, Tokens: []sent.Token{tok(0, "John", "John"), tok(1, "reads", "read"), tok(2, "books", "book")}},
			{Id: 1, Tokens: []sent.Token{tok(0, "Mary", "Mary"), tok(1, "writes", "write"), tok(2, "books", "book")}},
			{Id: 2, Tokens: []sent.Token{tok(0, "Birds", "bird"), tok(1, "fly", "fly")}},
		},
	}
}

func repositories(t *testing.T) map[string]storage.DocRepository {
	t.Helper()

	fs, err := filesystem.NewDocStore(t.TempDir())
	require.NoError(t, err)

	pool, err := zombiezen.Open(filepath.Join(t.TempDir(), "svo.db"))
	require.NoError(t, err)
	t.Cleanup(func() { pool.Close() })

	return map[string]storage.DocRepository{
		"filesystem": fs,
		"sqlite":     zombiezen.NewDocStore(pool),
	}
}

func collect(t *testing.T, s *Search, lemmas []string, pageSize int) []sent.Sentence {
	t.Helper()
	var got []sent.Sentence
	err := s.All(lemmas, pageSize, func(s sent.Sentence) error {
		got = append(got, s)
		return nil
	})
	require.NoError(t, err)
	return got
}

func TestAll(t *testing.T) {
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, repo.Write(testDoc("a")))
			require.NoError(t, repo.Write(testDoc("b")))

			got := collect(t, New(repo), []string{"book"}, 1)
			require.Len(t, got, 4)
			assert.Equal(t, "John", got[0].Tokens[0].Text)
			assert.Equal(t, "Mary", got[1].Tokens[0].Text)

			got = collect(t, New(repo), []string{"book", "write"}, 0)
			assert.Len(t, got, 2)

			assert.Empty(t, collect(t, New(repo), []string{"swim"}, 10))
		})
	}
}

func TestWithDocID(t *testing.T) {
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, repo.Write(testDoc("a")))
			docs, err := repo.List()
			require.NoError(t, err)
			require.Len(t, docs, 1)

			got := collect(t, New(repo).WithDocID(docs[0].Id), []string{"fly"}, 10)
			require.Len(t, got, 1)
			assert.Equal(t, 2, got[0].Id)
			assert.Equal(t, docs[0].Id, got[0].DocId)
		})
	}
}

func TestNoLemmas(t *testing.T) {
	fs, err := filesystem.NewDocStore(t.TempDir())
	require.NoError(t, err)

	_, err = New(fs).Sentences(nil, 0, 10, func(sent.Sentence) error { return nil })
	assert.Error(t, err)
}
