package stat

import (
	"testing"

	sent "github.com/revelaction/svo/sentence"
	"github.com/revelaction/svo/svo"
	"github.com/stretchr/testify/assert"
)

func doc() sent.Doc {
	return sent.Doc{Sentences: []sent.Sentence{
		{Id: 0, Tokens: []sent.Token{
			{Index: 0, Text: "John", Pos: "PROPN", Dep: "nsubj", Head: 1},
			{Index: 1, Text: "reads", Pos: "VERB", Dep: "ROOT", Head: 1},
			{Index: 2, Text: "books", Pos: "NOUN", Dep: "dobj", Head: 1},
			{Index: 3, Text: ".", Pos: "PUNCT", Dep: "punct", Head: 1},
		}},
		{Id: 1, Tokens: []sent.Token{
			{Index: 0, Text: "He", Pos: "PRON", Dep: "nsubj", Head: 1},
			{Index: 1, Text: "sleeps", Pos: "VERB", Dep: "ROOT", Head: 1},
		}},
	}}
}

func TestAggregate(t *testing.T) {
	h := NewHandler(svo.New(svo.Options{}))
	h.Aggregate(doc())

	s := h.Get()
	assert.Equal(t, 2, s.NumSentences)
	assert.Equal(t, 6, s.NumTokens)
	assert.Equal(t, 3, s.TokensPerSentenceMean)
	assert.Equal(t, map[int]int{4: 1, 2: 1}, s.TokensPerSentenceDis)
	assert.Equal(t, 2, s.NumClauseHeads)
	assert.Equal(t, 1, s.NumTriples)
	assert.Equal(t, 1, s.NumSentencesWithTriples)
}

func TestAggregateEmptyDoc(t *testing.T) {
	h := NewHandler(svo.New(svo.Options{}))
	h.Aggregate(sent.Doc{})

	s := h.Get()
	assert.Zero(t, s.NumSentences)
	assert.Zero(t, s.TokensPerSentenceMean)
}

func TestAggregateSeveralDocs(t *testing.T) {
	h := NewHandler(svo.New(svo.Options{}))
	h.Aggregate(doc())
	h.Aggregate(doc())

	assert.Equal(t, 4, h.Get().NumSentences)
	assert.Equal(t, 2, h.Get().NumTriples)
}
