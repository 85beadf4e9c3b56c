package stat

import (
	sent "github.com/revelaction/svo/sentence"
	"github.com/revelaction/svo/svo"
)

type Handler struct {
	stats     Stats
	extractor *svo.Extractor
}

type Stats struct {
	NumSentences          int
	NumTokens             int
	TokensPerSentenceMean int
	TokensPerSentenceDis  map[int]int

	// NumClauseHeads counts the tokens visited by the extractor.
	NumClauseHeads int
	NumTriples     int

	// NumSentencesWithTriples counts sentences yielding at least one triple.
	NumSentencesWithTriples int
}

func (h *Handler) Get() Stats {
	return h.stats
}

func NewHandler(extractor *svo.Extractor) *Handler {
	stats := Stats{TokensPerSentenceDis: map[int]int{}}
	return &Handler{
		stats:     stats,
		extractor: extractor,
	}
}

// Aggregate adds the doc to the stats. It can be called for several docs.
func (h *Handler) Aggregate(doc sent.Doc) {
	for _, s := range doc.Sentences {
		h.AggregateSentence(s)
	}
}

func (h *Handler) AggregateSentence(s sent.Sentence) {
	h.stats.NumSentences++
	h.stats.NumTokens += len(s.Tokens)
	h.stats.TokensPerSentenceDis[len(s.Tokens)]++

	tree := sent.NewTree(s.Tokens)
	for slot := 0; slot < tree.Len(); slot++ {
		if svo.IsClauseHead(tree, slot) {
			h.stats.NumClauseHeads++
		}
	}

	n := len(h.extractor.Tree(tree))
	h.stats.NumTriples += n
	if n > 0 {
		h.stats.NumSentencesWithTriples++
	}

	h.stats.TokensPerSentenceMean = h.stats.NumTokens / h.stats.NumSentences
}
