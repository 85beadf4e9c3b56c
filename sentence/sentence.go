package sentence

// Doc is a parsed text: an ordered list of sentences as produced by the
// external parser (spacy, stanza, udpipe).
type Doc struct {
	Id int `json:"id"`

	Title string `json:"title"`

	Labels    []string   `json:"labels,omitempty"`
	Sentences []Sentence `json:"sentences"`
}

// Sentence is one period delimited unit of a Doc.
type Sentence struct {
	Id     int     `json:"id"`
	DocId  int     `json:"doc_id"`
	Tokens []Token `json:"tokens"`
}

// HasLemmas reports whether every lemma occurs in the sentence.
func (s Sentence) HasLemmas(lemmas []string) bool {
	for _, l := range lemmas {
		found := false
		for _, t := range s.Tokens {
			if t.Lemma == l {
				found = true
				break
			}
		}

		if !found {
			return false
		}
	}

	return true
}

// Token represents a word of the sentence, with POS and metadata.
type Token struct {
	Id int `json:"id"`

	// Head is the Id of the governing token in the same sentence, or its
	// Index when the parser does not number tokens. The root token points to
	// itself.
	Head       int    `json:"head"`
	SentenceId int    `json:"sent"`
	Pos        string `json:"pos"`
	Dep        string `json:"dep"`

	// A string containing detailed POS data
	Tag string `json:"tag"`

	// the index of the start character of the token in the original doc (set by spacy, stanza)
	Idx int `json:"idx"`

	// The unmodified word
	Text string `json:"text"`

	// The lemma of the word
	Lemma string `json:"lemma"`

	// The index of the word in the sentence, starting at 0.
	Index int `json:"index"`
}

// Relation returns the closed relation kind of the Dep label.
func (t Token) Relation() Relation {
	return ParseRelation(t.Dep)
}

// PosCategory returns the closed category of the coarse Pos tag.
func (t Token) PosCategory() PosCategory {
	return ParsePos(t.Pos)
}
