package sentence

import (
	"slices"
)

// Tree is the dependency tree of one sentence, built once from the flat head
// pointers of its tokens.
//
// Tokens are kept in an arena addressed by slot (the position in the
// sentence slice). Children of a slot are precomputed and ordered by token
// Index, so Children is O(1).
type Tree struct {
	tokens   []Token
	rels     []Relation
	pos      []PosCategory
	heads    []int
	children [][]int
}

// NewTree builds the tree of the sentence tokens. The tokens are not copied
// nor modified.
//
// Heads that do not reference a token of the sentence are left unlinked.
func NewTree(tokens []Token) *Tree {
	t := &Tree{
		tokens:   tokens,
		rels:     make([]Relation, len(tokens)),
		pos:      make([]PosCategory, len(tokens)),
		heads:    make([]int, len(tokens)),
		children: make([][]int, len(tokens)),
	}

	slots := headSlots(tokens)

	for slot, tok := range tokens {
		t.rels[slot] = tok.Relation()
		t.pos[slot] = tok.PosCategory()
		t.heads[slot] = -1

		head, ok := slots[tok.Head]
		if !ok || head == slot {
			continue
		}

		t.heads[slot] = head
		t.children[head] = append(t.children[head], slot)
	}

	for _, ch := range t.children {
		slices.SortFunc(ch, func(a, b int) int {
			return tokens[a].Index - tokens[b].Index
		})
	}

	return t
}

// headSlots maps the values Head refers to onto slots. Parsers that number
// tokens across the whole doc (spacy token.i) point heads at Id; when the Ids
// of the sentence are distinct and resolve every head they are used,
// otherwise heads are read as Index. Sentences cut out of a doc may carry
// offsets in both.
func headSlots(tokens []Token) map[int]int {
	byId := make(map[int]int, len(tokens))
	for slot, tok := range tokens {
		byId[tok.Id] = slot
	}

	if len(byId) == len(tokens) {
		resolved := true
		for _, tok := range tokens {
			if _, ok := byId[tok.Head]; !ok {
				resolved = false
				break
			}
		}

		if resolved {
			return byId
		}
	}

	byIndex := make(map[int]int, len(tokens))
	for slot, tok := range tokens {
		byIndex[tok.Index] = slot
	}
	return byIndex
}

// Len returns the number of tokens.
func (t *Tree) Len() int {
	return len(t.tokens)
}

func (t *Tree) Token(slot int) Token {
	return t.tokens[slot]
}

func (t *Tree) Relation(slot int) Relation {
	return t.rels[slot]
}

func (t *Tree) PosCategory(slot int) PosCategory {
	return t.pos[slot]
}

// Children returns the slots of the direct dependents of slot, in sentence
// order. The returned slice must not be modified.
func (t *Tree) Children(slot int) []int {
	return t.children[slot]
}

// Head returns the slot of the governing token. It returns false for the
// root and for unlinked tokens.
func (t *Tree) Head(slot int) (int, bool) {
	h := t.heads[slot]
	return h, h >= 0
}

// HeadText returns the text of the governing token, the token's own text for
// the root.
func (t *Tree) HeadText(slot int) string {
	if h, ok := t.Head(slot); ok {
		return t.tokens[h].Text
	}
	return t.tokens[slot].Text
}
