// Package svo extracts Subject-Verb-Object triples from dependency parsed
// sentences.
//
// A clause head is a token tagged VERB or labeled as the sentence root. For
// each clause head, the subject and object are looked up among its direct
// children and expanded to compound phrases; the verb is expanded with its
// preceding auxiliaries. A triple is emitted only when the three parts are
// found.
//
// Extraction is a pure function of the Doc: it does not log, fail or keep
// state between calls.
package svo

import (
	"fmt"
	"strings"

	sent "github.com/revelaction/svo/sentence"
)

// Triple is an extracted (subject, verb, object) unit. Each field holds the
// words of the phrase joined by single spaces.
type Triple struct {
	Subject string `json:"subject"`
	Verb    string `json:"verb"`
	Object  string `json:"object"`
}

func (t Triple) String() string {
	return fmt.Sprintf("(%s, %s, %s)", t.Subject, t.Verb, t.Object)
}

// Options select extraction variants.
type Options struct {
	// PredicateComplement accepts attr/acomp children as objects when no
	// direct object is present, with the same precedence as prepositional
	// objects.
	PredicateComplement bool
}

// Extractor extracts triples. The zero value is usable and has all variants
// disabled.
type Extractor struct {
	opts Options
}

func New(opts Options) *Extractor {
	return &Extractor{opts: opts}
}

func (e *Extractor) Options() Options {
	return e.opts
}

// Extract returns the triples of all sentences of the doc, sentence by
// sentence, in clause head order. It never returns nil.
func (e *Extractor) Extract(doc sent.Doc) []Triple {
	triples := []Triple{}
	for _, s := range doc.Sentences {
		triples = append(triples, e.Sentence(s.Tokens)...)
	}

	return triples
}

// Sentence returns the triples of one sentence.
func (e *Extractor) Sentence(tokens []sent.Token) []Triple {
	return e.Tree(sent.NewTree(tokens))
}

// Tree returns the triples of an already built sentence tree.
//
// A token that is both a VERB and the root is visited once.
func (e *Extractor) Tree(tree *sent.Tree) []Triple {
	var triples []Triple
	for slot := 0; slot < tree.Len(); slot++ {
		if !IsClauseHead(tree, slot) {
			continue
		}

		if t, ok := e.clause(tree, slot); ok {
			triples = append(triples, t)
		}
	}

	return triples
}

func (e *Extractor) clause(tree *sent.Tree, head int) (Triple, bool) {
	var subject, object string

	for _, c := range tree.Children(head) {
		switch tree.Relation(c) {
		case sent.RelSubject:
			subject = CompoundPhrase(tree, c)
		case sent.RelDirectObject:
			object = CompoundPhrase(tree, c)
		case sent.RelPrepObject:
			if object == "" {
				object = CompoundPhrase(tree, c)
			}
		case sent.RelPredicateComplement:
			if e.opts.PredicateComplement && object == "" {
				object = CompoundPhrase(tree, c)
			}
		}
	}

	verb := tree.Token(head).Text
	if vp, ok := VerbPhrase(tree, head); ok {
		verb = vp
	}

	if subject == "" || verb == "" || object == "" {
		return Triple{}, false
	}

	return Triple{Subject: subject, Verb: verb, Object: object}, true
}

// IsClauseHead reports whether the token at slot is tagged VERB or is the
// root of the sentence.
func IsClauseHead(tree *sent.Tree, slot int) bool {
	return tree.PosCategory(slot) == sent.PosVerb || tree.Relation(slot) == sent.RelRoot
}

// CompoundPhrase returns the phrase anchored at slot: the left modifiers
// (compound, amod, det, poss), the anchor and the right modifiers
// (compound, prep), each block in sentence order.
//
// Only direct children are considered. The blocks are concatenated as is,
// so a non contiguous span is not reordered by absolute position.
func CompoundPhrase(tree *sent.Tree, slot int) string {
	anchor := tree.Token(slot)

	var left, right []string
	for _, c := range tree.Children(slot) {
		tok := tree.Token(c)
		rel := tree.Relation(c)

		switch {
		case tok.Index < anchor.Index && isLeftModifier(rel):
			left = append(left, tok.Text)
		case tok.Index > anchor.Index && isRightModifier(rel):
			right = append(right, tok.Text)
		}
	}

	words := append(left, anchor.Text)
	words = append(words, right...)
	return join(words)
}

// VerbPhrase returns the auxiliaries preceding the verb at slot followed by
// the verb, or false if the verb has no preceding auxiliaries.
func VerbPhrase(tree *sent.Tree, slot int) (string, bool) {
	verb := tree.Token(slot)

	var words []string
	for _, c := range tree.Children(slot) {
		tok := tree.Token(c)
		rel := tree.Relation(c)
		if tok.Index < verb.Index && (rel == sent.RelAux || rel == sent.RelAuxPass) {
			words = append(words, tok.Text)
		}
	}

	if len(words) == 0 {
		return "", false
	}

	return join(append(words, verb.Text)), true
}

func isLeftModifier(r sent.Relation) bool {
	switch r {
	case sent.RelCompound, sent.RelAdjModifier, sent.RelDeterminer, sent.RelPossessive:
		return true
	}
	return false
}

func isRightModifier(r sent.Relation) bool {
	return r == sent.RelCompound || r == sent.RelPrepAttachment
}

// join joins the non empty words with a single space.
func join(words []string) string {
	nonEmpty := words[:0]
	for _, w := range words {
		if w != "" {
			nonEmpty = append(nonEmpty, w)
		}
	}
	return strings.Join(nonEmpty, " ")
}
