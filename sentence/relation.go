package sentence

import "strings"

// Relation is the closed set of dependency relation kinds the extractor
// distinguishes. Labels of both the spacy (ClearNLP) and the Universal
// Dependencies schemes map onto it; anything else is RelOther.
type Relation int

const (
	RelOther Relation = iota
	RelSubject
	RelDirectObject
	RelPrepObject
	RelPredicateComplement
	RelAux
	RelAuxPass
	RelCompound
	RelAdjModifier
	RelDeterminer
	RelPossessive
	RelPrepAttachment
	RelRoot
)

var relationNames = [...]string{
	RelOther:               "other",
	RelSubject:             "subject",
	RelDirectObject:        "dobj",
	RelPrepObject:          "pobj",
	RelPredicateComplement: "attr",
	RelAux:                 "aux",
	RelAuxPass:             "auxpass",
	RelCompound:            "compound",
	RelAdjModifier:         "amod",
	RelDeterminer:          "det",
	RelPossessive:          "poss",
	RelPrepAttachment:      "prep",
	RelRoot:                "root",
}

func (r Relation) String() string {
	if r < 0 || int(r) >= len(relationNames) {
		return relationNames[RelOther]
	}
	return relationNames[r]
}

// ParseRelation maps a parser dependency label to its Relation.
//
// Every label containing "subj" is a subject: nsubj, nsubjpass, csubj,
// nsubj:pass...
func ParseRelation(label string) Relation {
	l := strings.ToLower(label)

	if strings.Contains(l, "subj") {
		return RelSubject
	}

	switch l {
	case "dobj", "obj":
		return RelDirectObject
	case "pobj":
		return RelPrepObject
	case "attr", "acomp":
		return RelPredicateComplement
	case "aux":
		return RelAux
	case "auxpass", "aux:pass":
		return RelAuxPass
	case "compound", "compound:nn", "nn":
		return RelCompound
	case "amod":
		return RelAdjModifier
	case "det":
		return RelDeterminer
	case "poss", "nmod:poss":
		return RelPossessive
	case "prep":
		return RelPrepAttachment
	case "root":
		return RelRoot
	}

	return RelOther
}

// PosCategory is the closed set of coarse part of speech categories.
type PosCategory int

const (
	PosOther PosCategory = iota
	PosVerb
	PosAux
	PosNoun
	PosProperNoun
	PosPronoun
)

// ParsePos maps a coarse (universal) POS tag to its category.
func ParsePos(tag string) PosCategory {
	switch strings.ToUpper(tag) {
	case "VERB":
		return PosVerb
	case "AUX":
		return PosAux
	case "NOUN":
		return PosNoun
	case "PROPN":
		return PosProperNoun
	case "PRON":
		return PosPronoun
	}

	return PosOther
}
