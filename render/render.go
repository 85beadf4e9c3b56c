package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	sent "github.com/revelaction/svo/sentence"
	"github.com/revelaction/svo/storage"
	"github.com/revelaction/svo/svo"
)

const (
	Defaultformat = "text"

	// NoTriples is printed by the text renderer when nothing was extracted.
	NoTriples = "no SVO structure found"
)

var (
	Black   = "\033[1;30m"
	Red     = "\033[1;31m"
	Green   = "\033[1;32m"
	Yellow  = "\033[0;33m"
	Purple  = "\033[1;34m"
	Magenta = "\033[1;35m"
	Teal    = "\033[1;36m"
	Gray    = "\033[0;37m"
	White   = "\033[1;37m"
	Off     = "\033[0m"
	//Yellow256  = "\033[1;38;5;202m"
	Yellow256 = "\033[1;38;5;130m"
	Grey256   = "\033[1;38;5;145m"
	Green256  = "\033[1;38;5;70m"
	ClearLine = "\033[K"
)

func SupportedFormats() []string {
	return []string{"text", "table", "json"}
}

// Renderer writes extraction results.
type Renderer interface {
	// Triples renders the triples of a single text or doc.
	Triples(triples []svo.Triple) error

	// Records renders triples with their provenance.
	Records(records []storage.TripleRecord) error
}

// New returns the Renderer for format, writing to w.
func New(format string, w io.Writer) (Renderer, error) {
	switch format {
	case "", "text":
		return NewTextRenderer(w), nil
	case "table":
		return NewTableRenderer(w), nil
	case "json":
		return NewJSONRenderer(w), nil
	}

	return nil, errors.WithHintf(errors.Newf("unknown format %q", format),
		"supported formats are %s", strings.Join(SupportedFormats(), ", "))
}

// TextRenderer writes a numbered "subject | verb | object" list.
type TextRenderer struct {
	W io.Writer

	HasColor bool

	// HasPrefix prefixes records with the doc title and sentence id.
	HasPrefix bool

	DocNames map[int]string
}

var _ Renderer = (*TextRenderer)(nil)

func NewTextRenderer(w io.Writer) *TextRenderer {
	return &TextRenderer{W: w, DocNames: map[int]string{}}
}

func (r *TextRenderer) AddDocName(docId int, name string) {
	r.DocNames[docId] = name
}

func (r *TextRenderer) Triples(triples []svo.Triple) error {
	if len(triples) == 0 {
		_, err := fmt.Fprintln(r.W, NoTriples)
		return err
	}

	for i, t := range triples {
		if _, err := fmt.Fprintf(r.W, "%d. %s\n", i+1, r.triple(t)); err != nil {
			return err
		}
	}

	return nil
}

func (r *TextRenderer) Records(records []storage.TripleRecord) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(r.W, NoTriples)
		return err
	}

	for i, rec := range records {
		prefix := fmt.Sprintf("%d. ", i+1)
		if r.HasPrefix {
			prefix = fmt.Sprintf("[%s %2d %5d] ✍  ", r.title(rec.DocId), rec.DocId, rec.SentenceId)
		}

		if _, err := fmt.Fprintf(r.W, "%s%s\n", prefix, r.triple(rec.Triple)); err != nil {
			return err
		}
	}

	return nil
}

func (r *TextRenderer) triple(t svo.Triple) string {
	if !r.HasColor {
		return fmt.Sprintf("%s | %s | %s", t.Subject, t.Verb, t.Object)
	}

	return fmt.Sprintf("%s%s%s | %s%s%s | %s%s%s", Green256, t.Subject, Off, Yellow256, t.Verb, Off, Teal, t.Object, Off)
}

func (r *TextRenderer) title(docId int) string {
	title := []rune(r.DocNames[docId])
	var part string
	if len(title) <= 20 {
		part = string(title) + strings.Repeat(" ", 20-len(title))
	} else {
		part = string(title[:20])
	}

	if !r.HasColor {
		return part
	}

	return Grey256 + part + Off
}

// SentenceString returns the original text of the sentence, rebuilt from the
// token offsets.
func SentenceString(sentence []sent.Token) string {
	var str strings.Builder
	var lastIdx, lastLen int
	for i, token := range sentence {
		l := len([]rune(token.Text))
		if i == 0 {
			str.WriteString(token.Text)
			lastIdx = token.Idx
			lastLen = l
			continue
		}

		// both parts of a multi token word share text and idx: the word is
		// written once
		diff := token.Idx - lastIdx

		switch {
		case diff > 0:
			str.WriteString(strings.Repeat(" ", max(diff-lastLen, 0)))
			str.WriteString(token.Text)
		case token.Idx == 0 && lastIdx == 0:
			// parsers without character offsets
			str.WriteString(" ")
			str.WriteString(token.Text)
		}

		lastIdx = token.Idx
		lastLen = l
	}

	return strings.ReplaceAll(str.String(), "\n", " ")
}
