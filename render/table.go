package render

import (
	"fmt"
	"io"
	"text/tabwriter"

	sent "github.com/revelaction/svo/sentence"
	"github.com/revelaction/svo/storage"
	"github.com/revelaction/svo/svo"
)

// TableRenderer writes aligned columns.
type TableRenderer struct {
	W io.Writer
}

var _ Renderer = (*TableRenderer)(nil)

func NewTableRenderer(w io.Writer) *TableRenderer {
	return &TableRenderer{W: w}
}

func (r *TableRenderer) Triples(triples []svo.Triple) error {
	tw := newTabWriter(r.W)
	fmt.Fprintln(tw, "#\tSUBJECT\tVERB\tOBJECT")
	for i, t := range triples {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i+1, t.Subject, t.Verb, t.Object)
	}

	return tw.Flush()
}

func (r *TableRenderer) Records(records []storage.TripleRecord) error {
	tw := newTabWriter(r.W)
	fmt.Fprintln(tw, "RUN\tDOC\tSENT\tSUBJECT\tVERB\tOBJECT")
	for _, rec := range records {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%s\t%s\n", shortId(rec.RunId), rec.DocId, rec.SentenceId, rec.Subject, rec.Verb, rec.Object)
	}

	return tw.Flush()
}

// Tokens writes the debug view of a sentence, one token per row.
func Tokens(w io.Writer, tree *sent.Tree) error {
	tw := newTabWriter(w)
	fmt.Fprintln(tw, "TEXT\tLEMMA\tPOS\tINDEX\tHEAD\tHEAD TEXT\tDEP")
	for slot := 0; slot < tree.Len(); slot++ {
		tok := tree.Token(slot)
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%s\t%s\n", tok.Text, tok.Lemma, tok.Pos, tok.Index, tok.Head, tree.HeadText(slot), tok.Dep)
	}

	return tw.Flush()
}

// Runs writes the stored extraction runs.
func Runs(w io.Writer, runs []storage.Run) error {
	tw := newTabWriter(w)
	fmt.Fprintln(tw, "RUN\tCREATED\tATTR\tTRIPLES")
	for _, run := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%t\t%d\n", run.Id, run.Created.Format("2006-01-02 15:04:05"), run.PredicateComplement, run.NumTriples)
	}

	return tw.Flush()
}

func newTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func shortId(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
