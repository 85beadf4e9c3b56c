package main

import (
	"fmt"
	"runtime"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gosuri/uiprogress"
	"github.com/revelaction/svo/logger"
	"github.com/revelaction/svo/render"
	"github.com/revelaction/svo/search"
	sent "github.com/revelaction/svo/sentence"
	"github.com/revelaction/svo/storage"
	"github.com/revelaction/svo/svo"
	"github.com/urfave/cli/v2"
)

var (
	formatFlag = &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Value:   render.Defaultformat,
		Usage:   "output format: " + strings.Join(render.SupportedFormats(), ", "),
	}

	attrFlag = &cli.BoolFlag{
		Name:  "attr",
		Usage: "accept predicate complements (attr, acomp) as objects",
	}

	noColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "do not color the text output",
	}
)

func extractCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:      "extract",
		Usage:     "extract the triples of a doc, or of all docs of the repository",
		ArgsUsage: "[id|file]",
		Flags: []cli.Flag{
			docPathFlag,
			formatFlag,
			attrFlag,
			noColorFlag,
			&cli.IntFlag{Name: "workers", Aliases: []string{"w"}, Value: runtime.NumCPU(), Usage: "sentences extracted in parallel"},
			&cli.StringFlag{Name: "store", Usage: "persist the triples in the SQLite `DB` under a new run"},
			&cli.StringSliceFlag{Name: "lemma", Aliases: []string{"l"}, Usage: "only sentences containing all these lemmas"},
		},
		Action: e.extract,
	}
}

func (e *env) extractor(c *cli.Context) *svo.Extractor {
	attr := e.cfg.PredicateComplement
	if c.IsSet(attrFlag.Name) {
		attr = c.Bool(attrFlag.Name)
	}
	return svo.New(svo.Options{PredicateComplement: attr})
}

func (e *env) renderer(c *cli.Context) (render.Renderer, error) {
	r, err := render.New(c.String(formatFlag.Name), e.ui.Out)
	if err != nil {
		return nil, err
	}

	if tr, ok := r.(*render.TextRenderer); ok {
		tr.HasColor = !c.Bool(noColorFlag.Name)
	}

	return r, nil
}

func (e *env) extract(c *cli.Context) error {
	extractor := e.extractor(c)

	r, err := e.renderer(c)
	if err != nil {
		return err
	}

	workers := c.Int("workers")
	start := time.Now()

	var records []storage.TripleRecord
	lemmas := c.StringSlice("lemma")

	switch {
	case c.NArg() > 0 && (isFile(c.Args().First()) || len(lemmas) == 0):
		doc, err := e.loadDoc(c, c.Args().First())
		if err != nil {
			return err
		}

		if len(lemmas) > 0 {
			doc.Sentences = slices.DeleteFunc(doc.Sentences, func(s sent.Sentence) bool {
				return !s.HasLemmas(lemmas)
			})
		}

		records, err = extractDoc(c, extractor, doc, workers)
		if err != nil {
			return err
		}

		if err := r.Triples(triplesOf(records)); err != nil {
			return err
		}

	case len(lemmas) > 0:
		records, err = e.extractLemmas(c, extractor, lemmas, r)
		if err != nil {
			return err
		}

	default:
		records, err = e.extractRepository(c, extractor, workers, r)
		if err != nil {
			return err
		}
	}

	logger.Logger.Infow("extraction finished", "count", len(records), "duration_ms", time.Since(start).Milliseconds())

	if db := c.String("store"); db != "" {
		return e.store(db, extractor, records)
	}

	return nil
}

func (e *env) extractRepository(c *cli.Context, extractor *svo.Extractor, workers int, r render.Renderer) ([]storage.TripleRecord, error) {
	path, err := e.docPath(c)
	if err != nil {
		return nil, err
	}

	repo, err := NewDocRepository(&e.pool, path)
	if err != nil {
		return nil, err
	}

	docs, err := repo.List()
	if err != nil {
		return nil, err
	}

	if tr, ok := r.(*render.TextRenderer); ok {
		tr.HasPrefix = true
		for _, d := range docs {
			tr.AddDocName(d.Id, d.Title)
		}
	}

	progress := uiprogress.New()
	progress.SetOut(e.ui.Err)
	progress.Start()
	bar := progress.AddBar(len(docs))
	bar.AppendCompleted()
	bar.PrependElapsed()

	var records []storage.TripleRecord
	for _, meta := range docs {
		doc, err := repo.Read(meta.Id)
		if err != nil {
			progress.Stop()
			return nil, err
		}

		recs, err := extractDoc(c, extractor, doc, workers)
		if err != nil {
			progress.Stop()
			return nil, err
		}

		logger.Logger.Debugw("doc extracted", "doc_id", doc.Id, "count", len(recs))
		records = append(records, recs...)
		bar.Incr()
	}
	progress.Stop()

	return records, r.Records(records)
}

// extractLemmas extracts from the sentences of the repository, or of the doc
// id argument, that contain all lemmas.
func (e *env) extractLemmas(c *cli.Context, extractor *svo.Extractor, lemmas []string, r render.Renderer) ([]storage.TripleRecord, error) {
	path, err := e.docPath(c)
	if err != nil {
		return nil, err
	}

	repo, err := NewDocRepository(&e.pool, path)
	if err != nil {
		return nil, err
	}

	s := search.New(repo)
	if c.NArg() > 0 {
		id, err := strconv.Atoi(c.Args().First())
		if err != nil {
			return nil, errors.Wrapf(err, "invalid doc id %q", c.Args().First())
		}
		s.WithDocID(id)
	}

	if tr, ok := r.(*render.TextRenderer); ok {
		docs, err := repo.List()
		if err != nil {
			return nil, err
		}
		tr.HasPrefix = true
		for _, d := range docs {
			tr.AddDocName(d.Id, d.Title)
		}
	}

	var records []storage.TripleRecord
	err = s.All(lemmas, search.DefaultPageSize, func(sentence sent.Sentence) error {
		if err := c.Context.Err(); err != nil {
			return err
		}

		for _, t := range extractor.Sentence(sentence.Tokens) {
			records = append(records, storage.TripleRecord{DocId: sentence.DocId, SentenceId: sentence.Id, Triple: t})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return records, r.Records(records)
}

// extractDoc returns the triples of doc with their sentence provenance.
func extractDoc(c *cli.Context, extractor *svo.Extractor, doc sent.Doc, workers int) ([]storage.TripleRecord, error) {
	slots, err := extractor.ExtractSentences(c.Context, doc, workers)
	if err != nil {
		return nil, err
	}

	var records []storage.TripleRecord
	for i, triples := range slots {
		for _, t := range triples {
			records = append(records, storage.TripleRecord{
				DocId:      doc.Id,
				SentenceId: doc.Sentences[i].Id,
				Triple:     t,
			})
		}
	}

	return records, nil
}

func triplesOf(records []storage.TripleRecord) []svo.Triple {
	triples := make([]svo.Triple, 0, len(records))
	for _, r := range records {
		triples = append(triples, r.Triple)
	}
	return triples
}

func (e *env) store(db string, extractor *svo.Extractor, records []storage.TripleRecord) error {
	repo, err := NewTripleRepository(&e.pool, db)
	if err != nil {
		return err
	}

	run := storage.NewRun(extractor.Options().PredicateComplement)
	for i := range records {
		records[i].RunId = run.Id
	}

	if err := repo.WriteRun(run, records); err != nil {
		return err
	}

	fmt.Fprintf(e.ui.Err, "Stored %d triples in run %s\n", len(records), run.Id)
	return nil
}
