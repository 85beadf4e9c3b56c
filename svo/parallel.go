package svo

import (
	"context"

	sent "github.com/revelaction/svo/sentence"
	"golang.org/x/sync/errgroup"
)

// ExtractParallel is Extract with the sentences sharded over at most workers
// goroutines. The result has the same order as Extract.
//
// The context is checked before each sentence; an error is returned only if
// it is done.
func (e *Extractor) ExtractParallel(ctx context.Context, doc sent.Doc, workers int) ([]Triple, error) {
	slots, err := e.ExtractSentences(ctx, doc, workers)
	if err != nil {
		return nil, err
	}

	triples := []Triple{}
	for _, s := range slots {
		triples = append(triples, s...)
	}

	return triples, nil
}

// ExtractSentences returns the triples of each sentence of the doc, at the
// sentence's position in doc.Sentences.
func (e *Extractor) ExtractSentences(ctx context.Context, doc sent.Doc, workers int) ([][]Triple, error) {
	slots := make([][]Triple, len(doc.Sentences))

	if workers <= 1 {
		for i, s := range doc.Sentences {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			slots[i] = e.Sentence(s.Tokens)
		}
		return slots, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range doc.Sentences {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			slots[i] = e.Sentence(doc.Sentences[i].Tokens)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return slots, nil
}
