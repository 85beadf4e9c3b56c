package main

import (
	"fmt"

	"github.com/cockroachdb/errors"
	sent "github.com/revelaction/svo/sentence"
	"github.com/revelaction/svo/stat"
	"github.com/urfave/cli/v2"
)

func statCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:      "stat",
		Usage:     "show sentence, token, clause head and triple counts",
		ArgsUsage: "<id|file> [sentenceId]",
		Flags:     []cli.Flag{docPathFlag, attrFlag},
		Action:    e.stat,
	}
}

func (e *env) stat(c *cli.Context) error {
	if c.NArg() < 1 || c.NArg() > 2 {
		return errors.New("stat needs a doc and an optional sentence id")
	}

	doc, err := e.loadDoc(c, c.Args().Get(0))
	if err != nil {
		return err
	}

	if c.NArg() == 2 {
		s, err := sentenceArg(doc, c.Args().Get(1))
		if err != nil {
			return err
		}
		doc = sent.Doc{Id: doc.Id, Title: doc.Title, Sentences: []sent.Sentence{s}}
	}

	hdl := stat.NewHandler(e.extractor(c))
	hdl.Aggregate(doc)

	stats := hdl.Get()
	fmt.Fprintf(e.ui.Out, "Num sentences %d, num tokens %d, num tokens per sentence %d\n", stats.NumSentences, stats.NumTokens, stats.TokensPerSentenceMean)
	fmt.Fprintf(e.ui.Out, "Num clause heads %d, num triples %d, sentences with triples %d\n", stats.NumClauseHeads, stats.NumTriples, stats.NumSentencesWithTriples)

	return nil
}
