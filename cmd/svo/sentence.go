package main

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/revelaction/svo/render"
	sent "github.com/revelaction/svo/sentence"
	"github.com/urfave/cli/v2"
)

func sentenceCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:      "sentence",
		Usage:     "show the tokens of a sentence with their heads",
		ArgsUsage: "<id|file> <sentenceId>",
		Flags:     []cli.Flag{docPathFlag, attrFlag},
		Action:    e.sentence,
	}
}

func (e *env) sentence(c *cli.Context) error {
	if c.NArg() != 2 {
		return errors.New("sentence needs a doc and a sentence id")
	}

	doc, err := e.loadDoc(c, c.Args().Get(0))
	if err != nil {
		return err
	}

	s, err := sentenceArg(doc, c.Args().Get(1))
	if err != nil {
		return err
	}

	fmt.Fprintf(e.ui.Out, "✍  %d %s\n\n", s.Id, render.SentenceString(s.Tokens))

	tree := sent.NewTree(s.Tokens)
	if err := render.Tokens(e.ui.Out, tree); err != nil {
		return err
	}

	fmt.Fprintln(e.ui.Out)
	return render.NewTextRenderer(e.ui.Out).Triples(e.extractor(c).Tree(tree))
}
