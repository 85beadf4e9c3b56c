package main

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/revelaction/svo/conllu"
	"github.com/revelaction/svo/storage/filesystem"
	"github.com/urfave/cli/v2"
)

func conlluCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:      "conllu",
		Usage:     "extract the triples of a CoNLL-U file, or convert it to a JSON doc",
		ArgsUsage: "<file.conllu>",
		Flags: []cli.Flag{
			formatFlag,
			attrFlag,
			noColorFlag,
			&cli.StringFlag{Name: "to-json", Usage: "write the doc into the doc `DIR` instead of extracting"},
		},
		Action: e.conllu,
	}
}

func (e *env) conllu(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("conllu needs a file")
	}

	doc, err := conllu.ReadFile(c.Args().First())
	if err != nil {
		return err
	}

	if dir := c.String("to-json"); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrap(err, "failed to create target directory")
		}

		store, err := filesystem.NewDocStore(dir)
		if err != nil {
			return err
		}

		if err := store.Write(doc); err != nil {
			return err
		}

		fmt.Fprintf(e.ui.Out, "Converted %d sentences to %s\n", len(doc.Sentences), dir)
		return nil
	}

	r, err := e.renderer(c)
	if err != nil {
		return err
	}

	return r.Triples(e.extractor(c).Extract(doc))
}
