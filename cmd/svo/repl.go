package main

import (
	"github.com/revelaction/svo/repl"
	"github.com/urfave/cli/v2"
)

func replCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:   "repl",
		Usage:  "interactive loop: each line is parsed and its triples printed",
		Flags:  []cli.Flag{attrFlag, noColorFlag},
		Action: e.repl,
	}
}

func (e *env) repl(c *cli.Context) error {
	parser, err := e.newParser(e.cfg)
	if err != nil {
		return err
	}

	h := repl.NewHandler(parser, e.ui.Out)
	h.Attr = e.extractor(c).Options().PredicateComplement
	h.HasColor = !c.Bool(noColorFlag.Name)
	return h.Run(c.Context)
}
