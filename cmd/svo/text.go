package main

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/revelaction/svo/parse"
	"github.com/urfave/cli/v2"
)

func textCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:      "text",
		Usage:     "parse English text and print its triples",
		ArgsUsage: `"<english text>"`,
		Flags:     []cli.Flag{formatFlag, attrFlag, noColorFlag},
		Action:    e.text,
	}
}

func (e *env) text(c *cli.Context) error {
	text := strings.Join(c.Args().Slice(), " ")
	if strings.TrimSpace(text) == "" {
		return errors.WithHint(parse.ErrEmptyText, `svo text "John reads books."`)
	}

	parser, err := e.newParser(e.cfg)
	if err != nil {
		return err
	}

	doc, err := parser.Parse(c.Context, text)
	if err != nil {
		return err
	}

	r, err := e.renderer(c)
	if err != nil {
		return err
	}

	return r.Triples(e.extractor(c).Extract(doc))
}
