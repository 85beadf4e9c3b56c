package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

func lsDocCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:   "ls-doc",
		Usage:  "list the docs of the repository",
		Flags:  []cli.Flag{docPathFlag},
		Action: e.lsDoc,
	}
}

func (e *env) lsDoc(c *cli.Context) error {
	path, err := e.docPath(c)
	if err != nil {
		return err
	}

	repo, err := NewDocRepository(&e.pool, path)
	if err != nil {
		return err
	}

	docs, err := repo.List()
	if err != nil {
		return err
	}

	for _, doc := range docs {
		fmt.Fprintf(e.ui.Out, "📖 %d %s\n", doc.Id, doc.Title)
	}

	return nil
}
