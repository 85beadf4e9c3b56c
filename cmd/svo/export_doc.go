package main

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/gosuri/uiprogress"
	"github.com/revelaction/svo/storage/filesystem"
	"github.com/revelaction/svo/storage/sqlite/zombiezen"
	"github.com/urfave/cli/v2"
)

func exportDocCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "export-doc",
		Usage: "write the docs of a SQLite repository as JSON files",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "from", Required: true, Usage: "SQLite `FILE`"},
			&cli.StringFlag{Name: "to", Required: true, Usage: "doc `DIR`"},
		},
		Action: e.exportDoc,
	}
}

func (e *env) exportDoc(c *cli.Context) error {
	from, to := c.String("from"), c.String("to")

	if _, err := os.Stat(from); err != nil {
		return errors.Wrapf(err, "repository not found: %s", from)
	}

	pool, err := e.pool.Open(from)
	if err != nil {
		return err
	}
	src := zombiezen.NewDocStore(pool)

	// Ensure target directory exists
	if err := os.MkdirAll(to, 0755); err != nil {
		return errors.Wrap(err, "failed to create target directory")
	}

	dst, err := filesystem.NewDocStore(to)
	if err != nil {
		return err
	}

	docs, err := src.List()
	if err != nil {
		return err
	}

	progress := uiprogress.New()
	progress.SetOut(e.ui.Err)
	progress.Start()
	bar := progress.AddBar(len(docs))
	bar.AppendCompleted()
	bar.PrependElapsed()

	count := 0
	for _, docMeta := range docs {
		doc, err := src.Read(docMeta.Id)
		if err != nil {
			progress.Stop()
			return errors.Wrapf(err, "failed to read doc %s (id %d)", docMeta.Title, docMeta.Id)
		}

		if err := dst.Write(doc); err != nil {
			progress.Stop()
			return err
		}
		count++
		bar.Incr()
	}
	progress.Stop()

	fmt.Fprintf(e.ui.Out, "Successfully exported %d docs from %s to %s\n", count, from, to)
	return nil
}
