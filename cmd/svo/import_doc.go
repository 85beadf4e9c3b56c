package main

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/gosuri/uiprogress"
	"github.com/revelaction/svo/storage/filesystem"
	"github.com/revelaction/svo/storage/sqlite/zombiezen"
	"github.com/urfave/cli/v2"
)

func importDocCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "import-doc",
		Usage: "copy the JSON docs of a directory into a SQLite repository",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "from", Required: true, Usage: "doc `DIR`"},
			&cli.StringFlag{Name: "to", Required: true, Usage: "SQLite `FILE`"},
		},
		Action: e.importDoc,
	}
}

func (e *env) importDoc(c *cli.Context) error {
	from, to := c.String("from"), c.String("to")

	src, err := filesystem.NewDocStore(from)
	if err != nil {
		return err
	}

	pool, err := e.pool.Open(to)
	if err != nil {
		return err
	}
	dst := zombiezen.NewDocStore(pool)

	fmt.Fprintf(e.ui.Out, "Reading docs from %s...\n", from)
	docs, err := src.List()
	if err != nil {
		return err
	}

	progress := uiprogress.New()
	progress.SetOut(e.ui.Err)
	progress.Start()
	loadBar := progress.AddBar(len(docs))
	loadBar.AppendCompleted()
	loadBar.PrependElapsed()

	if err := src.LoadAll(func(total int, name string) { loadBar.Incr() }); err != nil {
		progress.Stop()
		return err
	}

	bar := progress.AddBar(len(docs))
	bar.AppendCompleted()
	bar.PrependElapsed()

	count := 0
	for _, docMeta := range docs {
		doc, err := src.Read(docMeta.Id)
		if err != nil {
			progress.Stop()
			return errors.Wrapf(err, "failed to read doc %s", docMeta.Title)
		}

		if err := dst.Write(doc); err != nil {
			progress.Stop()
			return errors.Wrapf(err, "failed to write doc %s", docMeta.Title)
		}
		count++
		bar.Incr()
	}
	progress.Stop()

	fmt.Fprintf(e.ui.Out, "Successfully imported %d docs from %s to %s\n", count, from, to)
	return nil
}
