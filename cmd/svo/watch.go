package main

import (
	"fmt"

	"github.com/revelaction/svo/logger"
	"github.com/revelaction/svo/storage/filesystem"
	"github.com/revelaction/svo/watch"
	"github.com/urfave/cli/v2"
)

func watchCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:   "watch",
		Usage:  "extract JSON docs as they are written into the doc directory",
		Flags:  []cli.Flag{docPathFlag, formatFlag, attrFlag, noColorFlag},
		Action: e.watch,
	}
}

func (e *env) watch(c *cli.Context) error {
	dir, err := e.docPath(c)
	if err != nil {
		return err
	}

	extractor := e.extractor(c)
	r, err := e.renderer(c)
	if err != nil {
		return err
	}

	// callbacks run on timer goroutines; writes are serialized
	changes := make(chan string)

	w, err := watch.NewDocWatcher(dir, func(path string) {
		select {
		case changes <- path:
		case <-c.Context.Done():
		}
	})
	if err != nil {
		return err
	}

	done := make(chan error, 1)
	go func() { done <- w.Run(c.Context) }()

	fmt.Fprintf(e.ui.Err, "Watching %s\n", dir)

	for {
		select {
		case err := <-done:
			return err

		case path := <-changes:
			doc, err := filesystem.ReadDoc(path)
			if err != nil {
				logger.Logger.Warnw("skipping doc", "path", path, "error", err)
				continue
			}

			fmt.Fprintf(e.ui.Out, "✍  %s\n", doc.Title)
			if err := r.Triples(extractor.Extract(doc)); err != nil {
				return err
			}
		}
	}
}
