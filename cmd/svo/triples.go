package main

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/revelaction/svo/render"
	"github.com/revelaction/svo/storage"
	"github.com/urfave/cli/v2"
)

func triplesCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "triples",
		Usage: "list stored triples, or the runs with --runs",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "db", Usage: "SQLite `FILE` (default db_path)"},
			&cli.StringFlag{Name: "run", Usage: "only triples of run `ID`"},
			&cli.StringFlag{Name: "subject", Usage: "only triples with this subject"},
			&cli.StringFlag{Name: "verb", Usage: "only triples with this verb"},
			&cli.StringFlag{Name: "object", Usage: "only triples with this object"},
			&cli.IntFlag{Name: "limit", Usage: "at most `N` triples"},
			&cli.BoolFlag{Name: "runs", Usage: "list the runs"},
			formatFlag,
		},
		Action: e.triples,
	}
}

func (e *env) triples(c *cli.Context) error {
	db := c.String("db")
	if db == "" {
		db = e.cfg.DBPath
	}
	if db == "" {
		return errors.WithHint(errors.New("no triple database given"), "use --db, SVO_DB_PATH or db_path in svo.toml")
	}

	if _, err := os.Stat(db); err != nil {
		return errors.Wrapf(err, "repository not found: %s", db)
	}

	repo, err := NewTripleRepository(&e.pool, db)
	if err != nil {
		return err
	}

	if c.Bool("runs") {
		runs, err := repo.Runs()
		if err != nil {
			return err
		}
		return render.Runs(e.ui.Out, runs)
	}

	records, err := repo.Triples(storage.TripleQuery{
		RunId:   c.String("run"),
		Subject: c.String("subject"),
		Verb:    c.String("verb"),
		Object:  c.String("object"),
		Limit:   c.Int("limit"),
	})
	if err != nil {
		return err
	}

	r, err := render.New(c.String(formatFlag.Name), e.ui.Out)
	if err != nil {
		return err
	}

	return r.Records(records)
}
