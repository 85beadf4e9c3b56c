package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/cockroachdb/errors"
	"github.com/revelaction/svo/config"
	"github.com/revelaction/svo/logger"
	"github.com/revelaction/svo/parse"
	"github.com/urfave/cli/v2"
)

// UI contains the output streams for the application.
// Used for injecting buffers during testing.
type UI struct {
	Out io.Writer
	Err io.Writer
}

// Set by the linker.
var (
	BuildTag    = "dev"
	BuildCommit = "none"
)

func main() {
	ui := UI{Out: os.Stdout, Err: os.Stderr}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newApp(ui, newCommandParser).RunContext(ctx, os.Args); err != nil {
		fprintErr(ui.Err, err)
		stop()
		os.Exit(1)
	}
}

func fprintErr(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "svo: %v\n", err)
	for _, hint := range errors.GetAllHints(err) {
		_, _ = fmt.Fprintf(w, "hint: %s\n", hint)
	}
}

// ParserFunc builds the external parser from the configuration.
type ParserFunc func(cfg config.Config) (parse.Parser, error)

func newCommandParser(cfg config.Config) (parse.Parser, error) {
	return parse.NewCommand(cfg.ParserCommand, cfg.ParserTimeout)
}

// env is shared by all commands of a run.
type env struct {
	ui        UI
	cfg       config.Config
	pool      Pool
	newParser ParserFunc
}

func newApp(ui UI, newParser ParserFunc) *cli.App {
	e := &env{ui: ui, newParser: newParser}

	return &cli.App{
		Name:      "svo",
		Usage:     "extract Subject-Verb-Object triples from dependency parsed English",
		Writer:    ui.Out,
		ErrWriter: ui.Err,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "TOML config `FILE` (default ./svo.toml)"},
			&cli.BoolFlag{Name: "log-json", Usage: "log as JSON lines"},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "debug logging"},
		},
		Before: e.setup,
		After: func(*cli.Context) error {
			return e.pool.Close()
		},
		// errors are printed by main
		ExitErrHandler: func(*cli.Context, error) {},
		Commands: []*cli.Command{
			extractCommand(e),
			textCommand(e),
			replCommand(e),
			sentenceCommand(e),
			conlluCommand(e),
			importDocCommand(e),
			exportDocCommand(e),
			lsDocCommand(e),
			statCommand(e),
			triplesCommand(e),
			watchCommand(e),
			versionCommand(e),
		},
	}
}

func (e *env) setup(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}

	if c.IsSet("log-json") {
		cfg.LogJSON = c.Bool("log-json")
	}

	if err := logger.Initialize(cfg.LogJSON, c.Bool("verbose")); err != nil {
		return errors.Wrap(err, "initializing logger")
	}

	e.cfg = cfg
	return nil
}
