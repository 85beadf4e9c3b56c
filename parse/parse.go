// Package parse obtains dependency parses for raw text from an external
// parser.
package parse

import (
	"bytes"
	"context"
	"encoding/json"
	"os/exec"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/revelaction/svo/logger"
	sent "github.com/revelaction/svo/sentence"
)

// ErrEmptyText is returned when there is nothing to parse.
var ErrEmptyText = errors.New("empty text")

// Parser turns English text into a parsed Doc. Implementations are built
// once and reused.
type Parser interface {
	Parse(ctx context.Context, text string) (sent.Doc, error)
}

// Command runs an external program for each text. The text is written to
// its stdin and a JSON Doc is expected on its stdout.
type Command struct {
	Name string
	Args []string

	// Timeout bounds a single parse. Zero means no timeout besides the
	// context.
	Timeout time.Duration
}

var _ Parser = (*Command)(nil)

// NewCommand builds a Command from argv, as found in the configuration.
func NewCommand(argv []string, timeout time.Duration) (*Command, error) {
	if len(argv) == 0 || argv[0] == "" {
		return nil, errors.WithHint(errors.New("no parser command configured"),
			"set parser_command in svo.toml or SVO_PARSER")
	}

	return &Command{Name: argv[0], Args: argv[1:], Timeout: timeout}, nil
}

func (c *Command) Parse(ctx context.Context, text string) (sent.Doc, error) {
	if strings.TrimSpace(text) == "" {
		return sent.Doc{}, ErrEmptyText
	}

	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Stdin = strings.NewReader(text)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	logger.Logger.Debugw("parser finished", "command", c.Name, "duration_ms", time.Since(start).Milliseconds(), "bytes", stdout.Len())

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return sent.Doc{}, errors.Wrapf(ctxErr, "parser %s", c.Name)
		}

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			err = errors.Wrapf(err, "parser %s failed: %s", c.Name, strings.TrimSpace(stderr.String()))
			return sent.Doc{}, errors.WithHint(err, "is the spaCy model installed? try: python -m spacy download en_core_web_sm")
		}

		err = errors.Wrapf(err, "could not run parser %s", c.Name)
		return sent.Doc{}, errors.WithHint(err, "check parser_command in svo.toml or SVO_PARSER")
	}

	return Decode(stdout.Bytes())
}

// Decode decodes a Doc in the parser JSON format. Sentence doc ids are set
// from the doc.
func Decode(data []byte) (sent.Doc, error) {
	var doc sent.Doc
	if err := json.Unmarshal(data, &doc); err != nil {
		return sent.Doc{}, errors.Wrap(err, "JSON decoding error in parser output")
	}

	for i := range doc.Sentences {
		doc.Sentences[i].DocId = doc.Id
	}

	return doc, nil
}
