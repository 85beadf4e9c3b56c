// Package repl is the interactive text to triples loop.
package repl

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/c-bata/go-prompt"
	"github.com/cockroachdb/errors"
	"github.com/revelaction/svo/logger"
	"github.com/revelaction/svo/parse"
	"github.com/revelaction/svo/render"
	sent "github.com/revelaction/svo/sentence"
	"github.com/revelaction/svo/svo"
)

const (
	cmdQuit  = "quit"
	cmdDebug = ":debug"
	cmdAttr  = ":attr"

	// EmptyInput is printed when the line has no text.
	EmptyInput = "enter some English text"
)

type Handler struct {
	Parser parse.Parser
	Out    io.Writer

	// Debug prints the token table of each parsed sentence.
	Debug bool

	// Attr enables predicate complements as objects.
	Attr bool

	HasColor bool

	// words seen in previous inputs, for completion
	words map[string]struct{}
}

func NewHandler(p parse.Parser, out io.Writer) *Handler {
	return &Handler{
		Parser: p,
		Out:    out,
		words:  map[string]struct{}{},
	}
}

func (h *Handler) Run(ctx context.Context) error {
	fmt.Fprintln(h.Out, "🔑 Ctrl+X: Toggle debug, Ctrl+F: Toggle attr, 🔧 quit")

	// initialize prompt history
	history := []string{}

	for {
		in := prompt.Input("      ✍  ", h.completer,
			prompt.OptionTitle("svo"),
			prompt.OptionPrefixTextColor(prompt.Yellow),
			prompt.OptionPreviewSuggestionTextColor(prompt.Blue),
			prompt.OptionSelectedSuggestionBGColor(prompt.LightGray),
			prompt.OptionMaxSuggestion(12),
			prompt.OptionSuggestionBGColor(prompt.DarkGray),
			prompt.OptionHistory(history),
			prompt.OptionAddKeyBind(prompt.KeyBind{
				Key: prompt.ControlX,
				Fn: func(buf *prompt.Buffer) {
					h.toggleDebug()
				}}),
			prompt.OptionAddKeyBind(prompt.KeyBind{
				Key: prompt.ControlF,
				Fn: func(buf *prompt.Buffer) {
					h.toggleAttr()
				}}),
		)

		if ctx.Err() != nil {
			return ctx.Err()
		}

		history = append(history, in)

		quit, err := h.Eval(ctx, in)
		if quit {
			return nil
		}

		if err != nil {
			logger.Logger.Debugw("eval failed", "error", err)
			fmt.Fprintf(h.Out, "svo: %v\n", err)
			for _, hint := range errors.GetAllHints(err) {
				fmt.Fprintf(h.Out, "hint: %s\n", hint)
			}
		}
	}
}

// Eval handles one input line. It reports whether the loop should stop.
func (h *Handler) Eval(ctx context.Context, in string) (bool, error) {
	in = strings.TrimSpace(in)

	switch in {
	case cmdQuit:
		return true, nil
	case cmdDebug:
		h.toggleDebug()
		return false, nil
	case cmdAttr:
		h.toggleAttr()
		return false, nil
	case "":
		fmt.Fprintln(h.Out, EmptyInput)
		return false, nil
	}

	doc, err := h.Parser.Parse(ctx, in)
	if err != nil {
		return false, err
	}

	h.remember(doc)

	extractor := svo.New(svo.Options{PredicateComplement: h.Attr})

	if h.Debug {
		for _, s := range doc.Sentences {
			fmt.Fprintf(h.Out, "%2d ✍  %s\n", s.Id, render.SentenceString(s.Tokens))
			if err := render.Tokens(h.Out, sent.NewTree(s.Tokens)); err != nil {
				return false, err
			}
		}
	}

	r := render.NewTextRenderer(h.Out)
	r.HasColor = h.HasColor
	return false, r.Triples(extractor.Extract(doc))
}

func (h *Handler) toggleDebug() {
	h.Debug = !h.Debug
	fmt.Fprintf(h.Out, "Debug set to %t\n", h.Debug)
}

func (h *Handler) toggleAttr() {
	h.Attr = !h.Attr
	fmt.Fprintf(h.Out, "Attr set to %t\n", h.Attr)
}

func (h *Handler) remember(doc sent.Doc) {
	for _, s := range doc.Sentences {
		for _, t := range s.Tokens {
			if t.PosCategory() != sent.PosOther {
				h.words[t.Text] = struct{}{}
			}
		}
	}
}

func (h *Handler) completer(in prompt.Document) []prompt.Suggest {
	s := []prompt.Suggest{}
	word := in.GetWordBeforeCursor()

	if word == "" {
		return s
	}

	if strings.HasPrefix(word, ":") || strings.HasPrefix(cmdQuit, word) {
		for _, c := range []prompt.Suggest{
			{Text: cmdDebug, Description: "toggle the token table"},
			{Text: cmdAttr, Description: "toggle predicate complements"},
			{Text: cmdQuit, Description: "exit"},
		} {
			if strings.HasPrefix(c.Text, word) {
				s = append(s, c)
			}
		}
		return s
	}

	if len(word) < 2 {
		return s
	}

	for w := range h.words {
		if strings.HasPrefix(w, word) && w != word {
			s = append(s, prompt.Suggest{Text: w})
		}
	}

	return prompt.FilterHasPrefix(s, word, false)
}
