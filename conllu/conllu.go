// Package conllu reads CoNLL-U files, the output format of Universal
// Dependencies pipelines (stanza, udpipe), into a sentence.Doc.
//
// For a description see
// https://universaldependencies.org/format.html
//
// Multiword token ranges (1-2) and empty nodes (1.1) are skipped: only
// syntactic words carry a head. CoNLL-U ids start at 1 and the root has head
// 0; Token.Index is id-1 and the root points to itself.
package conllu

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	sent "github.com/revelaction/svo/sentence"
)

const (
	fieldSeparator = "\t"
	numFields      = 10
)

// A Row is a single parsed row of a CoNLL-U sentence
type Row struct {
	ID      int
	Form    string
	Lemma   string
	UPosTag string
	XPosTag string
	Feats   string
	Head    int
	DepRel  string
	Deps    string
	Misc    string
}

// Token converts the row to a sentence token.
func (r Row) Token(sentId int) sent.Token {
	index := r.ID - 1
	head := r.Head - 1
	if r.Head == 0 {
		head = index
	}

	return sent.Token{
		Index:      index,
		Head:       head,
		SentenceId: sentId,
		Text:       r.Form,
		Lemma:      r.Lemma,
		Pos:        r.UPosTag,
		Tag:        r.XPosTag,
		Dep:        r.DepRel,
	}
}

// ParseRow parses a data line. ok is false for multiword ranges and empty
// nodes.
func ParseRow(line string) (row Row, ok bool, err error) {
	fields := strings.Split(line, fieldSeparator)
	if len(fields) != numFields {
		return row, false, errors.Newf("expected %d fields, got %d", numFields, len(fields))
	}

	if strings.ContainsAny(fields[0], "-.") {
		return row, false, nil
	}

	row.ID, err = strconv.Atoi(fields[0])
	if err != nil {
		return row, false, errors.Wrapf(err, "parsing ID field (%s)", fields[0])
	}

	row.Head, err = parseInt(fields[6])
	if err != nil {
		return row, false, errors.Wrapf(err, "parsing HEAD field (%s)", fields[6])
	}

	row.Form = fields[1]
	row.Lemma = parseString(fields[2])
	row.UPosTag = parseString(fields[3])
	row.XPosTag = parseString(fields[4])
	row.Feats = parseString(fields[5])
	row.DepRel = parseString(fields[7])
	row.Deps = parseString(fields[8])
	row.Misc = parseString(fields[9])

	return row, true, nil
}

// Read reads all sentences of r. Comment lines (#) are ignored; sentences
// are separated by blank lines.
func Read(r io.Reader) (sent.Doc, error) {
	var doc sent.Doc
	var tokens []sent.Token

	flush := func() {
		if len(tokens) == 0 {
			return
		}
		doc.Sentences = append(doc.Sentences, sent.Sentence{Id: len(doc.Sentences), Tokens: tokens})
		tokens = nil
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimRight(scanner.Text(), "\r")

		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}

		if strings.HasPrefix(line, "#") {
			continue
		}

		row, ok, err := ParseRow(line)
		if err != nil {
			return sent.Doc{}, errors.Wrapf(err, "line %d", lineNum)
		}

		if !ok {
			continue
		}

		tokens = append(tokens, row.Token(len(doc.Sentences)))
	}

	if err := scanner.Err(); err != nil {
		return sent.Doc{}, errors.Wrap(err, "reading conllu")
	}

	flush()
	return doc, nil
}

// ReadFile reads a CoNLL-U file. The doc title is the file name without
// extension.
func ReadFile(path string) (sent.Doc, error) {
	f, err := os.Open(path)
	if err != nil {
		return sent.Doc{}, errors.Wrap(err, "IO error")
	}
	defer f.Close()

	doc, err := Read(f)
	if err != nil {
		return sent.Doc{}, errors.Wrapf(err, "conllu file %s", filepath.Base(path))
	}

	doc.Title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return doc, nil
}

func parseInt(value string) (int, error) {
	if value == "_" {
		return 0, nil
	}
	return strconv.Atoi(value)
}

func parseString(value string) string {
	if value == "_" {
		return ""
	}
	return value
}
