package main

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/revelaction/svo/conllu"
	sent "github.com/revelaction/svo/sentence"
	"github.com/revelaction/svo/storage"
	"github.com/revelaction/svo/storage/filesystem"
	"github.com/revelaction/svo/storage/sqlite/zombiezen"
	"github.com/urfave/cli/v2"
)

var docPathFlag = &cli.StringFlag{
	Name:    "doc-path",
	Aliases: []string{"d"},
	Usage:   "doc repository: a directory of JSON docs or a SQLite file",
}

// docPath returns the repository of the command: the flag, then the
// configured doc path, then the configured database.
func (e *env) docPath(c *cli.Context) (string, error) {
	if p := c.String(docPathFlag.Name); p != "" {
		return p, nil
	}
	if e.cfg.DocPath != "" {
		return e.cfg.DocPath, nil
	}
	if e.cfg.DBPath != "" {
		return e.cfg.DBPath, nil
	}

	return "", errors.WithHint(errors.New("no doc repository given"),
		"use --doc-path, SVO_DOC_PATH or doc_path in svo.toml")
}

// NewDocRepository opens a directory as a filesystem repository and any
// other file as a SQLite one.
func NewDocRepository(p *Pool, path string) (storage.DocRepository, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrapf(err, "repository not found: %s", path)
	}

	if info.IsDir() {
		return filesystem.NewDocStore(path)
	}

	pool, err := p.Open(path)
	if err != nil {
		return nil, err
	}
	return zombiezen.NewDocStore(pool), nil
}

func NewTripleRepository(p *Pool, path string) (storage.TripleRepository, error) {
	pool, err := p.Open(path)
	if err != nil {
		return nil, err
	}
	return zombiezen.NewTripleStore(pool), nil
}

// loadDoc reads source as a doc file (JSON or CoNLL-U) if it exists, or as a
// doc id of the repository.
func (e *env) loadDoc(c *cli.Context, source string) (sent.Doc, error) {
	if isFile(source) {
		return readDocFile(source)
	}

	id, err := strconv.Atoi(source)
	if err != nil {
		return sent.Doc{}, errors.WithHint(errors.Newf("no such doc file or id: %s", source),
			"give a path to a .json or .conllu file, or a doc id")
	}

	path, err := e.docPath(c)
	if err != nil {
		return sent.Doc{}, err
	}

	repo, err := NewDocRepository(&e.pool, path)
	if err != nil {
		return sent.Doc{}, err
	}

	return repo.Read(id)
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func readDocFile(path string) (sent.Doc, error) {
	if filepath.Ext(path) == ".conllu" {
		return conllu.ReadFile(path)
	}
	return filesystem.ReadDoc(path)
}

// sentenceArg parses and bounds checks a sentence position of doc.
func sentenceArg(doc sent.Doc, arg string) (sent.Sentence, error) {
	sentId, err := strconv.Atoi(arg)
	if err != nil {
		return sent.Sentence{}, errors.Wrapf(err, "invalid sentence id %q", arg)
	}

	if sentId < 0 || sentId >= len(doc.Sentences) {
		return sent.Sentence{}, errors.Newf("sentence index %d out of bounds (doc has %d sentences)", sentId, len(doc.Sentences))
	}

	return doc.Sentences[sentId], nil
}
