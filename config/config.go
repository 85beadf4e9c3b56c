// Package config loads svo settings. Later sources override earlier ones:
// defaults, the TOML file, the environment and finally command line flags,
// which are applied by the CLI.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
)

const (
	// DefaultFile is read from the working directory when no file is given.
	DefaultFile = "svo.toml"

	EnvConfig  = "SVO_CONFIG"
	EnvDocPath = "SVO_DOC_PATH"
	EnvDBPath  = "SVO_DB_PATH"
	EnvParser  = "SVO_PARSER"
)

const defaultParserTimeout = 30 * time.Second

type Config struct {
	// DocPath is the directory of JSON docs.
	DocPath string

	// DBPath is the SQLite file for docs and triples.
	DBPath string

	// ParserCommand is the argv of the external parser.
	ParserCommand []string

	ParserTimeout time.Duration

	PredicateComplement bool

	LogJSON bool
}

// file mirrors the TOML layout.
type file struct {
	DocPath             string   `toml:"doc_path"`
	DBPath              string   `toml:"db_path"`
	ParserCommand       []string `toml:"parser_command"`
	ParserTimeout       string   `toml:"parser_timeout"`
	PredicateComplement *bool    `toml:"predicate_complement"`
	LogJSON             *bool    `toml:"log_json"`
}

// Default has no parser command: it depends on the local NLP installation
// and must be configured.
func Default() Config {
	return Config{
		ParserTimeout: defaultParserTimeout,
	}
}

// Load builds the configuration from path, or from $SVO_CONFIG, or from
// ./svo.toml if it exists, then applies the environment. An explicitly named
// file must exist.
func Load(path string) (Config, error) {
	return load(path, os.Getenv)
}

func load(path string, getenv func(string) string) (Config, error) {
	cfg := Default()

	explicit := true
	if path == "" {
		path = getenv(EnvConfig)
	}
	if path == "" {
		path = DefaultFile
		explicit = false
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := cfg.decode(data); err != nil {
			return Config{}, errors.Wrapf(err, "config file %s", path)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return Config{}, errors.Wrap(err, "IO error")
	}

	cfg.applyEnv(getenv)
	return cfg, nil
}

func (c *Config) decode(data []byte) error {
	var f file
	md, err := toml.Decode(string(data), &f)
	if err != nil {
		return err
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return errors.WithHint(errors.Newf("unknown key %s", undecoded[0]),
			"known keys: doc_path, db_path, parser_command, parser_timeout, predicate_complement, log_json")
	}

	if f.DocPath != "" {
		c.DocPath = f.DocPath
	}
	if f.DBPath != "" {
		c.DBPath = f.DBPath
	}
	if len(f.ParserCommand) > 0 {
		c.ParserCommand = f.ParserCommand
	}
	if f.ParserTimeout != "" {
		d, err := time.ParseDuration(f.ParserTimeout)
		if err != nil {
			return errors.Wrap(err, "parser_timeout")
		}
		if d < 0 {
			return errors.Newf("parser_timeout must not be negative: %s", f.ParserTimeout)
		}
		c.ParserTimeout = d
	}
	if f.PredicateComplement != nil {
		c.PredicateComplement = *f.PredicateComplement
	}
	if f.LogJSON != nil {
		c.LogJSON = *f.LogJSON
	}

	return nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	if v := getenv(EnvDocPath); v != "" {
		c.DocPath = v
	}
	if v := getenv(EnvDBPath); v != "" {
		c.DBPath = v
	}
	if v := strings.Fields(getenv(EnvParser)); len(v) > 0 {
		c.ParserCommand = v
	}
}
