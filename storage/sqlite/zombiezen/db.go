package zombiezen

import (
	"fmt"
	"runtime"

	"github.com/cockroachdb/errors"
	"zombiezen.com/go/sqlite/sqlitex"
)

// NewPool creates a new Zombiezen SQLite connection pool with reasonable defaults
// (e.g., WAL mode enabled).
func NewPool(dbPath string) (*sqlitex.Pool, error) {
	poolSize := runtime.NumCPU()
	initString := fmt.Sprintf("file:%s", dbPath)

	// zombiezen/sqlitex.NewPool with default options uses flags:
	// sqlite.OpenReadWrite | sqlite.OpenCreate | sqlite.OpenWAL | sqlite.OpenURI
	pool, err := sqlitex.NewPool(initString, sqlitex.PoolOptions{
		PoolSize: poolSize,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create zombiezen pool at %s", dbPath)
	}
	return pool, nil
}

// Open creates the pool and the doc and triple tables.
func Open(dbPath string) (*sqlitex.Pool, error) {
	pool, err := NewPool(dbPath)
	if err != nil {
		return nil, err
	}

	for _, schema := range []string{DocsSchema, TriplesSchema} {
		if err := CreateSchemas(pool, schema); err != nil {
			pool.Close()
			return nil, err
		}
	}

	return pool, nil
}
