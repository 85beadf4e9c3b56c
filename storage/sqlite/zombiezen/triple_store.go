package zombiezen

import (
	"context"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/revelaction/svo/storage"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// timeLayout has a fixed width so that created sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

type TripleStore struct {
	pool *sqlitex.Pool
}

var _ storage.TripleRepository = (*TripleStore)(nil)

func NewTripleStore(pool *sqlitex.Pool) *TripleStore {
	return &TripleStore{pool: pool}
}

func (h *TripleStore) WriteRun(run storage.Run, records []storage.TripleRecord) (err error) {
	if run.Id == "" {
		return errors.New("run without id")
	}

	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer h.pool.Put(conn)

	defer sqlitex.Save(conn)(&err)

	pc := 0
	if run.PredicateComplement {
		pc = 1
	}

	err = sqlitex.Execute(conn, "INSERT INTO runs (id, created, predicate_complement, num_triples) VALUES (?, ?, ?, ?)", &sqlitex.ExecOptions{
		Args: []interface{}{run.Id, run.Created.UTC().Format(timeLayout), pc, len(records)},
	})
	if err != nil {
		return errors.Wrapf(err, "failed to insert run %s", run.Id)
	}

	for _, r := range records {
		err = sqlitex.Execute(conn, "INSERT INTO triples (run_id, doc_id, sentence_id, subject, verb, object) VALUES (?, ?, ?, ?, ?, ?)", &sqlitex.ExecOptions{
			Args: []interface{}{run.Id, r.DocId, r.SentenceId, r.Subject, r.Verb, r.Object},
		})
		if err != nil {
			return errors.Wrap(err, "failed to insert triple")
		}
	}

	return nil
}

func (h *TripleStore) Runs() ([]storage.Run, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer h.pool.Put(conn)

	var runs []storage.Run
	err = sqlitex.Execute(conn, "SELECT id, created, predicate_complement, num_triples FROM runs ORDER BY created DESC", &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			created, err := time.Parse(timeLayout, stmt.ColumnText(1))
			if err != nil {
				return errors.Wrapf(err, "run %s has an invalid creation time", stmt.ColumnText(0))
			}

			runs = append(runs, storage.Run{
				Id:                  stmt.ColumnText(0),
				Created:             created,
				PredicateComplement: stmt.ColumnInt(2) != 0,
				NumTriples:          stmt.ColumnInt(3),
			})
			return nil
		},
	})
	if err != nil {
		return nil, err
	}

	return runs, nil
}

func (h *TripleStore) Triples(q storage.TripleQuery) ([]storage.TripleRecord, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer h.pool.Put(conn)

	var where []string
	var args []interface{}

	if q.RunId != "" {
		where = append(where, "t.run_id = ?")
		args = append(args, q.RunId)
	}
	if q.Subject != "" {
		where = append(where, "t.subject = ?")
		args = append(args, q.Subject)
	}
	if q.Verb != "" {
		where = append(where, "t.verb = ?")
		args = append(args, q.Verb)
	}
	if q.Object != "" {
		where = append(where, "t.object = ?")
		args = append(args, q.Object)
	}

	var query strings.Builder
	query.WriteString("SELECT t.run_id, t.doc_id, t.sentence_id, t.subject, t.verb, t.object FROM triples t JOIN runs r ON r.id = t.run_id")
	if len(where) > 0 {
		query.WriteString(" WHERE ")
		query.WriteString(strings.Join(where, " AND "))
	}
	query.WriteString(" ORDER BY r.created, t.id")
	if q.Limit > 0 {
		query.WriteString(" LIMIT ?")
		args = append(args, q.Limit)
	}

	var records []storage.TripleRecord
	err = sqlitex.Execute(conn, query.String(), &sqlitex.ExecOptions{
		Args: args,
		ResultFunc: func(stmt *sqlite.Stmt) error {
			var r storage.TripleRecord
			r.RunId = stmt.ColumnText(0)
			r.DocId = stmt.ColumnInt(1)
			r.SentenceId = stmt.ColumnInt(2)
			r.Subject = stmt.ColumnText(3)
			r.Verb = stmt.ColumnText(4)
			r.Object = stmt.ColumnText(5)
			records = append(records, r)
			return nil
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "querying triples")
	}

	return records, nil
}
