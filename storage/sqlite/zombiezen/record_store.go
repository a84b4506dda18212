package zombiezen

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/revelaction/reval/probe"
	sent "github.com/revelaction/reval/sentence"
	"github.com/revelaction/reval/storage"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// RecordStore keeps the probing datasets of many tasks in one database.
type RecordStore struct {
	pool *sqlitex.Pool
}

var _ storage.RecordRepository = (*RecordStore)(nil)

func NewRecordStore(pool *sqlitex.Pool) *RecordStore {
	return &RecordStore{pool: pool}
}

// Write replaces the records of task in a single transaction.
func (s *RecordStore) Write(task string, records []probe.Record) (err error) {
	conn, err := s.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer s.pool.Put(conn)

	// Start Transaction
	defer sqlitex.Save(conn)(&err)

	err = sqlitex.Execute(conn, "DELETE FROM records WHERE task = ?", &sqlitex.ExecOptions{
		Args: []interface{}{task},
	})
	if err != nil {
		return fmt.Errorf("failed to delete task %s: %w", task, err)
	}

	for i, r := range records {
		data, marshalErr := json.Marshal(r.Example)
		if marshalErr != nil {
			return marshalErr
		}

		err = sqlitex.Execute(conn, "INSERT INTO records (task, position, split, label, example_id, data) VALUES (?, ?, ?, ?, ?, ?)", &sqlitex.ExecOptions{
			Args: []interface{}{task, i, r.Split.String(), r.Label, r.Example.Id, string(data)},
		})
		if err != nil {
			return fmt.Errorf("failed to insert record: %w", err)
		}
	}

	return nil
}

func (s *RecordStore) Read(task string) ([]probe.Record, error) {
	conn, err := s.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer s.pool.Put(conn)

	var records []probe.Record
	err = sqlitex.Execute(conn, "SELECT split, label, data FROM records WHERE task = ? ORDER BY position", &sqlitex.ExecOptions{
		Args: []interface{}{task},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			split, err := probe.ParseSplit(stmt.ColumnText(0))
			if err != nil {
				return err
			}

			var ex sent.Example
			if err := json.Unmarshal([]byte(stmt.ColumnText(2)), &ex); err != nil {
				return err
			}

			records = append(records, probe.Record{Split: split, Label: stmt.ColumnText(1), Example: &ex})
			return nil
		},
	})
	if err != nil {
		return nil, err
	}

	if records == nil {
		return nil, fmt.Errorf("%s: %w", task, storage.ErrTaskNotFound)
	}

	return records, nil
}

func (s *RecordStore) Tasks() ([]string, error) {
	conn, err := s.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer s.pool.Put(conn)

	names := []string{}
	err = sqlitex.Execute(conn, "SELECT DISTINCT task FROM records ORDER BY task", &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			names = append(names, stmt.ColumnText(0))
			return nil
		},
	})
	if err != nil {
		return nil, err
	}

	return names, nil
}
