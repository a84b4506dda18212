package main

import (
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/revelaction/reval/storage/sqlite/zombiezen"
)

// dbStore lazily opens the record database of a command.
type dbStore struct {
	path string
	pool *sqlitex.Pool
}

// Store opens the database on first use.
func (d *dbStore) Store() (*zombiezen.RecordStore, error) {
	if d.pool == nil {
		pool, err := zombiezen.NewPool(d.path)
		if err != nil {
			return nil, err
		}
		d.pool = pool
	}

	return zombiezen.NewRecordStore(d.pool), nil
}

func (d *dbStore) Close() error {
	if d.pool == nil {
		return nil
	}
	return d.pool.Close()
}
