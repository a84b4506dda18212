package zombiezen

import (
	"context"
	_ "embed"
	"fmt"
	"runtime"

	"zombiezen.com/go/sqlite/sqlitex"
)

//go:embed sql/records.sql
var recordsSchema string

// NewPool opens the SQLite database at dbPath, creating the file and the
// records table if missing. Connections run in WAL mode.
func NewPool(dbPath string) (*sqlitex.Pool, error) {
	pool, err := sqlitex.NewPool(fmt.Sprintf("file:%s", dbPath), sqlitex.PoolOptions{
		PoolSize: runtime.NumCPU(),
	})
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", dbPath, err)
	}

	if err := migrate(pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database %s: %w", dbPath, err)
	}

	return pool, nil
}

// migrate runs the schema script. It only creates missing tables and
// indexes.
func migrate(pool *sqlitex.Pool) error {
	conn, err := pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer pool.Put(conn)

	if err := sqlitex.ExecuteScript(conn, recordsSchema, nil); err != nil {
		return fmt.Errorf("create records schema: %w", err)
	}

	return nil
}
