package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/ganttplan/internal/db"
)

// NewTestDB returns a migrated in-memory SQLite store, closed with the test.
// It holds a single connection, so a transaction blocks other callers.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	return openTestDB(t, ":memory:")
}

// NewTestFileDB returns a migrated SQLite file in a temp directory. Use it
// when several connections must see the same rows.
func NewTestFileDB(t *testing.T) *sql.DB {
	t.Helper()
	return openTestDB(t, filepath.Join(t.TempDir(), "gantt.db"))
}

// NewTestStore wraps an in-memory database the way db.Open does, for code
// that takes a *db.Store.
func NewTestStore(t *testing.T) *db.Store {
	t.Helper()
	return &db.Store{DB: NewTestDB(t), Dialect: db.DialectSQLite}
}

// NewTestUoW creates a UnitOfWork backed by the given test database.
func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}

func openTestDB(t *testing.T, path string) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(path)
	if err != nil {
		t.Fatalf("opening test store %s: %v", path, err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}
