package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Dialect names the SQL engine behind a store.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// ErrUnauthorized is returned when the store key does not open the store.
var ErrUnauthorized = errors.New("store key rejected")

const pingTimeout = 5 * time.Second

// Store is an opened, migrated and authorized database.
type Store struct {
	DB      *sql.DB
	Dialect Dialect
}

// Conn returns the DBTX repositories should use outside a transaction.
func (s *Store) Conn() DBTX {
	return Wrap(s.DB, s.Dialect)
}

// UnitOfWork returns a transaction runner for the store.
func (s *Store) UnitOfWork() UnitOfWork {
	return NewUnitOfWork(s.DB, s.Dialect)
}

func (s *Store) Close() error {
	return s.DB.Close()
}

// DialectFor picks the engine from a store location: postgres:// and
// postgresql:// URLs are Postgres, anything else is a SQLite file path.
func DialectFor(location string) Dialect {
	if strings.HasPrefix(location, "postgres://") || strings.HasPrefix(location, "postgresql://") {
		return DialectPostgres
	}
	return DialectSQLite
}

// Open locates the store, authorizes it with key and runs migrations.
// For Postgres the key is the connection password; for SQLite it is checked
// against the fingerprint recorded by the first successful open.
func Open(ctx context.Context, location, key string) (*Store, error) {
	if location == "" {
		return nil, errors.New("store location is empty")
	}
	if key == "" {
		return nil, errors.New("store key is empty")
	}

	switch DialectFor(location) {
	case DialectPostgres:
		database, err := openPostgres(ctx, location, key)
		if err != nil {
			return nil, err
		}
		return &Store{DB: database, Dialect: DialectPostgres}, nil
	default:
		database, err := OpenDB(location)
		if err != nil {
			return nil, err
		}
		if err := VerifyStoreKey(ctx, database, key); err != nil {
			database.Close()
			return nil, err
		}
		return &Store{DB: database, Dialect: DialectSQLite}, nil
	}
}

// OpenDB opens a SQLite database at the given path.
// If path is ":memory:", uses an in-memory database.
// Sets WAL mode and enables foreign keys.
// Runs migrations automatically.
func OpenDB(path string) (*sql.DB, error) {
	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if path == ":memory:" {
		// Each connection would otherwise see its own empty database.
		db.SetMaxOpenConns(1)
	}

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	if err := Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return db, nil
}

func openPostgres(ctx context.Context, location, key string) (*sql.DB, error) {
	dsn, err := withPassword(location, key)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		if isAuthFailure(err) {
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	if err := Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return db, nil
}

// withPassword sets key as the password of a postgres URL.
func withPassword(location, key string) (string, error) {
	u, err := url.Parse(location)
	if err != nil {
		return "", fmt.Errorf("parsing store location: %w", err)
	}
	user := "postgres"
	if u.User != nil && u.User.Username() != "" {
		user = u.User.Username()
	}
	u.User = url.UserPassword(user, key)
	return u.String(), nil
}

// isAuthFailure matches Postgres invalid_password and
// invalid_authorization_specification errors.
func isAuthFailure(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "28P01" || pgErr.Code == "28000"
	}
	return false
}
