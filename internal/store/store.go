package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/abhisek/ababa/ent"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// ErrNotFound is returned by lookups that match no row.
var ErrNotFound = errors.New("store: not found")

// Options selects and tunes the database backend.
type Options struct {
	Driver string // "sqlite" (default) or "postgres"
	DSN    string

	// Postgres pool limits. Zero values keep the pgxpool defaults.
	MaxConns        int32
	MaxConnLifetime time.Duration
}

// Store holds the ent client and provides access to repositories.
type Store struct {
	db      *sql.DB
	client  *ent.Client
	dialect string
	pool    *pgxpool.Pool
	seq     *sequenceCounter
}

// Open opens the SQLite database at dsn, applies pragmas and runs the
// migration.
func Open(dsn string) (*Store, error) {
	return OpenWith(context.Background(), Options{Driver: DriverSQLite, DSN: dsn})
}

// OpenWith opens the backend described by opts and migrates it.
func OpenWith(ctx context.Context, opts Options) (*Store, error) {
	s := &Store{}

	switch opts.Driver {
	case "", DriverSQLite:
		db, err := sql.Open("sqlite", withSQLitePragmas(opts.DSN))
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		if err := applyPragmas(db); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply pragmas: %w", err)
		}
		s.db, s.dialect = db, dialect.SQLite

	case DriverPostgres:
		pool, err := newPool(ctx, opts)
		if err != nil {
			return nil, err
		}
		s.pool = pool
		s.db, s.dialect = stdlib.OpenDBFromPool(pool), dialect.Postgres

	default:
		return nil, fmt.Errorf("unsupported database driver %q", opts.Driver)
	}

	drv := entsql.OpenDB(s.dialect, s.db)
	s.client = ent.NewClient(ent.Driver(drv))

	if err := s.client.Schema.Create(ctx); err != nil {
		s.Close()
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}

	seq, err := newSequenceCounter(ctx, s.db)
	if err != nil {
		s.Close()
		return nil, err
	}
	s.seq = seq

	return s, nil
}

func newPool(ctx context.Context, opts Options) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(opts.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if opts.MaxConns > 0 {
		poolConfig.MaxConns = opts.MaxConns
	}
	if opts.MaxConnLifetime > 0 {
		poolConfig.MaxConnLifetime = opts.MaxConnLifetime
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("new pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return pool, nil
}

// Client returns the underlying ent client.
func (s *Store) Client() *ent.Client {
	return s.client
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Dialect returns the ent dialect name of the backend.
func (s *Store) Dialect() string {
	return s.dialect
}

// Close closes the database connection.
func (s *Store) Close() error {
	var err error
	if s.client != nil {
		err = s.client.Close()
	} else if s.db != nil {
		err = s.db.Close()
	}
	if s.pool != nil {
		s.pool.Close()
	}
	return err
}

// ContentRepo returns the catalogue repository.
func (s *Store) ContentRepo() *ContentRepo {
	return &ContentRepo{client: s.client}
}

// EventRepo returns the event repository.
func (s *Store) EventRepo() EventRepo {
	return &eventRepo{client: s.client, seq: s.seq}
}

// withSQLitePragmas adds connection-level pragmas so every pooled
// connection gets them, not only the first.
func withSQLitePragmas(dsn string) string {
	if strings.Contains(dsn, "_pragma=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

// applyPragmas configures SQLite for single-user performance.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. ABABA_DB environment variable
// 2. $XDG_DATA_HOME/ababa/ababa.db
// 3. ~/.local/share/ababa/ababa.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("ABABA_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "ababa", "ababa.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
