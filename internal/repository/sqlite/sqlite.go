// Package sqlite implements the repository interfaces on top of SQLite.
//
// WHY modernc.org/sqlite?
// It is a pure Go translation of SQLite, so the server builds without a C
// toolchain and the database is a single file next to the binary.
//
// CONNECTION LIFECYCLE:
// database/sql hands out a pool, but this gateway does not keep connections
// around between operations. Every store call goes through scope(), which
// acquires a dedicated *sql.Conn, runs the statement(s), and releases it
// with a defer on every exit path. SetMaxIdleConns(0) makes that release
// close the underlying connection instead of parking it for reuse.
//
// There are no transactions spanning store calls: a create followed by its
// confirming read is two independent round trips.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jonboulle/clockwork"
	moderncsqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Options configures New.
type Options struct {
	// Path is the database file, e.g. "data/revista.db".
	Path string
	// Clock stamps created_at columns. Defaults to the real clock.
	Clock clockwork.Clock
}

// DB is the storage gateway. The per-entity stores returned by Articles(),
// Teams(), Results() and Users() share it.
type DB struct {
	conn  *sql.DB
	clock clockwork.Clock
}

// querier is the part of *sql.Conn the stores use inside a scope.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// execResult is copied out of sql.Result before the connection is released.
type execResult struct {
	lastID   int64
	affected int64
}

// New opens the database file, verifies it, and applies the schema.
//
// PRAGMAS IN THE DSN:
// Because connections are not reused, per-connection settings must travel
// with the DSN so that every fresh connection gets them:
//   - busy_timeout: wait for a competing writer instead of failing at once
//   - journal_mode(WAL): readers do not block behind a writer
//   - _time_format=sqlite: time.Time is written as a sortable text stamp
func New(opts Options) (*DB, error) {
	if opts.Path == "" {
		return nil, errors.New("sqlite: database path is required")
	}
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	dsn := opts.Path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_time_format=sqlite"
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}
	conn.SetMaxIdleConns(0)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	db := &DB{conn: conn, clock: clock}

	if err := db.migrate(context.Background()); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the database handle.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Articles returns the article store.
func (db *DB) Articles() *ArticleStore { return &ArticleStore{db: db} }

// Teams returns the standings store.
func (db *DB) Teams() *TeamStore { return &TeamStore{db: db} }

// Results returns the match result store.
func (db *DB) Results() *ResultStore { return &ResultStore{db: db} }

// Users returns the account store.
func (db *DB) Users() *UserStore { return &UserStore{db: db} }

// scope acquires a connection, runs fn with it, and releases it.
func (db *DB) scope(ctx context.Context, fn func(q querier) error) error {
	conn, err := db.conn.Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquiring connection: %w", err)
	}
	defer conn.Close()

	return fn(conn)
}

// exec runs a single write statement in its own scope.
func (db *DB) exec(ctx context.Context, query string, args ...any) (execResult, error) {
	var out execResult
	err := db.scope(ctx, func(q querier) error {
		res, err := q.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		// LastInsertId is meaningless for UPDATE/DELETE but harmless to read.
		if out.lastID, err = res.LastInsertId(); err != nil {
			return err
		}
		out.affected, err = res.RowsAffected()
		return err
	})
	return out, err
}

// query runs a SELECT in its own scope and calls each for every row.
// Rows are always closed before the connection is released.
func (db *DB) query(ctx context.Context, query string, args []any, each func(rows *sql.Rows) error) error {
	return db.scope(ctx, func(q querier) error {
		rows, err := q.QueryContext(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			if err := each(rows); err != nil {
				return err
			}
		}
		return rows.Err()
	})
}

// queryRow runs a single-row SELECT and scans it into dest. A missing row
// is returned as sql.ErrNoRows for the caller to translate.
func (db *DB) queryRow(ctx context.Context, query string, args []any, dest ...any) error {
	return db.scope(ctx, func(q querier) error {
		return q.QueryRowContext(ctx, query, args...).Scan(dest...)
	})
}

// migrate creates every table that does not exist yet. It is safe to run on
// every start.
func (db *DB) migrate(ctx context.Context) error {
	return db.scope(ctx, func(q querier) error {
		for _, stmt := range schema {
			if _, err := q.ExecContext(ctx, stmt.sql); err != nil {
				return fmt.Errorf("creating %s: %w", stmt.name, err)
			}
		}
		return nil
	})
}

var schema = []struct {
	name string
	sql  string
}{
	{"articles table", `
		CREATE TABLE IF NOT EXISTS articles (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			title      TEXT NOT NULL,
			body       TEXT NOT NULL,
			author     TEXT NOT NULL,
			image_url  TEXT,
			created_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_articles_created_at ON articles(created_at);
	`},
	{"teams table", `
		CREATE TABLE IF NOT EXISTS teams (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			name            TEXT NOT NULL,
			position        INTEGER NOT NULL,
			played          INTEGER NOT NULL,
			won             INTEGER NOT NULL,
			drawn           INTEGER NOT NULL,
			lost            INTEGER NOT NULL,
			goals_for       INTEGER NOT NULL,
			goals_against   INTEGER NOT NULL,
			goal_difference INTEGER NOT NULL,
			points          INTEGER NOT NULL,
			logo_url        TEXT
		);
	`},
	// Result columns are nullable: the legacy update writes NULL for every
	// field missing from its payload.
	{"results table", `
		CREATE TABLE IF NOT EXISTS results (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			round      INTEGER,
			home_team  TEXT,
			away_team  TEXT,
			home_goals INTEGER,
			away_goals INTEGER,
			match_date TEXT,
			home_logo  TEXT,
			away_logo  TEXT
		);
	`},
	// UNIQUE on email backs up the service-level duplicate check; SQLite
	// allows several NULL emails, which a profile overwrite can produce.
	{"users table", `
		CREATE TABLE IF NOT EXISTS users (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			email      TEXT UNIQUE,
			password   TEXT NOT NULL,
			name       TEXT,
			phone      TEXT,
			role       TEXT NOT NULL DEFAULT 'user',
			created_at DATETIME NOT NULL
		);
	`},
}

// isUniqueViolation reports whether err is SQLite rejecting a duplicate
// value in a UNIQUE column.
func isUniqueViolation(err error) bool {
	var se *moderncsqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	switch se.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE:
		return true
	case sqlite3.SQLITE_CONSTRAINT:
		return strings.Contains(se.Error(), "UNIQUE")
	}
	return false
}

// Helpers converting between nullable columns and pointer fields.

func nullString(p *string) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *p, Valid: true}
}

func nullInt(p *int) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*p), Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func intPtr(ni sql.NullInt64) *int {
	if !ni.Valid {
		return nil
	}
	v := int(ni.Int64)
	return &v
}
