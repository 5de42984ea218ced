// Package sqlite implements the ledger storage interfaces on a local SQLite
// database. It backs development, the operator CLI and the ledger tests.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/chris/donation-ledger/pkg/storage"

	_ "modernc.org/sqlite"
)

// Store is a SQLite implementation of storage.Backend.
type Store struct {
	db *sql.DB
}

// Make sure we conform to the interface
var _ storage.Backend = (*Store)(nil)

// Open opens (creating if needed) the database at path and applies the schema.
// Use ":memory:" for a throwaway database.
func Open(path string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// SQLite allows one writer; a single connection serializes transactions
	// instead of surfacing SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	for _, stmt := range Migrations() {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply migration: %w", err)
		}
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Migrations returns the schema statements. Each string is a single statement.
func Migrations() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS leads (
			id             TEXT PRIMARY KEY,
			name           TEXT NOT NULL,
			purpose        TEXT NOT NULL DEFAULT '',
			category       TEXT NOT NULL DEFAULT '',
			degree_tags    TEXT NOT NULL DEFAULT '[]',
			help_requested INTEGER NOT NULL DEFAULT 0,
			help_given     INTEGER NOT NULL DEFAULT 0,
			status         TEXT NOT NULL,
			case_action    TEXT NOT NULL,
			due_date       TEXT NOT NULL DEFAULT '',
			version        INTEGER NOT NULL DEFAULT 1,
			created_by_id  TEXT NOT NULL DEFAULT '',
			created_at     TEXT NOT NULL,
			updated_at     TEXT NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS donations (
			id              TEXT PRIMARY KEY,
			donor_id        TEXT NOT NULL,
			donor_name      TEXT NOT NULL DEFAULT '',
			amount          INTEGER NOT NULL CHECK (amount > 0),
			type            TEXT NOT NULL DEFAULT '',
			payment_method  TEXT NOT NULL DEFAULT '',
			transaction_id  TEXT NOT NULL DEFAULT '',
			status          TEXT NOT NULL,
			allocated_total INTEGER NOT NULL DEFAULT 0 CHECK (allocated_total >= 0 AND allocated_total <= amount),
			version         INTEGER NOT NULL DEFAULT 1,
			created_at      TEXT NOT NULL,
			updated_at      TEXT NOT NULL,
			verified_at     TEXT,
			verified_by_id  TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_donations_status ON donations(status)`,

		// seq keeps allocations in the order they were appended to a donation.
		`CREATE TABLE IF NOT EXISTS allocations (
			seq                    INTEGER PRIMARY KEY AUTOINCREMENT,
			id                     TEXT NOT NULL UNIQUE,
			donation_id            TEXT NOT NULL REFERENCES donations(id),
			lead_id                TEXT NOT NULL,
			amount                 INTEGER NOT NULL CHECK (amount > 0),
			allocated_by_user_id   TEXT NOT NULL DEFAULT '',
			allocated_by_user_name TEXT NOT NULL DEFAULT '',
			allocated_at           TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_allocations_donation ON allocations(donation_id, seq)`,
		`CREATE INDEX IF NOT EXISTS idx_allocations_lead ON allocations(lead_id)`,

		`CREATE TABLE IF NOT EXISTS activity_log (
			seq       INTEGER PRIMARY KEY AUTOINCREMENT,
			id        TEXT NOT NULL UNIQUE,
			user_id   TEXT NOT NULL DEFAULT '',
			user_name TEXT NOT NULL DEFAULT '',
			role      TEXT NOT NULL DEFAULT '',
			activity  TEXT NOT NULL,
			details   TEXT NOT NULL DEFAULT '{}',
			timestamp TEXT NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS websocket_connections (
			connection_id TEXT PRIMARY KEY,
			connected_at  TEXT NOT NULL
		)`,
	}
}

// scanner is implemented by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse timestamp %q: %w", s, err)
	}
	return t, nil
}

// withTx runs fn in a transaction, committing only if fn returns nil.
func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// exists reports whether a row with the given id exists in table.
func exists(ctx context.Context, q execer, table, id string) (bool, error) {
	var one int
	err := q.QueryRowContext(ctx, "SELECT 1 FROM "+table+" WHERE id = ?", id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check %s %s: %w", table, id, err)
	}
	return true, nil
}

// missingOr returns storage.ErrNotFound when the row is absent and otherwise.
func missingOr(ctx context.Context, q execer, table, id string, otherwise error) error {
	found, err := exists(ctx, q, table, id)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%s %s: %w", table, id, storage.ErrNotFound)
	}
	return otherwise
}

func affected(res sql.Result) (int64, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n, nil
}
