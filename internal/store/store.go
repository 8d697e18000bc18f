// Package store is the persistence layer: assessment records plus the
// operational registers (certificates, logs, corrective actions,
// suppliers) the readiness scorecard counts.
//
// It uses SQLite in WAL mode via modernc.org/sqlite — a single file
// under the data directory, no server, no cgo.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// timeNow is a package-level var to allow clock injection in tests.
var timeNow = time.Now

// dateOnly is the layout for calendar-day columns.
const dateOnly = "2006-01-02"

// Config holds store configuration.
type Config struct {
	DataDir string
}

// DefaultConfig returns the default store configuration.
func DefaultConfig() Config {
	home, _ := os.UserHomeDir()
	return Config{DataDir: filepath.Join(home, ".prepready")}
}

// Store is the SQLite-backed persistence layer.
type Store struct {
	db  *sql.DB
	cfg Config
}

// New creates a Store: it creates the data directory if needed, opens
// SQLite with WAL mode, and runs migrations.
func New(cfg Config) (*Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0700); err != nil {
		return nil, fmt.Errorf("store: create data dir: %w", err)
	}

	dbPath := filepath.Join(cfg.DataDir, "prepready.db")
	db, err := openDB("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}

	// SQLite performance pragmas
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA foreign_keys = ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return nil, fmt.Errorf("store: pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db, cfg: cfg}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("store: migration: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates all tables and indexes. Everything is IF NOT EXISTS
// so existing databases upgrade non-destructively.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS assessments (
			id          TEXT PRIMARY KEY,
			org         TEXT NOT NULL,
			framework   TEXT NOT NULL,
			assess_date TEXT NOT NULL,
			answers     TEXT,
			responses   TEXT,
			stars       INTEGER,
			score       INTEGER,
			created_at  TEXT NOT NULL,
			updated_at  TEXT NOT NULL,
			UNIQUE (org, framework, assess_date)
		);

		CREATE INDEX IF NOT EXISTS idx_assess_org_fw ON assessments(org, framework, assess_date DESC);

		CREATE TABLE IF NOT EXISTS business_profiles (
			org        TEXT PRIMARY KEY,
			name       TEXT NOT NULL,
			address    TEXT,
			contact    TEXT,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS certificates (
			id         TEXT PRIMARY KEY,
			org        TEXT NOT NULL,
			holder     TEXT NOT NULL,
			cert_type  TEXT NOT NULL,
			issued_at  TEXT NOT NULL,
			expires_at TEXT NOT NULL,
			created_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_certs_org ON certificates(org, expires_at DESC);

		CREATE TABLE IF NOT EXISTS training_records (
			id           TEXT PRIMARY KEY,
			org          TEXT NOT NULL,
			staff_name   TEXT NOT NULL,
			course       TEXT NOT NULL,
			completed_at TEXT NOT NULL,
			created_at   TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_training_org ON training_records(org);

		CREATE TABLE IF NOT EXISTS daily_logs (
			id         TEXT PRIMARY KEY,
			org        TEXT NOT NULL,
			log_date   TEXT NOT NULL,
			kind       TEXT NOT NULL,
			notes      TEXT,
			created_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_logs_org_date ON daily_logs(org, log_date DESC);

		CREATE TABLE IF NOT EXISTS corrective_actions (
			id        TEXT PRIMARY KEY,
			org       TEXT NOT NULL,
			title     TEXT NOT NULL,
			detail    TEXT,
			severity  TEXT NOT NULL,
			item_code TEXT,
			status    TEXT NOT NULL,
			opened_at TEXT NOT NULL,
			closed_at TEXT
		);

		CREATE INDEX IF NOT EXISTS idx_actions_org_status ON corrective_actions(org, status, severity);

		CREATE TABLE IF NOT EXISTS cleaning_tasks (
			id         TEXT PRIMARY KEY,
			org        TEXT NOT NULL,
			area       TEXT NOT NULL,
			frequency  TEXT NOT NULL,
			created_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_cleaning_org ON cleaning_tasks(org);

		CREATE TABLE IF NOT EXISTS pest_visits (
			id         TEXT PRIMARY KEY,
			org        TEXT NOT NULL,
			provider   TEXT NOT NULL,
			visit_date TEXT NOT NULL,
			notes      TEXT,
			created_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_pests_org_date ON pest_visits(org, visit_date DESC);

		CREATE TABLE IF NOT EXISTS calibrations (
			id            TEXT PRIMARY KEY,
			org           TEXT NOT NULL,
			equipment     TEXT NOT NULL,
			calibrated_at TEXT NOT NULL,
			created_at    TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_calibrations_org ON calibrations(org, calibrated_at DESC);

		CREATE TABLE IF NOT EXISTS suppliers (
			id         TEXT PRIMARY KEY,
			org        TEXT NOT NULL,
			name       TEXT NOT NULL,
			category   TEXT,
			approved   INTEGER NOT NULL DEFAULT 1,
			created_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_suppliers_org ON suppliers(org);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return err
	}
	return nil
}

// nowStamp returns the current time as an RFC3339 UTC string, the
// format every *_at column uses.
func nowStamp() string {
	return timeNow().UTC().Format(time.RFC3339)
}

// countRow runs a single-count query and scans the result.
func (s *Store) countRow(ctx context.Context, query string, args ...any) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
