package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/calebfornari/listerine/internal/monitor"
	_ "modernc.org/sqlite"
)

// Store persists monitor counters, disabled flags, outcome history, and
// settings snapshots in a single SQLite file. It implements
// monitor.Store.
type Store struct {
	db     *sql.DB
	dbPath string
}

var _ monitor.Store = (*Store)(nil)

// Open opens (or creates) the database at dbPath and runs migrations.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite single-writer
	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}
	return &Store{db: db, dbPath: dbPath}, nil
}

// DBPath returns the database file path.
func (s *Store) DBPath() string { return s.dbPath }

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

// Read returns the value stored under (key, environment).
func (s *Store) Read(key, environment string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(
		"SELECT value FROM kv WHERE key = ? AND environment = ?", key, environment,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Write upserts the value under (key, environment).
func (s *Store) Write(key, value, environment string) error {
	_, err := s.db.Exec(
		`INSERT INTO kv (key, environment, value) VALUES (?, ?, ?)
		 ON CONFLICT (key, environment) DO UPDATE SET value = excluded.value`,
		key, environment, value)
	return err
}

// Delete removes the value under (key, environment).
func (s *Store) Delete(key, environment string) error {
	_, err := s.db.Exec("DELETE FROM kv WHERE key = ? AND environment = ?", key, environment)
	return err
}

// Disable marks a monitor disabled for an environment.
func (s *Store) Disable(name, environment string) error {
	_, err := s.db.Exec(
		"INSERT OR IGNORE INTO disabled (monitor, environment) VALUES (?, ?)",
		name, environment)
	return err
}

// Enable clears a monitor's disabled flag for an environment.
func (s *Store) Enable(name, environment string) error {
	_, err := s.db.Exec(
		"DELETE FROM disabled WHERE monitor = ? AND environment = ?",
		name, environment)
	return err
}

// IsDisabled reports whether a monitor is disabled for an environment.
// Monitors never explicitly disabled read as enabled.
func (s *Store) IsDisabled(name, environment string) (bool, error) {
	var n int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM disabled WHERE monitor = ? AND environment = ?",
		name, environment).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// WriteOutcome appends a run result to the outcomes history.
func (s *Store) WriteOutcome(name string, outcome monitor.Outcome, environment string) error {
	_, err := s.db.Exec(
		`INSERT INTO outcomes (monitor, environment, status, diagnostic, recorded_at)
		 VALUES (?, ?, ?, ?, ?)`,
		name, environment, string(outcome.Status), outcome.Diagnostic, time.Now().Unix())
	return err
}

// SaveSettings snapshots a monitor definition as JSON.
func (s *Store) SaveSettings(settings monitor.Settings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(
		`INSERT INTO settings (monitor, config_json) VALUES (?, ?)
		 ON CONFLICT (monitor) DO UPDATE SET config_json = excluded.config_json`,
		settings.Name, string(data))
	return err
}

// OutcomeRecord is one row of the outcomes history.
type OutcomeRecord struct {
	Monitor     string
	Environment string
	Status      monitor.Status
	Diagnostic  string
	RecordedAt  time.Time
}

// RecentOutcomes returns the newest-first outcome history, limited to at
// most limit rows. With monitorName empty, all monitors are included.
func (s *Store) RecentOutcomes(monitorName string, limit int) ([]OutcomeRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	var rows *sql.Rows
	var err error
	if monitorName == "" {
		rows, err = s.db.Query(
			`SELECT monitor, environment, status, diagnostic, recorded_at
			 FROM outcomes ORDER BY id DESC LIMIT ?`, limit)
	} else {
		rows, err = s.db.Query(
			`SELECT monitor, environment, status, diagnostic, recorded_at
			 FROM outcomes WHERE monitor = ? ORDER BY id DESC LIMIT ?`, monitorName, limit)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []OutcomeRecord
	for rows.Next() {
		var r OutcomeRecord
		var status string
		var ts int64
		if err := rows.Scan(&r.Monitor, &r.Environment, &status, &r.Diagnostic, &ts); err != nil {
			return nil, err
		}
		r.Status = monitor.Status(status)
		r.RecordedAt = time.Unix(ts, 0)
		out = append(out, r)
	}
	return out, rows.Err()
}

// LatestOutcomes returns the most recent outcome per (monitor,
// environment) pair, ordered by monitor name.
func (s *Store) LatestOutcomes() ([]OutcomeRecord, error) {
	rows, err := s.db.Query(
		`SELECT o.monitor, o.environment, o.status, o.diagnostic, o.recorded_at
		 FROM outcomes o
		 JOIN (SELECT MAX(id) AS id FROM outcomes GROUP BY monitor, environment) last
		   ON o.id = last.id
		 ORDER BY o.monitor, o.environment`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []OutcomeRecord
	for rows.Next() {
		var r OutcomeRecord
		var status string
		var ts int64
		if err := rows.Scan(&r.Monitor, &r.Environment, &status, &r.Diagnostic, &ts); err != nil {
			return nil, err
		}
		r.Status = monitor.Status(status)
		r.RecordedAt = time.Unix(ts, 0)
		out = append(out, r)
	}
	return out, rows.Err()
}

// FailureCount reads the consecutive-failure counter recorded for a
// monitor in an environment, defaulting to zero when absent.
func (s *Store) FailureCount(name, environment string) int {
	raw, ok, err := s.Read(name+":failures", environment)
	if err != nil || !ok {
		return 0
	}
	var n int
	if _, err := fmt.Sscanf(raw, "%d", &n); err != nil || n < 0 {
		return 0
	}
	return n
}
