package store

import "database/sql"

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS kv (
		key TEXT NOT NULL,
		environment TEXT NOT NULL DEFAULT '',
		value TEXT NOT NULL,
		PRIMARY KEY (key, environment)
	);`,

	`CREATE TABLE IF NOT EXISTS disabled (
		monitor TEXT NOT NULL,
		environment TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (monitor, environment)
	);`,

	`CREATE TABLE IF NOT EXISTS outcomes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		monitor TEXT NOT NULL,
		environment TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL,
		diagnostic TEXT NOT NULL DEFAULT '',
		recorded_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_outcomes_monitor ON outcomes(monitor, recorded_at);`,

	`CREATE TABLE IF NOT EXISTS settings (
		monitor TEXT PRIMARY KEY,
		config_json TEXT NOT NULL
	);`,
}

func runMigrations(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL)`); err != nil {
		return err
	}

	var current int
	if err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&current); err != nil {
		return err
	}

	for i := current; i < len(migrations); i++ {
		tx, err := db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(migrations[i]); err != nil {
			tx.Rollback()
			return err
		}
		if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", i+1); err != nil {
			tx.Rollback()
			return err
		}
		if err := tx.Commit(); err != nil {
			return err
		}
	}
	return nil
}
