package store

import "fmt"

// currentSchemaVersion is the latest schema version.
const currentSchemaVersion = 1

// Migrate runs forward migrations to bring the database schema up to date.
func (db *DB) Migrate() error {
	// Create the schema_version table if it does not exist.
	if _, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER NOT NULL
		)
	`); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	version := 0
	row := db.conn.QueryRow("SELECT version FROM schema_version LIMIT 1")
	if err := row.Scan(&version); err != nil {
		// No rows means version 0 (fresh database).
		version = 0
	}

	if version < 1 {
		if err := db.migrateV1(); err != nil {
			return fmt.Errorf("migration v1: %w", err)
		}
	}

	return nil
}

// migrateV1 creates all initial tables and indexes.
func (db *DB) migrateV1() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS habits (
			id             TEXT PRIMARY KEY,
			title          TEXT NOT NULL,
			category       TEXT NOT NULL,
			frequency_type TEXT NOT NULL,
			frequency_days TEXT NOT NULL DEFAULT '[]',
			repeat_target  INTEGER NOT NULL DEFAULT 0,
			created_at     TEXT NOT NULL,
			streak         INTEGER NOT NULL DEFAULT 0,
			history        TEXT NOT NULL DEFAULT '{}',
			position       INTEGER NOT NULL DEFAULT 0
		)`,

		`CREATE TABLE IF NOT EXISTS snapshots (
			id       INTEGER PRIMARY KEY AUTOINCREMENT,
			taken_at TEXT NOT NULL,
			command  TEXT NOT NULL,
			version  TEXT NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS habit_metrics (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			snapshot_id  INTEGER NOT NULL REFERENCES snapshots(id),
			habit_id     TEXT NOT NULL DEFAULT '',
			metric_name  TEXT NOT NULL,
			metric_value REAL NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS badge_unlocks (
			badge_id    TEXT PRIMARY KEY,
			unlocked_at TEXT NOT NULL,
			progress    INTEGER NOT NULL DEFAULT 0
		)`,

		`CREATE TABLE IF NOT EXISTS counters (
			name  TEXT PRIMARY KEY,
			value INTEGER NOT NULL
		)`,

		// Indexes.
		`CREATE INDEX IF NOT EXISTS idx_habit_metrics_snapshot ON habit_metrics(snapshot_id)`,
		`CREATE INDEX IF NOT EXISTS idx_habit_metrics_name ON habit_metrics(metric_name)`,
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("executing %q: %w", stmt[:40], err)
		}
	}

	// Set schema version.
	if _, err := tx.Exec("DELETE FROM schema_version"); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", currentSchemaVersion); err != nil {
		return err
	}

	return tx.Commit()
}
