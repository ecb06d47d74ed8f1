package storage

import "database/sql"

// migrateV001 creates the archive schema. Every statement uses IF NOT EXISTS
// for idempotency.
func migrateV001(tx *sql.Tx) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS imports (
			id         TEXT PRIMARY KEY,
			source     TEXT NOT NULL,
			added      INTEGER NOT NULL DEFAULT 0,
			skipped    INTEGER NOT NULL DEFAULT 0,
			started_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS commands (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			ts         INTEGER NOT NULL,
			command    TEXT NOT NULL,
			import_id  TEXT REFERENCES imports(id) ON DELETE SET NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(ts, command)
		)`,

		`CREATE INDEX IF NOT EXISTS idx_commands_ts ON commands(ts)`,
	}

	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// migrateV002 indexes command text for the distinct and top-line queries.
func migrateV002(tx *sql.Tx) error {
	_, err := tx.Exec(`CREATE INDEX IF NOT EXISTS idx_commands_command ON commands(command)`)
	return err
}
