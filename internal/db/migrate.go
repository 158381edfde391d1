package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent so the full
// list re-runs safely on every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS scenarios (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL UNIQUE,
		backlog     INTEGER NOT NULL CHECK(backlog >= 0),
		history     TEXT NOT NULL,
		risks       TEXT NOT NULL DEFAULT '[]',
		team_size   INTEGER NOT NULL DEFAULT 1,
		cost_rate   REAL NOT NULL DEFAULT 0,
		period_days INTEGER NOT NULL DEFAULT 7,
		start_date  TEXT,
		deadline    TEXT,
		tolerance   REAL,
		notes       TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_scenarios_name ON scenarios(name)`,
}
