package db

import (
	"database/sql"
	"fmt"
)

// Migrate runs all schema migrations. The statements are written in the
// subset of SQL that SQLite and Postgres both accept, so one list serves
// both dialects.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS contracts (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS years (
		id          TEXT PRIMARY KEY,
		contract_id TEXT NOT NULL REFERENCES contracts(id) ON DELETE CASCADE,
		value       INTEGER NOT NULL,
		created_at  TEXT NOT NULL,
		UNIQUE (contract_id, value)
	)`,
	// duration (months) and week_offset mirror duration_weeks for readers
	// that predate week-granular schedules.
	`CREATE TABLE IF NOT EXISTS projects (
		id                TEXT PRIMARY KEY,
		contract_id       TEXT NOT NULL REFERENCES contracts(id) ON DELETE CASCADE,
		year_id           TEXT NOT NULL REFERENCES years(id) ON DELETE CASCADE,
		name              TEXT NOT NULL,
		start_month       INTEGER NOT NULL DEFAULT 0,
		start_week_offset INTEGER NOT NULL DEFAULT 0,
		duration_weeks    INTEGER NOT NULL DEFAULT 4,
		duration          INTEGER NOT NULL DEFAULT 1,
		week_offset       INTEGER NOT NULL DEFAULT 0,
		color             TEXT NOT NULL DEFAULT '#3B82F6',
		progress          INTEGER NOT NULL DEFAULT 0,
		show_progress     INTEGER NOT NULL DEFAULT 0,
		sort_order        INTEGER NOT NULL DEFAULT 0,
		google_drive_link TEXT NOT NULL DEFAULT '',
		created_at        TEXT NOT NULL,
		updated_at        TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS stages (
		id                TEXT PRIMARY KEY,
		project_id        TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		name              TEXT NOT NULL,
		start_month       INTEGER NOT NULL DEFAULT 0,
		start_week_offset INTEGER NOT NULL DEFAULT 0,
		duration_weeks    INTEGER NOT NULL DEFAULT 4,
		duration          INTEGER NOT NULL DEFAULT 1,
		week_offset       INTEGER NOT NULL DEFAULT 0,
		position          INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS comments (
		id          TEXT PRIMARY KEY,
		project_id  TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		author_name TEXT NOT NULL,
		content     TEXT NOT NULL,
		created_at  TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS settings (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_years_contract ON years(contract_id)`,
	`CREATE INDEX IF NOT EXISTS idx_projects_year ON projects(year_id, sort_order)`,
	`CREATE INDEX IF NOT EXISTS idx_stages_project ON stages(project_id, position)`,
	`CREATE INDEX IF NOT EXISTS idx_comments_project ON comments(project_id, created_at)`,
}
