package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// migrations is the ordered list of schema statements. Every statement is
// idempotent (CREATE ... IF NOT EXISTS), so Migrate can re-run safely on
// an existing database.
//
// tasks.parent_id intentionally has no foreign key: it is a weak
// reference, and a dangling parent_id (parent deleted, descendants kept)
// is a legal state resolved by the outline builder's orphan promotion.
// tasks.section_id does cascade, so deleting a section removes every task
// in it at any nesting depth.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS templates (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS sections (
		id          TEXT PRIMARY KEY,
		template_id TEXT NOT NULL REFERENCES templates(id) ON DELETE CASCADE,
		title       TEXT NOT NULL,
		order_index INTEGER NOT NULL DEFAULT 0,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS tasks (
		id             TEXT PRIMARY KEY,
		section_id     TEXT NOT NULL REFERENCES sections(id) ON DELETE CASCADE,
		parent_id      TEXT,
		title          TEXT NOT NULL,
		description    TEXT NOT NULL DEFAULT '',
		due_date       TEXT,
		assigned_to    TEXT,
		estimated_days INTEGER NOT NULL DEFAULT 0,
		offset_days    INTEGER NOT NULL DEFAULT 0,
		created_at     TEXT NOT NULL,
		updated_at     TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sections_template ON sections(template_id, order_index)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_section ON tasks(section_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_parent ON tasks(parent_id)`,
}

// Migrate runs all schema migrations.
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
