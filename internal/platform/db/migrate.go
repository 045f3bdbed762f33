package db

import (
	"context"
	"fmt"
	"strings"
)

// schema is portable between Postgres and SQLite; {{ts}} is replaced with the
// driver's timestamp type.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS competitions (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		start_date {{ts}} NOT NULL,
		end_date {{ts}} NOT NULL,
		voting_start_date {{ts}},
		voting_end_date {{ts}},
		status TEXT NOT NULL DEFAULT 'draft',
		max_photos_per_user INTEGER NOT NULL DEFAULT 5,
		created_at {{ts}} NOT NULL,
		updated_at {{ts}} NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS categories (
		id TEXT PRIMARY KEY,
		competition_id TEXT NOT NULL REFERENCES competitions(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		max_photos_per_user INTEGER NOT NULL,
		created_at {{ts}} NOT NULL,
		updated_at {{ts}} NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_categories_competition ON categories (competition_id)`,
	`CREATE TABLE IF NOT EXISTS photos (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		competition_id TEXT NOT NULL REFERENCES competitions(id) ON DELETE CASCADE,
		category_id TEXT NOT NULL REFERENCES categories(id) ON DELETE CASCADE,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		file_url TEXT NOT NULL,
		file_path TEXT NOT NULL,
		file_size BIGINT NOT NULL DEFAULT 0,
		mime_type TEXT NOT NULL,
		date_taken {{ts}},
		location TEXT NOT NULL DEFAULT '',
		camera TEXT,
		status TEXT NOT NULL DEFAULT 'pending',
		rejection_reason TEXT NOT NULL DEFAULT '',
		approved_by TEXT,
		approved_at {{ts}},
		rejected_by TEXT,
		rejected_at {{ts}},
		quota_slot INTEGER NOT NULL,
		created_at {{ts}} NOT NULL,
		updated_at {{ts}} NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_photos_quota_slot ON photos (user_id, category_id, quota_slot)`,
	`CREATE INDEX IF NOT EXISTS idx_photos_status ON photos (status)`,
	`CREATE INDEX IF NOT EXISTS idx_photos_user ON photos (user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_photos_competition ON photos (competition_id)`,
	`CREATE TABLE IF NOT EXISTS votes (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		photo_id TEXT NOT NULL REFERENCES photos(id) ON DELETE CASCADE,
		created_at {{ts}} NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_votes_user_photo ON votes (user_id, photo_id)`,
	`CREATE INDEX IF NOT EXISTS idx_votes_photo ON votes (photo_id)`,
	`CREATE TABLE IF NOT EXISTS reports (
		id TEXT PRIMARY KEY,
		photo_id TEXT NOT NULL REFERENCES photos(id) ON DELETE CASCADE,
		reporter_id TEXT NOT NULL,
		reason TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'pending',
		admin_notes TEXT NOT NULL DEFAULT '',
		resolved_by TEXT,
		resolved_at {{ts}},
		created_at {{ts}} NOT NULL,
		updated_at {{ts}} NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_reports_reporter_photo ON reports (reporter_id, photo_id)`,
	`CREATE INDEX IF NOT EXISTS idx_reports_status ON reports (status)`,
}

// Migrate creates the schema when missing. Every statement is idempotent.
func (d *Database) Migrate(ctx context.Context) error {
	timestampType := "TIMESTAMPTZ"
	if d.Driver == DriverSQLite {
		timestampType = "DATETIME"
	}
	for i, statement := range schema {
		statement = strings.ReplaceAll(statement, "{{ts}}", timestampType)
		if err := d.DB.WithContext(ctx).Exec(statement).Error; err != nil {
			return fmt.Errorf("migrate statement %d: %w", i+1, err)
		}
	}
	return nil
}
