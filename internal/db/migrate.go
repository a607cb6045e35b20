package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate applies every schema statement. Statements are idempotent, so the
// whole list runs on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS form.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateBackfillPlanDefaults(db); err != nil {
		return fmt.Errorf("backfilling plan defaults: %w", err)
	}
	return nil
}

// migrateBackfillPlanDefaults repairs rows written before the strategy and
// intensity columns gained defaults, when blanks were stored as ''.
func migrateBackfillPlanDefaults(db *sql.DB) error {
	stmts := []string{
		`UPDATE plans SET strategy = 'steady' WHERE strategy = ''`,
		`UPDATE plans SET intensity = 'average' WHERE intensity = ''`,
		`UPDATE plans SET weekend_rule = 'none' WHERE weekend_rule = ''`,
		`UPDATE plans SET display_settings = '{}' WHERE display_settings IS NULL OR display_settings = ''`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS plans (
		id            TEXT PRIMARY KEY,
		owner_id      TEXT NOT NULL DEFAULT '',
		name          TEXT NOT NULL,
		content_type  TEXT NOT NULL DEFAULT '',
		activity_type TEXT NOT NULL DEFAULT '',
		start_date    TEXT NOT NULL,
		end_date      TEXT NOT NULL,
		goal_amount   INTEGER NOT NULL DEFAULT 0 CHECK(goal_amount >= 0),
		strategy      TEXT NOT NULL DEFAULT 'steady',
		intensity     TEXT NOT NULL DEFAULT 'average',
		status        TEXT NOT NULL DEFAULT 'active'
		              CHECK(status IN ('active','archived')),
		archived_at   TEXT,
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL,
		CHECK(end_date >= start_date)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_plans_owner ON plans(owner_id)`,
	`CREATE INDEX IF NOT EXISTS idx_plans_status ON plans(status)`,

	`CREATE TABLE IF NOT EXISTS plan_days (
		plan_id    TEXT NOT NULL REFERENCES plans(id) ON DELETE CASCADE,
		date       TEXT NOT NULL,
		target     INTEGER NOT NULL DEFAULT 0 CHECK(target >= 0),
		logged     INTEGER NOT NULL DEFAULT 0 CHECK(logged >= 0),
		updated_at TEXT NOT NULL,
		PRIMARY KEY (plan_id, date)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_plan_days_date ON plan_days(date)`,

	// Added after the first release.
	`ALTER TABLE plans ADD COLUMN weekend_rule TEXT NOT NULL DEFAULT 'none'`,
	`ALTER TABLE plans ADD COLUMN display_settings TEXT NOT NULL DEFAULT '{}'`,
}
