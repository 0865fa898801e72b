package database

import (
	"context"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS guests (
		id           BIGSERIAL PRIMARY KEY,
		first_name   TEXT NOT NULL,
		last_name    TEXT NOT NULL,
		email        TEXT NOT NULL,
		phone        TEXT NOT NULL DEFAULT '',
		address      TEXT NOT NULL DEFAULT '',
		vip_status   BOOLEAN NOT NULL DEFAULT FALSE,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		stay_history BIGINT[] NOT NULL DEFAULT '{}'
	)`,
	`CREATE TABLE IF NOT EXISTS rooms (
		id            BIGSERIAL PRIMARY KEY,
		number        TEXT NOT NULL UNIQUE,
		room_type     TEXT NOT NULL,
		floor         INTEGER NOT NULL DEFAULT 0,
		status        TEXT NOT NULL DEFAULT 'vacant-clean'
		              CHECK (status IN ('occupied', 'vacant-clean', 'vacant-dirty', 'out-of-order')),
		base_rate     NUMERIC(10,2) NOT NULL DEFAULT 0,
		max_occupancy INTEGER NOT NULL DEFAULT 1 CHECK (max_occupancy >= 1),
		last_cleaned  TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS reservations (
		id               BIGSERIAL PRIMARY KEY,
		guest_id         BIGINT NOT NULL,
		room_id          BIGINT NOT NULL,
		check_in_date    DATE NOT NULL,
		check_out_date   DATE NOT NULL,
		number_of_guests INTEGER NOT NULL DEFAULT 1,
		room_rate        NUMERIC(10,2) NOT NULL DEFAULT 0,
		total_amount     NUMERIC(10,2) NOT NULL DEFAULT 0,
		status           TEXT NOT NULL DEFAULT 'pending',
		payment_status   TEXT NOT NULL DEFAULT 'pending',
		source           TEXT NOT NULL DEFAULT 'website',
		special_requests TEXT NOT NULL DEFAULT '',
		created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CHECK (check_out_date > check_in_date)
	)`,
	`CREATE TABLE IF NOT EXISTS housekeeping_tasks (
		id             BIGSERIAL PRIMARY KEY,
		room_id        BIGINT NOT NULL,
		assigned_to    TEXT NOT NULL DEFAULT '',
		task_type      TEXT NOT NULL,
		priority       TEXT NOT NULL DEFAULT 'medium',
		status         TEXT NOT NULL DEFAULT 'pending',
		estimated_time INTEGER NOT NULL DEFAULT 0,
		completed_at   TIMESTAMPTZ,
		notes          TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS activity_log (
		id          BIGSERIAL PRIMARY KEY,
		collection  TEXT NOT NULL,
		record_id   BIGINT NOT NULL,
		action      TEXT NOT NULL,
		from_status TEXT NOT NULL DEFAULT '',
		to_status   TEXT NOT NULL DEFAULT '',
		client_ip   TEXT NOT NULL DEFAULT '',
		device_type TEXT NOT NULL DEFAULT '',
		platform    TEXT NOT NULL DEFAULT '',
		browser     TEXT NOT NULL DEFAULT '',
		occurred_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_reservations_created_at ON reservations (created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_activity_log_record ON activity_log (collection, record_id)`,
}

// Migrate creates any missing tables. Statements are idempotent.
func Migrate(ctx context.Context, db DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement %d: %w", i+1, err)
		}
	}
	return nil
}

// Truncate empties the given collections and resets their id sequences
func Truncate(ctx context.Context, db DB, colls ...string) error {
	for _, name := range colls {
		c, err := lookup(name)
		if err != nil {
			return err
		}
		if _, err := db.ExecContext(ctx, fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY", c.table)); err != nil {
			return &BackendError{Op: "truncate", Collection: name, Err: err}
		}
	}
	return nil
}
