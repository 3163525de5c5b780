package database

import (
	"context"
	"database/sql"
	"fmt"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		phone TEXT NOT NULL DEFAULT '',
		is_verified BOOLEAN NOT NULL DEFAULT FALSE,
		education JSONB NOT NULL DEFAULT '[]',
		skills TEXT[] NOT NULL DEFAULT '{}',
		keywords TEXT[] NOT NULL DEFAULT '{}',
		resume_data BYTEA,
		resume_filename TEXT NOT NULL DEFAULT '',
		resume_content_type TEXT NOT NULL DEFAULT '',
		picture_data BYTEA,
		picture_filename TEXT NOT NULL DEFAULT '',
		picture_content_type TEXT NOT NULL DEFAULT '',
		application_count INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS admins (
		id UUID PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		email TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS internships (
		id UUID PRIMARY KEY,
		title TEXT NOT NULL,
		company TEXT NOT NULL,
		location TEXT NOT NULL DEFAULT '',
		domain TEXT NOT NULL DEFAULT '',
		position TEXT NOT NULL DEFAULT '',
		salary BIGINT NOT NULL DEFAULT 0 CHECK (salary >= 0),
		internship_type TEXT NOT NULL DEFAULT '',
		duration TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		requirements TEXT[] NOT NULL DEFAULT '{}',
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS applications (
		id UUID PRIMARY KEY,
		internship_id UUID NOT NULL REFERENCES internships(id) ON DELETE CASCADE,
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		status TEXT NOT NULL,
		cover_letter TEXT NOT NULL DEFAULT '',
		applied_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		CONSTRAINT applications_internship_user_key UNIQUE (internship_id, user_id)
	)`,
	`CREATE TABLE IF NOT EXISTS excel_files (
		id UUID PRIMARY KEY,
		filename TEXT NOT NULL,
		original_name TEXT NOT NULL,
		size_bytes BIGINT NOT NULL DEFAULT 0,
		internships_created INTEGER NOT NULL DEFAULT 0,
		uploaded_by UUID NOT NULL REFERENCES admins(id),
		uploaded_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS internships_active_created_idx ON internships (is_active, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS applications_user_idx ON applications (user_id)`,
}

// Migrate applies the schema at process start. Statements are idempotent so a
// restart against an existing database is a no-op.
func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d failed: %w", i, err)
		}
	}
	return nil
}
