package services_test

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// The production schema runs on Postgres with server-side uuid defaults,
// which sqlite cannot express, so the tables the service tests touch are
// created directly. IDs are always assigned in Go.
var testSchema = []string{
	`CREATE TABLE users (
		id text PRIMARY KEY,
		email text NOT NULL UNIQUE,
		password text NOT NULL,
		name text,
		role text NOT NULL DEFAULT 'student',
		phone text,
		is_active numeric DEFAULT 1,
		is_staff numeric DEFAULT 0,
		company text,
		company_id text,
		created_at datetime,
		updated_at datetime,
		deleted_at datetime
	)`,
	`CREATE TABLE moderation_logs (
		id text PRIMARY KEY,
		admin_id text NOT NULL,
		action text NOT NULL,
		subject_type text,
		subject_id text,
		notes text,
		timestamp datetime
	)`,
	`CREATE TABLE admin_notifications (
		id text PRIMARY KEY,
		type text,
		title text,
		message text,
		is_read numeric DEFAULT 0,
		created_at datetime
	)`,
	`CREATE TABLE campus (
		id text PRIMARY KEY,
		name text NOT NULL,
		address text,
		contact_email text,
		contact_phone text,
		admin_id text,
		is_active numeric DEFAULT 1,
		created_at datetime,
		updated_at datetime
	)`,
	`CREATE TABLE campus_students (
		id text PRIMARY KEY,
		user_id text NOT NULL,
		campus_id text NOT NULL,
		student_number text NOT NULL,
		enrollment_date datetime,
		status text DEFAULT 'active',
		created_at datetime,
		updated_at datetime,
		UNIQUE (campus_id, student_number)
	)`,
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// Every pooled connection gets its own :memory: database; pin to one.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	for _, ddl := range testSchema {
		require.NoError(t, db.Exec(ddl).Error)
	}
	return db
}
