package database

import (
	"context"
	"database/sql"

	_ "modernc.org/sqlite" // SQLite driver
)

// New creates a new sqlite connection pool.
func New(dataSourceName string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", "file:"+dataSourceName+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Migrate runs the SQL statements to set up the database schema.
func Migrate(ctx context.Context, db *sql.DB) error {
	const sqlStmt = `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT NOT NULL PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		college TEXT,
		gender TEXT,
		degree TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := db.ExecContext(ctx, sqlStmt)
	return err
}
