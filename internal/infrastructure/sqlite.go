package infrastructure

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

type SQLiteClient struct {
	DB *sql.DB
}

// NewSQLiteClient opens (or creates) the database file and applies the schema.
func NewSQLiteClient(path string) (*SQLiteClient, error) {
	db, err := sql.Open("sqlite", "file:"+path+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("unable to open database: %w", err)
	}

	// SQLite allows a single writer; a small pool avoids lock contention
	// under the light concurrent access this bot sees.
	db.SetMaxOpenConns(4)
	db.SetConnMaxIdleTime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	client := &SQLiteClient{DB: db}

	if err := client.Migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return client, nil
}

func (c *SQLiteClient) Migrate() error {
	ctx := context.Background()

	// Users Table
	_, err := c.DB.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			telegram_id INTEGER UNIQUE NOT NULL,
			name TEXT,
			role TEXT DEFAULT 'worker',
			team_id INTEGER,
			direction TEXT
		);
	`)
	if err != nil {
		return fmt.Errorf("create users table: %w", err)
	}

	// Teams Table
	_, err = c.DB.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS teams (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT,
			team_leader_id INTEGER
		);
	`)
	if err != nil {
		return fmt.Errorf("create teams table: %w", err)
	}

	// Profits Table (append-only ledger)
	_, err = c.DB.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS profits (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER,
			direction TEXT,
			amount REAL,
			date TEXT,
			comment TEXT
		);
	`)
	if err != nil {
		return fmt.Errorf("create profits table: %w", err)
	}

	// Directions Table ("bots" catalog)
	_, err = c.DB.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS directions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT UNIQUE NOT NULL,
			description TEXT,
			link TEXT
		);
	`)
	if err != nil {
		return fmt.Errorf("create directions table: %w", err)
	}

	return nil
}

func (c *SQLiteClient) Close() error {
	return c.DB.Close()
}
