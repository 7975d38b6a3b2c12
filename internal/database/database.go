package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// Open creates the parent directory if needed, opens the SQLite database at
// path with foreign keys and WAL enabled, and runs migrations
func Open(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000&_journal_mode=WAL", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return db, nil
}

// RunMigrations creates all necessary tables
func RunMigrations(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS scrape_runs (
		id TEXT PRIMARY KEY,
		terms TEXT NOT NULL,
		locations TEXT NOT NULL,
		home_office BOOLEAN DEFAULT 0,
		started_at DATETIME NOT NULL,
		finished_at DATETIME,
		listing_count INTEGER DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS listings (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT,
		title TEXT NOT NULL,
		company_name TEXT NOT NULL,
		company_rating TEXT NOT NULL,
		review_count TEXT NOT NULL,
		salary_min REAL DEFAULT 0,
		salary_max REAL DEFAULT 0,
		salary_period TEXT NOT NULL,
		job_type TEXT NOT NULL,
		location TEXT NOT NULL,
		work_from_home TEXT NOT NULL,
		benefits TEXT NOT NULL DEFAULT '',
		url TEXT NOT NULL UNIQUE,
		scraped_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (run_id) REFERENCES scrape_runs(id) ON DELETE SET NULL,
		CHECK(work_from_home IN ('Y', 'N'))
	);

	CREATE INDEX IF NOT EXISTS idx_listings_run_id ON listings(run_id);
	CREATE INDEX IF NOT EXISTS idx_listings_company ON listings(company_name);
	`

	_, err := db.Exec(schema)
	return err
}
