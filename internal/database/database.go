package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Config holds database configuration
type Config struct {
	Path string
}

// SQLStore is the SQLite-backed Store.
type SQLStore struct {
	db  *sql.DB
	now func() time.Time
}

// Open initializes the database connection and runs migrations
func Open(cfg Config) (*SQLStore, error) {
	// Ensure directory exists
	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	dsn := cfg.Path + "?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_time_format=sqlite"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite has a single writer; one connection keeps transactions from
	// tripping over each other.
	db.SetMaxOpenConns(1)

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &SQLStore{db: db, now: func() time.Time { return time.Now().UTC() }}

	// Run migrations
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return s, nil
}

// WithClock replaces the clock used for timestamps. Intended for tests.
func (s *SQLStore) WithClock(now func() time.Time) *SQLStore {
	s.now = now
	return s
}

// Close closes the database connection
func (s *SQLStore) Close() error {
	return s.db.Close()
}

// Sessions returns a session store sharing this database.
func (s *SQLStore) Sessions() *SessionRepo {
	return NewSessionRepo(s.db)
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// inTx runs fn in a transaction, committing when it returns nil.
func (s *SQLStore) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

// migrate runs all database migrations
func (s *SQLStore) migrate() error {
	// Create migrations table
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS migrations (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return err
	}

	// Run each migration
	for _, m := range migrations {
		if err := s.runMigration(m); err != nil {
			return fmt.Errorf("migration %s failed: %w", m.name, err)
		}
	}

	return nil
}

type migration struct {
	name string
	up   string
}

func (s *SQLStore) runMigration(m migration) error {
	// Check if already applied
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM migrations WHERE name = ?", m.name).Scan(&count)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil // Already applied
	}

	// Run migration
	if _, err := s.db.Exec(m.up); err != nil {
		return err
	}

	// Record migration
	_, err = s.db.Exec("INSERT INTO migrations (name) VALUES (?)", m.name)
	return err
}

// Rows carry a seq column for insertion order; ids are uuids.
var migrations = []migration{
	{
		name: "001_create_users",
		up: `
			CREATE TABLE users (
				seq INTEGER PRIMARY KEY AUTOINCREMENT,
				id TEXT NOT NULL UNIQUE,
				username TEXT NOT NULL UNIQUE,
				password_hash TEXT NOT NULL
			);
		`,
	},
	{
		name: "002_create_properties",
		up: `
			CREATE TABLE properties (
				seq INTEGER PRIMARY KEY AUTOINCREMENT,
				id TEXT NOT NULL UNIQUE,
				title TEXT NOT NULL,
				price TEXT NOT NULL,
				price_per_sqm TEXT,
				location TEXT NOT NULL,
				category TEXT NOT NULL,
				bedrooms INTEGER,
				bathrooms INTEGER,
				square_feet INTEGER,
				lot_size TEXT,
				year_built INTEGER,
				property_type TEXT,
				description TEXT NOT NULL,
				detailed_description TEXT,
				features TEXT NOT NULL DEFAULT '[]',
				images TEXT NOT NULL DEFAULT '[]',
				video_url TEXT,
				contact_info TEXT,
				broker_name TEXT NOT NULL,
				broker_phone TEXT NOT NULL,
				broker_email TEXT NOT NULL,
				title_type TEXT,
				is_featured INTEGER NOT NULL DEFAULT 0,
				is_hot INTEGER NOT NULL DEFAULT 0,
				category_data TEXT
			);
			CREATE INDEX idx_properties_category ON properties(category);
		`,
	},
	{
		name: "003_create_testimonials",
		up: `
			CREATE TABLE testimonials (
				seq INTEGER PRIMARY KEY AUTOINCREMENT,
				id TEXT NOT NULL UNIQUE,
				name TEXT NOT NULL,
				title TEXT NOT NULL,
				quote TEXT NOT NULL,
				avatar TEXT NOT NULL,
				rating INTEGER NOT NULL DEFAULT 5
			);
		`,
	},
	{
		name: "004_create_admin_users",
		up: `
			CREATE TABLE admin_users (
				seq INTEGER PRIMARY KEY AUTOINCREMENT,
				id TEXT NOT NULL UNIQUE,
				email TEXT NOT NULL UNIQUE,
				password_hash TEXT NOT NULL,
				role TEXT NOT NULL DEFAULT 'admin',
				login_attempts INTEGER NOT NULL DEFAULT 0,
				locked_until DATETIME,
				last_login DATETIME,
				created_at DATETIME NOT NULL,
				updated_at DATETIME NOT NULL
			);
		`,
	},
	{
		name: "005_create_blog_posts",
		up: `
			CREATE TABLE blog_posts (
				seq INTEGER PRIMARY KEY AUTOINCREMENT,
				id TEXT NOT NULL UNIQUE,
				title TEXT NOT NULL,
				slug TEXT NOT NULL UNIQUE,
				content TEXT NOT NULL,
				excerpt TEXT,
				featured_image TEXT,
				category TEXT NOT NULL,
				tags TEXT NOT NULL DEFAULT '[]',
				seo_title TEXT,
				seo_description TEXT,
				status TEXT NOT NULL DEFAULT 'draft',
				publish_date DATETIME,
				author TEXT NOT NULL,
				created_at DATETIME NOT NULL,
				updated_at DATETIME NOT NULL
			);
			CREATE INDEX idx_blog_posts_status ON blog_posts(status);
		`,
	},
	{
		name: "006_create_faqs",
		up: `
			CREATE TABLE faqs (
				seq INTEGER PRIMARY KEY AUTOINCREMENT,
				id TEXT NOT NULL UNIQUE,
				question TEXT NOT NULL,
				answer TEXT NOT NULL,
				category TEXT NOT NULL,
				sort_order INTEGER NOT NULL DEFAULT 0,
				is_active INTEGER NOT NULL DEFAULT 1,
				created_at DATETIME NOT NULL,
				updated_at DATETIME NOT NULL
			);
		`,
	},
	{
		name: "007_create_security_logs",
		up: `
			CREATE TABLE security_logs (
				seq INTEGER PRIMARY KEY AUTOINCREMENT,
				id TEXT NOT NULL UNIQUE,
				admin_user_id TEXT,
				action TEXT NOT NULL,
				ip_address TEXT,
				user_agent TEXT,
				details TEXT,
				created_at DATETIME NOT NULL
			);
			CREATE INDEX idx_security_logs_created_at ON security_logs(created_at);
		`,
	},
	{
		name: "008_create_admin_sessions",
		up: `
			CREATE TABLE admin_sessions (
				token_hash TEXT PRIMARY KEY,
				admin_user_id TEXT NOT NULL,
				created_at DATETIME NOT NULL,
				expires_at DATETIME NOT NULL,
				FOREIGN KEY (admin_user_id) REFERENCES admin_users(id) ON DELETE CASCADE
			);
			CREATE INDEX idx_admin_sessions_expires_at ON admin_sessions(expires_at);
		`,
	},
}

// isUniqueViolation reports whether err is a UNIQUE constraint failure.
func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if errors.As(err, &se) {
		return se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
	}
	return false
}

// toJSON encodes v for a TEXT column.
func toJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// fromJSON decodes a TEXT column. NULL and empty columns leave v untouched.
func fromJSON(col sql.NullString, v any) error {
	if !col.Valid || col.String == "" {
		return nil
	}
	return json.Unmarshal([]byte(col.String), v)
}
