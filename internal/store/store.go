// ABOUTME: Core SQLite store for the dataset export.
// ABOUTME: Handles database initialization, migrations, and connection management.

package store

import (
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/mattn/go-sqlite3"
)

// Migration version constants
const (
	MigrationV1 = 1 // Dataset tables
	MigrationV2 = 2 // generation_runs table and lookup indexes
)

// CurrentSchemaVersion is the target version for the database schema
const CurrentSchemaVersion = MigrationV2

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	// Verify connection works
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// A single writer; :memory: databases are per-connection
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, err
		}
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying database connection
func (s *Store) DB() *sql.DB {
	return s.db
}

// migrate runs all pending migrations
func (s *Store) migrate() error {
	if err := s.createMigrationsTable(); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	currentVersion, err := s.getCurrentMigrationVersion()
	if err != nil {
		return fmt.Errorf("failed to get current migration version: %w", err)
	}

	slog.Debug("database schema", "version", currentVersion, "target", CurrentSchemaVersion)

	if currentVersion < MigrationV1 {
		if err := s.migrateV1(); err != nil {
			return fmt.Errorf("migration v1 failed: %w", err)
		}
	}

	if currentVersion < MigrationV2 {
		if err := s.migrateV2(); err != nil {
			return fmt.Errorf("migration v2 failed: %w", err)
		}
	}

	return nil
}

// createMigrationsTable creates the schema_migrations tracking table
func (s *Store) createMigrationsTable() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			description TEXT
		)
	`)
	return err
}

// getCurrentMigrationVersion retrieves the current schema version
func (s *Store) getCurrentMigrationVersion() (int, error) {
	var version int
	err := s.db.QueryRow(`
		SELECT COALESCE(MAX(version), 0) FROM schema_migrations
	`).Scan(&version)
	if err != nil {
		return 0, err
	}
	return version, nil
}

// recordMigration records a completed migration
func (s *Store) recordMigration(version int, description string) error {
	_, err := s.db.Exec(`
		INSERT INTO schema_migrations (version, description)
		VALUES (?, ?)
	`, version, description)
	return err
}

// migrateV1 creates one table per dataset entity
func (s *Store) migrateV1() error {
	schema := `
	CREATE TABLE IF NOT EXISTS organizations (
		customer_id TEXT PRIMARY KEY,
		organization_name TEXT NOT NULL UNIQUE,
		organization_type TEXT NOT NULL,
		organization_subtype TEXT,
		size_category TEXT NOT NULL,
		employee_count INTEGER,
		subscription_tier TEXT NOT NULL,
		monthly_revenue REAL,
		setup_date TEXT,
		primary_contact_name TEXT,
		primary_contact_email TEXT UNIQUE,
		primary_contact_phone TEXT,
		street_address TEXT,
		city TEXT,
		state TEXT,
		zip_code TEXT,
		time_zone TEXT,
		payment_methods TEXT,
		integration_count INTEGER,
		last_login_date TEXT,
		support_tier TEXT,
		created_at TEXT,
		updated_at TEXT
	);

	CREATE TABLE IF NOT EXISTS employees (
		employee_id TEXT PRIMARY KEY,
		customer_id TEXT NOT NULL REFERENCES organizations(customer_id) ON DELETE CASCADE,
		first_name TEXT,
		last_name TEXT,
		email TEXT UNIQUE,
		phone TEXT,
		title TEXT,
		role TEXT,
		department TEXT,
		hire_date TEXT,
		is_primary_contact BOOLEAN,
		is_active BOOLEAN,
		last_login_date TEXT,
		training_completed BOOLEAN,
		permissions TEXT,
		created_at TEXT,
		updated_at TEXT
	);

	CREATE TABLE IF NOT EXISTS tickets (
		ticket_id INTEGER PRIMARY KEY,
		customer_id TEXT NOT NULL REFERENCES organizations(customer_id) ON DELETE CASCADE,
		employee_id TEXT NOT NULL REFERENCES employees(employee_id) ON DELETE CASCADE,
		description TEXT,
		category TEXT,
		status TEXT NOT NULL,
		priority TEXT NOT NULL,
		type TEXT,
		via_channel TEXT,
		satisfaction_rating TEXT,
		satisfaction_comment TEXT,
		tags TEXT,
		due_at TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT,
		solved_at TEXT
	);

	CREATE TABLE IF NOT EXISTS ticket_metrics (
		metric_id INTEGER PRIMARY KEY,
		ticket_id INTEGER NOT NULL UNIQUE REFERENCES tickets(ticket_id) ON DELETE CASCADE,
		first_resolution_time INTEGER,
		full_resolution_time INTEGER,
		agent_work_time INTEGER,
		requester_wait_time INTEGER,
		reply_time INTEGER,
		group_stations INTEGER,
		assignee_stations INTEGER,
		reopens INTEGER,
		replies INTEGER,
		assignee_updated_at TEXT,
		requester_updated_at TEXT,
		status_updated_at TEXT,
		initially_assigned_at TEXT,
		assigned_at TEXT,
		solved_at TEXT
	);

	CREATE TABLE IF NOT EXISTS call_transcripts (
		transcript_id INTEGER PRIMARY KEY,
		ticket_id INTEGER NOT NULL UNIQUE REFERENCES tickets(ticket_id) ON DELETE CASCADE,
		call_duration INTEGER NOT NULL,
		transcript_text TEXT,
		call_date TEXT,
		agent_name TEXT,
		customer_satisfaction INTEGER,
		resolution_provided BOOLEAN,
		follow_up_needed BOOLEAN
	);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return err
	}

	if err := s.recordMigration(MigrationV1, "Create dataset tables"); err != nil {
		return err
	}

	slog.Debug("applied migration", "version", MigrationV1, "description", "Create dataset tables")
	return nil
}

// migrateV2 adds the run log and the foreign-key lookup indexes
func (s *Store) migrateV2() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS generation_runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL,
			stage TEXT NOT NULL,
			seed INTEGER NOT NULL,
			records INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			error TEXT DEFAULT '',
			started_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		"CREATE INDEX IF NOT EXISTS idx_generation_runs_run ON generation_runs(run_id, stage)",
		"CREATE INDEX IF NOT EXISTS idx_employees_customer ON employees(customer_id)",
		"CREATE INDEX IF NOT EXISTS idx_tickets_customer ON tickets(customer_id)",
		"CREATE INDEX IF NOT EXISTS idx_tickets_status_priority ON tickets(status, priority)",
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to apply statement: %w", err)
		}
	}

	if err := s.recordMigration(MigrationV2, "Add generation_runs table and lookup indexes"); err != nil {
		return err
	}

	slog.Debug("applied migration", "version", MigrationV2, "description", "Add generation_runs table and lookup indexes")
	return nil
}
