package database

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// DB wraps the sql.DB connection and provides access to stores
type DB struct {
	*sql.DB
	Jobs      *JobStore
	Customers *CustomerStore
	Providers *ProviderStore
	Analyses  *AnalysisStore
}

// Open opens a database connection and initializes stores
func Open(dbPath string) (*DB, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Enable foreign key constraints in SQLite
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// Create the wrapper
	database := &DB{
		DB:        db,
		Jobs:      NewJobStore(db),
		Customers: NewCustomerStore(db),
		Providers: NewProviderStore(db),
		Analyses:  NewAnalysisStore(db),
	}

	// Run migrations
	if err := database.migrate(); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return database, nil
}

// migrate creates the database schema
func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS customers (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		company_name TEXT NOT NULL UNIQUE,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS service_providers (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		kind TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(name, kind)
	);

	CREATE TABLE IF NOT EXISTS jobs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		job_ref INTEGER NOT NULL,
		job_type TEXT NOT NULL,
		booking_date TEXT,
		container_number TEXT,
		customer_reference TEXT,
		agent_reference TEXT,
		weight TEXT,
		vessel_name TEXT,
		customer_id INTEGER,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(job_ref, job_type),
		FOREIGN KEY (customer_id) REFERENCES customers(id)
	);

	CREATE TABLE IF NOT EXISTS analyses (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		raw_text TEXT NOT NULL,
		is_credit_note BOOLEAN DEFAULT FALSE,
		result_json TEXT NOT NULL,
		confirmed_job_ref INTEGER,
		confirmed_at DATETIME,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_jobs_type ON jobs(job_type);
	CREATE INDEX IF NOT EXISTS idx_jobs_customer ON jobs(customer_id);
	CREATE INDEX IF NOT EXISTS idx_providers_kind ON service_providers(kind);
	CREATE INDEX IF NOT EXISTS idx_analyses_confirmed ON analyses(confirmed_job_ref);
	`

	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	// Run reanalysis bookkeeping migrations for existing databases
	return db.migrateReanalysisFields()
}

// migrateReanalysisFields adds reanalysis tracking fields to existing databases
func (db *DB) migrateReanalysisFields() error {
	// Check if columns already exist
	var columnExists int
	err := db.QueryRow(`
		SELECT COUNT(*)
		FROM pragma_table_info('analyses')
		WHERE name = 'last_reanalyzed_at'
	`).Scan(&columnExists)
	if err != nil {
		return fmt.Errorf("failed to check column existence: %w", err)
	}

	// If columns don't exist, add them
	if columnExists == 0 {
		alterQueries := []string{
			"ALTER TABLE analyses ADD COLUMN last_reanalyzed_at DATETIME",
			"ALTER TABLE analyses ADD COLUMN reanalysis_count INTEGER DEFAULT 0",
		}

		for _, query := range alterQueries {
			if _, err := db.Exec(query); err != nil {
				return fmt.Errorf("failed to execute migration query '%s': %w", query, err)
			}
		}
	}

	return nil
}

// IsHealthy checks if the database connection is healthy
func (db *DB) IsHealthy() error {
	return db.Ping()
}
