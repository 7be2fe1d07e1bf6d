/*
Package sqlite provides SQLite-backed persistence for adjudication history.

PURPOSE:

	Every adjudication the service performs is recorded: the input documents,
	the full rule report, and the headline outcome columns. Records are
	append-only; a re-adjudication of the same claim is a new record, never an
	update. In production the same patterns apply to PostgreSQL - only minor
	SQL dialect differences.

KEY TABLES:

	adjudications: One row per evaluation. Headline columns (status, risk,
	               deductions) are denormalized for listing; the full report
	               and both input documents are kept as JSON for audit.

CONCURRENCY:

	Uses sync.RWMutex for thread-safety. In production with PostgreSQL,
	database-level concurrency control handles this instead.

WAL MODE:

	SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
	- Multiple readers don't block
	- Single writer at a time
	- Better crash recovery

USAGE:

	store, err := sqlite.New("./data/claims.db")
	if err != nil {
	    log.Fatal(err)
	}
	defer store.Close()

MIGRATION:

	Schema is auto-migrated on New(). For production, use a proper
	migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - api/handlers.go: the only writer of adjudication records
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// AdjudicationRecord is one stored evaluation.
type AdjudicationRecord struct {
	ID        string
	CreatedAt time.Time

	// Headline outcome columns, denormalized from the report for listing.
	Status            string
	RiskLevel         string
	OverallValid      bool
	OverallConfidence float64
	TotalDeductions   string
	RuleCount         int

	// Full audit trail as JSON.
	PolicyJSON string
	ClaimJSON  string
	ReportJSON string
}

// Store persists adjudication records in SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Adjudications (append-only history)
	CREATE TABLE IF NOT EXISTS adjudications (
		id TEXT PRIMARY KEY,
		created_at TEXT NOT NULL,
		status TEXT NOT NULL,
		risk_level TEXT NOT NULL,
		overall_valid BOOLEAN NOT NULL,
		overall_confidence REAL NOT NULL,
		total_deductions TEXT NOT NULL,
		rule_count INTEGER NOT NULL,
		policy_json TEXT NOT NULL,
		claim_json TEXT NOT NULL,
		report_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_adjudications_created_at
		ON adjudications(created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_adjudications_status
		ON adjudications(status);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Save inserts an adjudication record. A missing ID or CreatedAt is filled
// in; the stored record is returned.
func (s *Store) Save(ctx context.Context, rec AdjudicationRecord) (AdjudicationRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO adjudications
		(id, created_at, status, risk_level, overall_valid, overall_confidence,
		 total_deductions, rule_count, policy_json, claim_json, report_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		rec.ID,
		rec.CreatedAt.Format(time.RFC3339),
		rec.Status,
		rec.RiskLevel,
		rec.OverallValid,
		rec.OverallConfidence,
		rec.TotalDeductions,
		rec.RuleCount,
		rec.PolicyJSON,
		rec.ClaimJSON,
		rec.ReportJSON,
	)
	if err != nil {
		return AdjudicationRecord{}, fmt.Errorf("failed to save adjudication: %w", err)
	}

	return rec, nil
}

// Get retrieves an adjudication by ID. Returns (nil, nil) when not found.
func (s *Store) Get(ctx context.Context, id string) (*AdjudicationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, created_at, status, risk_level, overall_valid, overall_confidence,
		       total_deductions, rule_count, policy_json, claim_json, report_json
		FROM adjudications
		WHERE id = ?
	`

	var rec AdjudicationRecord
	var createdAt string
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&rec.ID, &createdAt, &rec.Status, &rec.RiskLevel,
		&rec.OverallValid, &rec.OverallConfidence, &rec.TotalDeductions,
		&rec.RuleCount, &rec.PolicyJSON, &rec.ClaimJSON, &rec.ReportJSON,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get adjudication: %w", err)
	}

	rec.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &rec, nil
}

// List returns adjudications newest first, optionally filtered by status.
// A non-positive limit defaults to 100.
func (s *Store) List(ctx context.Context, status string, limit int) ([]AdjudicationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 100
	}

	query := `
		SELECT id, created_at, status, risk_level, overall_valid, overall_confidence,
		       total_deductions, rule_count, policy_json, claim_json, report_json
		FROM adjudications
	`
	var args []any
	if status != "" {
		query += " WHERE status = ?"
		args = append(args, status)
	}
	query += " ORDER BY created_at DESC, id LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list adjudications: %w", err)
	}
	defer rows.Close()

	var records []AdjudicationRecord
	for rows.Next() {
		var rec AdjudicationRecord
		var createdAt string
		if err := rows.Scan(
			&rec.ID, &createdAt, &rec.Status, &rec.RiskLevel,
			&rec.OverallValid, &rec.OverallConfidence, &rec.TotalDeductions,
			&rec.RuleCount, &rec.PolicyJSON, &rec.ClaimJSON, &rec.ReportJSON,
		); err != nil {
			return nil, fmt.Errorf("failed to scan adjudication: %w", err)
		}
		rec.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Reset clears all data (for testing/demo).
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM adjudications")
	return err
}
