// Package database provides SQLite implementation of the Store interface.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/debatesphere/claimcheck/internal/models"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.Migrate(); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// Migrate runs database migrations.
func (s *SQLiteStore) Migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS analyses (
			id TEXT PRIMARY KEY,
			text TEXT NOT NULL,
			analysis_type TEXT NOT NULL,
			results TEXT NOT NULL,
			source TEXT,
			confidence_score REAL NOT NULL,
			created_at DATETIME NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_analyses_created ON analyses(created_at)`,
		`CREATE TABLE IF NOT EXISTS claims (
			id TEXT PRIMARY KEY,
			analysis_id TEXT NOT NULL,
			text TEXT NOT NULL,
			status TEXT NOT NULL,
			source TEXT,
			confidence REAL NOT NULL,
			FOREIGN KEY (analysis_id) REFERENCES analyses(id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_claims_analysis ON claims(analysis_id)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveAnalysis stores an analysis and its claim rows in one transaction,
// assigning IDs where missing, and returns the analysis ID.
func (s *SQLiteStore) SaveAnalysis(ctx context.Context, record *models.AnalysisRecord) (string, error) {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO analyses (id, text, analysis_type, results, source, confidence_score, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		record.ID, record.Text, record.AnalysisType, record.Results,
		record.Source, record.ConfidenceScore, record.CreatedAt,
	)
	if err != nil {
		return "", err
	}

	if len(record.Claims) > 0 {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO claims (id, analysis_id, text, status, source, confidence)
			VALUES (?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return "", err
		}
		defer stmt.Close()

		for i := range record.Claims {
			c := &record.Claims[i]
			if c.ID == "" {
				c.ID = uuid.New().String()
			}
			c.AnalysisID = record.ID
			if _, err := stmt.ExecContext(ctx, c.ID, c.AnalysisID, c.Text,
				c.Status, c.Source, c.Confidence); err != nil {
				return "", err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return record.ID, nil
}

// GetAnalysis retrieves an analysis and its claims by ID. Returns (nil, nil)
// when no row exists.
func (s *SQLiteStore) GetAnalysis(ctx context.Context, id string) (*models.AnalysisRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, text, analysis_type, results, source, confidence_score, created_at
		FROM analyses WHERE id = ?`, id)

	var record models.AnalysisRecord
	var source sql.NullString
	err := row.Scan(&record.ID, &record.Text, &record.AnalysisType, &record.Results,
		&source, &record.ConfidenceScore, &record.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	record.Source = source.String

	claims, err := s.claimsByAnalysis(ctx, record.ID)
	if err != nil {
		return nil, err
	}
	record.Claims = claims
	return &record, nil
}

// ListRecent returns the most recent analyses, newest first, without their
// claim rows.
func (s *SQLiteStore) ListRecent(ctx context.Context, limit int) ([]*models.AnalysisRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, text, analysis_type, results, source, confidence_score, created_at
		FROM analyses ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.AnalysisRecord
	for rows.Next() {
		var r models.AnalysisRecord
		var source sql.NullString
		if err := rows.Scan(&r.ID, &r.Text, &r.AnalysisType, &r.Results,
			&source, &r.ConfidenceScore, &r.CreatedAt); err != nil {
			return nil, err
		}
		r.Source = source.String
		records = append(records, &r)
	}
	return records, rows.Err()
}

func (s *SQLiteStore) claimsByAnalysis(ctx context.Context, analysisID string) ([]models.ClaimRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, analysis_id, text, status, source, confidence
		FROM claims WHERE analysis_id = ? ORDER BY rowid`, analysisID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var claims []models.ClaimRecord
	for rows.Next() {
		var c models.ClaimRecord
		var source sql.NullString
		if err := rows.Scan(&c.ID, &c.AnalysisID, &c.Text, &c.Status,
			&source, &c.Confidence); err != nil {
			return nil, err
		}
		c.Source = source.String
		claims = append(claims, c)
	}
	return claims, rows.Err()
}
