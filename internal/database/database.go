// Package database provides the data access layer for stored analyses.
package database

import (
	"context"

	"github.com/debatesphere/claimcheck/internal/models"
)

// Store defines the interface for analysis persistence.
type Store interface {
	// Analyses
	SaveAnalysis(ctx context.Context, record *models.AnalysisRecord) (string, error)
	GetAnalysis(ctx context.Context, id string) (*models.AnalysisRecord, error)
	ListRecent(ctx context.Context, limit int) ([]*models.AnalysisRecord, error)

	// Lifecycle
	Close() error
	Migrate() error
}
