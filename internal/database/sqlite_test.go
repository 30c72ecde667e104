package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/debatesphere/claimcheck/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore() error: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSaveAndGetAnalysis(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	record := &models.AnalysisRecord{
		Text:            "The Earth is round.",
		AnalysisType:    "claims",
		Results:         `{"claims":[],"total_claims":0}`,
		ConfidenceScore: 0.8,
		Claims: []models.ClaimRecord{
			{Text: "The Earth is round.", Status: models.StatusTrue, Confidence: 0.8},
		},
	}

	id, err := store.SaveAnalysis(ctx, record)
	if err != nil {
		t.Fatalf("SaveAnalysis() error: %v", err)
	}
	if id == "" {
		t.Fatal("SaveAnalysis() returned empty id")
	}

	got, err := store.GetAnalysis(ctx, id)
	if err != nil {
		t.Fatalf("GetAnalysis() error: %v", err)
	}
	if got == nil {
		t.Fatal("GetAnalysis() returned nil for a saved record")
	}
	if got.Text != record.Text || got.AnalysisType != "claims" {
		t.Errorf("round-trip mismatch: %+v", got)
	}
	if len(got.Claims) != 1 {
		t.Fatalf("got %d claims, want 1", len(got.Claims))
	}
	if got.Claims[0].Status != models.StatusTrue {
		t.Errorf("claim status = %q, want true", got.Claims[0].Status)
	}
	if got.Claims[0].AnalysisID != id {
		t.Errorf("claim analysis_id = %q, want %q", got.Claims[0].AnalysisID, id)
	}
}

func TestGetAnalysis_NotFound(t *testing.T) {
	store := newTestStore(t)

	got, err := store.GetAnalysis(context.Background(), "missing-id")
	if err != nil {
		t.Fatalf("GetAnalysis() error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for a missing id, got %+v", got)
	}
}

func TestListRecent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, text := range []string{"first analysis", "second analysis", "third analysis"} {
		if _, err := store.SaveAnalysis(ctx, &models.AnalysisRecord{
			Text:         text,
			AnalysisType: "claims",
			Results:      "{}",
		}); err != nil {
			t.Fatalf("SaveAnalysis(%q) error: %v", text, err)
		}
	}

	records, err := store.ListRecent(ctx, 2)
	if err != nil {
		t.Fatalf("ListRecent() error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	for _, r := range records {
		if r.ID == "" || r.CreatedAt.IsZero() {
			t.Errorf("record missing generated fields: %+v", r)
		}
	}
}
