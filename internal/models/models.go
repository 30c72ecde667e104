// Package models defines the core data structures used throughout the application.
package models

import (
	"time"
)

// VerificationStatus is the verdict assigned to a claim.
type VerificationStatus string

const (
	StatusUnknown  VerificationStatus = "unknown"
	StatusTrue     VerificationStatus = "true"
	StatusFalse    VerificationStatus = "false"
	StatusVerified VerificationStatus = "verified"
	StatusLikely   VerificationStatus = "likely"
	StatusUnlikely VerificationStatus = "unlikely"
	StatusError    VerificationStatus = "error"
)

// Valid reports whether s is one of the defined verdict values.
func (s VerificationStatus) Valid() bool {
	switch s {
	case StatusUnknown, StatusTrue, StatusFalse, StatusVerified, StatusLikely, StatusUnlikely, StatusError:
		return true
	}
	return false
}

// SourceKind classifies where a source entry came from.
type SourceKind string

const (
	SourceOfficial     SourceKind = "official"
	SourceScientific   SourceKind = "scientific"
	SourceWikipedia    SourceKind = "wikipedia"
	SourceFactChecking SourceKind = "fact_checking"
	SourceAI           SourceKind = "ai"
)

// SourceRef is a citation attached to a verification.
type SourceRef struct {
	Title string     `json:"title" yaml:"title"`
	URL   string     `json:"url" yaml:"url"`
	Kind  SourceKind `json:"type" yaml:"type"`
}

// Claim is a single extracted sentence treated as a factual assertion.
// OccurrencePercentage locates the claim within the extracted sequence;
// it is positional, not a truth confidence.
type Claim struct {
	Text                 string  `json:"text"`
	OccurrenceIndex      int     `json:"occurrence_index"`
	OccurrencePercentage float64 `json:"occurrence_percentage"`
}

// Verification is the evidence-backed verdict for one claim.
type Verification struct {
	Verified         VerificationStatus `json:"verified"`
	Confidence       float64            `json:"confidence"`
	Explanation      string             `json:"explanation"`
	RelatedFacts     []string           `json:"related_facts"`
	Sources          []SourceRef        `json:"sources"`
	CounterArguments []string           `json:"counter_arguments"`
	Reason           string             `json:"reason"`
}

// VerifiedClaim pairs a claim with its verification for API responses.
type VerifiedClaim struct {
	Claim        string       `json:"claim"`
	Percentage   float64      `json:"percentage"`
	Verification Verification `json:"verification"`
}

// AnalysisResponse is the response body for POST /api/analyze/claims.
type AnalysisResponse struct {
	Claims      []VerifiedClaim `json:"claims"`
	TotalClaims int             `json:"total_claims"`
	Message     string          `json:"message,omitempty"`
}

// AnalysisRecord is a persisted analysis.
type AnalysisRecord struct {
	ID              string        `json:"id"`
	Text            string        `json:"text"`
	AnalysisType    string        `json:"analysis_type"`
	Results         string        `json:"results"` // JSON-encoded response payload
	Source          string        `json:"source,omitempty"`
	ConfidenceScore float64       `json:"confidence_score"`
	CreatedAt       time.Time     `json:"created_at"`
	Claims          []ClaimRecord `json:"claims,omitempty"`
}

// ClaimRecord is a persisted per-claim verification row.
type ClaimRecord struct {
	ID         string             `json:"id"`
	AnalysisID string             `json:"analysis_id"`
	Text       string             `json:"text"`
	Status     VerificationStatus `json:"status"`
	Source     string             `json:"source,omitempty"`
	Confidence float64            `json:"confidence"`
}

// AnalyzeRequest is the request body for POST /api/analyze/claims.
type AnalyzeRequest struct {
	Text string `json:"text"`
}

// VerifyClaimRequest is the request body for POST /api/verify-claim.
type VerifyClaimRequest struct {
	Claim string `json:"claim"`
}
