// Package api provides HTTP API handlers.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/debatesphere/claimcheck/internal/database"
	"github.com/debatesphere/claimcheck/internal/models"
	"github.com/debatesphere/claimcheck/internal/verify"
)

// Handler contains all HTTP handlers.
type Handler struct {
	pipeline *verify.Pipeline
	store    database.Store
}

// NewHandler creates a new handler. store may be nil, in which case results
// are returned but not persisted.
func NewHandler(pipeline *verify.Pipeline, store database.Store) *Handler {
	return &Handler{
		pipeline: pipeline,
		store:    store,
	}
}

// HealthCheck returns the service health status.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"version":   "1.0.0",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	writeJSON(w, http.StatusOK, response)
}

// AnalyzeClaims extracts claims from free text and verifies each one. A
// failed verification of an individual claim surfaces as an error-status
// entry in the response, never as a request failure.
func (h *Handler) AnalyzeClaims(w http.ResponseWriter, r *http.Request) {
	var req models.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "No text provided")
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "No text provided")
		return
	}

	result := h.pipeline.VerifyText(r.Context(), req.Text)
	h.persistAnalysis(r, "claims", req.Text, &result)

	writeJSON(w, http.StatusOK, result)
}

// VerifyClaim verifies a single caller-supplied claim.
func (h *Handler) VerifyClaim(w http.ResponseWriter, r *http.Request) {
	var req models.VerifyClaimRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "No claim provided")
		return
	}
	if req.Claim == "" {
		writeError(w, http.StatusBadRequest, "No claim provided")
		return
	}

	verification := h.pipeline.VerifyClaim(r.Context(), req.Claim)

	analysisID := ""
	if h.store != nil {
		payload, _ := json.Marshal(verification)
		record := &models.AnalysisRecord{
			Text:            req.Claim,
			AnalysisType:    "single_claim",
			Results:         string(payload),
			ConfidenceScore: verification.Confidence,
			Claims: []models.ClaimRecord{{
				Text:       req.Claim,
				Status:     verification.Verified,
				Confidence: verification.Confidence,
			}},
		}
		id, err := h.store.SaveAnalysis(r.Context(), record)
		if err != nil {
			log.Error().Err(err).Msg("Failed to save verification")
		} else {
			analysisID = id
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"claim":        req.Claim,
		"verification": verification,
		"analysis_id":  analysisID,
	})
}

// GetAnalysis returns a stored analysis by ID.
func (h *Handler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "ID is required")
		return
	}

	record, err := h.store.GetAnalysis(r.Context(), id)
	if err != nil {
		log.Error().Err(err).Msg("Failed to get analysis")
		writeError(w, http.StatusInternalServerError, "Failed to get analysis")
		return
	}
	if record == nil {
		writeError(w, http.StatusNotFound, "Analysis not found")
		return
	}

	writeJSON(w, http.StatusOK, record)
}

// RecentAnalyses returns the most recent analyses.
func (h *Handler) RecentAnalyses(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	records, err := h.store.ListRecent(r.Context(), limit)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list analyses")
		writeError(w, http.StatusInternalServerError, "Failed to list analyses")
		return
	}
	if records == nil {
		records = []*models.AnalysisRecord{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"analyses": records,
		"limit":    limit,
	})
}

// persistAnalysis stores a full-text analysis. Persistence failures are
// logged and never affect the response.
func (h *Handler) persistAnalysis(r *http.Request, analysisType, text string, result *models.AnalysisResponse) {
	if h.store == nil {
		return
	}

	payload, err := json.Marshal(result)
	if err != nil {
		log.Error().Err(err).Msg("Failed to encode analysis results")
		return
	}

	record := &models.AnalysisRecord{
		Text:            text,
		AnalysisType:    analysisType,
		Results:         string(payload),
		ConfidenceScore: averageConfidence(result.Claims),
	}
	for _, c := range result.Claims {
		record.Claims = append(record.Claims, models.ClaimRecord{
			Text:       c.Claim,
			Status:     c.Verification.Verified,
			Confidence: c.Verification.Confidence,
		})
	}

	if _, err := h.store.SaveAnalysis(r.Context(), record); err != nil {
		log.Error().Err(err).Msg("Failed to save analysis")
	}
}

func averageConfidence(claims []models.VerifiedClaim) float64 {
	if len(claims) == 0 {
		return 0
	}
	var sum float64
	for _, c := range claims {
		sum += c.Verification.Confidence
	}
	return sum / float64(len(claims))
}

// Helper functions
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
