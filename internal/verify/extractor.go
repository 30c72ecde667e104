// Package verify implements the claim verification pipeline: extraction,
// evidence aggregation and verdict resolution.
package verify

import (
	"math"
	"strings"

	"github.com/debatesphere/claimcheck/internal/models"
	"github.com/debatesphere/claimcheck/internal/segment"
)

// minClaimTokens drops sentences too short to assert anything.
const minClaimTokens = 3

// DefaultClaimIndicators is the vocabulary of modal, evidential and
// reporting terms whose presence marks a sentence as a candidate claim.
var DefaultClaimIndicators = []string{
	"is", "are", "was", "were", "should", "must", "need", "always", "never",
	"every", "all", "none", "fact", "prove", "evidence", "study", "research",
	"data", "statistics", "shows", "demonstrates", "indicates", "suggests",
	"concludes", "finds", "reveals", "claims", "asserts", "maintains", "argues",
	"contends", "believes", "thinks", "says", "states", "declares", "announces",
	"reports", "according to", "based on", "according to research", "studies show",
	"experts say", "scientists say", "research shows", "data shows", "evidence shows",
}

// Extractor filters segmented sentences down to candidate factual claims.
type Extractor struct {
	indicators []string
}

// NewExtractor creates an extractor. A nil or empty indicator list selects
// the default vocabulary.
func NewExtractor(indicators []string) *Extractor {
	if len(indicators) == 0 {
		indicators = DefaultClaimIndicators
	}
	return &Extractor{indicators: indicators}
}

// Extract returns candidate claims in source-text order, each annotated
// with its occurrence index and percentage over the extracted set.
func (e *Extractor) Extract(text string) []models.Claim {
	var claims []models.Claim

	for _, sentence := range segment.Split(text) {
		if len(strings.Fields(sentence)) < minClaimTokens {
			continue
		}

		lower := strings.ToLower(sentence)
		for _, indicator := range e.indicators {
			if strings.Contains(lower, indicator) {
				claims = append(claims, models.Claim{Text: strings.TrimSpace(sentence)})
				break
			}
		}
	}

	total := len(claims)
	for i := range claims {
		claims[i].OccurrenceIndex = i + 1
		claims[i].OccurrencePercentage = round2(float64(i+1) / float64(total) * 100)
	}

	return claims
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
