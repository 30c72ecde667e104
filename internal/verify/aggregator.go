package verify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/debatesphere/claimcheck/internal/evidence"
	"github.com/debatesphere/claimcheck/internal/knowledge"
	"github.com/debatesphere/claimcheck/internal/models"
	"github.com/rs/zerolog/log"
)

// Confidence levels assigned by the curated knowledge base.
const (
	contradictionConfidence = 0.9
	supportedConfidence     = 0.8
	encyclopediaConfidence  = 0.7
	initialConfidence       = 0.5
)

// negationMarkers flag a negated claim (substring test, matching the
// historical behavior).
var negationMarkers = []string{
	"not", "isn't", "aren't", "wasn't", "weren't", "doesn't", "don't", "didn't",
}

// Aggregator queries evidence sources in priority order and merges their
// contributions into a single verification per claim.
type Aggregator struct {
	kb            *knowledge.Base
	encyclopedia  evidence.Source
	factCheck     evidence.Source
	generative    evidence.Source
	sourceTimeout time.Duration
}

// NewAggregator creates an aggregator. Any of the evidence sources may be
// nil, in which case that stage is skipped.
func NewAggregator(kb *knowledge.Base, encyclopedia, factCheck, generative evidence.Source, sourceTimeout time.Duration) *Aggregator {
	if sourceTimeout <= 0 {
		sourceTimeout = 10 * time.Second
	}
	return &Aggregator{
		kb:            kb,
		encyclopedia:  encyclopedia,
		factCheck:     factCheck,
		generative:    generative,
		sourceTimeout: sourceTimeout,
	}
}

// Aggregate verifies one claim. It never returns an error: evidence-source
// failures degrade to "no contribution", and callers wrap unexpected
// failures at the per-claim boundary.
func (a *Aggregator) Aggregate(ctx context.Context, claim string) models.Verification {
	v := models.Verification{
		Verified:         models.StatusUnknown,
		Confidence:       initialConfidence,
		RelatedFacts:     []string{},
		Sources:          []models.SourceRef{},
		CounterArguments: []string{},
		Reason:           "Initial verification in progress.",
	}

	// 1. Curated knowledge base. A topic match is authoritative either way
	// and terminates aggregation.
	if entry := a.kb.Match(claim); entry != nil {
		log.Debug().Str("topic", entry.Topic).Msg("Knowledge base topic matched")
		v.RelatedFacts = append(v.RelatedFacts, entry.Facts...)
		v.Sources = append(v.Sources, entry.Sources...)
		v.CounterArguments = append(v.CounterArguments, entry.CounterArguments...)

		for _, fact := range entry.Facts {
			if contradicts(claim, fact) {
				v.Verified = models.StatusFalse
				v.Confidence = contradictionConfidence
				v.Explanation = fmt.Sprintf("This claim contradicts the established fact: %s", fact)
				v.Reason = fmt.Sprintf("This claim is FALSE. %s", fact)
				return v
			}
		}

		v.Verified = models.StatusTrue
		v.Confidence = supportedConfidence
		v.Explanation = "This claim is supported by verified information."
		v.Reason = "This claim is TRUE based on verified information."
		return v
	}

	// 2. Encyclopedia lookup (only without a knowledge-base match). Raises
	// confidence but never sets a verdict.
	if f, ok := a.lookup(ctx, a.encyclopedia, claim); ok {
		v.RelatedFacts = append(v.RelatedFacts, f.Facts...)
		v.Sources = append(v.Sources, f.Sources...)
		if len(f.Facts) >= 2 {
			v.Confidence = encyclopediaConfidence
			v.Explanation = "Found supporting information on Wikipedia."
		}
	}

	// 3. Fact-checking sites. A returned status is adopted; confidence is
	// merged by max.
	if f, ok := a.lookup(ctx, a.factCheck, claim); ok {
		v.RelatedFacts = append(v.RelatedFacts, f.Facts...)
		v.Sources = append(v.Sources, f.Sources...)
		v.CounterArguments = append(v.CounterArguments, f.CounterArguments...)
		if f.Status != "" {
			v.Verified = f.Status
			if f.Confidence > v.Confidence {
				v.Confidence = f.Confidence
			}
			v.Explanation = f.Explanation
		}
	}

	// 4. Generative model. Merge is unconditional; the verdict is adopted
	// only on strictly greater confidence.
	if f, ok := a.lookup(ctx, a.generative, claim); ok {
		v.RelatedFacts = append(v.RelatedFacts, f.Facts...)
		v.Sources = append(v.Sources, f.Sources...)
		v.CounterArguments = append(v.CounterArguments, f.CounterArguments...)
		if f.Confidence > v.Confidence {
			v.Verified = f.Status
			v.Confidence = f.Confidence
			v.Explanation = f.Explanation
		}
	}

	// 5. Finalization.
	if v.Verified == models.StatusUnknown {
		switch {
		case v.Confidence >= 0.8:
			v.Verified = models.StatusVerified
		case v.Confidence >= 0.6:
			v.Verified = models.StatusLikely
		case v.Confidence >= 0.4:
			v.Verified = models.StatusUnlikely
		default:
			v.Verified = models.StatusFalse
		}
	}

	if v.Explanation == "" {
		switch v.Verified {
		case models.StatusVerified:
			v.Explanation = "This claim appears to be verified by multiple sources."
		case models.StatusLikely:
			v.Explanation = "This claim is likely true based on available information."
		case models.StatusUnlikely:
			v.Explanation = "This claim is unlikely to be true based on available information."
		default:
			v.Explanation = "This claim appears to be false based on available information."
		}
	}

	v.Reason = fmt.Sprintf("This claim was verified as %s with %.1f%% confidence.", v.Verified, v.Confidence*100)
	return v
}

// lookup runs one evidence source under the per-source timeout. A source
// failure is logged and reported as no contribution.
func (a *Aggregator) lookup(ctx context.Context, src evidence.Source, claim string) (evidence.Finding, bool) {
	if src == nil {
		return evidence.Finding{}, false
	}

	ctx, cancel := context.WithTimeout(ctx, a.sourceTimeout)
	defer cancel()

	f, err := src.Lookup(ctx, claim)
	if err != nil {
		log.Warn().Err(err).Str("source", src.Name()).Msg("Evidence source failed")
		return evidence.Finding{}, false
	}
	if f.Empty() {
		return evidence.Finding{}, false
	}
	return f, true
}

// contradicts reports whether a curated fact contradicts the claim.
//
// A negated claim contradicts a fact that states the positive form. A
// positive claim contradicts a fact that embeds its negation: either the
// literal "not "+claim form (rarely fires in practice, since facts seldom
// quote a whole claim verbatim) or, symmetrically, a negated fact whose
// de-negated form embeds the claim.
func contradicts(claim, fact string) bool {
	claimLower := strings.ToLower(claim)
	factLower := strings.ToLower(fact)

	if containsNegation(claimLower) {
		return strings.Contains(factLower, stripNegations(claimLower))
	}

	if strings.Contains(factLower, "not "+claimLower) || strings.Contains(factLower, "isn't "+claimLower) {
		return true
	}

	return containsNegation(factLower) && strings.Contains(stripNegations(factLower), claimLower)
}

func containsNegation(s string) bool {
	for _, marker := range negationMarkers {
		if strings.Contains(s, marker) {
			return true
		}
	}
	return false
}

func stripNegations(s string) string {
	for _, marker := range negationMarkers {
		s = strings.ReplaceAll(s, marker+" ", "")
	}
	return s
}
