package verify

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"

	"github.com/debatesphere/claimcheck/internal/models"
)

const defaultMaxConcurrency = 4

// Pipeline runs extraction and verification over free text. Verification
// results are cached per claim so repeated analyses of popular claims skip
// the evidence sources entirely.
type Pipeline struct {
	extractor      *Extractor
	aggregator     *Aggregator
	cache          *gocache.Cache
	maxConcurrency int
}

// NewPipeline wires an extractor and aggregator into a pipeline. cacheTTL
// <= 0 disables caching; maxConcurrency <= 0 selects the default.
func NewPipeline(extractor *Extractor, aggregator *Aggregator, cacheTTL time.Duration, maxConcurrency int) *Pipeline {
	if maxConcurrency <= 0 {
		maxConcurrency = defaultMaxConcurrency
	}

	var c *gocache.Cache
	if cacheTTL > 0 {
		c = gocache.New(cacheTTL, 2*cacheTTL)
	}

	return &Pipeline{
		extractor:      extractor,
		aggregator:     aggregator,
		cache:          c,
		maxConcurrency: maxConcurrency,
	}
}

// VerifyText extracts claims from text and verifies each one. Claims are
// verified concurrently but returned in source-text order. A failure in one
// claim never aborts the others.
func (p *Pipeline) VerifyText(ctx context.Context, text string) models.AnalysisResponse {
	claims := p.extractor.Extract(text)
	if len(claims) == 0 {
		return models.AnalysisResponse{
			Claims:      []models.VerifiedClaim{},
			TotalClaims: 0,
			Message:     "No claims were found in the provided text.",
		}
	}

	results := make([]models.VerifiedClaim, len(claims))
	sem := make(chan struct{}, p.maxConcurrency)
	done := make(chan int, len(claims))

	for i, claim := range claims {
		sem <- struct{}{}
		go func(i int, claim models.Claim) {
			defer func() { <-sem; done <- i }()
			results[i] = models.VerifiedClaim{
				Claim:        claim.Text,
				Percentage:   claim.OccurrencePercentage,
				Verification: p.verifyOne(ctx, claim.Text),
			}
		}(i, claim)
	}
	for range claims {
		<-done
	}

	return models.AnalysisResponse{
		Claims:      results,
		TotalClaims: len(results),
	}
}

// VerifyClaim verifies a single pre-extracted claim.
func (p *Pipeline) VerifyClaim(ctx context.Context, claim string) models.Verification {
	return p.verifyOne(ctx, claim)
}

// verifyOne serves from cache when possible and converts panics into an
// error-status verification so one bad claim cannot take down a batch.
func (p *Pipeline) verifyOne(ctx context.Context, claim string) (v models.Verification) {
	if p.cache != nil {
		if cached, ok := p.cache.Get(claim); ok {
			log.Debug().Str("claim", claim).Msg("Verification served from cache")
			return cached.(models.Verification)
		}
	}

	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Str("claim", claim).Msg("Verification panicked")
			v = models.Verification{
				Verified:         models.StatusError,
				Confidence:       0,
				Explanation:      fmt.Sprintf("Error during verification: %v", r),
				RelatedFacts:     []string{},
				Sources:          []models.SourceRef{},
				CounterArguments: []string{},
				Reason:           "An error occurred during verification.",
			}
		}
	}()

	v = p.aggregator.Aggregate(ctx, claim)

	if p.cache != nil && v.Verified != models.StatusError {
		p.cache.SetDefault(claim, v)
	}
	return v
}
