// Package evidence provides the pluggable evidence sources consulted
// during claim verification.
package evidence

import (
	"context"

	"github.com/debatesphere/claimcheck/internal/models"
	"golang.org/x/time/rate"
)

// Finding is the contribution of one evidence source for one claim.
// Facts, Sources and CounterArguments are merged by append; Status,
// Confidence and Explanation are verdict signals that the aggregator
// may or may not adopt depending on the source's priority rules.
type Finding struct {
	Facts            []string
	Sources          []models.SourceRef
	CounterArguments []string

	// Status is empty when the source carries no verdict signal.
	Status      models.VerificationStatus
	Confidence  float64
	Explanation string
}

// Empty reports whether the finding contributes nothing.
func (f Finding) Empty() bool {
	return len(f.Facts) == 0 && len(f.Sources) == 0 && len(f.CounterArguments) == 0 && f.Status == ""
}

// Source is one independent capability contributing evidence for a claim.
// A returned error means "no contribution from this source"; the caller
// logs it and continues with the remaining sources.
type Source interface {
	Lookup(ctx context.Context, claim string) (Finding, error)
	Name() string
}

// NewLimiter builds the outbound rate limiter shared by remote sources.
func NewLimiter(requestsPerSecond float64, burst int) *rate.Limiter {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 2
	}
	if burst <= 0 {
		burst = 5
	}
	return rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
}
