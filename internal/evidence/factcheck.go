// Package evidence provides the fact-checking-site source.
package evidence

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/debatesphere/claimcheck/internal/models"
	"github.com/debatesphere/claimcheck/internal/segment"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/html"
	"golang.org/x/time/rate"
)

// maxReviewFacts caps how many sentences are pulled from a review page.
const maxReviewFacts = 3

// FactCheckSource queries a claim-review API and enriches its answer with
// visible text from the top cited review page.
type FactCheckSource struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
	fetchPages bool
}

// NewFactCheckSource creates a fact-checking source against the given
// claim-review API endpoint.
func NewFactCheckSource(baseURL string, limiter *rate.Limiter) *FactCheckSource {
	return &FactCheckSource{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    baseURL,
		limiter:    limiter,
		fetchPages: true,
	}
}

// Name returns the source name.
func (s *FactCheckSource) Name() string {
	return "fact_checking"
}

type factCheckResponse struct {
	Facts              []string           `json:"facts"`
	Sources            []models.SourceRef `json:"sources"`
	CounterArguments   []string           `json:"counter_arguments"`
	VerificationStatus string             `json:"verification_status"`
	Confidence         float64            `json:"confidence"`
	Explanation        string             `json:"explanation"`
}

// Lookup queries the claim-review API for the claim.
func (s *FactCheckSource) Lookup(ctx context.Context, claim string) (Finding, error) {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return Finding{}, err
		}
	}

	queryURL := fmt.Sprintf("%s?query=%s", s.baseURL, url.QueryEscape(claim))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, queryURL, nil)
	if err != nil {
		return Finding{}, fmt.Errorf("failed to create fact-check request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return Finding{}, fmt.Errorf("fact-check search failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Finding{}, fmt.Errorf("fact-check API returned status %d", resp.StatusCode)
	}

	var fc factCheckResponse
	if err := json.NewDecoder(resp.Body).Decode(&fc); err != nil {
		return Finding{}, fmt.Errorf("failed to decode fact-check response: %w", err)
	}

	finding := Finding{
		Facts:            fc.Facts,
		Sources:          fc.Sources,
		CounterArguments: fc.CounterArguments,
		Confidence:       clampConfidence(fc.Confidence),
		Explanation:      fc.Explanation,
	}

	if status := models.VerificationStatus(fc.VerificationStatus); status != "" && status.Valid() {
		finding.Status = status
	}

	// Best effort: pull a few sentences from the top cited review page.
	if s.fetchPages && len(fc.Sources) > 0 && fc.Sources[0].URL != "" {
		if facts, err := s.fetchReviewFacts(ctx, fc.Sources[0].URL); err != nil {
			log.Debug().Err(err).Str("url", fc.Sources[0].URL).Msg("Review page fetch failed")
		} else {
			finding.Facts = append(finding.Facts, facts...)
		}
	}

	return finding, nil
}

// fetchReviewFacts downloads a review page and extracts its first few
// substantial visible-text sentences.
func (s *FactCheckSource) fetchReviewFacts(ctx context.Context, pageURL string) ([]string, error) {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "claimcheck/1.0 (claim verification service)")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	doc, err := html.Parse(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}

	var facts []string
	for _, sentence := range segment.Split(visibleText(doc)) {
		if len(sentence) > 40 {
			facts = append(facts, sentence)
		}
		if len(facts) >= maxReviewFacts {
			break
		}
	}
	return facts, nil
}

// visibleText collects text nodes, skipping script/style/nav content.
func visibleText(n *html.Node) string {
	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe", "nav", "footer":
				return
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(n)
	return buf.String()
}

func clampConfidence(c float64) float64 {
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}
