// Package evidence provides the Wikipedia encyclopedia source.
package evidence

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/debatesphere/claimcheck/internal/models"
	"github.com/debatesphere/claimcheck/internal/segment"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// minFactLength filters out fragments from encyclopedia summaries.
const minFactLength = 20

// WikipediaSource looks up claims against the Wikipedia API.
type WikipediaSource struct {
	httpClient *http.Client
	baseURL    string
	language   string
	limiter    *rate.Limiter
}

// NewWikipediaSource creates a Wikipedia source for the given language.
func NewWikipediaSource(language string, limiter *rate.Limiter) *WikipediaSource {
	if language == "" {
		language = "en"
	}
	return &WikipediaSource{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    fmt.Sprintf("https://%s.wikipedia.org/w/api.php", language),
		language:   language,
		limiter:    limiter,
	}
}

// Name returns the source name.
func (s *WikipediaSource) Name() string {
	return "wikipedia"
}

type wikiSearchResponse struct {
	Query struct {
		Search []struct {
			PageID int    `json:"pageid"`
			Title  string `json:"title"`
		} `json:"search"`
	} `json:"query"`
}

type wikiExtractResponse struct {
	Query struct {
		Pages map[string]struct {
			Title   string `json:"title"`
			Extract string `json:"extract"`
		} `json:"pages"`
	} `json:"query"`
}

// Lookup finds the best-matching page for the claim and turns its summary
// sentences into facts. It never sets a verdict status.
func (s *WikipediaSource) Lookup(ctx context.Context, claim string) (Finding, error) {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return Finding{}, err
		}
	}

	searchURL := fmt.Sprintf("%s?action=query&list=search&srsearch=%s&format=json&srlimit=1",
		s.baseURL, url.QueryEscape(claim))

	var searchData wikiSearchResponse
	if err := s.getJSON(ctx, searchURL, &searchData); err != nil {
		return Finding{}, fmt.Errorf("Wikipedia search failed: %w", err)
	}
	if len(searchData.Query.Search) == 0 {
		return Finding{}, nil
	}

	page := searchData.Query.Search[0]
	extractURL := fmt.Sprintf("%s?action=query&prop=extracts&exintro=true&explaintext=true&pageids=%d&format=json",
		s.baseURL, page.PageID)

	var extractData wikiExtractResponse
	if err := s.getJSON(ctx, extractURL, &extractData); err != nil {
		return Finding{}, fmt.Errorf("Wikipedia extract failed: %w", err)
	}

	var finding Finding
	for _, p := range extractData.Query.Pages {
		if p.Extract == "" {
			continue
		}
		for _, sentence := range segment.Split(p.Extract) {
			if len(sentence) > minFactLength {
				finding.Facts = append(finding.Facts, sentence)
			}
		}
		finding.Sources = append(finding.Sources, models.SourceRef{
			Title: p.Title,
			URL: fmt.Sprintf("https://%s.wikipedia.org/wiki/%s",
				s.language, url.PathEscape(strings.ReplaceAll(p.Title, " ", "_"))),
			Kind: models.SourceWikipedia,
		})
	}

	log.Debug().Str("claim", claim).Int("facts", len(finding.Facts)).Msg("Wikipedia lookup completed")
	return finding, nil
}

func (s *WikipediaSource) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "claimcheck/1.0 (claim verification service)")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
