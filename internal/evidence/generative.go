// Package evidence provides the generative-model source.
package evidence

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/debatesphere/claimcheck/internal/llm"
	"github.com/debatesphere/claimcheck/internal/models"
)

const generativeSystemPrompt = `You are a fact-checking assistant. Assess the claim using your knowledge.

Respond with a JSON object:
{
  "verified": "true|false|verified|likely|unlikely|unknown",
  "confidence": 0.0-1.0,
  "explanation": "Brief explanation of your assessment",
  "related_facts": ["fact 1", "fact 2"],
  "sources": [{"title": "Source name", "url": "https://...", "type": "ai"}],
  "counter_arguments": ["alternative viewpoint"]
}

Rules:
- Be conservative: without external evidence, prefer lower confidence.
- related_facts must be standalone statements relevant to the claim.
- Only respond with the JSON object, no other text.`

// GenerativeSource asks a configured LLM provider to assess a claim.
type GenerativeSource struct {
	provider llm.Provider
}

// NewGenerativeSource creates a generative evidence source.
func NewGenerativeSource(provider llm.Provider) *GenerativeSource {
	return &GenerativeSource{provider: provider}
}

// Name returns the source name.
func (s *GenerativeSource) Name() string {
	return "generative"
}

type generativeResult struct {
	Verified         string             `json:"verified"`
	Confidence       float64            `json:"confidence"`
	Explanation      string             `json:"explanation"`
	RelatedFacts     []string           `json:"related_facts"`
	Sources          []models.SourceRef `json:"sources"`
	CounterArguments []string           `json:"counter_arguments"`
}

// Lookup asks the provider for a verdict on the claim.
func (s *GenerativeSource) Lookup(ctx context.Context, claim string) (Finding, error) {
	userPrompt := fmt.Sprintf("Claim to verify: %s", claim)

	response, err := s.provider.CompleteWithSystem(ctx, generativeSystemPrompt, userPrompt, llm.DefaultCompletionOptions())
	if err != nil {
		return Finding{}, fmt.Errorf("generative lookup failed: %w", err)
	}

	result, err := parseGenerativeResponse(response)
	if err != nil {
		return Finding{}, fmt.Errorf("failed to parse generative response: %w", err)
	}

	finding := Finding{
		Facts:            result.RelatedFacts,
		Sources:          result.Sources,
		CounterArguments: result.CounterArguments,
		Confidence:       clampConfidence(result.Confidence),
		Explanation:      result.Explanation,
	}

	if status := models.VerificationStatus(result.Verified); status.Valid() {
		finding.Status = status
	} else {
		finding.Status = models.StatusUnknown
	}

	for i := range finding.Sources {
		if finding.Sources[i].Kind == "" {
			finding.Sources[i].Kind = models.SourceAI
		}
	}

	return finding, nil
}

var fenceRe = regexp.MustCompile("```(?:json)?\\s*([\\s\\S]*?)\\s*```")

// parseGenerativeResponse decodes the provider's JSON answer, tolerating
// markdown code fences and surrounding prose.
func parseGenerativeResponse(response string) (*generativeResult, error) {
	response = strings.TrimSpace(response)

	if strings.HasPrefix(response, "```") {
		if matches := fenceRe.FindStringSubmatch(response); len(matches) > 1 {
			response = matches[1]
		}
	}

	var result generativeResult
	if err := json.Unmarshal([]byte(response), &result); err != nil {
		start := strings.Index(response, "{")
		end := strings.LastIndex(response, "}")
		if start < 0 || end <= start {
			return nil, fmt.Errorf("no JSON found in response")
		}
		if err := json.Unmarshal([]byte(response[start:end+1]), &result); err != nil {
			return nil, fmt.Errorf("invalid JSON: %w", err)
		}
	}

	return &result, nil
}
