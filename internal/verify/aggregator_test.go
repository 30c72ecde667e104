package verify

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/debatesphere/claimcheck/internal/evidence"
	"github.com/debatesphere/claimcheck/internal/knowledge"
	"github.com/debatesphere/claimcheck/internal/models"
)

// stubSource counts calls and returns a canned finding.
type stubSource struct {
	name    string
	finding evidence.Finding
	err     error
	calls   int
}

func (s *stubSource) Lookup(ctx context.Context, claim string) (evidence.Finding, error) {
	s.calls++
	return s.finding, s.err
}

func (s *stubSource) Name() string { return s.name }

func newTestAggregator(wiki, fc, gen evidence.Source) *Aggregator {
	return NewAggregator(knowledge.Default(), wiki, fc, gen, 5*time.Second)
}

func TestAggregate_ContradictionShortCircuits(t *testing.T) {
	wiki := &stubSource{name: "wikipedia"}
	fc := &stubSource{name: "factcheck"}
	gen := &stubSource{name: "generative"}

	agg := newTestAggregator(wiki, fc, gen)
	v := agg.Aggregate(context.Background(), "The Burj Khalifa is the second largest building in the world")

	if v.Verified != models.StatusFalse {
		t.Errorf("verified = %q, want false", v.Verified)
	}
	if v.Confidence != 0.9 {
		t.Errorf("confidence = %v, want 0.9", v.Confidence)
	}
	if !strings.HasPrefix(v.Explanation, "This claim contradicts the established fact:") {
		t.Errorf("unexpected explanation: %q", v.Explanation)
	}
	if wiki.calls+fc.calls+gen.calls != 0 {
		t.Errorf("remote sources must not be consulted after a knowledge base verdict (wiki=%d fc=%d gen=%d)",
			wiki.calls, fc.calls, gen.calls)
	}
}

func TestAggregate_SupportedShortCircuits(t *testing.T) {
	wiki := &stubSource{name: "wikipedia"}
	fc := &stubSource{name: "factcheck"}
	gen := &stubSource{name: "generative"}

	agg := newTestAggregator(wiki, fc, gen)
	v := agg.Aggregate(context.Background(), "The Burj Khalifa is the tallest building in the world")

	if v.Verified != models.StatusTrue {
		t.Errorf("verified = %q, want true", v.Verified)
	}
	if v.Confidence != 0.8 {
		t.Errorf("confidence = %v, want 0.8", v.Confidence)
	}
	if len(v.RelatedFacts) == 0 || len(v.Sources) == 0 {
		t.Error("knowledge base facts and sources must be attached")
	}
	if wiki.calls+fc.calls+gen.calls != 0 {
		t.Error("remote sources must not be consulted after a knowledge base verdict")
	}
}

func TestAggregate_WikipediaRaisesConfidence(t *testing.T) {
	wiki := &stubSource{name: "wikipedia", finding: evidence.Finding{
		Facts:   []string{"First supporting fact from the article.", "Second supporting fact from the article."},
		Sources: []models.SourceRef{{Title: "Wikipedia: Topic", Kind: models.SourceWikipedia}},
	}}

	agg := newTestAggregator(wiki, nil, nil)
	v := agg.Aggregate(context.Background(), "An unmatched claim about quasars and redshift")

	if v.Confidence != 0.7 {
		t.Errorf("confidence = %v, want 0.7 with two encyclopedia facts", v.Confidence)
	}
	if v.Verified != models.StatusLikely {
		t.Errorf("verified = %q, want likely at 0.7", v.Verified)
	}
	if v.Explanation != "Found supporting information on Wikipedia." {
		t.Errorf("unexpected explanation: %q", v.Explanation)
	}
}

func TestAggregate_SingleWikipediaFactKeepsBaseline(t *testing.T) {
	wiki := &stubSource{name: "wikipedia", finding: evidence.Finding{
		Facts: []string{"Only one fact here."},
	}}

	agg := newTestAggregator(wiki, nil, nil)
	v := agg.Aggregate(context.Background(), "An unmatched claim about quasars and redshift")

	if v.Confidence != 0.5 {
		t.Errorf("confidence = %v, want baseline 0.5 with a single fact", v.Confidence)
	}
	if v.Verified != models.StatusUnlikely {
		t.Errorf("verified = %q, want unlikely at 0.5", v.Verified)
	}
	if len(v.RelatedFacts) != 1 {
		t.Error("the single fact must still be attached")
	}
}

func TestAggregate_FactCheckVerdictAdopted(t *testing.T) {
	fc := &stubSource{name: "factcheck", finding: evidence.Finding{
		Status:      models.StatusFalse,
		Confidence:  0.85,
		Explanation: "Debunked by fact checkers.",
		Facts:       []string{"A reviewed fact."},
	}}

	agg := newTestAggregator(nil, fc, nil)
	v := agg.Aggregate(context.Background(), "An unmatched claim about quasars and redshift")

	if v.Verified != models.StatusFalse {
		t.Errorf("verified = %q, want false", v.Verified)
	}
	if v.Confidence != 0.85 {
		t.Errorf("confidence = %v, want 0.85", v.Confidence)
	}
	if v.Explanation != "Debunked by fact checkers." {
		t.Errorf("unexpected explanation: %q", v.Explanation)
	}
}

func TestAggregate_FactCheckConfidenceNeverDrops(t *testing.T) {
	wiki := &stubSource{name: "wikipedia", finding: evidence.Finding{
		Facts: []string{"First fact.", "Second fact."},
	}}
	fc := &stubSource{name: "factcheck", finding: evidence.Finding{
		Status:      models.StatusLikely,
		Confidence:  0.55,
		Explanation: "Weakly reviewed.",
	}}

	agg := newTestAggregator(wiki, fc, nil)
	v := agg.Aggregate(context.Background(), "An unmatched claim about quasars and redshift")

	if v.Confidence != 0.7 {
		t.Errorf("confidence = %v, want the encyclopedia 0.7 retained over a weaker review", v.Confidence)
	}
	if v.Verified != models.StatusLikely {
		t.Errorf("verified = %q, want the review status adopted", v.Verified)
	}
}

func TestAggregate_GenerativeNeedsStrictlyGreaterConfidence(t *testing.T) {
	fc := &stubSource{name: "factcheck", finding: evidence.Finding{
		Status:      models.StatusLikely,
		Confidence:  0.75,
		Explanation: "Reviewed.",
	}}
	gen := &stubSource{name: "generative", finding: evidence.Finding{
		Status:           models.StatusFalse,
		Confidence:       0.75,
		Explanation:      "Model disagrees.",
		CounterArguments: []string{"A model counter-argument."},
	}}

	agg := newTestAggregator(nil, fc, gen)
	v := agg.Aggregate(context.Background(), "An unmatched claim about quasars and redshift")

	if v.Verified != models.StatusLikely {
		t.Errorf("equal confidence must not overwrite the verdict, got %q", v.Verified)
	}
	if len(v.CounterArguments) != 1 {
		t.Error("generative counter-arguments merge regardless of verdict adoption")
	}
}

func TestAggregate_GenerativeOverridesOnHigherConfidence(t *testing.T) {
	gen := &stubSource{name: "generative", finding: evidence.Finding{
		Status:      models.StatusVerified,
		Confidence:  0.92,
		Explanation: "High-confidence model assessment.",
	}}

	agg := newTestAggregator(nil, nil, gen)
	v := agg.Aggregate(context.Background(), "An unmatched claim about quasars and redshift")

	if v.Verified != models.StatusVerified {
		t.Errorf("verified = %q, want verified", v.Verified)
	}
	if v.Confidence != 0.92 {
		t.Errorf("confidence = %v, want 0.92", v.Confidence)
	}
}

func TestAggregate_SourceErrorIsSkipped(t *testing.T) {
	wiki := &stubSource{name: "wikipedia", err: errors.New("network down")}
	gen := &stubSource{name: "generative", finding: evidence.Finding{
		Status:      models.StatusLikely,
		Confidence:  0.65,
		Explanation: "Model assessment.",
	}}

	agg := newTestAggregator(wiki, nil, gen)
	v := agg.Aggregate(context.Background(), "An unmatched claim about quasars and redshift")

	if v.Verified != models.StatusLikely {
		t.Errorf("verified = %q, want likely from the surviving source", v.Verified)
	}
	if wiki.calls != 1 {
		t.Errorf("failing source called %d times, want 1", wiki.calls)
	}
}

func TestAggregate_NoEvidenceFinalizesUnlikely(t *testing.T) {
	agg := newTestAggregator(nil, nil, nil)
	v := agg.Aggregate(context.Background(), "An unmatched claim about quasars and redshift")

	if v.Verified != models.StatusUnlikely {
		t.Errorf("verified = %q, want unlikely at baseline 0.5", v.Verified)
	}
	if v.Explanation != "This claim is unlikely to be true based on available information." {
		t.Errorf("unexpected explanation: %q", v.Explanation)
	}
	if !strings.Contains(v.Reason, "50.0% confidence") {
		t.Errorf("reason should carry the confidence percentage, got %q", v.Reason)
	}
}

func TestContradicts(t *testing.T) {
	tests := []struct {
		name  string
		claim string
		fact  string
		want  bool
	}{
		{
			name:  "negated claim against positive fact",
			claim: "The Earth is not round",
			fact:  "the earth is round and orbits the sun.",
			want:  true,
		},
		{
			name:  "positive claim against literal negation",
			claim: "vaccines cause autism",
			fact:  "Studies confirm it is not vaccines cause autism as once claimed.",
			want:  true,
		},
		{
			name:  "positive claim against negated fact",
			claim: "the second largest building in the world",
			fact:  "The Burj Khalifa is not the second largest building in the world, but rather the tallest.",
			want:  true,
		},
		{
			name:  "consistent claim and fact",
			claim: "The Burj Khalifa is the tallest building in the world",
			fact:  "The Burj Khalifa is the tallest building in the world at 828 meters.",
			want:  false,
		},
		{
			name:  "unrelated fact",
			claim: "water boils at 90 degrees",
			fact:  "The Burj Khalifa was completed in 2010.",
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := contradicts(tt.claim, tt.fact); got != tt.want {
				t.Errorf("contradicts(%q, %q) = %v, want %v", tt.claim, tt.fact, got, tt.want)
			}
		})
	}
}
