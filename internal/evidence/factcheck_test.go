package evidence

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/debatesphere/claimcheck/internal/models"
)

func TestFactCheckSource_Lookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("query") == "" {
			t.Error("expected query parameter")
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"facts": ["The claim has been reviewed by multiple outlets."],
			"sources": [{"title": "Example Fact Check", "url": "", "type": "fact_checking"}],
			"counter_arguments": ["Some outlets disagree on details."],
			"verification_status": "likely",
			"confidence": 0.75,
			"explanation": "Partially verified by fact-checking sources."
		}`)
	}))
	defer srv.Close()

	src := NewFactCheckSource(srv.URL, nil)
	finding, err := src.Lookup(context.Background(), "The Earth is round")
	if err != nil {
		t.Fatalf("Lookup() error: %v", err)
	}

	if finding.Status != models.StatusLikely {
		t.Errorf("status = %q, want likely", finding.Status)
	}
	if finding.Confidence != 0.75 {
		t.Errorf("confidence = %v, want 0.75", finding.Confidence)
	}
	if len(finding.Facts) != 1 || len(finding.CounterArguments) != 1 {
		t.Errorf("unexpected merge payload: %+v", finding)
	}
}

func TestFactCheckSource_FetchesReviewPage(t *testing.T) {
	var pageHits int
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/review", func(w http.ResponseWriter, r *http.Request) {
		pageHits++
		fmt.Fprint(w, `<html><head><script>var x = "not real evidence at all here";</script></head>
			<body><p>The reviewed claim is rated mostly true according to our investigation.</p></body></html>`)
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{
			"facts": [],
			"sources": [{"title": "Review", "url": %q, "type": "fact_checking"}],
			"counter_arguments": [],
			"verification_status": "",
			"confidence": 0,
			"explanation": ""
		}`, srv.URL+"/review")
	})

	src := NewFactCheckSource(srv.URL, nil)
	finding, err := src.Lookup(context.Background(), "some claim about anything")
	if err != nil {
		t.Fatalf("Lookup() error: %v", err)
	}

	if pageHits != 1 {
		t.Errorf("review page fetched %d times, want 1", pageHits)
	}
	if len(finding.Facts) == 0 {
		t.Fatal("expected facts extracted from the review page")
	}
	for _, f := range finding.Facts {
		if f == `var x = "not real evidence at all here";` {
			t.Error("script content must not become a fact")
		}
	}
	if finding.Status != "" {
		t.Errorf("empty verification_status must stay empty, got %q", finding.Status)
	}
}

func TestFactCheckSource_InvalidStatusDropped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"facts":[],"sources":[],"counter_arguments":[],"verification_status":"bogus","confidence":0.9,"explanation":"x"}`)
	}))
	defer srv.Close()

	src := NewFactCheckSource(srv.URL, nil)
	finding, err := src.Lookup(context.Background(), "claim")
	if err != nil {
		t.Fatalf("Lookup() error: %v", err)
	}
	if finding.Status != "" {
		t.Errorf("invalid status should be dropped, got %q", finding.Status)
	}
}

func TestFactCheckSource_ConfidenceClamped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"facts":[],"sources":[],"counter_arguments":[],"verification_status":"likely","confidence":3.5,"explanation":""}`)
	}))
	defer srv.Close()

	src := NewFactCheckSource(srv.URL, nil)
	finding, err := src.Lookup(context.Background(), "claim")
	if err != nil {
		t.Fatalf("Lookup() error: %v", err)
	}
	if finding.Confidence != 1 {
		t.Errorf("confidence = %v, want clamped to 1", finding.Confidence)
	}
}
