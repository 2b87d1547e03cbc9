package credibility

import (
	"testing"

	"github.com/truthscope/truthscope/internal/model"
)

func testDataset() *Dataset {
	return &Dataset{entries: []Entry{
		{SourceURL: "https://www.bbc.com/", Bias: "Least Biased", FactualReporting: "High", Credibility: "High"},
		{SourceURL: "https://randomblog.net/", Bias: "Right", FactualReporting: "Mixed", Credibility: "Medium"},
		{SourceURL: "https://conspiracycentral.org/", Bias: "Conspiracy-Pseudoscience", FactualReporting: "Very Low", Credibility: "Very Low"},
	}}
}

func TestComputeScore_Deterministic(t *testing.T) {
	entry := &Entry{Bias: "Center", FactualReporting: "High", Credibility: "High"}

	first := ComputeScore(entry)
	for i := 0; i < 5; i++ {
		if got := ComputeScore(entry); got != first {
			t.Fatalf("expected deterministic score, got %v then %v", first, got)
		}
	}

	// 0.5*0.85 + 0.3*1.0 + 0.2*0.9 = 0.905
	if first != 90.5 {
		t.Errorf("expected score 90.5, got %v", first)
	}
}

func TestComputeScore_UnknownLabels(t *testing.T) {
	entry := &Entry{Bias: "Something Odd", FactualReporting: "???", Credibility: ""}
	if got := ComputeScore(entry); got != 50.0 {
		t.Errorf("expected neutral 50.0 for unknown labels, got %v", got)
	}
}

func TestComputeScore_NilEntry(t *testing.T) {
	if got := ComputeScore(nil); got != 50.0 {
		t.Errorf("expected 50.0 for nil entry, got %v", got)
	}
}

func TestComputeScore_LabelNormalization(t *testing.T) {
	a := ComputeScore(&Entry{Bias: "center", FactualReporting: "high", Credibility: "high"})
	b := ComputeScore(&Entry{Bias: "  CENTER ", FactualReporting: " High", Credibility: "HIGH "})
	if a != b {
		t.Errorf("expected case/whitespace-insensitive scoring, got %v vs %v", a, b)
	}
}

func TestTrustTier_Boundaries(t *testing.T) {
	tests := []struct {
		score      float64
		label      string
		trustLabel string
		weight     float64
	}{
		{80.0, "Trusted", "Trustworthy", 1.0},
		{79.99, "Mostly Reliable", "Can Be Considered", 0.7},
		{60.0, "Mostly Reliable", "Can Be Considered", 0.7},
		{59.99, "Questionable", "Low Credibility", 0.5},
		{40.0, "Questionable", "Low Credibility", 0.5},
		{39.99, "Unreliable", "Untrustworthy", 0.2},
		{0, "Unreliable", "Untrustworthy", 0.2},
		{100, "Trusted", "Trustworthy", 1.0},
	}

	for _, tt := range tests {
		label, trustLabel, weight := TrustTier(tt.score)
		if label != tt.label || trustLabel != tt.trustLabel || weight != tt.weight {
			t.Errorf("TrustTier(%v) = (%q, %q, %v), want (%q, %q, %v)",
				tt.score, label, trustLabel, weight, tt.label, tt.trustLabel, tt.weight)
		}
	}
}

func TestScorer_Evaluate_FiltersBelowThreshold(t *testing.T) {
	scorer := NewScorer(testDataset(), 40)

	results := []model.SearchResult{
		{Title: "BBC article", URL: "https://www.bbc.com/news/abc", Snippet: "snippet"},
		{Title: "Conspiracy post", URL: "https://conspiracycentral.org/x", Snippet: "snippet"},
		{Title: "No URL"},
	}

	assessment := scorer.Evaluate(results)

	if len(assessment.All) != 2 {
		t.Fatalf("expected 2 scored articles (URL-less skipped), got %d", len(assessment.All))
	}

	// conspiracycentral: 0.5*0.1 + 0.3*0.0 + 0.2*0.3 = 0.11 -> 11.0, filtered out
	if len(assessment.Filtered) != 1 {
		t.Fatalf("expected 1 filtered article, got %d", len(assessment.Filtered))
	}
	if assessment.Filtered[0].Domain != "bbc.com" {
		t.Errorf("expected bbc.com to survive filtering, got %q", assessment.Filtered[0].Domain)
	}

	// Weight and trust label must be a function of the score
	art := assessment.Filtered[0]
	wantLabel, wantTrust, wantWeight := TrustTier(art.Credibility)
	if art.Label != wantLabel || art.TrustLabel != wantTrust || art.Weight != wantWeight {
		t.Errorf("tier fields inconsistent with score %v: got (%q, %q, %v)",
			art.Credibility, art.Label, art.TrustLabel, art.Weight)
	}

	if assessment.AvgScore <= 0 {
		t.Errorf("expected positive average score, got %v", assessment.AvgScore)
	}
}

func TestScorer_Evaluate_LookupMissNeutralFallback(t *testing.T) {
	scorer := NewScorer(testDataset(), 40)

	assessment := scorer.Evaluate([]model.SearchResult{
		{Title: "Unrated", URL: "https://totally-unrated.example/post"},
	})

	if len(assessment.All) != 1 {
		t.Fatalf("expected 1 scored article, got %d", len(assessment.All))
	}

	art := assessment.All[0]
	if art.Credibility != 50 {
		t.Errorf("expected neutral score 50, got %v", art.Credibility)
	}
	if art.Bias != "Unknown" || art.Factuality != "Unknown" || art.CredibilityLabel != "Not Rated" {
		t.Errorf("expected Unknown/Unknown/Not Rated fallback, got %q/%q/%q",
			art.Bias, art.Factuality, art.CredibilityLabel)
	}
	if len(assessment.Filtered) != 1 {
		t.Errorf("neutral score 50 should pass the >=40 filter")
	}
}

func TestScorer_Evaluate_NilDataset(t *testing.T) {
	scorer := NewScorer(nil, 40)

	assessment := scorer.Evaluate([]model.SearchResult{
		{Title: "Anything", URL: "https://example.com/a"},
	})

	if len(assessment.Filtered) != 0 || len(assessment.All) != 0 {
		t.Error("expected empty assessment when dataset is unavailable")
	}
	if assessment.AvgScore != 0 {
		t.Errorf("expected zero average, got %v", assessment.AvgScore)
	}
}

func TestScorer_Evaluate_EmptyInput(t *testing.T) {
	scorer := NewScorer(testDataset(), 40)
	assessment := scorer.Evaluate(nil)
	if len(assessment.All) != 0 || assessment.AvgScore != 0 {
		t.Error("expected empty assessment for empty input")
	}
}
