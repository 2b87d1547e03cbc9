package pipeline

import (
	"context"
	"fmt"
	"testing"

	"github.com/truthscope/truthscope/internal/credibility"
	"github.com/truthscope/truthscope/internal/model"
	"github.com/truthscope/truthscope/internal/semantic"
)

type stubSearcher struct {
	results []model.SearchResult
	err     error
}

func (s *stubSearcher) Search(_ context.Context, _ string) ([]model.SearchResult, error) {
	return s.results, s.err
}

// stubEmbedder returns a fixed claim vector and per-article vectors
// chosen so every article clears the similarity threshold
type stubEmbedder struct{}

func (s *stubEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i := range texts {
		vectors[i] = []float32{1, 0, 0}
	}
	return vectors, nil
}

type stubAnalyzer struct {
	relation model.Relation
}

func (s *stubAnalyzer) Analyze(_ context.Context, _, evidence string, art model.Article) model.StanceResult {
	return model.StanceResult{
		Relation:    s.relation,
		Confidence:  90,
		Summary:     evidence,
		URL:         art.URL,
		Credibility: art.Credibility,
		TrustLabel:  art.TrustLabel,
		Similarity:  art.Similarity,
		Weight:      art.Weight,
	}
}

type stubExtractor struct {
	evidence map[string]string
}

func (s *stubExtractor) ExtractAll(_ context.Context, articles []model.Article) []model.Article {
	out := make([]model.Article, len(articles))
	for i, art := range articles {
		art.Evidence = s.evidence[art.URL]
		out[i] = art
	}
	return out
}

func testDataset(t *testing.T) *credibility.Dataset {
	t.Helper()
	dataset, err := credibility.ParseDataset([]byte(`{"data": [
		{"Source URL": "https://bbc.com", "Bias": "Left-Center", "Factual Reporting": "High", "Credibility": "High"},
		{"Source URL": "https://clickbait.example", "Bias": "Extreme Right", "Factual Reporting": "Very Low", "Credibility": "Very Low"}
	]}`))
	if err != nil {
		t.Fatalf("parse dataset: %v", err)
	}
	return dataset
}

func newTestVerifier(t *testing.T, searcher Searcher, extractor EvidenceExtractor, analyzer *stubAnalyzer) *Verifier {
	t.Helper()
	v, err := NewVerifier(VerifierOptions{
		Searcher:  searcher,
		Scorer:    credibility.NewScorer(testDataset(t), 40),
		Ranker:    semantic.NewRanker(&stubEmbedder{}, 0.75, 5),
		Extractor: extractor,
		Analyzer:  analyzer,
		Workers:   2,
	})
	if err != nil {
		t.Fatalf("new verifier: %v", err)
	}
	return v
}

func TestVerify_EndToEndRefutes(t *testing.T) {
	searcher := &stubSearcher{results: []model.SearchResult{
		{Title: "Eiffel Tower", URL: "https://bbc.com/news/1", Snippet: "The tower is in Paris."},
	}}
	extractor := &stubExtractor{evidence: map[string]string{
		"https://bbc.com/news/1": "The claim that the tower moved is false. It remains in Paris.",
	}}

	v := newTestVerifier(t, searcher, extractor, &stubAnalyzer{relation: model.RelationRefutes})

	report, err := v.Verify(context.Background(), "The Eiffel Tower is in Berlin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.FinalVerdict != model.VerdictRefutes {
		t.Errorf("expected REFUTES, got %q", report.FinalVerdict)
	}
	if len(report.Sources) != 1 {
		t.Fatalf("expected 1 source, got %d", len(report.Sources))
	}
	if report.Sources[0].URL != "https://bbc.com/news/1" {
		t.Errorf("unexpected source URL: %s", report.Sources[0].URL)
	}
	if report.TruthScore <= 0 || report.TruthScore > 100 {
		t.Errorf("truth score out of range: %v", report.TruthScore)
	}
	if report.Timestamp.IsZero() {
		t.Error("expected a timestamp")
	}
}

func TestVerify_SearchFailureDegradesToNoEvidence(t *testing.T) {
	searcher := &stubSearcher{err: fmt.Errorf("search provider down")}
	v := newTestVerifier(t, searcher, nil, &stubAnalyzer{})

	report, err := v.Verify(context.Background(), "some claim")
	if err != nil {
		t.Fatalf("search failure must degrade, not error: %v", err)
	}
	if report.FinalVerdict != model.VerdictNeutral {
		t.Errorf("expected NEUTRAL, got %q", report.FinalVerdict)
	}
	if report.TruthScore != 0 {
		t.Errorf("expected zero truth score, got %v", report.TruthScore)
	}
	if len(report.Sources) != 0 {
		t.Errorf("expected no sources, got %d", len(report.Sources))
	}
}

func TestVerify_LowCredibilitySourcesFilteredOut(t *testing.T) {
	// The only hit comes from a very-low-credibility domain and must be
	// dropped by the forward threshold, leaving a no-evidence verdict.
	searcher := &stubSearcher{results: []model.SearchResult{
		{Title: "Shock news", URL: "https://clickbait.example/story", Snippet: "Unbelievable."},
	}}

	v := newTestVerifier(t, searcher, nil, &stubAnalyzer{relation: model.RelationSupports})

	report, err := v.Verify(context.Background(), "some claim")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.FinalVerdict != model.VerdictNeutral {
		t.Errorf("expected NEUTRAL with all sources filtered, got %q", report.FinalVerdict)
	}
	if len(report.AllArticles) != 1 {
		t.Errorf("expected the filtered article in diagnostics, got %d", len(report.AllArticles))
	}
}

func TestVerify_SnippetFallbackWhenExtractionFails(t *testing.T) {
	searcher := &stubSearcher{results: []model.SearchResult{
		{Title: "Eiffel Tower", URL: "https://bbc.com/news/1", Snippet: "The tower is in Paris."},
	}}
	// Extractor yields no evidence for the URL
	extractor := &stubExtractor{evidence: map[string]string{}}

	v := newTestVerifier(t, searcher, extractor, &stubAnalyzer{relation: model.RelationRefutes})

	report, err := v.Verify(context.Background(), "The Eiffel Tower is in Berlin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.Sources) != 1 {
		t.Fatalf("expected 1 source, got %d", len(report.Sources))
	}
	if report.Sources[0].Summary != "The tower is in Paris." {
		t.Errorf("expected snippet fallback as evidence, got %q", report.Sources[0].Summary)
	}
}

func TestVerify_EmptyClaim(t *testing.T) {
	v := newTestVerifier(t, &stubSearcher{}, nil, &stubAnalyzer{})
	if _, err := v.Verify(context.Background(), "   "); err == nil {
		t.Error("expected error for empty claim")
	}
}

func TestVerify_DiagnosticsCarried(t *testing.T) {
	searcher := &stubSearcher{results: []model.SearchResult{
		{Title: "a", URL: "https://bbc.com/a", Snippet: "s"},
		{Title: "b", URL: "https://clickbait.example/b", Snippet: "s"},
	}}
	v := newTestVerifier(t, searcher, &stubExtractor{}, &stubAnalyzer{relation: model.RelationSupports})

	report, err := v.Verify(context.Background(), "claim words here")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.AllArticles) != 2 {
		t.Errorf("expected both scored articles in diagnostics, got %d", len(report.AllArticles))
	}
	if report.AverageCredibility <= 0 {
		t.Errorf("expected positive average credibility, got %v", report.AverageCredibility)
	}
}
