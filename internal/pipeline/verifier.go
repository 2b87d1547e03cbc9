package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/truthscope/truthscope/internal/credibility"
	"github.com/truthscope/truthscope/internal/extract"
	"github.com/truthscope/truthscope/internal/model"
	"github.com/truthscope/truthscope/internal/semantic"
	"github.com/truthscope/truthscope/internal/verdict"
	"github.com/truthscope/truthscope/internal/worker"
)

// Searcher retrieves candidate articles for a claim
type Searcher interface {
	Search(ctx context.Context, claim string) ([]model.SearchResult, error)
}

// EvidenceExtractor fetches and extracts article text
type EvidenceExtractor interface {
	ExtractAll(ctx context.Context, articles []model.Article) []model.Article
}

// Verifier runs the full claim verification pipeline: search,
// credibility scoring, semantic ranking, evidence extraction,
// summarization, stance classification, and aggregation.
type Verifier struct {
	searcher   Searcher
	scorer     *credibility.Scorer
	ranker     *semantic.Ranker
	extractor  EvidenceExtractor
	summarizer *Summarizer // optional, nil disables summarization
	analyzer   worker.StanceAnalyzer
	workers    int
	logger     *slog.Logger
}

// VerifierOptions wires the pipeline stages together
type VerifierOptions struct {
	Searcher   Searcher
	Scorer     *credibility.Scorer
	Ranker     *semantic.Ranker
	Extractor  EvidenceExtractor
	Summarizer *Summarizer
	Analyzer   worker.StanceAnalyzer
	Workers    int
}

// NewVerifier creates a verifier from pre-built stages
func NewVerifier(opts VerifierOptions) (*Verifier, error) {
	if opts.Searcher == nil {
		return nil, fmt.Errorf("searcher is required")
	}
	if opts.Scorer == nil {
		return nil, fmt.Errorf("credibility scorer is required")
	}
	if opts.Ranker == nil {
		return nil, fmt.Errorf("semantic ranker is required")
	}
	if opts.Analyzer == nil {
		return nil, fmt.Errorf("stance analyzer is required")
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = 4
	}

	return &Verifier{
		searcher:   opts.Searcher,
		scorer:     opts.Scorer,
		ranker:     opts.Ranker,
		extractor:  opts.Extractor,
		summarizer: opts.Summarizer,
		analyzer:   opts.Analyzer,
		workers:    workers,
		logger:     slog.Default().With("component", "verifier"),
	}, nil
}

// Verify runs the pipeline for one claim and returns the report. Stage
// failures degrade rather than abort: a failed search or an empty
// ranked set yields a no-evidence NEUTRAL report, a failed extraction
// falls back to the search snippet, and a failed summary keeps the raw
// evidence.
func (v *Verifier) Verify(ctx context.Context, claim string) (*model.Report, error) {
	claim = strings.TrimSpace(claim)
	if claim == "" {
		return nil, fmt.Errorf("empty claim")
	}

	// 1. Search
	results, err := v.searcher.Search(ctx, claim)
	if err != nil {
		v.logger.Warn("search failed, reporting no evidence", "err", err)
		return v.noEvidenceReport(claim), nil
	}

	// 2. Credibility scoring and forward filter
	assessment := v.scorer.Evaluate(results)
	if len(assessment.Filtered) == 0 {
		v.logger.Info("no articles cleared the credibility threshold",
			"scored", len(assessment.All))
		report := v.noEvidenceReport(claim)
		report.AverageCredibility = assessment.AvgScore
		report.AllArticles = assessment.All
		return report, nil
	}

	// 3. Semantic ranking
	ranked, err := v.ranker.Rank(ctx, claim, assessment.Filtered)
	if err != nil {
		v.logger.Warn("semantic ranking failed, reporting no evidence", "err", err)
		return v.noEvidenceReport(claim), nil
	}
	if len(ranked) == 0 {
		v.logger.Info("no articles cleared the similarity threshold",
			"candidates", len(assessment.Filtered))
		report := v.noEvidenceReport(claim)
		report.AverageCredibility = assessment.AvgScore
		report.AllArticles = assessment.All
		return report, nil
	}

	// 4. Evidence extraction
	if v.extractor != nil {
		ranked = v.extractor.ExtractAll(ctx, ranked)
	}

	// 5. Summarization, snippet fallback for articles without evidence
	for i := range ranked {
		ranked[i].Evidence = v.summarize(ctx, claim, ranked[i])
	}

	// 6. Stance classification across the worker pool
	stances := worker.ClassifyAll(ctx, v.analyzer, claim, ranked, v.workers)

	// 7. Aggregation
	agg := verdict.Aggregate(stances)

	report := model.NewReport(claim, agg)
	report.AverageCredibility = assessment.AvgScore
	report.AllArticles = assessment.All
	return report, nil
}

// summarize produces the stance premise for one article: the
// claim-focused summary when available, otherwise the extracted text,
// otherwise the search snippet.
func (v *Verifier) summarize(ctx context.Context, claim string, art model.Article) string {
	evidence := art.Evidence
	if evidence == "" {
		return art.Snippet
	}

	if v.summarizer == nil {
		return evidence
	}

	summary, err := v.summarizer.Summarize(ctx, claim, evidence)
	if err != nil {
		v.logger.Debug("summarization failed, using raw evidence",
			"url", art.URL, "err", err)
		return evidence
	}
	return summary
}

// noEvidenceReport builds the degraded report for claims with no
// usable articles
func (v *Verifier) noEvidenceReport(claim string) *model.Report {
	return model.NewReport(claim, verdict.Aggregate(nil))
}

// compile-time check that the concrete extractor satisfies the
// pipeline-facing interface
var _ EvidenceExtractor = (*extract.Extractor)(nil)
