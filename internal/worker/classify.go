package worker

import (
	"context"

	"github.com/truthscope/truthscope/internal/model"
)

// StanceAnalyzer is the per-article classification unit fanned out
// across the pool. Implementations never fail: a broken model call
// degrades to a neutral result inside Analyze.
type StanceAnalyzer interface {
	Analyze(ctx context.Context, claim, evidence string, art model.Article) model.StanceResult
}

// ClassifyJob classifies one article's evidence against the claim
type ClassifyJob struct {
	Index    int
	Claim    string
	Article  model.Article
	Analyzer StanceAnalyzer

	// ctx carries the request deadline into the pool worker
	ctx context.Context
}

// Execute runs the classification for one article
func (j *ClassifyJob) Execute(ctx context.Context) Result {
	if j.ctx != nil {
		ctx = j.ctx
	}
	stance := j.Analyzer.Analyze(ctx, j.Claim, j.Article.Evidence, j.Article)
	return &ClassifyResult{Index: j.Index, Stance: stance}
}

// ClassifyResult is the result of one classification job
type ClassifyResult struct {
	Index  int
	Stance model.StanceResult
	Err    error
}

// GetError returns the error from the classification job
func (r *ClassifyResult) GetError() error {
	return r.Err
}

// ClassifyAll fans stance classification out across a worker pool and
// fans back in before returning. The result slice is complete (one
// entry per article) and in input order: the aggregator never sees a
// partial set.
func ClassifyAll(ctx context.Context, analyzer StanceAnalyzer, claim string, articles []model.Article, workers int) []model.StanceResult {
	if len(articles) == 0 {
		return []model.StanceResult{}
	}

	pool := NewSizedPool(workers, len(articles))
	pool.Start()

	for i, art := range articles {
		pool.Submit(&ClassifyJob{
			Index:    i,
			Claim:    claim,
			Article:  art,
			Analyzer: analyzer,
			ctx:      ctx,
		})
	}

	results := pool.Wait()

	ordered := make([]model.StanceResult, len(articles))
	for _, r := range results {
		cr := r.(*ClassifyResult)
		ordered[cr.Index] = cr.Stance
	}
	return ordered
}
