package semantic

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/truthscope/truthscope/internal/model"
)

// Embedder turns texts into vectors in a shared embedding space.
// internal/llm providers satisfy this.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// Ranker filters and orders credibility-scored articles by semantic
// relevance to the claim.
type Ranker struct {
	embedder  Embedder
	threshold float64
	topK      int
}

// NewRanker creates a ranker. Zero values fall back to the defaults
// (threshold 0.75, top-k 5).
func NewRanker(embedder Embedder, threshold float64, topK int) *Ranker {
	if threshold <= 0 {
		threshold = 0.75
	}
	if topK <= 0 {
		topK = 5
	}
	return &Ranker{embedder: embedder, threshold: threshold, topK: topK}
}

// Rank embeds the claim and each article's title+snippet, keeps only
// articles whose cosine similarity clears the threshold, orders them by
// the composite score similarity x (credibility/100) x weight, and
// truncates to top-k. Similarity is set exactly once here; downstream
// stages treat it as immutable. An empty input returns immediately
// without touching the embedding model.
func (r *Ranker) Rank(ctx context.Context, claim string, articles []model.Article) ([]model.Article, error) {
	if len(articles) == 0 {
		return []model.Article{}, nil
	}

	texts := make([]string, 0, len(articles)+1)
	texts = append(texts, claim)
	for _, a := range articles {
		texts = append(texts, a.Title+" "+a.Snippet)
	}

	vectors, err := r.embedder.Embed(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embed: %w", err)
	}
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("embed: expected %d vectors, got %d", len(texts), len(vectors))
	}

	claimVec := vectors[0]

	var matches []model.Article
	for i, art := range articles {
		sim := CosineSimilarity(claimVec, vectors[i+1])
		if sim < r.threshold {
			continue
		}

		art.Similarity = round3(sim)
		art.FinalScore = round3(sim * (art.Credibility / 100) * art.Weight)
		matches = append(matches, art)
	}

	// Stable: equal composite scores keep their source order
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].FinalScore > matches[j].FinalScore
	})

	if len(matches) > r.topK {
		matches = matches[:r.topK]
	}

	return matches, nil
}

// CosineSimilarity computes the cosine of the angle between two vectors.
// Mismatched or zero-magnitude vectors yield 0.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
