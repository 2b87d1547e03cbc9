package model

// Relation is the stance of one piece of evidence toward the claim
type Relation string

const (
	RelationSupports Relation = "supports"
	RelationRefutes  Relation = "refutes"
	RelationNeutral  Relation = "neutral"
)

// StanceResult is the outcome of classifying one evidence summary
// against the claim. Credibility, TrustLabel, Similarity and Weight are
// carried over unchanged from the source Article so the aggregator
// never has to recompute them.
type StanceResult struct {
	Relation   Relation `json:"relation"`
	Confidence float64  `json:"confidence"` // 0-100, clamped after rule boosts
	Summary    string   `json:"summary,omitempty"`

	URL        string  `json:"url"`
	Credibility float64 `json:"credibility"`
	TrustLabel string  `json:"trust_label"`
	Similarity float64 `json:"similarity"`
	Weight     float64 `json:"weight"`
}
