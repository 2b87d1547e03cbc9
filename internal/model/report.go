package model

import "time"

// VerdictLabel is the overall judgment on a claim
type VerdictLabel string

const (
	VerdictSupports VerdictLabel = "SUPPORTS"
	VerdictRefutes  VerdictLabel = "REFUTES"
	VerdictNeutral  VerdictLabel = "NEUTRAL"
)

// Verdict is the aggregate of all per-article stance results for one
// claim. Computed once per request and immutable afterwards.
type Verdict struct {
	Final             VerdictLabel   `json:"final_verdict"`
	TruthScore        float64        `json:"truth_score"`        // 0-100
	AverageConfidence float64        `json:"average_confidence"` // credibility-weighted
	StanceScore       float64        `json:"weighted_stance_score"`
	Sources           []StanceResult `json:"sources"` // input order preserved
	NoResults         bool           `json:"no_results,omitempty"`
}

// Report is the complete serialized output for a verification request.
// Field names are part of the public JSON contract; renaming them
// breaks downstream consumers.
type Report struct {
	Claim               string         `json:"claim"`
	TruthScore          float64        `json:"truthScore"`
	FinalVerdict        VerdictLabel   `json:"finalVerdict"`
	AverageConfidence   float64        `json:"averageConfidence"`
	WeightedStanceScore float64        `json:"weightedStanceScore"`
	Timestamp           time.Time      `json:"timestamp"`
	Sources             []StanceResult `json:"sources"`

	// Diagnostics: the full credibility-scored result set before the
	// >=40 filter, and its average score.
	AverageCredibility float64   `json:"averageCredibility,omitempty"`
	AllArticles        []Article `json:"allArticles,omitempty"`
}

// NewReport builds a Report from a claim and its aggregate verdict
func NewReport(claim string, v Verdict) *Report {
	return &Report{
		Claim:               claim,
		TruthScore:          v.TruthScore,
		FinalVerdict:        v.Final,
		AverageConfidence:   v.AverageConfidence,
		WeightedStanceScore: v.StanceScore,
		Timestamp:           time.Now().UTC(),
		Sources:             v.Sources,
	}
}
