package credibility

import (
	"math"
	"strings"

	"github.com/truthscope/truthscope/internal/model"
)

// Component weights of the credibility score. Factual reporting drives
// half the score; bias and source credibility split the remainder.
const (
	factualShare     = 0.5
	biasShare        = 0.3
	credibilityShare = 0.2
)

// neutralWeight is used for unknown or missing labels on any axis
const neutralWeight = 0.5

var factualWeights = map[string]float64{
	"very high":      1.0,
	"high":           0.85,
	"mostly factual": 0.70,
	"mixed":          0.6,
	"low":            0.35,
	"very low":       0.1,
	"n/a":            0.5,
	"unknown":        0.5,
}

var biasWeights = map[string]float64{
	"extreme left":              0.3,
	"left":                      0.5,
	"left-center":               0.7,
	"center":                    1.0,
	"right-center":              0.7,
	"right":                     0.5,
	"extreme right":             0.3,
	"least biased":              0.9,
	"pro-science":               1.0,
	"conspiracy-pseudoscience":  0.0,
	"unknown":                   0.5,
}

var credibilityWeights = map[string]float64{
	"high":     0.9,
	"medium":   0.65,
	"low":      0.4,
	"very low": 0.3,
	"n/a":      0.5,
	"unknown":  0.5,
}

// Assessment is the output of the credibility stage: the articles that
// cleared the forward threshold, the full scored set for diagnostics,
// and the average score across all scored articles.
type Assessment struct {
	Filtered []model.Article
	All      []model.Article
	AvgScore float64
}

// Scorer assigns credibility scores, trust labels and weights to
// retrieved articles using the reference dataset.
type Scorer struct {
	dataset  *Dataset
	minScore float64
}

// NewScorer creates a scorer over the given dataset. A nil dataset is
// valid: Evaluate then returns an empty assessment.
func NewScorer(dataset *Dataset, minScore float64) *Scorer {
	if minScore <= 0 {
		minScore = 40
	}
	return &Scorer{dataset: dataset, minScore: minScore}
}

// ComputeScore computes the 0-100 credibility score for a dataset entry.
// A nil entry yields the neutral fallback of 50.
func ComputeScore(entry *Entry) float64 {
	if entry == nil {
		return 50
	}
	factual := lookupWeight(factualWeights, entry.FactualReporting)
	bias := lookupWeight(biasWeights, entry.Bias)
	cred := lookupWeight(credibilityWeights, entry.Credibility)

	score := factual*factualShare + bias*biasShare + cred*credibilityShare
	return round2(score * 100)
}

func lookupWeight(table map[string]float64, label string) float64 {
	if w, ok := table[strings.ToLower(strings.TrimSpace(label))]; ok {
		return w
	}
	return neutralWeight
}

// TrustTier maps a credibility score to its label, trust label and
// aggregation weight. Bounds are closed above, open below.
func TrustTier(score float64) (label, trustLabel string, weight float64) {
	switch {
	case score >= 80:
		return "Trusted", "Trustworthy", 1.0
	case score >= 60:
		return "Mostly Reliable", "Can Be Considered", 0.7
	case score >= 40:
		return "Questionable", "Low Credibility", 0.5
	default:
		return "Unreliable", "Untrustworthy", 0.2
	}
}

// Evaluate scores every search result and splits them into the filtered
// set forwarded to the semantic stage and the full diagnostic set.
// Results without a URL are skipped. An unloadable dataset degrades to
// "no usable articles" (empty filtered set, zero average) rather than
// failing the request; only a per-domain lookup miss gets the neutral
// fallback of 50.
func (s *Scorer) Evaluate(results []model.SearchResult) Assessment {
	var assessment Assessment

	if s.dataset == nil {
		return assessment
	}

	for _, r := range results {
		if r.URL == "" {
			continue
		}

		domain := RegistrableDomain(r.URL)
		entry := s.dataset.Lookup(domain)

		art := model.Article{
			Title:   r.Title,
			URL:     r.URL,
			Snippet: r.Snippet,
			Domain:  domain,
		}

		if entry != nil {
			art.Credibility = ComputeScore(entry)
			art.Bias = entry.Bias
			art.Factuality = entry.FactualReporting
			art.CredibilityLabel = entry.Credibility
		} else {
			art.Credibility = 50
			art.Bias = "Unknown"
			art.Factuality = "Unknown"
			art.CredibilityLabel = "Not Rated"
		}

		art.Label, art.TrustLabel, art.Weight = TrustTier(art.Credibility)

		assessment.All = append(assessment.All, art)
		if art.Credibility >= s.minScore {
			assessment.Filtered = append(assessment.Filtered, art)
		}
	}

	if len(assessment.All) > 0 {
		var sum float64
		for _, a := range assessment.All {
			sum += a.Credibility
		}
		assessment.AvgScore = round2(sum / float64(len(assessment.All)))
	}

	return assessment
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
