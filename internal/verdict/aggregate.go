package verdict

import (
	"math"

	"github.com/truthscope/truthscope/internal/model"
)

// Composite-weight shares for the stance score. Credibility dominates,
// then model confidence, then semantic similarity, then the trust-tier
// weight.
const (
	credibilityShare = 0.4
	confidenceShare  = 0.3
	similarityShare  = 0.2
	tierWeightShare  = 0.1
)

// VerdictBand is the uncertain zone around zero: stance scores inside
// [-VerdictBand, +VerdictBand] map to NEUTRAL.
const VerdictBand = 0.25

// Truth-score shares. Independent of the stance-score weighting on
// purpose: confidence drives half the truth score.
const (
	truthConfidenceShare  = 0.5
	truthCredibilityShare = 0.2
	truthSimilarityShare  = 0.2
	truthWeightShare      = 0.1
)

var stanceValues = map[model.Relation]float64{
	model.RelationSupports: 1,
	model.RelationNeutral:  0,
	model.RelationRefutes:  -1,
}

// Aggregate fans in all per-article stance results into one verdict.
// Empty input is not an error: it yields a NEUTRAL verdict with zeroed
// scores and the NoResults sentinel set. Source order is preserved.
func Aggregate(results []model.StanceResult) model.Verdict {
	if len(results) == 0 {
		return model.Verdict{
			Final:     model.VerdictNeutral,
			Sources:   []model.StanceResult{},
			NoResults: true,
		}
	}

	var weightedSum, totalWeight float64
	for _, r := range results {
		w := credibilityShare*(r.Credibility/100) +
			confidenceShare*(r.Confidence/100) +
			similarityShare*r.Similarity +
			tierWeightShare*r.Weight

		totalWeight += w
		weightedSum += stanceValues[r.Relation] * w
	}

	var stanceScore float64
	if totalWeight > 0 {
		stanceScore = round2(weightedSum / totalWeight)
	}

	final := model.VerdictNeutral
	switch {
	case stanceScore > VerdictBand:
		final = model.VerdictSupports
	case stanceScore < -VerdictBand:
		final = model.VerdictRefutes
	}

	return model.Verdict{
		Final:             final,
		TruthScore:        TruthScore(results),
		AverageConfidence: averageConfidence(results),
		StanceScore:       stanceScore,
		Sources:           results,
	}
}

// averageConfidence weights each confidence by its source credibility,
// a deliberately different weighting than the stance score.
func averageConfidence(results []model.StanceResult) float64 {
	var weighted, total float64
	for _, r := range results {
		weighted += r.Confidence * r.Credibility
		total += r.Credibility
	}
	if total == 0 {
		return 0
	}
	return round2(weighted / total)
}

// TruthScore computes the 0-100 truth score: an unweighted mean of the
// per-result linear combination, clamped to 100. The clamp guards
// against float drift when every component sits at its maximum.
func TruthScore(results []model.StanceResult) float64 {
	if len(results) == 0 {
		return 0
	}

	var sum float64
	for _, r := range results {
		sum += truthConfidenceShare*r.Confidence +
			truthCredibilityShare*r.Credibility +
			truthSimilarityShare*(r.Similarity*100) +
			truthWeightShare*(r.Weight*100)
	}

	return round2(math.Min(sum/float64(len(results)), 100))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
