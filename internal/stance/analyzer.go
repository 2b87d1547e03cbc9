package stance

import (
	"context"
	"log/slog"
	"math"

	"github.com/truthscope/truthscope/internal/llm"
	"github.com/truthscope/truthscope/internal/model"
)

// EntailmentClassifier is the model-side half of stance analysis.
// internal/llm providers satisfy this.
type EntailmentClassifier interface {
	ClassifyEntailment(ctx context.Context, premise, hypothesis string) (llm.Entailment, error)
}

// Analyzer determines the stance of evidence toward a claim by
// combining a model-based entailment judgment with the keyword rules.
// The two stages stay separate on purpose: Classify is the pure model
// mapping, ScanCues is the pure rule function, Analyze is the override
// policy gluing them together.
type Analyzer struct {
	classifier EntailmentClassifier
	logger     *slog.Logger
}

// NewAnalyzer creates a stance analyzer
func NewAnalyzer(classifier EntailmentClassifier) *Analyzer {
	return &Analyzer{
		classifier: classifier,
		logger:     slog.Default().With("component", "stance-analyzer"),
	}
}

// Classify queries the entailment model with the evidence as premise
// and the claim as hypothesis, and maps its label onto a relation.
// A failed or malformed model call degrades to neutral with zero
// confidence instead of propagating the error: one bad article must
// never sink the batch.
func (a *Analyzer) Classify(ctx context.Context, claim, evidence string) (model.Relation, float64) {
	result, err := a.classifier.ClassifyEntailment(ctx, evidence, claim)
	if err != nil {
		a.logger.Warn("entailment classification failed, treating as neutral", "err", err)
		return model.RelationNeutral, 0
	}

	var relation model.Relation
	switch result.Label {
	case "entailment":
		relation = model.RelationSupports
	case "contradiction":
		relation = model.RelationRefutes
	default:
		relation = model.RelationNeutral
	}

	return relation, round2(result.Score * 100)
}

// Analyze classifies the evidence and applies the rule-based override,
// then carries the article's credibility fields into the result.
//
// Override policy, applied in order:
//  1. rule fired and disagrees with the model: the rule wins; refute
//     cues add RefuteBoost, support cues add SupportBoost
//  2. the relation is still neutral and a rule fired: the rule
//     relation is adopted with NeutralRuleBoost
//  3. otherwise the model judgment stands
//
// Confidence saturates at 100 after any boost.
func (a *Analyzer) Analyze(ctx context.Context, claim, evidence string, art model.Article) model.StanceResult {
	relation, confidence := a.Classify(ctx, claim, evidence)
	rule := ScanCues(evidence)

	if rule != RuleNone && relation != rule {
		relation = rule
		switch rule {
		case model.RelationRefutes:
			confidence = clamp100(confidence + RefuteBoost)
		case model.RelationSupports:
			confidence = clamp100(confidence + SupportBoost)
		}
	}

	// Second pass for a neutral model verdict with a fired rule; kept
	// separate from the disagreement override to preserve the exact
	// evaluation order of the boosts.
	if relation == model.RelationNeutral && rule != RuleNone {
		relation = rule
		confidence = clamp100(confidence + NeutralRuleBoost)
	}

	return model.StanceResult{
		Relation:    relation,
		Confidence:  confidence,
		Summary:     evidence,
		URL:         art.URL,
		Credibility: art.Credibility,
		TrustLabel:  art.TrustLabel,
		Similarity:  art.Similarity,
		Weight:      art.Weight,
	}
}

func clamp100(v float64) float64 {
	return math.Min(v, 100)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
