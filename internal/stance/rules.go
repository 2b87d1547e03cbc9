package stance

import (
	"strings"

	"github.com/truthscope/truthscope/internal/model"
)

// Confidence boosts applied when the keyword rules fire. Refutation
// cues get a larger boost than support cues: explicit denial language
// is a higher-precision signal than affirmation language.
const (
	RefuteBoost      = 20
	SupportBoost     = 10
	NeutralRuleBoost = 25
)

// refuteCues are explicit markers of denial or contradiction
var refuteCues = []string{
	"refutes", "fake", "false", "denied", "refuted", "clarified", "no such",
	"fabricated", "not true", "incorrect", "contradict", "disprove",
	"debunk", "denies", "myth", "hoax", "isn't", "is not", "wasn't",
}

// supportCues are explicit markers of confirmation
var supportCues = []string{
	"confirmed", "agreed", "verified", "approved", "affirmed",
	"announced", "declared", "supports", "proves", "true", "confirmed that",
}

// RuleNone means no cue matched
const RuleNone model.Relation = ""

// ScanCues runs the keyword rules over the evidence text. Refute cues
// take precedence over support cues; RuleNone when neither matches.
// The scan is case-insensitive and looks at the evidence only, never
// the claim.
func ScanCues(text string) model.Relation {
	lower := strings.ToLower(text)

	for _, cue := range refuteCues {
		if strings.Contains(lower, cue) {
			return model.RelationRefutes
		}
	}
	for _, cue := range supportCues {
		if strings.Contains(lower, cue) {
			return model.RelationSupports
		}
	}
	return RuleNone
}
