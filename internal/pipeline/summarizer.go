package pipeline

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// maxRelevantSentences bounds the pre-filtered evidence handed to the
// model: the stance stage needs the claim-adjacent passages, not the
// whole article.
const maxRelevantSentences = 5

// minClaimWordLength filters stopword-sized tokens out of the claim
// before sentence matching
const minClaimWordLength = 3

// TextGenerator produces text from a prompt
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// Summarizer condenses extracted article text into a claim-focused
// summary used as the premise for stance classification.
type Summarizer struct {
	generator TextGenerator
	maxTokens int
}

// NewSummarizer creates a claim-focused summarizer
func NewSummarizer(generator TextGenerator, maxTokens int) *Summarizer {
	if maxTokens <= 0 {
		maxTokens = 300
	}
	return &Summarizer{generator: generator, maxTokens: maxTokens}
}

// Summarize reduces the evidence to the sentences most relevant to the
// claim and asks the model to condense them. The returned summary keeps
// the article's own wording of whether the claim holds.
func (s *Summarizer) Summarize(ctx context.Context, claim, evidence string) (string, error) {
	relevant := filterRelevantSentences(claim, evidence)
	if relevant == "" {
		return "", fmt.Errorf("no sentences relevant to the claim")
	}

	prompt := fmt.Sprintf(
		"Summarize the following article excerpt in 2-3 sentences, focusing "+
			"on what it says about this claim: %q. Preserve whether the excerpt "+
			"supports, contradicts, or does not address the claim.\n\nExcerpt:\n%s",
		claim, relevant)

	summary, err := s.generator.Generate(ctx, prompt, s.maxTokens)
	if err != nil {
		return "", fmt.Errorf("summarize: %w", err)
	}

	summary = strings.TrimSpace(summary)
	if summary == "" {
		return "", fmt.Errorf("model returned empty summary")
	}

	return summary, nil
}

// filterRelevantSentences keeps the sentences sharing the most content
// words with the claim, in their original order, capped at
// maxRelevantSentences.
func filterRelevantSentences(claim, text string) string {
	words := claimWords(claim)
	if len(words) == 0 || text == "" {
		return ""
	}

	sentences := splitSentences(text)

	type scored struct {
		index int
		hits  int
	}

	var candidates []scored
	for i, sentence := range sentences {
		lower := strings.ToLower(sentence)
		hits := 0
		for word := range words {
			if strings.Contains(lower, word) {
				hits++
			}
		}
		if hits > 0 {
			candidates = append(candidates, scored{index: i, hits: hits})
		}
	}

	if len(candidates) == 0 {
		return ""
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].hits > candidates[j].hits
	})
	if len(candidates) > maxRelevantSentences {
		candidates = candidates[:maxRelevantSentences]
	}

	// Restore article order so the excerpt still reads coherently
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].index < candidates[j].index
	})

	parts := make([]string, 0, len(candidates))
	for _, c := range candidates {
		parts = append(parts, strings.TrimSpace(sentences[c.index]))
	}
	return strings.Join(parts, " ")
}

// claimWords returns the lowercased content words of the claim
func claimWords(claim string) map[string]struct{} {
	words := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(claim)) {
		w = strings.Trim(w, ".,;:!?\"'()")
		if len(w) > minClaimWordLength {
			words[w] = struct{}{}
		}
	}
	return words
}

// splitSentences performs a rough sentence split on terminal punctuation
func splitSentences(text string) []string {
	var sentences []string
	var b strings.Builder

	for _, r := range text {
		b.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			if s := strings.TrimSpace(b.String()); s != "" {
				sentences = append(sentences, s)
			}
			b.Reset()
		}
	}
	if s := strings.TrimSpace(b.String()); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}
