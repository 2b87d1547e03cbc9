package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// minArticleLength is the shortest DOM extraction considered a real
// article body. Anything shorter is usually a cookie wall or a paywall
// teaser, and the next strategy gets a try.
const minArticleLength = 200

// llmExcerptLength bounds the HTML handed to the model fallback
const llmExcerptLength = 6000

// Strategy extracts readable article text from raw HTML. Strategies
// are tried in order until one succeeds.
type Strategy interface {
	Name() string
	Extract(ctx context.Context, html string) (string, error)
}

// DOMStrategy extracts text by stripping boilerplate elements from the
// parsed document
type DOMStrategy struct{}

// NewDOMStrategy creates a DOM-based extraction strategy
func NewDOMStrategy() *DOMStrategy {
	return &DOMStrategy{}
}

// Name returns the strategy name
func (s *DOMStrategy) Name() string {
	return "dom"
}

// boilerplate elements removed before text extraction
var strippedSelectors = []string{
	"script", "style", "nav", "footer", "header",
	"aside", "form", "button", "noscript", "iframe",
}

// Extract parses the HTML and returns the visible body text
func (s *DOMStrategy) Extract(_ context.Context, html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parse HTML: %w", err)
	}

	for _, sel := range strippedSelectors {
		doc.Find(sel).Remove()
	}

	// Prefer the article element when present; many news sites wrap
	// the story in one and keep related-content junk outside it.
	root := doc.Find("article")
	if root.Length() == 0 {
		root = doc.Find("body")
	}

	text := normalizeWhitespace(root.Text())
	if len(text) < minArticleLength {
		return "", fmt.Errorf("extracted text too short: %d chars", len(text))
	}

	return text, nil
}

// TextGenerator produces text from a prompt
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// LLMStrategy asks a language model to pull the article text out of
// HTML the DOM strategy could not handle (heavily scripted pages,
// unusual markup)
type LLMStrategy struct {
	generator TextGenerator
	maxTokens int
}

// NewLLMStrategy creates a model-backed extraction strategy
func NewLLMStrategy(generator TextGenerator, maxTokens int) *LLMStrategy {
	if maxTokens <= 0 {
		maxTokens = 1000
	}
	return &LLMStrategy{generator: generator, maxTokens: maxTokens}
}

// Name returns the strategy name
func (s *LLMStrategy) Name() string {
	return "llm"
}

// Extract prompts the model with an HTML excerpt and returns its
// cleaned-up article text
func (s *LLMStrategy) Extract(ctx context.Context, html string) (string, error) {
	excerpt := html
	if len(excerpt) > llmExcerptLength {
		excerpt = excerpt[:llmExcerptLength]
	}

	prompt := fmt.Sprintf(
		"Extract the main article text from the following HTML. "+
			"Return only the article body as plain text, without navigation, "+
			"ads, or boilerplate.\n\nHTML:\n%s", excerpt)

	text, err := s.generator.Generate(ctx, prompt, s.maxTokens)
	if err != nil {
		return "", fmt.Errorf("llm extraction: %w", err)
	}

	text = normalizeWhitespace(text)
	if text == "" {
		return "", fmt.Errorf("llm extraction returned empty text")
	}

	return text, nil
}

// normalizeWhitespace collapses runs of whitespace into single spaces
func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
