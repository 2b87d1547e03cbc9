package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// OpenAIProvider implements the Provider interface on the OpenAI API
// (or any OpenAI-compatible endpoint via BaseURL).
type OpenAIProvider struct {
	client *openai.Client
	config Config
	logger *slog.Logger
}

// NewOpenAIProvider creates a new OpenAI provider
func NewOpenAIProvider(config Config) (*OpenAIProvider, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
		logger: slog.Default().With("component", "openai-provider"),
	}, nil
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// IsAvailable checks if the provider is properly configured
func (p *OpenAIProvider) IsAvailable(ctx context.Context) bool {
	if _, err := p.client.ListModels(ctx); err != nil {
		p.logger.Warn("OpenAI availability check failed", "err", err)
		return false
	}
	return true
}

// Embed generates one embedding per input text in a single batch call
func (p *OpenAIProvider) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	model := p.config.EmbeddingModel
	if model == "" {
		model = string(openai.SmallEmbedding3)
	}

	resp, err := p.client.CreateEmbeddings(ctx, openai.EmbeddingRequestStrings{
		Input: texts,
		Model: openai.EmbeddingModel(model),
	})
	if err != nil {
		return nil, fmt.Errorf("create embeddings: %w", err)
	}

	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("embedding count mismatch: sent %d texts, got %d vectors", len(texts), len(resp.Data))
	}

	vectors := make([][]float32, len(resp.Data))
	for i, d := range resp.Data {
		vectors[i] = d.Embedding
	}
	return vectors, nil
}

// entailmentReply is the JSON shape the classifier prompt demands
type entailmentReply struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// ClassifyEntailment asks the chat model for an NLI judgment with a
// strict JSON reply contract. A reply that does not parse or carries an
// out-of-range score is an error; callers substitute a neutral result.
func (p *OpenAIProvider) ClassifyEntailment(ctx context.Context, premise, hypothesis string) (Entailment, error) {
	model := p.config.Model
	if model == "" {
		model = openai.GPT4oMini
	}

	prompt := fmt.Sprintf(`You are a natural language inference classifier.

Premise: %s
Hypothesis: %s

Decide whether the premise entails, contradicts, or is neutral toward the hypothesis.
Reply with ONLY a JSON object, no prose:
{"label": "entailment" | "contradiction" | "neutral", "score": <probability of that label, 0.0-1.0>}`, premise, hypothesis)

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0,
		MaxTokens:   50,
	})
	if err != nil {
		return Entailment{}, fmt.Errorf("entailment completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return Entailment{}, fmt.Errorf("entailment completion: empty response")
	}

	return parseEntailmentReply(resp.Choices[0].Message.Content)
}

func parseEntailmentReply(content string) (Entailment, error) {
	content = strings.TrimSpace(content)

	// Models occasionally wrap JSON in a code fence despite instructions
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var reply entailmentReply
	if err := json.Unmarshal([]byte(content), &reply); err != nil {
		return Entailment{}, fmt.Errorf("parse entailment reply: %w", err)
	}

	if reply.Score < 0 || reply.Score > 1 {
		return Entailment{}, fmt.Errorf("entailment score out of range: %v", reply.Score)
	}

	return Entailment{
		Label: strings.ToLower(strings.TrimSpace(reply.Label)),
		Score: reply.Score,
	}, nil
}

// Generate produces free-form text via chat completion
func (p *OpenAIProvider) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	model := p.config.Model
	if model == "" {
		model = openai.GPT4oMini
	}
	if maxTokens == 0 {
		maxTokens = p.config.MaxTokens
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens: maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("completion: empty response")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
