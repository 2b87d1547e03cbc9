package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/truthscope/truthscope/internal/util"
)

const defaultHFBaseURL = "https://api-inference.huggingface.co"

// HuggingFaceProvider implements the Provider interface on the Hugging
// Face Inference API. It gives direct access to purpose-built NLI
// classifiers (roberta-large-mnli) and sentence embedding models.
type HuggingFaceProvider struct {
	baseURL    string
	httpClient *http.Client
	config     Config
	logger     *slog.Logger
}

type hfClassification struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

type hfGeneration struct {
	GeneratedText string `json:"generated_text"`
}

type hfError struct {
	Error string `json:"error"`
}

// NewHuggingFaceProvider creates a new Hugging Face Inference provider
func NewHuggingFaceProvider(config Config) (*HuggingFaceProvider, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("Hugging Face API key is required")
	}

	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = defaultHFBaseURL
	}

	timeout := time.Duration(config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 60 * time.Second // cold model loads can be slow
	}

	return &HuggingFaceProvider{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(config.HTTPProxy, config.HTTPSProxy, config.NoProxy),
			},
		},
		config: config,
		logger: slog.Default().With("component", "huggingface-provider"),
	}, nil
}

// Name returns the provider name
func (p *HuggingFaceProvider) Name() string {
	return "huggingface"
}

// IsAvailable checks if the provider is configured and reachable
func (p *HuggingFaceProvider) IsAvailable(ctx context.Context) bool {
	endpoint := fmt.Sprintf("%s/models/%s", p.baseURL, p.entailmentModel())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false
	}
	req.Header.Set("Authorization", "Bearer "+p.config.APIKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		p.logger.Warn("Hugging Face availability check failed", "err", err)
		return false
	}
	defer func() { _ = resp.Body.Close() }()

	return resp.StatusCode == http.StatusOK
}

// Embed generates embeddings via the feature-extraction pipeline
func (p *HuggingFaceProvider) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	model := p.config.EmbeddingModel
	if model == "" {
		model = "intfloat/multilingual-e5-small"
	}

	endpoint := fmt.Sprintf("%s/pipeline/feature-extraction/%s", p.baseURL, model)
	body, err := p.post(ctx, endpoint, map[string]interface{}{
		"inputs": texts,
		"options": map[string]bool{
			"wait_for_model": true,
		},
	})
	if err != nil {
		return nil, err
	}

	var vectors [][]float32
	if err := json.Unmarshal(body, &vectors); err != nil {
		return nil, fmt.Errorf("decode embeddings: %w", err)
	}

	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("embedding count mismatch: sent %d texts, got %d vectors", len(texts), len(vectors))
	}

	return vectors, nil
}

// ClassifyEntailment queries the NLI model with the evidence as premise
// and the claim as hypothesis, and returns the top label.
func (p *HuggingFaceProvider) ClassifyEntailment(ctx context.Context, premise, hypothesis string) (Entailment, error) {
	// Hypothesis-first input ordering improves negation detection with
	// MNLI-family models
	input := fmt.Sprintf("Hypothesis: %s Premise: %s", hypothesis, premise)

	endpoint := fmt.Sprintf("%s/models/%s", p.baseURL, p.entailmentModel())
	body, err := p.post(ctx, endpoint, map[string]interface{}{
		"inputs": input,
		"options": map[string]bool{
			"wait_for_model": true,
		},
	})
	if err != nil {
		return Entailment{}, err
	}

	// Response shape: [[{"label": "...", "score": ...}, ...]]
	var nested [][]hfClassification
	if err := json.Unmarshal(body, &nested); err != nil {
		// Some deployments return a flat list
		var flat []hfClassification
		if err := json.Unmarshal(body, &flat); err != nil {
			return Entailment{}, fmt.Errorf("decode classification: %w", err)
		}
		nested = [][]hfClassification{flat}
	}

	if len(nested) == 0 || len(nested[0]) == 0 {
		return Entailment{}, fmt.Errorf("classification: empty response")
	}

	top := nested[0][0]
	for _, c := range nested[0][1:] {
		if c.Score > top.Score {
			top = c
		}
	}

	return Entailment{
		Label: strings.ToLower(top.Label),
		Score: top.Score,
	}, nil
}

// Generate produces text via the text-generation pipeline
func (p *HuggingFaceProvider) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	if p.config.Model == "" {
		return "", fmt.Errorf("generation model not configured")
	}
	if maxTokens == 0 {
		maxTokens = p.config.MaxTokens
	}

	endpoint := fmt.Sprintf("%s/models/%s", p.baseURL, p.config.Model)
	body, err := p.post(ctx, endpoint, map[string]interface{}{
		"inputs": prompt,
		"parameters": map[string]interface{}{
			"max_new_tokens":   maxTokens,
			"return_full_text": false,
		},
	})
	if err != nil {
		return "", err
	}

	var generations []hfGeneration
	if err := json.Unmarshal(body, &generations); err != nil {
		return "", fmt.Errorf("decode generation: %w", err)
	}
	if len(generations) == 0 {
		return "", fmt.Errorf("generation: empty response")
	}

	return strings.TrimSpace(generations[0].GeneratedText), nil
}

func (p *HuggingFaceProvider) entailmentModel() string {
	if p.config.EntailmentModel != "" {
		return p.config.EntailmentModel
	}
	return "roberta-large-mnli"
}

func (p *HuggingFaceProvider) post(ctx context.Context, endpoint string, payload interface{}) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.config.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr hfError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
			return nil, fmt.Errorf("API error (HTTP %d): %s", resp.StatusCode, apiErr.Error)
		}
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	return body, nil
}
