package model

import (
	"os"
	"path/filepath"
	"time"
)

// Config is the full configuration tree for the verification pipeline
type Config struct {
	HTTP        HTTPConfig        `yaml:"http" mapstructure:"http"`
	Search      SearchConfig      `yaml:"search" mapstructure:"search"`
	Credibility CredibilityConfig `yaml:"credibility" mapstructure:"credibility"`
	Semantic    SemanticConfig    `yaml:"semantic" mapstructure:"semantic"`
	Stance      StanceConfig      `yaml:"stance" mapstructure:"stance"`
	LLM         LLMConfig         `yaml:"llm" mapstructure:"llm"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
}

// HTTPConfig controls outbound HTTP behavior for search and extraction
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent    string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	InsecureTLS  bool          `yaml:"insecure_tls" mapstructure:"insecure_tls"`
	HTTPProxy    string        `yaml:"http_proxy" mapstructure:"http_proxy"`
	HTTPSProxy   string        `yaml:"https_proxy" mapstructure:"https_proxy"`
	NoProxy      string        `yaml:"no_proxy" mapstructure:"no_proxy"`
}

// SearchConfig controls the related-article search provider
type SearchConfig struct {
	BaseURL    string `yaml:"base_url" mapstructure:"base_url"`
	Engine     string `yaml:"engine" mapstructure:"engine"`
	APIKey     string `yaml:"api_key" mapstructure:"api_key"`
	MaxResults int    `yaml:"max_results" mapstructure:"max_results"`
}

// CredibilityConfig controls the domain credibility stage
type CredibilityConfig struct {
	DatasetPath string  `yaml:"dataset_path" mapstructure:"dataset_path"`
	MinScore    float64 `yaml:"min_score" mapstructure:"min_score"` // forward threshold
}

// SemanticConfig controls the semantic ranking stage
type SemanticConfig struct {
	Threshold float64 `yaml:"threshold" mapstructure:"threshold"`
	TopK      int     `yaml:"top_k" mapstructure:"top_k"`
}

// StanceConfig controls the stance classification stage
type StanceConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"` // fan-out width for per-article classification
}

// LLMConfig selects and configures the model provider
type LLMConfig struct {
	Provider       string `yaml:"provider" mapstructure:"provider"` // openai, huggingface
	Model          string `yaml:"model" mapstructure:"model"`
	EmbeddingModel string `yaml:"embedding_model" mapstructure:"embedding_model"`
	EntailmentModel string `yaml:"entailment_model" mapstructure:"entailment_model"`
	APIKey         string `yaml:"api_key" mapstructure:"api_key"`
	BaseURL        string `yaml:"base_url" mapstructure:"base_url"`
	Timeout        int    `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens      int    `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// CacheConfig controls search/dataset caching
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// ConcurrencyConfig controls worker fan-out and politeness limits
type ConcurrencyConfig struct {
	ExtractionWorkers int     `yaml:"extraction_workers" mapstructure:"extraction_workers"`
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int     `yaml:"burst" mapstructure:"burst"`
}

// OutputConfig controls report rendering
type OutputConfig struct {
	Verbose        bool `yaml:"verbose" mapstructure:"verbose"`
	IncludeFooter  bool `yaml:"include_footer" mapstructure:"include_footer"`
	IncludeDiag    bool `yaml:"include_diagnostics" mapstructure:"include_diagnostics"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:      30 * time.Second,
			UserAgent:    "TruthScope/0.1 (+https://github.com/truthscope/truthscope)",
			MaxBodyBytes: 2_000_000,
		},
		Search: SearchConfig{
			BaseURL:    "https://serpapi.com/search",
			Engine:     "google",
			MaxResults: 10,
		},
		Credibility: CredibilityConfig{
			DatasetPath: "assets/mbfc_data.json",
			MinScore:    40,
		},
		Semantic: SemanticConfig{
			Threshold: 0.75,
			TopK:      5,
		},
		Stance: StanceConfig{
			Workers: 4,
		},
		LLM: LLMConfig{
			Provider:        "openai",
			Model:           "gpt-4o-mini",
			EmbeddingModel:  "text-embedding-3-small",
			EntailmentModel: "roberta-large-mnli",
			Timeout:         30,
			MaxTokens:       1000,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       defaultCacheDir(),
			MemoryTTL: 1 * time.Hour,
			DiskTTL:   15 * 24 * time.Hour, // dataset refresh window
		},
		Concurrency: ConcurrencyConfig{
			ExtractionWorkers: 4,
			RequestsPerSecond: 2,
			Burst:             5,
		},
		Output: OutputConfig{
			IncludeFooter: true,
		},
	}
}

func defaultCacheDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".truthscope-cache"
	}
	return filepath.Join(home, ".truthscope", "cache")
}
