package cli

import (
	"fmt"
	"os"

	"github.com/truthscope/truthscope/internal/cache"
	"github.com/truthscope/truthscope/internal/credibility"
	"github.com/truthscope/truthscope/internal/extract"
	"github.com/truthscope/truthscope/internal/llm"
	"github.com/truthscope/truthscope/internal/model"
	"github.com/truthscope/truthscope/internal/pipeline"
	"github.com/truthscope/truthscope/internal/search"
	"github.com/truthscope/truthscope/internal/semantic"
	"github.com/truthscope/truthscope/internal/stance"
	"github.com/truthscope/truthscope/internal/util"
	"github.com/truthscope/truthscope/internal/worker"
)

// buildVerifier wires the pipeline stages together from configuration
func buildVerifier(cfg *model.Config) (*pipeline.Verifier, error) {
	provider, err := llm.NewProvider(llm.Config{
		Provider:        cfg.LLM.Provider,
		Model:           cfg.LLM.Model,
		EmbeddingModel:  cfg.LLM.EmbeddingModel,
		EntailmentModel: cfg.LLM.EntailmentModel,
		APIKey:          cfg.LLM.APIKey,
		BaseURL:         cfg.LLM.BaseURL,
		Timeout:         cfg.LLM.Timeout,
		MaxTokens:       cfg.LLM.MaxTokens,
		HTTPProxy:       cfg.HTTP.HTTPProxy,
		HTTPSProxy:      cfg.HTTP.HTTPSProxy,
		NoProxy:         cfg.HTTP.NoProxy,
	})
	if err != nil {
		return nil, fmt.Errorf("init LLM provider: %w", err)
	}

	// Search client, with the layered cache when enabled
	searchOpts := []search.Option{
		search.WithProxy(cfg.HTTP.HTTPProxy, cfg.HTTP.HTTPSProxy, cfg.HTTP.NoProxy),
	}
	if cfg.Cache.Enabled {
		layered := cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
		searchOpts = append(searchOpts, search.WithCache(layered, cfg.Cache.DiskTTL))
	}
	searcher := search.NewClient(cfg.Search, cfg.HTTP.Timeout, searchOpts...)

	// The credibility dataset is optional at startup: a missing file
	// degrades to no-evidence verdicts instead of refusing to run.
	var dataset *credibility.Dataset
	if cfg.Credibility.DatasetPath != "" {
		dataset, err = credibility.LoadDataset(cfg.Credibility.DatasetPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: credibility dataset unavailable: %v\n", err)
			dataset = nil
		}
	}
	scorer := credibility.NewScorer(dataset, cfg.Credibility.MinScore)

	ranker := semantic.NewRanker(provider, cfg.Semantic.Threshold, cfg.Semantic.TopK)

	fetcher := extract.NewFetcher(extract.FetcherOptions{
		Timeout:     cfg.HTTP.Timeout,
		UserAgent:   cfg.HTTP.UserAgent,
		MaxBytes:    cfg.HTTP.MaxBodyBytes,
		InsecureTLS: cfg.HTTP.InsecureTLS,
		HTTPProxy:   cfg.HTTP.HTTPProxy,
		HTTPSProxy:  cfg.HTTP.HTTPSProxy,
		NoProxy:     cfg.HTTP.NoProxy,
	})
	robots := util.NewRobotsChecker(cfg.HTTP.UserAgent, cfg.HTTP.Timeout)
	limiter := worker.NewLimiter(cfg.Concurrency.RequestsPerSecond, cfg.Concurrency.Burst)
	extractor := extract.NewExtractor(fetcher, robots, limiter,
		cfg.Concurrency.ExtractionWorkers,
		extract.NewDOMStrategy(),
		extract.NewLLMStrategy(provider, cfg.LLM.MaxTokens),
	)

	return pipeline.NewVerifier(pipeline.VerifierOptions{
		Searcher:   searcher,
		Scorer:     scorer,
		Ranker:     ranker,
		Extractor:  extractor,
		Summarizer: pipeline.NewSummarizer(provider, cfg.LLM.MaxTokens),
		Analyzer:   stance.NewAnalyzer(provider),
		Workers:    cfg.Stance.Workers,
	})
}

// resolveAPIKeys pulls provider credentials from the environment
func resolveAPIKeys(cfg *model.Config) error {
	if cfg.Search.APIKey == "" {
		cfg.Search.APIKey = os.Getenv("SERPAPI_API_KEY")
	}
	if cfg.Search.APIKey == "" {
		return fmt.Errorf("SERPAPI_API_KEY environment variable not set")
	}

	if cfg.LLM.APIKey != "" {
		return nil
	}
	switch cfg.LLM.Provider {
	case "openai":
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "huggingface":
		cfg.LLM.APIKey = os.Getenv("HF_API_TOKEN")
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("HF_API_TOKEN environment variable not set")
		}
	}
	return nil
}
