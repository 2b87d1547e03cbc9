package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/truthscope/truthscope/internal/cache"
	"github.com/truthscope/truthscope/internal/model"
	"github.com/truthscope/truthscope/internal/util"
)

// Client retrieves related articles for a claim from a SerpAPI-style
// search endpoint. The full claim text is used as the query: keyword
// trimming loses the negation and attribution context that the stance
// stage depends on.
type Client struct {
	httpClient *http.Client
	baseURL    string
	engine     string
	apiKey     string
	maxResults int
	cache      cache.Cache
	cacheTTL   time.Duration
	logger     *slog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithCache enables response caching with the given TTL
func WithCache(c cache.Cache, ttl time.Duration) Option {
	return func(client *Client) {
		client.cache = c
		client.cacheTTL = ttl
	}
}

// WithProxy routes search requests through a proxy
func WithProxy(httpProxy, httpsProxy, noProxy string) Option {
	return func(client *Client) {
		client.httpClient.Transport = &http.Transport{
			Proxy: util.NewProxyFunc(httpProxy, httpsProxy, noProxy),
		}
	}
}

// NewClient creates a search client
func NewClient(cfg model.SearchConfig, timeout time.Duration, opts ...Option) *Client {
	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 10
	}

	c := &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    cfg.BaseURL,
		engine:     cfg.Engine,
		apiKey:     cfg.APIKey,
		maxResults: maxResults,
		logger:     slog.Default().With("component", "search-client"),
	}

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// serpResponse is the subset of the provider response we consume
type serpResponse struct {
	OrganicResults []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
	} `json:"organic_results"`
	Error string `json:"error"`
}

// Search fetches related articles for the claim. No results is a valid
// outcome and returns an empty slice; transport and decode failures
// return an error for the caller to degrade on.
func (c *Client) Search(ctx context.Context, claim string) ([]model.SearchResult, error) {
	if cached, ok := c.cachedResults(claim); ok {
		return cached, nil
	}

	endpoint, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}

	query := endpoint.Query()
	query.Set("engine", c.engine)
	query.Set("q", claim)
	query.Set("num", strconv.Itoa(c.maxResults))
	query.Set("api_key", c.apiKey)
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var parsed serpResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if parsed.Error != "" {
		return nil, fmt.Errorf("search provider: %s", parsed.Error)
	}

	results := make([]model.SearchResult, 0, len(parsed.OrganicResults))
	for _, r := range parsed.OrganicResults {
		results = append(results, model.SearchResult{
			Title:   r.Title,
			URL:     r.Link,
			Snippet: r.Snippet,
		})
	}

	if len(results) == 0 {
		c.logger.Warn("no search results for claim", "claim", claim)
	}

	c.storeResults(claim, results)
	return results, nil
}

func (c *Client) cachedResults(claim string) ([]model.SearchResult, bool) {
	if c.cache == nil {
		return nil, false
	}
	raw, found := c.cache.Get(cache.Key("search:" + claim))
	if !found {
		return nil, false
	}
	var results []model.SearchResult
	if err := json.Unmarshal(raw, &results); err != nil {
		return nil, false
	}
	return results, true
}

func (c *Client) storeResults(claim string, results []model.SearchResult) {
	if c.cache == nil || len(results) == 0 {
		return
	}
	raw, err := json.Marshal(results)
	if err != nil {
		return
	}
	if err := c.cache.Set(cache.Key("search:"+claim), raw, c.cacheTTL); err != nil {
		c.logger.Warn("failed to cache search results", "err", err)
	}
}
