package model

// SearchResult is one raw hit from the search provider.
// Only URL is guaranteed to be non-empty.
type SearchResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// Article is the per-source record threaded through the verification
// pipeline. Each stage appends its fields and never rewrites what an
// earlier stage set: the credibility stage sets Credibility, TrustLabel
// and Weight; the semantic stage sets Similarity and FinalScore; the
// extraction/summarization stages set Evidence.
type Article struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet,omitempty"`
	Domain  string `json:"domain,omitempty"`

	// Credibility stage
	Credibility      float64 `json:"credibility"`
	Bias             string  `json:"bias,omitempty"`
	Factuality       string  `json:"factuality,omitempty"`
	CredibilityLabel string  `json:"credibility_label,omitempty"`
	Label            string  `json:"label,omitempty"`       // Trusted, Mostly Reliable, Questionable, Unreliable
	TrustLabel       string  `json:"trust_label,omitempty"` // Trustworthy, Can Be Considered, ...
	Weight           float64 `json:"weight,omitempty"`

	// Semantic stage
	Similarity float64 `json:"similarity,omitempty"`
	FinalScore float64 `json:"final_score,omitempty"` // ranking only, unused downstream

	// Extraction + summarization stages
	Evidence string `json:"evidence,omitempty"`
}
