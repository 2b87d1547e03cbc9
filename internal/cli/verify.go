package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/truthscope/truthscope/internal/model"
	"github.com/truthscope/truthscope/internal/pipeline"
)

var (
	outJSON     string
	outMD       string
	timeout     time.Duration
	userAgent   string
	maxBytes    int64
	noCache     bool
	noFooter    bool
	insecureTLS bool
	httpProxy   string
	httpsProxy  string
	datasetPath string
	minScore    float64
	llmProvider string
	llmModel    string
)

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify <claim>",
	Short: "Verify a single claim against credible news sources",
	Long: `Verify runs the full verification pipeline for one claim:
- Search the web for related news coverage
- Score every source's credibility from its factual-reporting record
- Rank articles by semantic relevance to the claim
- Classify each article's stance (supports / refutes / neutral)
- Aggregate a credibility-weighted truth score and verdict

Example:
  truthscope verify "The Eiffel Tower is in Berlin"
  truthscope verify "Vaccines cause autism" --json report.json --md report.md
  truthscope verify "..." --llm-provider huggingface`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	// Output flags
	verifyCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (optional)")
	verifyCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")

	// HTTP flags
	verifyCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall verification timeout")
	verifyCmd.Flags().StringVar(&userAgent, "ua", "TruthScope/0.1 (+https://github.com/truthscope/truthscope)", "HTTP User-Agent")
	verifyCmd.Flags().Int64Var(&maxBytes, "max-bytes", 2_000_000, "max response bytes to read per article")
	verifyCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh search)")
	verifyCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	verifyCmd.Flags().BoolVar(&insecureTLS, "insecure", false, "skip TLS certificate verification (use for self-signed certs)")
	verifyCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	verifyCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")

	// Credibility flags
	verifyCmd.Flags().StringVar(&datasetPath, "dataset", "", "credibility dataset path (default: assets/mbfc_data.json)")
	verifyCmd.Flags().Float64Var(&minScore, "min-score", 0, "minimum credibility score for a source to count (default: 40)")

	// LLM flags
	verifyCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, huggingface)")
	verifyCmd.Flags().StringVar(&llmModel, "llm-model", "", "generation model name (provider default when empty)")
}

func runVerify(cmd *cobra.Command, args []string) error {
	claim := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg := configFromFlags()
	if err := resolveAPIKeys(cfg); err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Verifying: %s\n", claim)
		fmt.Fprintf(os.Stderr, "Timeout: %v\n", timeout)
		fmt.Fprintf(os.Stderr, "Provider: %s\n", cfg.LLM.Provider)
		fmt.Fprintf(os.Stderr, "Cache: %v\n", cfg.Cache.Enabled)
		fmt.Fprintln(os.Stderr)
	}

	verifier, err := buildVerifier(cfg)
	if err != nil {
		return err
	}

	report, err := verifier.Verify(ctx, claim)
	if err != nil {
		return fmt.Errorf("verification failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Scored %d articles (avg credibility %.1f)\n",
			len(report.AllArticles), report.AverageCredibility)
		fmt.Fprintf(os.Stderr, "✓ Classified %d sources\n", len(report.Sources))
		fmt.Fprintln(os.Stderr)
	}

	return renderReport(report, cfg)
}

// configFromFlags builds configuration from defaults and flags
func configFromFlags() *model.Config {
	cfg := model.DefaultConfig()
	cfg.HTTP.Timeout = timeout
	cfg.HTTP.UserAgent = userAgent
	cfg.HTTP.MaxBodyBytes = maxBytes
	cfg.HTTP.InsecureTLS = insecureTLS
	cfg.HTTP.HTTPProxy = httpProxy
	cfg.HTTP.HTTPSProxy = httpsProxy
	cfg.Cache.Enabled = !noCache
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter

	if datasetPath != "" {
		cfg.Credibility.DatasetPath = datasetPath
	}
	if minScore > 0 {
		cfg.Credibility.MinScore = minScore
	}
	if llmProvider != "" {
		cfg.LLM.Provider = llmProvider
	}
	if llmModel != "" {
		cfg.LLM.Model = llmModel
	}

	return cfg
}

// renderReport writes the report to the configured outputs and prints
// the terminal summary
func renderReport(report *model.Report, cfg *model.Config) error {
	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)

	if outJSON != "" {
		if err := renderer.RenderJSON(report, outJSON); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", outJSON)
		}
	}

	if outMD != "" {
		if err := renderer.RenderMarkdown(report, outMD); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote Markdown: %s\n", outMD)
		}
	}

	renderer.RenderSummary(report)
	return nil
}
