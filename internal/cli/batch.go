package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/truthscope/truthscope/internal/pipeline"
)

var (
	outputDir    string
	batchTimeout time.Duration
	claimTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Verify multiple claims from a file",
	Long: `Batch verifies multiple claims, one per line of the input file.
Blank lines and lines starting with # are skipped. Each claim produces
a JSON and a Markdown report in the output directory.

Example:
  truthscope batch claims.txt
  truthscope batch claims.txt --output-dir ./reports --claim-timeout 3m`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./truthscope-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 30*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().DurationVar(&claimTimeout, "claim-timeout", 2*time.Minute, "timeout for individual claims")

	batchCmd.Flags().StringVar(&userAgent, "ua", "TruthScope/0.1 (+https://github.com/truthscope/truthscope)", "HTTP User-Agent")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh searches)")
	batchCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	batchCmd.Flags().StringVar(&datasetPath, "dataset", "", "credibility dataset path (default: assets/mbfc_data.json)")
	batchCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, huggingface)")
	batchCmd.Flags().StringVar(&llmModel, "llm-model", "", "generation model name (provider default when empty)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	claims, err := readClaims(file)
	if err != nil {
		return fmt.Errorf("read claims: %w", err)
	}
	if len(claims) == 0 {
		return fmt.Errorf("no claims found in %s", file)
	}

	timeout = claimTimeout
	cfg := configFromFlags()
	cfg.HTTP.Timeout = 30 * time.Second
	if err := resolveAPIKeys(cfg); err != nil {
		return err
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	verifier, err := buildVerifier(cfg)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Verifying %d claims, reports in %s\n\n", len(claims), outputDir)

	successCount := 0
	failureCount := 0

	for i, claim := range claims {
		claimCtx, claimCancel := context.WithTimeout(ctx, claimTimeout)
		report, err := verifier.Verify(claimCtx, claim)
		claimCancel()

		if err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %q: %v\n", claim, err)
			continue
		}

		slug := claimSlug(claim, i)
		renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)
		jsonPath := filepath.Join(outputDir, slug+".json")
		mdPath := filepath.Join(outputDir, slug+".md")

		if err := renderer.RenderJSON(report, jsonPath); err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %q: write JSON: %v\n", claim, err)
			continue
		}
		if err := renderer.RenderMarkdown(report, mdPath); err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %q: write Markdown: %v\n", claim, err)
			continue
		}

		successCount++
		fmt.Fprintf(os.Stderr, "✓ %q: %s (truth score %.1f)\n", claim, report.FinalVerdict, report.TruthScore)
	}

	fmt.Fprintf(os.Stderr, "\nDone: %d verified, %d failed, reports in %s\n",
		successCount, failureCount, outputDir)
	return nil
}

// readClaims reads one claim per line, skipping blanks and comments
func readClaims(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var claims []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		claims = append(claims, line)
	}
	return claims, scanner.Err()
}

// claimSlug derives a filesystem-safe report name from the claim
func claimSlug(claim string, index int) string {
	var b strings.Builder
	for _, r := range strings.ToLower(claim) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteByte('-')
		}
	}

	slug := strings.Trim(b.String(), "-")
	if len(slug) > 60 {
		slug = slug[:60]
	}
	if slug == "" {
		slug = "claim"
	}
	return fmt.Sprintf("%03d-%s", index+1, slug)
}
