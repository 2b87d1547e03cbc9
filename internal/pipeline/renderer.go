package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/truthscope/truthscope/internal/model"
)

// Renderer writes verification reports to files and the terminal
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the report as indented JSON to the given path
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// RenderMarkdown writes the report as a Markdown document
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	var b strings.Builder

	b.WriteString("# Claim Verification Report\n\n")
	b.WriteString(fmt.Sprintf("**Claim:** %s\n\n", report.Claim))
	b.WriteString(fmt.Sprintf("**Verdict:** %s\n\n", report.FinalVerdict))
	b.WriteString(fmt.Sprintf("**Truth Score:** %.2f / 100\n\n", report.TruthScore))
	b.WriteString(fmt.Sprintf("**Average Confidence:** %.2f%%\n\n", report.AverageConfidence))
	b.WriteString(fmt.Sprintf("**Weighted Stance Score:** %.3f\n\n", report.WeightedStanceScore))
	b.WriteString(fmt.Sprintf("Generated: %s\n\n", report.Timestamp.Format("2006-01-02 15:04:05 UTC")))

	if len(report.Sources) == 0 {
		b.WriteString("No credible, relevant sources were found for this claim.\n")
	} else {
		b.WriteString("## Sources\n\n")
		b.WriteString("| # | Stance | Confidence | Credibility | Trust | Similarity | URL |\n")
		b.WriteString("|---|--------|------------|-------------|-------|------------|-----|\n")
		for i, src := range report.Sources {
			b.WriteString(fmt.Sprintf("| %d | %s | %.1f | %.1f | %s | %.3f | %s |\n",
				i+1, src.Relation, src.Confidence, src.Credibility,
				src.TrustLabel, src.Similarity, src.URL))
		}

		b.WriteString("\n## Evidence Summaries\n\n")
		for i, src := range report.Sources {
			if src.Summary == "" {
				continue
			}
			b.WriteString(fmt.Sprintf("### %d. %s\n\n%s\n\n", i+1, src.URL, src.Summary))
		}
	}

	if r.includeFooter {
		b.WriteString("---\n\n")
		b.WriteString("*Scores combine source credibility, semantic relevance, and " +
			"model-based stance classification. They are advisory, not a " +
			"substitute for reading the sources.*\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	return nil
}

// RenderSummary prints a short human-readable verdict to stdout
func (r *Renderer) RenderSummary(report *model.Report) {
	fmt.Printf("\nClaim:   %s\n", report.Claim)
	fmt.Printf("Verdict: %s\n", report.FinalVerdict)
	fmt.Printf("Truth score: %.2f / 100  (confidence %.2f%%, stance %.3f)\n",
		report.TruthScore, report.AverageConfidence, report.WeightedStanceScore)

	if len(report.Sources) == 0 {
		fmt.Println("No credible, relevant sources were found.")
		return
	}

	fmt.Printf("Sources (%d):\n", len(report.Sources))
	for _, src := range report.Sources {
		fmt.Printf("  [%s] %.1f%% cred=%.1f %s\n",
			src.Relation, src.Confidence, src.Credibility, src.URL)
	}
}
