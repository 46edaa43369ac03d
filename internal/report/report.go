// Package report renders scouting reports from prediction results. The
// canonical format is markdown; HTML is derived from it for the web UI.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"courtlens/domain/archetype"
	"courtlens/domain/prediction"
)

// Markdown renders a single-player scouting report
func Markdown(res prediction.Result) string {
	var b strings.Builder

	name := res.Name
	if name == "" {
		name = res.PlayerID.String()
	}
	fmt.Fprintf(&b, "# Projection: %s\n\n", name)
	if res.Season != "" {
		fmt.Fprintf(&b, "Season: %s\n\n", res.Season)
	}
	fmt.Fprintf(&b, "At **%.1f%%** usage, projects as **%s** (%s).\n\n",
		res.TargetUsage*100, res.Archetype, res.RiskCategory)

	b.WriteString("## Outcome Probabilities\n\n")
	b.WriteString("| Archetype | Probability |\n|---|---|\n")
	for _, a := range archetype.All() {
		fmt.Fprintf(&b, "| %s | %.1f%% |\n", a, res.Probabilities[a]*100)
	}
	b.WriteString("\n")

	b.WriteString("## Scores\n\n")
	fmt.Fprintf(&b, "- Performance: %.3f\n", res.PerformanceScore)
	if res.DependenceKnown {
		fmt.Fprintf(&b, "- System dependence: %.3f\n", res.DependenceScore)
	} else {
		b.WriteString("- System dependence: unavailable\n")
	}
	fmt.Fprintf(&b, "- Evaluation path: %s\n\n", res.Path)

	if res.FlashApplied || len(res.ContextPenalties) > 0 || len(res.AppliedGates) > 0 {
		b.WriteString("## Adjustments\n\n")
		if res.FlashApplied {
			b.WriteString("- Flash potential override applied to creation volume\n")
		}
		for _, p := range res.ContextPenalties {
			fmt.Fprintf(&b, "- Context penalty: %s\n", p)
		}
		for _, g := range res.AppliedGates {
			fmt.Fprintf(&b, "- Gate applied: %s\n", g)
		}
		b.WriteString("\n")
	}

	if len(res.ConfidenceFlags) > 0 {
		flags := append([]string(nil), res.ConfidenceFlags...)
		sort.Strings(flags)
		b.WriteString("## Confidence Flags\n\n")
		for _, f := range flags {
			fmt.Fprintf(&b, "- %s\n", f)
		}
		b.WriteString("\n")
	}

	return b.String()
}

// BatchMarkdown renders a roster-level summary table
func BatchMarkdown(results []prediction.Result, targetUsage float64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Batch Projection at %.1f%% Usage\n\n", targetUsage*100)
	b.WriteString("| Player | Archetype | Performance | Dependence | Risk |\n|---|---|---|---|---|\n")
	for _, res := range results {
		name := res.Name
		if name == "" {
			name = res.PlayerID.String()
		}
		dep := "n/a"
		if res.DependenceKnown {
			dep = fmt.Sprintf("%.3f", res.DependenceScore)
		}
		fmt.Fprintf(&b, "| %s | %s | %.3f | %s | %s |\n",
			name, res.Archetype, res.PerformanceScore, dep, res.RiskCategory)
	}
	b.WriteString("\n")
	return b.String()
}

// HTML converts a markdown report into a standalone HTML fragment
func HTML(md string) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	doc := p.Parse([]byte(md))
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.Render(doc, renderer)
}
