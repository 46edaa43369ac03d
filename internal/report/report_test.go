package report

import (
	"strings"
	"testing"

	"courtlens/domain/archetype"
	"courtlens/domain/core"
	"courtlens/domain/prediction"
	"courtlens/internal/risk"
)

func sampleResult() prediction.Result {
	return prediction.Result{
		RunID:    core.RunID("run-1"),
		PlayerID: core.PlayerID("p-1"),
		Name:     "Sample Player",
		Season:   core.Season("2023-24"),

		TargetUsage: 0.28,
		Archetype:   archetype.Bulldozer,
		Probabilities: archetype.Probabilities{
			archetype.King:      0.15,
			archetype.Bulldozer: 0.45,
			archetype.Sniper:    0.30,
			archetype.Victim:    0.10,
		},
		PerformanceScore: 0.63,
		DependenceScore:  0.35,
		DependenceKnown:  true,
		RiskCategory:     risk.LuxuryComponent,

		Path:             "Physicality",
		FlashApplied:     true,
		ContextPenalties: []string{"open_shot_reliance"},
		AppliedGates:     []string{"passivity"},
		ConfidenceFlags:  []string{"dependence_middle_band"},
	}
}

func TestMarkdownContainsCoreSections(t *testing.T) {
	md := Markdown(sampleResult())

	for _, want := range []string{
		"# Projection: Sample Player",
		"At **28.0%** usage",
		"**Bulldozer**",
		"| King | 15.0% |",
		"- Performance: 0.630",
		"- System dependence: 0.350",
		"Flash potential override",
		"Gate applied: passivity",
		"dependence_middle_band",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestMarkdownUnavailableDependence(t *testing.T) {
	res := sampleResult()
	res.DependenceKnown = false
	md := Markdown(res)
	if !strings.Contains(md, "System dependence: unavailable") {
		t.Error("unavailable dependence must be stated, not zero-filled")
	}
}

func TestMarkdownFallsBackToPlayerID(t *testing.T) {
	res := sampleResult()
	res.Name = ""
	if !strings.Contains(Markdown(res), "p-1") {
		t.Error("nameless players are titled by ID")
	}
}

func TestBatchMarkdownOneRowPerResult(t *testing.T) {
	results := []prediction.Result{sampleResult(), sampleResult()}
	md := BatchMarkdown(results, 0.24)

	if !strings.Contains(md, "# Batch Projection at 24.0% Usage") {
		t.Error("missing batch title")
	}
	if got := strings.Count(md, "| Sample Player |"); got != 2 {
		t.Errorf("want 2 table rows, got %d", got)
	}
}

func TestHTMLRendersHeadings(t *testing.T) {
	out := string(HTML(Markdown(sampleResult())))
	if !strings.Contains(out, "<h1") || !strings.Contains(out, "<table>") {
		t.Errorf("HTML output lacks structure:\n%s", out)
	}
}
