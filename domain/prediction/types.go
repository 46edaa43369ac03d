package prediction

import (
	"strings"

	"courtlens/domain/archetype"
	"courtlens/domain/core"
	"courtlens/internal/risk"
)

// Result is the full per-query output of the engine: the gated archetype
// call plus the supporting scores and the audit trail. It has no
// persisted identity beyond the caller's use.
type Result struct {
	RunID    core.RunID             `json:"run_id"`
	PlayerID core.PlayerID          `json:"player_id"`
	Name     string                 `json:"name,omitempty"`
	Season   core.Season            `json:"season"`

	TargetUsage      float64                 `json:"target_usage"`
	Archetype        archetype.Archetype     `json:"archetype"`
	Probabilities    archetype.Probabilities `json:"probabilities"`
	PerformanceScore float64                 `json:"performance_score"`
	DependenceScore  float64                 `json:"dependence_score"`
	DependenceKnown  bool                    `json:"dependence_known"`
	RiskCategory     risk.Category           `json:"risk_category"`

	Path             string   `json:"path"`
	FlashApplied     bool     `json:"flash_applied"`
	ContextPenalties []string `json:"context_penalties,omitempty"`
	AppliedGates     []string `json:"applied_gates,omitempty"`
	ConfidenceFlags  []string `json:"confidence_flags,omitempty"`
}

// FlatRecord is the serialization shape downstream storage and reporting
// consume: one flat row per prediction.
type FlatRecord struct {
	RunID            string  `json:"run_id" db:"run_id"`
	PlayerID         string  `json:"player_id" db:"player_id"`
	Name             string  `json:"name" db:"name"`
	Season           string  `json:"season" db:"season"`
	TargetUsage      float64 `json:"target_usage" db:"target_usage"`
	Archetype        string  `json:"archetype" db:"archetype"`
	ProbKing         float64 `json:"prob_king" db:"prob_king"`
	ProbBulldozer    float64 `json:"prob_bulldozer" db:"prob_bulldozer"`
	ProbSniper       float64 `json:"prob_sniper" db:"prob_sniper"`
	ProbVictim       float64 `json:"prob_victim" db:"prob_victim"`
	PerformanceScore float64 `json:"performance_score" db:"performance_score"`
	DependenceScore  float64 `json:"dependence_score" db:"dependence_score"`
	DependenceKnown  bool    `json:"dependence_known" db:"dependence_known"`
	RiskCategory     string  `json:"risk_category" db:"risk_category"`
	Path             string  `json:"path" db:"path"`
	FlashApplied     bool    `json:"flash_applied" db:"flash_applied"`
	AppliedGates     string  `json:"applied_gates" db:"applied_gates"`
	ConfidenceFlags  string  `json:"confidence_flags" db:"confidence_flags"`
}

// Flatten converts a Result into its storable flat record
func (r Result) Flatten() FlatRecord {
	return FlatRecord{
		RunID:            r.RunID.String(),
		PlayerID:         r.PlayerID.String(),
		Name:             r.Name,
		Season:           r.Season.String(),
		TargetUsage:      r.TargetUsage,
		Archetype:        string(r.Archetype),
		ProbKing:         r.Probabilities[archetype.King],
		ProbBulldozer:    r.Probabilities[archetype.Bulldozer],
		ProbSniper:       r.Probabilities[archetype.Sniper],
		ProbVictim:       r.Probabilities[archetype.Victim],
		PerformanceScore: r.PerformanceScore,
		DependenceScore:  r.DependenceScore,
		DependenceKnown:  r.DependenceKnown,
		RiskCategory:     string(r.RiskCategory),
		Path:             r.Path,
		FlashApplied:     r.FlashApplied,
		AppliedGates:     strings.Join(r.AppliedGates, ","),
		ConfidenceFlags:  strings.Join(r.ConfidenceFlags, ","),
	}
}
