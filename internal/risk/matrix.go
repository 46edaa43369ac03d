// Package risk combines the gated performance score with the dependence
// score against calibrated cut points to emit a 2D risk category.
package risk

import (
	"courtlens/domain/archetype"
)

// Category is the personnel-evaluation label the engine emits
type Category string

const (
	FranchiseCornerstone Category = "Franchise Cornerstone"
	LuxuryComponent      Category = "Luxury Component"
	Depth                Category = "Depth"
	Avoid                Category = "Avoid"
)

// Cuts are the externally calibrated cut points. They arrive from
// configuration, never from embedded constants, so the matrix can be
// recalibrated without a code change.
type Cuts struct {
	Performance    float64
	DependenceLow  float64
	DependenceHigh float64
	// StrictMiddle treats the middle dependence band as high dependence
	// instead of defaulting it toward Depth
	StrictMiddle bool
}

// DefaultCuts returns the calibrated defaults
func DefaultCuts() Cuts {
	return Cuts{
		Performance:    0.76,
		DependenceLow:  0.40,
		DependenceHigh: 0.55,
	}
}

// tierWeights define the expected-tier-value performance score: mass on
// higher tiers is worth more, bounded in [0,1]
var tierWeights = map[archetype.Archetype]float64{
	archetype.King:      1.00,
	archetype.Bulldozer: 0.75,
	archetype.Sniper:    0.45,
	archetype.Victim:    0.10,
}

// PerformanceScore collapses gated archetype probabilities into a single
// [0,1] performance scalar
func PerformanceScore(probs archetype.Probabilities) float64 {
	score := 0.0
	for a, w := range tierWeights {
		score += probs[a] * w
	}
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

// Result is the final 2D classification
type Result struct {
	Archetype        archetype.Archetype
	PerformanceScore float64
	DependenceScore  float64
	DependenceKnown  bool
	Category         Category
	Flags            []string
}

// Classify maps (performance, dependence) onto a category. When the
// dependence score is unavailable the matrix degrades to a two-bucket
// performance-only label, flagged explicitly so consumers never mistake
// it for the full classification.
func Classify(top archetype.Archetype, performance float64, dependence float64, depKnown bool, cuts Cuts) Result {
	res := Result{
		Archetype:        top,
		PerformanceScore: performance,
		DependenceScore:  dependence,
		DependenceKnown:  depKnown,
	}

	if !depKnown {
		res.Flags = append(res.Flags, "dependence_unavailable")
		if performance >= cuts.Performance {
			res.Category = FranchiseCornerstone
		} else {
			res.Category = Depth
		}
		return res
	}

	highDep := dependence >= cuts.DependenceHigh
	lowDep := dependence < cuts.DependenceLow
	if !highDep && !lowDep {
		// Middle band: Depth-leaning unless a stricter policy is
		// configured
		res.Flags = append(res.Flags, "dependence_middle_band")
		if cuts.StrictMiddle {
			highDep = true
		}
	}

	switch {
	case performance >= cuts.Performance && !highDep:
		res.Category = FranchiseCornerstone
	case performance >= cuts.Performance:
		res.Category = LuxuryComponent
	case highDep:
		res.Category = Avoid
	case lowDep:
		res.Category = Depth
	default:
		res.Category = Depth
	}
	return res
}
