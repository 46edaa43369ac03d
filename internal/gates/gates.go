// Package gates implements the ordered rule-based override pipeline that
// runs on top of the trained classifier's output. Each gate is a pure
// function over a probability map: it may redistribute existing mass
// between the star and role tiers but never invents mass a tier group
// was not already assigned.
package gates

import (
	"courtlens/domain/archetype"
	"courtlens/domain/player"
	"courtlens/domain/reference"
)

// Params centralizes every calibrated gate threshold. The passivity
// cutoffs (-0.02/-0.08) and percentile choices were tuned empirically
// against a fixed case set; they are carried as configuration, not
// constants, so recalibration needs no code change.
type Params struct {
	// Bag-check gate
	KingCap                 float64
	BagCheckFloorPercentile float64
	EmptyCaloriesRisk       float64
	ProxyEfficiencyCutoff   float64

	// Path-specific inefficiency floor
	IneffFloorPhysPercentile  float64
	IneffFloorSkillPercentile float64
	IneffDemoteFraction       float64

	// Passivity gate (Physicality path)
	PassivityThreshold      float64
	PassivityRelaxed        float64
	PassivityDemoteFraction float64
	PassivityRimPercentile  float64
	YouthAgeCutoff          float64
	LowDependenceCutoff     float64
	SolidEfficiencyCutoff   float64

	// Default fragility gate
	FragilityRimPercentile  float64
	FragilityDemoteFraction float64
}

// DefaultParams returns the calibrated gate thresholds
func DefaultParams() Params {
	return Params{
		KingCap:                   0.25,
		BagCheckFloorPercentile:   25,
		EmptyCaloriesRisk:         0.5,
		ProxyEfficiencyCutoff:     -0.02,
		IneffFloorPhysPercentile:  15,
		IneffFloorSkillPercentile: 35,
		IneffDemoteFraction:       0.6,
		PassivityThreshold:        -0.02,
		PassivityRelaxed:          -0.08,
		PassivityDemoteFraction:   0.5,
		PassivityRimPercentile:    60,
		YouthAgeCutoff:            23,
		LowDependenceCutoff:       0.40,
		SolidEfficiencyCutoff:     0.0,
		FragilityRimPercentile:    20,
		FragilityDemoteFraction:   0.4,
	}
}

// Context carries everything a gate may consult. Gates read it, never
// write it.
type Context struct {
	Vector          player.FeatureVector // projected, absent metrics still absent
	Path            Path
	Ref             *reference.Distribution
	Dependence      float64
	DependenceKnown bool
	Params          Params
}

// Gate is one deterministic override rule
type Gate interface {
	Name() string
	// Applies reports whether the gate runs on this path at all
	Applies(ctx Context) bool
	// Apply returns the updated probability map plus zero or more flags.
	// Implementations must treat the input map as read-only.
	Apply(probs archetype.Probabilities, ctx Context) (archetype.Probabilities, []string)
}

// GateByName acts as the factory for individual gates
func GateByName(name string) Gate {
	switch name {
	case "bag_check":
		return &BagCheckGate{}
	case "inefficiency_floor":
		return &InefficiencyFloorGate{}
	case "passivity":
		return &PassivityGate{}
	case "default_fragility":
		return &FragilityGate{}
	default:
		return nil
	}
}

// PipelineOrder is the fixed gate execution order
func PipelineOrder() []string {
	return []string{"bag_check", "inefficiency_floor", "passivity", "default_fragility"}
}

// Pipeline executes the gates in order
type Pipeline struct {
	gates []Gate
}

// NewPipeline builds the standard ordered pipeline
func NewPipeline() *Pipeline {
	p := &Pipeline{}
	for _, name := range PipelineOrder() {
		p.gates = append(p.gates, GateByName(name))
	}
	return p
}

// Result is the pipeline output
type Result struct {
	Probabilities archetype.Probabilities
	AppliedGates  []string
	Flags         []string
}

// Run applies every gate in order, renormalizing after each stage when
// drift exceeds the tolerance. Output is deterministic: identical inputs
// yield identical applied-gate lists and probabilities.
func (p *Pipeline) Run(probs archetype.Probabilities, ctx Context) Result {
	res := Result{Probabilities: probs.Clone()}
	for _, g := range p.gates {
		if !g.Applies(ctx) {
			continue
		}
		next, flags := g.Apply(res.Probabilities, ctx)
		if len(flags) > 0 {
			res.AppliedGates = append(res.AppliedGates, g.Name())
			res.Flags = append(res.Flags, flags...)
		}
		res.Probabilities = next.Normalize()
	}
	return res
}

// demoteStarToRole moves fraction of the star-tier mass into the role
// tier, split proportionally to the role tier's current mass. When the
// classifier assigned the role tier zero mass the gate is a no-op: gates
// only redistribute mass between groups that already hold some.
func demoteStarToRole(probs archetype.Probabilities, fraction float64) (archetype.Probabilities, bool) {
	roleMass := probs.TierMass(archetype.RoleTier())
	starMass := probs.TierMass(archetype.StarTier())
	if roleMass <= 0 || starMass <= 0 || fraction <= 0 {
		return probs, false
	}
	moved := starMass * fraction
	out := probs.Clone()
	for _, a := range archetype.StarTier() {
		out[a] -= probs[a] * fraction
	}
	for _, a := range archetype.RoleTier() {
		out[a] += moved * (probs[a] / roleMass)
	}
	return out, true
}

// shiftKingToBulldozer moves mass from King to Bulldozer, the in-tier
// demotion used by the bag-check and inefficiency gates
func shiftKingToBulldozer(probs archetype.Probabilities, amount float64) (archetype.Probabilities, bool) {
	if amount <= 0 || probs[archetype.King] <= 0 || probs[archetype.Bulldozer] <= 0 {
		return probs, false
	}
	if amount > probs[archetype.King] {
		amount = probs[archetype.King]
	}
	out := probs.Clone()
	out[archetype.King] -= amount
	out[archetype.Bulldozer] += amount
	return out, true
}
