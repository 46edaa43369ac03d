package gates

import (
	"courtlens/domain/archetype"
	"courtlens/domain/player"
)

// FragilityGate is the legacy Default-path behavior: star-tier mass moves
// to the role tier when rim-pressure appetite falls under the unqualified
// 20th percentile. Kept as the coarse fallback for players neither
// validation path claimed.
type FragilityGate struct{}

func (g *FragilityGate) Name() string { return "default_fragility" }

func (g *FragilityGate) Applies(ctx Context) bool {
	return ctx.Path == PathDefault
}

func (g *FragilityGate) Apply(probs archetype.Probabilities, ctx Context) (archetype.Probabilities, []string) {
	v := ctx.Vector
	if !v.RimPressureRate.Known {
		return probs, nil
	}
	cut, err := ctx.Ref.Percentile(player.FeatRimPressureRate, ctx.Params.FragilityRimPercentile)
	if err != nil || v.RimPressureRate.Value >= cut {
		return probs, nil
	}
	out, moved := demoteStarToRole(probs, ctx.Params.FragilityDemoteFraction)
	if !moved {
		return probs, nil
	}
	return out, []string{"fragility_demotion"}
}
