package gates

import (
	"courtlens/domain/archetype"
	"courtlens/domain/player"
)

// PassivityGate runs on the Physicality path only: a player who shrinks
// in leverage minutes loses star-tier mass to the role tier. The cutoff
// relaxes from -0.02 to -0.08 when strong rim pressure, positive clutch
// efficiency, and one of youth, low dependence, or solid efficiency all
// line up, since a young rim-pressure athlete can be forgiven passive
// clutch usage.
type PassivityGate struct{}

func (g *PassivityGate) Name() string { return "passivity" }

func (g *PassivityGate) Applies(ctx Context) bool {
	return ctx.Path == PathPhysicality
}

func (g *PassivityGate) Apply(probs archetype.Probabilities, ctx Context) (archetype.Probabilities, []string) {
	v := ctx.Vector
	if !v.ClutchUsageDelta.Known {
		return probs, nil
	}

	threshold := ctx.Params.PassivityThreshold
	relaxed := false
	if g.relaxationEarned(ctx) {
		threshold = ctx.Params.PassivityRelaxed
		relaxed = true
	}
	if v.ClutchUsageDelta.Value >= threshold {
		return probs, nil
	}

	out, moved := demoteStarToRole(probs, ctx.Params.PassivityDemoteFraction)
	if !moved {
		return probs, nil
	}
	flags := []string{"passivity_demotion"}
	if relaxed {
		flags = append(flags, "passivity_threshold_relaxed")
	}
	return out, flags
}

func (g *PassivityGate) relaxationEarned(ctx Context) bool {
	v := ctx.Vector

	rimCut, err := ctx.Ref.CreatorPercentile(player.FeatRimPressureRate, ctx.Params.PassivityRimPercentile)
	if err != nil || !v.RimPressureRate.Known || v.RimPressureRate.Value <= rimCut {
		return false
	}
	if !v.ClutchEfficiency.Known || v.ClutchEfficiency.Value <= 0 {
		return false
	}

	young := v.Age.Known && v.Age.Value > 0 && v.Age.Value < ctx.Params.YouthAgeCutoff
	lowDep := ctx.DependenceKnown && ctx.Dependence < ctx.Params.LowDependenceCutoff
	solidEff := v.EfficiencyDelta.Known && v.EfficiencyDelta.Value > ctx.Params.SolidEfficiencyCutoff
	return young || lowDep || solidEff
}
