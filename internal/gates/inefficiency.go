package gates

import (
	"courtlens/domain/archetype"
	"courtlens/domain/player"
)

// InefficiencyFloorGate demotes King mass toward Bulldozer when isolation
// efficiency sits under a path-specific percentile: the 15th on the
// Physicality path (uncut gems get slack) and the 35th on the Skill path
// (polished profiles do not).
type InefficiencyFloorGate struct{}

func (g *InefficiencyFloorGate) Name() string { return "inefficiency_floor" }

func (g *InefficiencyFloorGate) Applies(ctx Context) bool {
	return ctx.Path == PathPhysicality || ctx.Path == PathSkill
}

func (g *InefficiencyFloorGate) Apply(probs archetype.Probabilities, ctx Context) (archetype.Probabilities, []string) {
	v := ctx.Vector
	if !v.IsolationEfficiency.Known {
		return probs, nil
	}

	pct := ctx.Params.IneffFloorSkillPercentile
	if ctx.Path == PathPhysicality {
		pct = ctx.Params.IneffFloorPhysPercentile
	}
	floor, err := ctx.Ref.QualifiedPercentile(player.FeatIsolationEfficiency, pct)
	if err != nil || v.IsolationEfficiency.Value >= floor {
		return probs, nil
	}

	out, moved := shiftKingToBulldozer(probs, probs[archetype.King]*ctx.Params.IneffDemoteFraction)
	if !moved {
		return probs, nil
	}
	return out, []string{"inefficiency_floor_" + string(ctx.Path)}
}
