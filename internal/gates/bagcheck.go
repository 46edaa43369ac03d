package gates

import (
	"courtlens/domain/archetype"
	"courtlens/domain/player"
)

// BagCheckGate caps King mass down to the Bulldozer tier when the player
// has no demonstrated creation "bag": creation volume and isolation
// efficiency both under the qualified floors, or an empty-calories risk
// past the cutoff. Skipped on the Physicality path, where raw rim
// pressure is the bag.
type BagCheckGate struct{}

func (g *BagCheckGate) Name() string { return "bag_check" }

func (g *BagCheckGate) Applies(ctx Context) bool {
	return ctx.Path != PathPhysicality
}

func (g *BagCheckGate) Apply(probs archetype.Probabilities, ctx Context) (archetype.Probabilities, []string) {
	if !g.triggered(ctx) {
		return probs, nil
	}
	excess := probs[archetype.King] - ctx.Params.KingCap
	out, moved := shiftKingToBulldozer(probs, excess)
	if !moved {
		return probs, nil
	}
	return out, []string{"bag_check_cap"}
}

func (g *BagCheckGate) triggered(ctx Context) bool {
	v := ctx.Vector

	volFloor, errV := ctx.Ref.QualifiedPercentile(player.FeatCreationVolumeRatio, ctx.Params.BagCheckFloorPercentile)
	isoFloor, errI := ctx.Ref.QualifiedPercentile(player.FeatIsolationEfficiency, ctx.Params.BagCheckFloorPercentile)
	if errV == nil && errI == nil &&
		v.CreationVolumeRatio.Known && v.IsolationEfficiency.Known &&
		v.CreationVolumeRatio.Value < volFloor && v.IsolationEfficiency.Value < isoFloor {
		return true
	}

	return g.emptyCaloriesRisk(ctx) > ctx.Params.EmptyCaloriesRisk
}

// emptyCaloriesRisk prefers the measured inefficient-volume score; when
// play-type data never arrived, a proxy heuristic substitutes: high
// volume paired with below-par efficiency reads as full risk.
func (g *BagCheckGate) emptyCaloriesRisk(ctx Context) float64 {
	v := ctx.Vector
	if v.InefficientVolume.Known {
		return v.InefficientVolume.Value
	}
	if !v.ShotVolume.Known || !v.EfficiencyDelta.Known {
		return 0
	}
	highVolume, err := ctx.Ref.QualifiedPercentile(player.FeatShotVolume, 60)
	if err != nil {
		return 0
	}
	if v.ShotVolume.Value >= highVolume && v.EfficiencyDelta.Value < ctx.Params.ProxyEfficiencyCutoff {
		return 1.0
	}
	return 0
}
