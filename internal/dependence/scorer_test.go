package dependence

import (
	"fmt"
	"math"
	"testing"

	"courtlens/domain/core"
	"courtlens/domain/player"
	"courtlens/domain/reference"
)

func buildRef(t *testing.T) *reference.Distribution {
	t.Helper()
	var ds player.Dataset
	for i := 0; i < 120; i++ {
		ds = append(ds, player.FeatureVector{
			PlayerID:            core.PlayerID(fmt.Sprintf("p%03d", i)),
			UsageRate:           player.Some(0.12 + 0.002*float64(i)),
			ShotVolume:          player.Some(300 + 10*float64(i)),
			FreeThrowRate:       player.Some(0.10 + 0.002*float64(i)),
			RimPressureRate:     player.Some(0.10 + 0.002*float64(i)),
			CreationTax:         player.Some(-0.06 + 0.001*float64(i)),
			ShotQualityDelta:    player.Some(-0.03 + 0.0008*float64(i)),
			IsolationEfficiency: player.Some(0.70 + 0.004*float64(i)),
			CreationVolumeRatio: player.Some(0.05 + 0.003*float64(i)),
		})
	}
	dist, err := reference.Build(ds, reference.DefaultConfig())
	if err != nil {
		t.Fatalf("reference build: %v", err)
	}
	return dist
}

func TestScore_FullyMissingRecordIsMaximallyDependent(t *testing.T) {
	s := NewScorer(buildRef(t), DefaultParams())
	out := s.Score(player.FeatureVector{})
	if out.Final != 1.0 {
		t.Errorf("empty record should yield dependence 1.0, got %f", out.Final)
	}
}

func TestScore_Bounds(t *testing.T) {
	s := NewScorer(buildRef(t), DefaultParams())
	vectors := []player.FeatureVector{
		{},
		{
			FreeThrowRate:       player.Some(0.50),
			RimPressureRate:     player.Some(0.60),
			CreationTax:         player.Some(0.20),
			ShotQualityDelta:    player.Some(0.10),
			IsolationEfficiency: player.Some(1.20),
			CreationVolumeRatio: player.Some(0.50),
			LatentPotential:     player.Some(0.05),
		},
		{
			ShotQualityDelta: player.Some(-0.20),
			CreationTax:      player.Some(-0.30),
		},
	}
	for i, v := range vectors {
		out := s.Score(v)
		if out.Final < 0 || out.Final > 1 {
			t.Errorf("vector %d: dependence %.4f outside [0,1]", i, out.Final)
		}
		if out.Physicality < 0 || out.Physicality > 1 || out.Skill < 0 || out.Skill > 1 {
			t.Errorf("vector %d: door scores outside [0,1]", i)
		}
	}
}

// TestScore_EmptyCaloriesFloor: negative shot-quality generation caps the
// skill door at 0.10, so a player with no physicality signal lands at
// dependence >= 0.90
func TestScore_EmptyCaloriesFloor(t *testing.T) {
	s := NewScorer(buildRef(t), DefaultParams())
	v := player.FeatureVector{
		CreationTax:         player.Some(0.15),
		IsolationEfficiency: player.Some(1.30),
		ShotQualityDelta:    player.Some(-0.01),
	}
	out := s.Score(v)
	if !out.EmptyCalories {
		t.Fatal("expected empty-calories floor to trip")
	}
	if out.Skill > DefaultParams().EmptyCaloriesCap {
		t.Errorf("skill door should be capped at %.2f, got %.4f",
			DefaultParams().EmptyCaloriesCap, out.Skill)
	}
	if out.Final < 0.90 {
		t.Errorf("dependence should be >= 0.90 under the floor, got %.4f", out.Final)
	}
}

// TestScore_MonotoneBelowZeroSQG: dependence never decreases as
// shot-quality generation sinks further below zero
func TestScore_MonotoneBelowZeroSQG(t *testing.T) {
	s := NewScorer(buildRef(t), DefaultParams())
	prev := -1.0
	for sqg := -0.001; sqg >= -0.10; sqg -= 0.001 {
		v := player.FeatureVector{
			CreationTax:      player.Some(0.05),
			ShotQualityDelta: player.Some(sqg),
			LatentPotential:  player.Some(0.01),
		}
		out := s.Score(v)
		if out.Final+1e-12 < prev {
			t.Fatalf("dependence decreased (%.6f -> %.6f) as sqg fell to %.4f", prev, out.Final, sqg)
		}
		prev = out.Final
	}
}

func TestScore_SystemFinisherDiscount(t *testing.T) {
	s := NewScorer(buildRef(t), DefaultParams())
	strong := player.FeatureVector{
		FreeThrowRate:       player.Some(0.40),
		RimPressureRate:     player.Some(0.50),
		CreationVolumeRatio: player.Some(0.30),
	}
	finisher := strong
	finisher.CreationVolumeRatio = player.Some(0.05)

	a := s.Score(strong)
	b := s.Score(finisher)
	if math.Abs(b.Physicality-a.Physicality/2) > 1e-9 {
		t.Errorf("finisher physicality should be halved: %.4f vs %.4f", b.Physicality, a.Physicality)
	}
	if !hasFlag(b.Flags, FlagSystemFinisher) {
		t.Error("expected system-finisher flag")
	}
}

func TestScore_SystemMerchantPenalty(t *testing.T) {
	s := NewScorer(buildRef(t), DefaultParams())
	v := player.FeatureVector{
		ShotQualityDelta: player.Some(0.10), // far above p80: normalizes to 1
		CreationTax:      player.Some(-0.02),
	}
	out := s.Score(v)
	if !hasFlag(out.Flags, FlagSystemMerchant) {
		t.Errorf("expected system-merchant flag, got %v", out.Flags)
	}
}

// TestScore_EfficiencyGateKillsDiscount: inefficient volume at or above
// the cutoff removes the latent discount entirely
func TestScore_EfficiencyGateKillsDiscount(t *testing.T) {
	s := NewScorer(buildRef(t), DefaultParams())
	base := player.FeatureVector{
		CreationTax:      player.Some(0.02),
		ShotQualityDelta: player.Some(0.05),
		LatentPotential:  player.Some(0.02),
	}

	clean := s.Score(base)
	if clean.Discount <= 0 {
		t.Fatal("expected a positive discount for the clean profile")
	}

	dirty := base
	dirty.InefficientVolume = player.Some(0.12)
	gated := s.Score(dirty)
	if gated.Discount != 0 {
		t.Errorf("discount should be zero past the efficiency gate, got %.4f", gated.Discount)
	}
}

func TestScore_DiscountCappedAtMax(t *testing.T) {
	s := NewScorer(buildRef(t), DefaultParams())
	v := player.FeatureVector{
		ShotQualityDelta: player.Some(0.50),
		LatentPotential:  player.Some(1.0),
	}
	out := s.Score(v)
	if out.Discount > DefaultParams().DiscountMax+1e-12 {
		t.Errorf("discount %.4f exceeds max %.2f", out.Discount, DefaultParams().DiscountMax)
	}
}

func hasFlag(flags []string, want string) bool {
	for _, f := range flags {
		if f == want {
			return true
		}
	}
	return false
}
