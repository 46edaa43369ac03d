package projection

import (
	"fmt"
	"math"
	"testing"

	"courtlens/domain/core"
	"courtlens/domain/player"
	"courtlens/domain/reference"
)

// leagueDataset builds a deterministic qualified population covering
// usage 0.12..0.358 so every mid-range bucket is stable.
func leagueDataset() player.Dataset {
	var ds player.Dataset
	for i := 0; i < 120; i++ {
		ds = append(ds, player.FeatureVector{
			PlayerID:            core.PlayerID(fmt.Sprintf("p%03d", i)),
			UsageRate:           player.Some(0.12 + 0.002*float64(i)),
			ShotVolume:          player.Some(300 + 10*float64(i)),
			CreationVolumeRatio: player.Some(0.05 + 0.003*float64(i)),
			RimPressureRate:     player.Some(0.10 + 0.002*float64(i)),
			FreeThrowRate:       player.Some(0.15 + 0.001*float64(i)),
			IsolationEfficiency: player.Some(0.70 + 0.004*float64(i)),
			CreationTax:         player.Some(-0.06 + 0.001*float64(i)),
			PressureResilience:  player.Some(-0.04 + 0.001*float64(i)),
		})
	}
	return ds
}

func buildRef(t *testing.T) *reference.Distribution {
	t.Helper()
	dist, err := reference.Build(leagueDataset(), reference.DefaultConfig())
	if err != nil {
		t.Fatalf("reference build: %v", err)
	}
	return dist
}

func TestProject_EqualUsageIsIdentity(t *testing.T) {
	proj := NewProjector(buildRef(t), DefaultParams())
	v := player.FeatureVector{
		UsageRate:           player.Some(0.22),
		ShotVolume:          player.Some(500),
		CreationVolumeRatio: player.Some(0.20),
		RimPressureRate:     player.Some(0.25),
		EfficiencyDelta:     player.Some(0.03),
	}.RecomputeLatentPotential()

	out := proj.Project(v, 0.22)

	if out.FlashApplied {
		t.Error("flash must not fire on equal-usage projection")
	}
	if len(out.ContextPenalties) != 0 {
		t.Errorf("no context penalties expected, got %v", out.ContextPenalties)
	}
	for _, name := range player.FeatureNames() {
		want := v.Metric(name)
		got := out.Vector.Metric(name)
		if want.Known != got.Known || math.Abs(want.Or(0)-got.Or(0)) > 1e-12 {
			t.Errorf("feature %s changed on identity projection: %v -> %v", name, want, got)
		}
	}
}

func TestProject_DownwardOnlyRewritesUsage(t *testing.T) {
	proj := NewProjector(buildRef(t), DefaultParams())
	v := player.FeatureVector{
		UsageRate:  player.Some(0.28),
		ShotVolume: player.Some(700),
	}
	out := proj.Project(v, 0.18)
	if out.Vector.UsageRate.Value != 0.18 {
		t.Errorf("usage should be rewritten to 0.18, got %f", out.Vector.UsageRate.Value)
	}
	if out.Vector.ShotVolume.Value != 700 {
		t.Errorf("volume must not be scaled downward, got %f", out.Vector.ShotVolume.Value)
	}
}

func TestProject_UpwardUsesBucketMedian(t *testing.T) {
	ref := buildRef(t)
	proj := NewProjector(ref, DefaultParams())
	v := player.FeatureVector{
		UsageRate:           player.Some(0.14),
		ShotVolume:          player.Some(320),
		CreationVolumeRatio: player.Some(0.08),
		RimPressureRate:     player.Some(0.12),
	}
	out := proj.Project(v, 0.30)

	wantVol, err := ref.BucketMedian(player.FeatShotVolume, 0.30)
	if err != nil {
		t.Fatalf("bucket median: %v", err)
	}
	if math.Abs(out.Vector.ShotVolume.Value-wantVol) > 1e-9 {
		t.Errorf("shot volume should be the bucket median %.2f, got %.2f", wantVol, out.Vector.ShotVolume.Value)
	}
	if out.Vector.UsageRate.Value != 0.30 {
		t.Errorf("usage should be 0.30, got %f", out.Vector.UsageRate.Value)
	}
}

func TestProject_EmptyBucketFallsBackToCappedScale(t *testing.T) {
	proj := NewProjector(buildRef(t), DefaultParams())
	v := player.FeatureVector{
		UsageRate:  player.Some(0.20),
		ShotVolume: player.Some(400),
	}
	// No qualified bucket near usage 0.60; fallback is min(3.0, cap)=1.5
	out := proj.Project(v, 0.60)
	if math.Abs(out.Vector.ShotVolume.Value-600) > 1e-9 {
		t.Errorf("expected capped fallback 400*1.5=600, got %f", out.Vector.ShotVolume.Value)
	}
	if out.DegenerateUsage {
		t.Error("positive source usage should not read as degenerate")
	}
}

func TestProject_ZeroUsageShortCircuits(t *testing.T) {
	proj := NewProjector(buildRef(t), DefaultParams())
	v := player.FeatureVector{
		UsageRate:  player.Some(0.0),
		ShotVolume: player.Some(100),
	}
	out := proj.Project(v, 0.60)
	if out.Vector.ShotVolume.Value != 100 {
		t.Errorf("zero current usage must not scale volume, got %f", out.Vector.ShotVolume.Value)
	}
	if !out.DegenerateUsage {
		t.Error("the recovered degenerate ratio should be recorded")
	}
}

func TestProject_RecomputesLatentPotential(t *testing.T) {
	proj := NewProjector(buildRef(t), DefaultParams())
	v := player.FeatureVector{
		UsageRate:       player.Some(0.16),
		EfficiencyDelta: player.Some(0.05),
		CreationTax:     player.Some(0.02), // exempt from context tax
	}
	out := proj.Project(v, 0.28)
	want := 0.05 * math.Pow(0.28, 1.5)
	if math.Abs(out.Vector.LatentPotential.Or(0)-want) > 1e-12 {
		t.Errorf("latent potential not recomputed: want %.6f got %.6f", want, out.Vector.LatentPotential.Or(0))
	}
}

func TestProject_PercentageTargetNormalized(t *testing.T) {
	proj := NewProjector(buildRef(t), DefaultParams())
	v := player.FeatureVector{UsageRate: player.Some(0.20)}
	out := proj.Project(v, 28.0)
	if math.Abs(out.TargetUsage-0.28) > 1e-12 {
		t.Errorf("percentage target should normalize to 0.28, got %f", out.TargetUsage)
	}
}
