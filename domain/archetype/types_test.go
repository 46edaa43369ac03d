package archetype

import (
	"math"
	"testing"
)

func TestFromSlice_Alignment(t *testing.T) {
	probs, err := FromSlice(All(), []float64{0.5, 0.2, 0.2, 0.1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if probs[King] != 0.5 || probs[Victim] != 0.1 {
		t.Errorf("probabilities misaligned: %v", probs)
	}

	if _, err := FromSlice(All(), []float64{0.5, 0.5}); err == nil {
		t.Error("expected error on length mismatch")
	}
}

func TestNormalize_DriftHandling(t *testing.T) {
	// Within drift tolerance: untouched
	slight := Probabilities{King: 0.5, Bulldozer: 0.2, Sniper: 0.2, Victim: 0.1005}
	out := slight.Normalize()
	if out[Victim] != 0.1005 {
		t.Error("normalization should not fire within drift tolerance")
	}

	// Beyond drift tolerance: rescaled to exactly 1
	drifted := Probabilities{King: 0.5, Bulldozer: 0.3, Sniper: 0.3, Victim: 0.1}
	out = drifted.Normalize()
	if math.Abs(out.Sum()-1.0) > SumTolerance {
		t.Errorf("expected sum 1.0 after normalize, got %.8f", out.Sum())
	}
}

func TestTop_DeterministicTieBreak(t *testing.T) {
	tied := Probabilities{King: 0.3, Bulldozer: 0.3, Sniper: 0.3, Victim: 0.1}
	for i := 0; i < 50; i++ {
		if tied.Top() != King {
			t.Fatal("ties must break on canonical order")
		}
	}
}

func TestClone_Independence(t *testing.T) {
	orig := Probabilities{King: 0.4, Bulldozer: 0.3, Sniper: 0.2, Victim: 0.1}
	cp := orig.Clone()
	cp[King] = 0.0
	if orig[King] != 0.4 {
		t.Error("Clone should be independent of the source map")
	}
}

func TestTierMass(t *testing.T) {
	p := Probabilities{King: 0.4, Bulldozer: 0.3, Sniper: 0.2, Victim: 0.1}
	if math.Abs(p.TierMass(StarTier())-0.7) > 1e-12 {
		t.Errorf("star tier mass: got %f", p.TierMass(StarTier()))
	}
	if math.Abs(p.TierMass(RoleTier())-0.3) > 1e-12 {
		t.Errorf("role tier mass: got %f", p.TierMass(RoleTier()))
	}
}
