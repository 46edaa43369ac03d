package player

import (
	"math"
	"testing"
)

// TestNormalize_PercentageUsage verifies percentage-scale usage is brought
// back to a fraction before any computation
func TestNormalize_PercentageUsage(t *testing.T) {
	tests := []struct {
		name     string
		input    Metric
		expected float64
	}{
		{"fraction stays", Some(0.24), 0.24},
		{"percentage rescaled", Some(24.0), 0.24},
		{"boundary one stays", Some(1.0), 1.0},
		{"negative clamped", Some(-0.1), 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := FeatureVector{UsageRate: tt.input}.Normalize()
			if !v.UsageRate.Known {
				t.Fatal("usage should remain known after Normalize")
			}
			if math.Abs(v.UsageRate.Value-tt.expected) > 1e-9 {
				t.Errorf("expected usage %.4f, got %.4f", tt.expected, v.UsageRate.Value)
			}
		})
	}
}

// TestNormalize_AbsentUsageStaysAbsent ensures Normalize does not invent values
func TestNormalize_AbsentUsageStaysAbsent(t *testing.T) {
	v := FeatureVector{}.Normalize()
	if v.UsageRate.Known {
		t.Error("absent usage should stay absent")
	}
}

// TestRecomputeLatentPotential checks the derived non-linear feature
func TestRecomputeLatentPotential(t *testing.T) {
	v := FeatureVector{
		UsageRate:       Some(0.25),
		EfficiencyDelta: Some(0.04),
	}.RecomputeLatentPotential()

	expected := 0.04 * math.Pow(0.25, 1.5)
	if math.Abs(v.LatentPotential.Value-expected) > 1e-12 {
		t.Errorf("expected latent %.6f, got %.6f", expected, v.LatentPotential.Value)
	}

	// Negative efficiency floors at zero
	neg := FeatureVector{
		UsageRate:       Some(0.25),
		EfficiencyDelta: Some(-0.05),
	}.RecomputeLatentPotential()
	if neg.LatentPotential.Value != 0 {
		t.Errorf("expected floored latent 0, got %.6f", neg.LatentPotential.Value)
	}
}

// TestWithMetric_CopySemantics verifies transforms never mutate the source
func TestWithMetric_CopySemantics(t *testing.T) {
	orig := FeatureVector{UsageRate: Some(0.20)}
	modified := orig.WithMetric(FeatUsageRate, Some(0.30))

	if orig.UsageRate.Value != 0.20 {
		t.Error("WithMetric mutated the original vector")
	}
	if modified.UsageRate.Value != 0.30 {
		t.Error("WithMetric did not apply the change to the copy")
	}
}

type fixedMedians map[string]float64

func (f fixedMedians) QualifiedMedian(feature string) (float64, error) {
	if v, ok := f[feature]; ok {
		return v, nil
	}
	return 0, errNoMedian
}

var errNoMedian = &medianError{}

type medianError struct{}

func (e *medianError) Error() string { return "no median" }

// TestFillDefaults covers the centralized missing-value policy
func TestFillDefaults(t *testing.T) {
	medians := fixedMedians{FeatFreeThrowRate: 0.21}
	filled := FillDefaults(FeatureVector{}, medians)

	for _, name := range FeatureNames() {
		if !filled.Metric(name).Known {
			t.Errorf("feature %s should be known after FillDefaults", name)
		}
	}

	if filled.CreationTax.Value != 0 {
		t.Errorf("delta default should be 0, got %f", filled.CreationTax.Value)
	}
	if filled.FreeThrowRate.Value != 0.21 {
		t.Errorf("level should use reference median 0.21, got %f", filled.FreeThrowRate.Value)
	}
	if filled.RimPressureRate.Value != fallbackLevels[FeatRimPressureRate] {
		t.Errorf("level without median should use fallback, got %f", filled.RimPressureRate.Value)
	}
	if filled.Age.Value != AgeSentinel {
		t.Errorf("age should default to sentinel %d, got %f", AgeSentinel, filled.Age.Value)
	}
}

// TestFillDefaults_PreservesKnown ensures present values are untouched
func TestFillDefaults_PreservesKnown(t *testing.T) {
	v := FeatureVector{CreationTax: Some(0.07), Age: Some(22)}
	filled := FillDefaults(v, nil)
	if filled.CreationTax.Value != 0.07 {
		t.Error("known delta was overwritten")
	}
	if filled.Age.Value != 22 {
		t.Error("known age was overwritten")
	}
}
