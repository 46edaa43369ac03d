package player

// MedianSource supplies population medians for level features. Implemented
// by the reference distribution; kept as an interface here so the default
// policy has no dependency on how the population was summarized.
type MedianSource interface {
	QualifiedMedian(feature string) (float64, error)
}

// Conservative fallback levels used when the reference subset cannot
// supply a median. Values sit at the low end of observed league ranges so
// a fully missing record reads as a low-skill, low-physicality profile.
var fallbackLevels = map[string]float64{
	FeatUsageRate:           0.14,
	FeatShotVolume:          250,
	FeatCreationVolumeRatio: 0.12,
	FeatIsolationEfficiency: 0.82,
	FeatOpenShotRate:        0.45,
	FeatContestedShotRate:   0.28,
	FeatFreeThrowRate:       0.18,
	FeatRimPressureRate:     0.22,
	FeatInefficientVolume:   0.05,
}

// deltaFeatures default to 0: an unmeasured delta is taken as "no edge",
// never dropped, since the classifier requires a fixed-width row.
var deltaFeatures = map[string]bool{
	FeatCreationTax:        true,
	FeatPressureResilience: true,
	FeatClutchUsageDelta:   true,
	FeatClutchEfficiency:   true,
	FeatShotQualityDelta:   true,
	FeatEfficiencyDelta:    true,
}

// AgeSentinel marks an unknown age ("no prior" categorical field)
const AgeSentinel = -1

// FillDefaults is the single centralized default-filling step. Every
// absent field is replaced by its documented conservative default:
// 0 for deltas, the qualified population median (or fallback constant)
// for levels, and the -1 sentinel for age. The returned vector has every
// metric known, ready for fixed-width row assembly.
func FillDefaults(v FeatureVector, medians MedianSource) FeatureVector {
	out := v
	for _, name := range FeatureNames() {
		if out.Metric(name).Known {
			continue
		}
		switch {
		case name == FeatAge:
			out = out.WithMetric(name, Some(AgeSentinel))
		case name == FeatLatentPotential:
			// derived below once usage and efficiency are settled
		case deltaFeatures[name]:
			out = out.WithMetric(name, Some(0))
		default:
			out = out.WithMetric(name, Some(levelDefault(name, medians)))
		}
	}
	out = out.RecomputeLatentPotential()
	if !out.LatentPotential.Known {
		out.LatentPotential = Some(0)
	}
	return out
}

func levelDefault(name string, medians MedianSource) float64 {
	if medians != nil {
		if m, err := medians.QualifiedMedian(name); err == nil {
			return m
		}
	}
	return fallbackLevels[name]
}
