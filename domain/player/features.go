package player

import (
	"math"
	"strings"

	"courtlens/domain/core"
)

// Metric is an optional numeric feature value. A zero Metric means the
// feature was absent from the source row, which is distinct from a
// measured zero.
type Metric struct {
	Value float64
	Known bool
}

// Some creates a known metric
func Some(v float64) Metric {
	return Metric{Value: v, Known: true}
}

// None creates an absent metric
func None() Metric {
	return Metric{}
}

// Or returns the metric value, or fallback when absent
func (m Metric) Or(fallback float64) float64 {
	if m.Known {
		return m.Value
	}
	return fallback
}

// Canonical feature names. The set is fixed and versioned alongside the
// classifier's trained feature list; lookups are case-insensitive.
const (
	FeatUsageRate           = "usage_rate"
	FeatShotVolume          = "shot_volume"
	FeatCreationVolumeRatio = "creation_volume_ratio"
	FeatCreationTax         = "creation_tax"
	FeatIsolationEfficiency = "isolation_efficiency"
	FeatOpenShotRate        = "open_shot_rate"
	FeatContestedShotRate   = "contested_shot_rate"
	FeatPressureResilience  = "pressure_resilience"
	FeatClutchUsageDelta    = "clutch_usage_delta"
	FeatClutchEfficiency    = "clutch_efficiency_delta"
	FeatFreeThrowRate       = "free_throw_rate"
	FeatRimPressureRate     = "rim_pressure_rate"
	FeatShotQualityDelta    = "shot_quality_delta"
	FeatInefficientVolume   = "inefficient_volume"
	FeatEfficiencyDelta     = "efficiency_delta"
	FeatAge                 = "age"
	FeatLatentPotential     = "latent_potential"
)

// FeatureNames lists every canonical feature in a stable order
func FeatureNames() []string {
	return []string{
		FeatUsageRate,
		FeatShotVolume,
		FeatCreationVolumeRatio,
		FeatCreationTax,
		FeatIsolationEfficiency,
		FeatOpenShotRate,
		FeatContestedShotRate,
		FeatPressureResilience,
		FeatClutchUsageDelta,
		FeatClutchEfficiency,
		FeatFreeThrowRate,
		FeatRimPressureRate,
		FeatShotQualityDelta,
		FeatInefficientVolume,
		FeatEfficiencyDelta,
		FeatAge,
		FeatLatentPotential,
	}
}

// FeatureVector is one row per (player, season). It is a read-only input:
// every transformation copies, the canonical record is never mutated.
type FeatureVector struct {
	PlayerID core.PlayerID
	Name     string
	Season   core.Season

	UsageRate           Metric
	ShotVolume          Metric
	CreationVolumeRatio Metric
	CreationTax         Metric
	IsolationEfficiency Metric
	OpenShotRate        Metric
	ContestedShotRate   Metric
	PressureResilience  Metric
	ClutchUsageDelta    Metric
	ClutchEfficiency    Metric
	FreeThrowRate       Metric
	RimPressureRate     Metric
	ShotQualityDelta    Metric
	InefficientVolume   Metric
	EfficiencyDelta     Metric
	Age                 Metric
	LatentPotential     Metric
}

// Metric returns the named feature, case-insensitively
func (v FeatureVector) Metric(name string) Metric {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case FeatUsageRate:
		return v.UsageRate
	case FeatShotVolume:
		return v.ShotVolume
	case FeatCreationVolumeRatio:
		return v.CreationVolumeRatio
	case FeatCreationTax:
		return v.CreationTax
	case FeatIsolationEfficiency:
		return v.IsolationEfficiency
	case FeatOpenShotRate:
		return v.OpenShotRate
	case FeatContestedShotRate:
		return v.ContestedShotRate
	case FeatPressureResilience:
		return v.PressureResilience
	case FeatClutchUsageDelta:
		return v.ClutchUsageDelta
	case FeatClutchEfficiency:
		return v.ClutchEfficiency
	case FeatFreeThrowRate:
		return v.FreeThrowRate
	case FeatRimPressureRate:
		return v.RimPressureRate
	case FeatShotQualityDelta:
		return v.ShotQualityDelta
	case FeatInefficientVolume:
		return v.InefficientVolume
	case FeatEfficiencyDelta:
		return v.EfficiencyDelta
	case FeatAge:
		return v.Age
	case FeatLatentPotential:
		return v.LatentPotential
	default:
		return None()
	}
}

// WithMetric returns a copy with the named feature replaced
func (v FeatureVector) WithMetric(name string, m Metric) FeatureVector {
	out := v
	switch strings.ToLower(strings.TrimSpace(name)) {
	case FeatUsageRate:
		out.UsageRate = m
	case FeatShotVolume:
		out.ShotVolume = m
	case FeatCreationVolumeRatio:
		out.CreationVolumeRatio = m
	case FeatCreationTax:
		out.CreationTax = m
	case FeatIsolationEfficiency:
		out.IsolationEfficiency = m
	case FeatOpenShotRate:
		out.OpenShotRate = m
	case FeatContestedShotRate:
		out.ContestedShotRate = m
	case FeatPressureResilience:
		out.PressureResilience = m
	case FeatClutchUsageDelta:
		out.ClutchUsageDelta = m
	case FeatClutchEfficiency:
		out.ClutchEfficiency = m
	case FeatFreeThrowRate:
		out.FreeThrowRate = m
	case FeatRimPressureRate:
		out.RimPressureRate = m
	case FeatShotQualityDelta:
		out.ShotQualityDelta = m
	case FeatInefficientVolume:
		out.InefficientVolume = m
	case FeatEfficiencyDelta:
		out.EfficiencyDelta = m
	case FeatAge:
		out.Age = m
	case FeatLatentPotential:
		out.LatentPotential = m
	}
	return out
}

// Normalize returns a copy with the usage fraction brought into [0,1].
// Source feeds occasionally ship usage as a percentage; any usage above
// 1.0 is treated as percentage scale and divided by 100 before any
// computation touches it.
func (v FeatureVector) Normalize() FeatureVector {
	out := v
	if out.UsageRate.Known {
		u := out.UsageRate.Value
		if u > 1.0 {
			u = u / 100.0
		}
		if u < 0 {
			u = 0
		}
		if u > 1 {
			u = 1
		}
		out.UsageRate = Some(u)
	}
	return out
}

// RecomputeLatentPotential rewrites the derived latent-potential feature
// so it stays internally consistent with the current usage and
// efficiency values: latent = efficiency_delta * usage^1.5, floored at 0.
func (v FeatureVector) RecomputeLatentPotential() FeatureVector {
	out := v
	if !out.UsageRate.Known || !out.EfficiencyDelta.Known {
		return out
	}
	latent := out.EfficiencyDelta.Value * math.Pow(out.UsageRate.Value, 1.5)
	if latent < 0 {
		latent = 0
	}
	out.LatentPotential = Some(latent)
	return out
}

// Dataset is the full population of feature vectors for one data load
type Dataset []FeatureVector
