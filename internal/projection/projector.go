// Package projection rewrites usage-sensitive features to a target
// offensive role. Upward projection substitutes empirical bucket medians
// instead of linear scaling; two heuristic adjusters (flash-potential,
// context-tax) run on top, in that fixed order.
package projection

import (
	"courtlens/domain/core"
	"courtlens/domain/player"
	"courtlens/domain/reference"
)

// Params holds the calibrated projection thresholds. All values are
// overridable through configuration; the defaults below are calibration
// debt carried from the tuned source thresholds.
type Params struct {
	// Fallback scaling when no qualified usage bucket exists
	FallbackScaleCap float64

	// Flash-potential detection
	FlashVolumePercentile float64
	FlashElitePercentile  float64

	// Context-tax triggers and penalties (volume x, efficiency x)
	OpenShotCutoff            float64
	OpenShotVolumePenalty     float64
	OpenShotEfficiencyPenalty float64
	NegativeTaxVolumePenalty  float64
	ClutchVolumePenalty       float64
	ClutchEfficiencyPenalty   float64
	ContestedCutoff           float64
	ContestedVolumePenalty    float64

	// Context-tax exemption: very high creation volume proves the skill
	ExemptCreationVolume float64
}

// DefaultParams returns the calibrated defaults
func DefaultParams() Params {
	return Params{
		FallbackScaleCap:          1.5,
		FlashVolumePercentile:     25,
		FlashElitePercentile:      80,
		OpenShotCutoff:            0.55,
		OpenShotVolumePenalty:     0.65,
		OpenShotEfficiencyPenalty: 0.90,
		NegativeTaxVolumePenalty:  0.75,
		ClutchVolumePenalty:       0.70,
		ClutchEfficiencyPenalty:   0.92,
		ContestedCutoff:           0.25,
		ContestedVolumePenalty:    0.80,
		ExemptCreationVolume:      0.40,
	}
}

// Projected is a FeatureVector with volume-sensitive fields rewritten for
// a target usage level, plus the audit trail downstream consumers need.
type Projected struct {
	Vector           player.FeatureVector
	SourceUsage      float64
	TargetUsage      float64
	FlashApplied     bool
	ContextPenalties []string
	// DegenerateUsage records a recovered zero-usage scaling ratio: the
	// affected volume features were left unscaled
	DegenerateUsage bool
}

// Projector performs usage projection against a built reference
// distribution. It is a pure function of its inputs: no shared state is
// touched, so projections may run concurrently.
type Projector struct {
	ref    *reference.Distribution
	params Params
}

// NewProjector creates a projector bound to a reference distribution
func NewProjector(ref *reference.Distribution, params Params) *Projector {
	return &Projector{ref: ref, params: params}
}

// Project rewrites the vector for targetUsage.
//
// Downward or equal targets only rewrite the stored usage field, so
// re-projecting at the current usage is an identity on every other
// feature. Upward targets substitute the qualified bucket median for
// each volume feature; an unstable bucket falls back to a capped linear
// factor, and a zero current usage short-circuits to no scaling at all.
func (p *Projector) Project(v player.FeatureVector, targetUsage float64) Projected {
	src := v.Normalize()
	if targetUsage > 1.0 {
		targetUsage = targetUsage / 100.0
	}
	if targetUsage < 0 {
		targetUsage = 0
	}
	if targetUsage > 1 {
		targetUsage = 1
	}

	current := src.UsageRate.Or(0)
	out := Projected{Vector: src, SourceUsage: current, TargetUsage: targetUsage}

	if targetUsage <= current {
		out.Vector = src.
			WithMetric(player.FeatUsageRate, player.Some(targetUsage)).
			RecomputeLatentPotential()
		return out
	}

	projected := src
	for _, feat := range reference.VolumeFeatures() {
		m := projected.Metric(feat)
		if !m.Known {
			continue
		}
		if med, err := p.ref.BucketMedian(feat, targetUsage); err == nil {
			projected = projected.WithMetric(feat, player.Some(med))
			continue
		}
		// No qualified bucket: capped linear fallback
		scale, err := fallbackScale(current, targetUsage, p.params.FallbackScaleCap)
		if err != nil {
			// degenerate ratio: recover by leaving the feature unscaled,
			// but record it for the audit trail
			out.DegenerateUsage = true
			continue
		}
		projected = projected.WithMetric(feat, player.Some(m.Value*scale))
	}

	// Flash-potential runs before context-tax; the order is load-bearing
	// and covered by test.
	if p.flashDetected(src) {
		if med, err := p.ref.StarMedian(player.FeatCreationVolumeRatio); err == nil {
			projected = projected.WithMetric(player.FeatCreationVolumeRatio, player.Some(med))
			out.FlashApplied = true
		}
	}

	projected, penalties := p.applyContextTax(src, projected)
	out.ContextPenalties = penalties

	out.Vector = projected.
		WithMetric(player.FeatUsageRate, player.Some(targetUsage)).
		RecomputeLatentPotential()
	return out
}

// fallbackScale is the capped linear factor used when no stable usage
// bucket exists. A zero source usage has no scaling basis and surfaces
// core.ErrDegenerateRatio; the caller recovers by skipping the scaling.
func fallbackScale(current, target, limit float64) (float64, error) {
	if current == 0 {
		return 0, core.ErrDegenerateRatio
	}
	scale := target / current
	if scale > limit {
		scale = limit
	}
	return scale, nil
}
