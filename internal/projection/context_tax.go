package projection

import (
	"courtlens/domain/player"
)

// Context-tax penalty names recorded for auditability
const (
	PenaltyOpenReliance  = "open_shot_reliance"
	PenaltyNegativeTax   = "negative_creation_tax"
	PenaltyClutchFade    = "negative_leverage"
	PenaltyShotAvoidance = "pressure_shot_avoidance"
)

var taxVolumeFeatures = []string{
	player.FeatShotVolume,
	player.FeatCreationVolumeRatio,
	player.FeatRimPressureRate,
}

var taxEfficiencyFeatures = []string{
	player.FeatIsolationEfficiency,
	player.FeatEfficiencyDelta,
}

// applyContextTax discounts reliance on low-resistance scoring contexts.
//
// Exemption comes first: any already-proven translatable signal (positive
// clutch deltas, positive creation-tax, or very high creation volume)
// waives every penalty. Otherwise up to four independent multiplicative
// penalties stack. Volume features take the larger hit: playoff-caliber
// defense removes opportunity, not just efficiency.
//
// Triggers are evaluated against the unprojected source vector; penalties
// are applied to the projected one.
func (p *Projector) applyContextTax(src, projected player.FeatureVector) (player.FeatureVector, []string) {
	if p.contextExempt(src) {
		return projected, nil
	}

	var applied []string
	volFactor := 1.0
	effFactor := 1.0

	if src.OpenShotRate.Known && src.OpenShotRate.Value > p.params.OpenShotCutoff {
		volFactor *= p.params.OpenShotVolumePenalty
		effFactor *= p.params.OpenShotEfficiencyPenalty
		applied = append(applied, PenaltyOpenReliance)
	}
	if src.CreationTax.Known && src.CreationTax.Value < 0 {
		volFactor *= p.params.NegativeTaxVolumePenalty
		applied = append(applied, PenaltyNegativeTax)
	}
	if src.ClutchUsageDelta.Known && src.ClutchEfficiency.Known &&
		src.ClutchUsageDelta.Value < 0 && src.ClutchEfficiency.Value < 0 {
		volFactor *= p.params.ClutchVolumePenalty
		effFactor *= p.params.ClutchEfficiencyPenalty
		applied = append(applied, PenaltyClutchFade)
	}
	if src.ContestedShotRate.Known && src.ContestedShotRate.Value < p.params.ContestedCutoff {
		volFactor *= p.params.ContestedVolumePenalty
		applied = append(applied, PenaltyShotAvoidance)
	}

	if len(applied) == 0 {
		return projected, nil
	}

	out := projected
	for _, feat := range taxVolumeFeatures {
		if m := out.Metric(feat); m.Known {
			out = out.WithMetric(feat, player.Some(m.Value*volFactor))
		}
	}
	if effFactor < 1.0 {
		for _, feat := range taxEfficiencyFeatures {
			// Only shrink positive values; scaling a negative delta
			// toward zero would reward the player being penalized.
			if m := out.Metric(feat); m.Known && m.Value > 0 {
				out = out.WithMetric(feat, player.Some(m.Value*effFactor))
			}
		}
	}
	return out, applied
}

// contextExempt reports whether the player has already proven a
// translatable skill and therefore takes no penalty
func (p *Projector) contextExempt(v player.FeatureVector) bool {
	if v.ClutchUsageDelta.Known && v.ClutchUsageDelta.Value > 0 {
		return true
	}
	if v.ClutchEfficiency.Known && v.ClutchEfficiency.Value > 0 {
		return true
	}
	if v.CreationTax.Known && v.CreationTax.Value > 0 {
		return true
	}
	if v.CreationVolumeRatio.Known && v.CreationVolumeRatio.Value >= p.params.ExemptCreationVolume {
		return true
	}
	return false
}
