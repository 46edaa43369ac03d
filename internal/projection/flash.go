package projection

import (
	"courtlens/domain/player"
)

// flashDetected checks the "low volume, elite efficiency" signature:
// creation volume below the qualified 25th percentile AND at least one of
// creation-tax, isolation efficiency, or pressure resilience above its
// qualified 80th percentile. Both halves must hold simultaneously.
//
// Bucket projection underestimates ceiling for players showing elite
// per-possession skill on a tiny sample, so the caller overrides the
// volume ratio toward the star-usage median instead.
func (p *Projector) flashDetected(v player.FeatureVector) bool {
	vol := v.CreationVolumeRatio
	if !vol.Known {
		return false
	}
	floor, err := p.ref.QualifiedPercentile(player.FeatCreationVolumeRatio, p.params.FlashVolumePercentile)
	if err != nil || vol.Value >= floor {
		return false
	}

	for _, feat := range []string{
		player.FeatCreationTax,
		player.FeatIsolationEfficiency,
		player.FeatPressureResilience,
	} {
		m := v.Metric(feat)
		if !m.Known {
			continue
		}
		ceiling, err := p.ref.QualifiedPercentile(feat, p.params.FlashElitePercentile)
		if err != nil {
			continue
		}
		if m.Value > ceiling {
			return true
		}
	}
	return false
}
