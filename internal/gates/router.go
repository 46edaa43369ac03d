package gates

import (
	"courtlens/domain/player"
	"courtlens/domain/reference"
)

// Path is the validation path a player is routed down. The path decides
// which inefficiency-floor and passivity thresholds the pipeline applies:
// the Physicality path tolerates lower efficiency but demands rim
// pressure and leverage before tolerating passivity, the Skill path
// demands efficiency but is lenient on passivity.
type Path string

const (
	PathPhysicality Path = "Physicality"
	PathSkill       Path = "Skill"
	PathDefault     Path = "Default"
)

// RouterParams hold the creator-subset percentile cut points for routing
type RouterParams struct {
	RimPercentile float64
	TaxPercentile float64
}

// DefaultRouterParams returns the calibrated routing percentiles
func DefaultRouterParams() RouterParams {
	return RouterParams{RimPercentile: 60, TaxPercentile: 75}
}

// Route classifies the player against percentiles computed over the
// creator (usage >= 20%) reference subset only. Rim pressure above the
// 60th creator percentile routes to Physicality; failing that,
// creation-tax above the 75th routes to Skill; everything else takes the
// Default path. Missing metrics or undefined percentiles skip the check.
func Route(v player.FeatureVector, ref *reference.Distribution, params RouterParams) Path {
	if v.RimPressureRate.Known {
		if cut, err := ref.CreatorPercentile(player.FeatRimPressureRate, params.RimPercentile); err == nil {
			if v.RimPressureRate.Value > cut {
				return PathPhysicality
			}
		}
	}
	if v.CreationTax.Known {
		if cut, err := ref.CreatorPercentile(player.FeatCreationTax, params.TaxPercentile); err == nil {
			if v.CreationTax.Value > cut {
				return PathSkill
			}
		}
	}
	return PathDefault
}
