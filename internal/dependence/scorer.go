// Package dependence computes the "Two Doors" dependence score: a player
// stays portable by clearing either the physicality door or the skill
// door. Dependence is one minus the better door, less a latent-potential
// discount shaped by two smooth gradients.
package dependence

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"courtlens/domain/player"
	"courtlens/domain/reference"
)

// Params holds the calibrated scorer weights and anchors
type Params struct {
	PhysFTWeight  float64
	PhysRimWeight float64
	// Pure system-finisher discount: creation volume below the floor
	// halves the physicality door
	FinisherVolumeFloor float64
	FinisherDiscount    float64

	SkillTaxWeight float64
	SkillSQGWeight float64
	SkillIsoWeight float64

	// Elite shot-quality generation bonus and the "system merchant"
	// penalty when it co-occurs with poor creation-tax
	EliteSQGNorm    float64
	EliteSQGBonus   float64
	MerchantSQGNorm float64
	MerchantPenalty float64

	// Hard skill cap when shot-quality generation is negative
	EmptyCaloriesCap float64

	// Latent-potential discount shaping
	DiscountMax          float64
	SigmoidScale         float64
	EfficiencyGateCutoff float64
	LatentScale          float64
}

// DefaultParams returns the calibrated defaults
func DefaultParams() Params {
	return Params{
		PhysFTWeight:         0.6,
		PhysRimWeight:        0.4,
		FinisherVolumeFloor:  0.15,
		FinisherDiscount:     0.5,
		SkillTaxWeight:       0.6,
		SkillSQGWeight:       0.2,
		SkillIsoWeight:       0.2,
		EliteSQGNorm:         0.85,
		EliteSQGBonus:        0.10,
		MerchantSQGNorm:      0.70,
		MerchantPenalty:      0.75,
		EmptyCaloriesCap:     0.10,
		DiscountMax:          0.25,
		SigmoidScale:         0.02,
		EfficiencyGateCutoff: 0.10,
		LatentScale:          0.02,
	}
}

// anchors are the fallback normalization bounds used when the reference
// subset cannot supply p20/p80 for a feature
var fallbackAnchors = map[string][2]float64{
	player.FeatFreeThrowRate:       {0.10, 0.35},
	player.FeatRimPressureRate:     {0.15, 0.40},
	player.FeatCreationTax:         {-0.05, 0.08},
	player.FeatShotQualityDelta:    {-0.03, 0.06},
	player.FeatIsolationEfficiency: {0.75, 1.05},
}

// Score is the scorer output, kept rich enough to audit every branch
type Score struct {
	Physicality   float64
	Skill         float64
	Raw           float64
	Discount      float64
	Final         float64
	EmptyCalories bool
	Flags         []string
}

// Flag values recorded on a Score
const (
	FlagEmptyCalories  = "empty_calories_floor"
	FlagSystemMerchant = "system_merchant"
	FlagSystemFinisher = "system_finisher"
	FlagEliteCreation  = "elite_shot_quality"
)

// Scorer computes dependence against a built reference distribution
type Scorer struct {
	ref    *reference.Distribution
	params Params
}

// NewScorer creates a dependence scorer
func NewScorer(ref *reference.Distribution, params Params) *Scorer {
	return &Scorer{ref: ref, params: params}
}

// Score computes the final dependence score in [0,1].
//
// Missing inputs score zero on whichever door needs them, never drop the
// record: a fully missing vector yields maximal dependence, not null.
func (s *Scorer) Score(v player.FeatureVector) Score {
	out := Score{}

	out.Physicality = s.physicality(v, &out)
	out.Skill = s.skill(v, &out)
	out.Raw = clip01(1 - math.Max(out.Physicality, out.Skill))
	out.Discount = s.latentDiscount(v)
	out.Final = clip01(out.Raw - out.Discount)
	return out
}

// physicality: weighted free-throw rate and rim pressure, halved for
// pure system finishers who never create their own volume
func (s *Scorer) physicality(v player.FeatureVector, out *Score) float64 {
	ft := s.norm(v.FreeThrowRate, player.FeatFreeThrowRate)
	rim := s.norm(v.RimPressureRate, player.FeatRimPressureRate)

	score := stat.Mean(
		[]float64{ft, rim},
		[]float64{s.params.PhysFTWeight, s.params.PhysRimWeight},
	)
	if v.CreationVolumeRatio.Or(0) < s.params.FinisherVolumeFloor {
		score *= s.params.FinisherDiscount
		out.Flags = append(out.Flags, FlagSystemFinisher)
	}
	return clip01(score)
}

// skill: weighted creation-tax, shot-quality generation and isolation
// efficiency, with the elite bonus, merchant penalty and the hard
// empty-calories cap
func (s *Scorer) skill(v player.FeatureVector, out *Score) float64 {
	tax := s.norm(v.CreationTax, player.FeatCreationTax)
	sqg := s.norm(v.ShotQualityDelta, player.FeatShotQualityDelta)
	iso := s.norm(v.IsolationEfficiency, player.FeatIsolationEfficiency)

	score := stat.Mean(
		[]float64{tax, sqg, iso},
		[]float64{s.params.SkillTaxWeight, s.params.SkillSQGWeight, s.params.SkillIsoWeight},
	)

	if sqg > s.params.EliteSQGNorm {
		score += s.params.EliteSQGBonus
		out.Flags = append(out.Flags, FlagEliteCreation)
	}
	if sqg > s.params.MerchantSQGNorm && v.CreationTax.Or(0) < 0 {
		score *= s.params.MerchantPenalty
		out.Flags = append(out.Flags, FlagSystemMerchant)
	}

	// Empty-calories floor: negative shot-quality generation caps the
	// skill door outright, forcing dependence of at least 0.90 unless
	// the physicality door clears it.
	if v.ShotQualityDelta.Known && v.ShotQualityDelta.Value < 0 {
		out.EmptyCalories = true
		out.Flags = append(out.Flags, FlagEmptyCalories)
		if score > s.params.EmptyCaloriesCap {
			score = s.params.EmptyCaloriesCap
		}
	}
	return clip01(score)
}

// latentDiscount is at most DiscountMax, scaled by the square root of the
// normalized latent score and modulated by two smooth gradients rather
// than hard gates: a sigmoid on shot-quality generation and a linear
// efficiency gate that kills the discount entirely once inefficient
// volume reaches the cutoff.
func (s *Scorer) latentDiscount(v player.FeatureVector) float64 {
	latent := clip01(v.LatentPotential.Or(0) / s.params.LatentScale)
	if latent == 0 {
		return 0
	}

	sqgGradient := sigmoid(v.ShotQualityDelta.Or(0), s.params.SigmoidScale)
	effGate := clip01(1 - v.InefficientVolume.Or(0)/s.params.EfficiencyGateCutoff)

	return s.params.DiscountMax * math.Sqrt(latent) * sqgGradient * effGate
}

// norm maps a raw value onto [0,1] between the qualified 20th and 80th
// percentile anchors, falling back to fixed anchors when the reference
// subset is undefined. Missing values normalize to 0 (conservative).
func (s *Scorer) norm(m player.Metric, feature string) float64 {
	if !m.Known {
		return 0
	}
	lo, err1 := s.ref.QualifiedPercentile(feature, 20)
	hi, err2 := s.ref.QualifiedPercentile(feature, 80)
	if err1 != nil || err2 != nil || hi <= lo {
		anchor := fallbackAnchors[feature]
		lo, hi = anchor[0], anchor[1]
	}
	if hi <= lo {
		return 0
	}
	return clip01((m.Value - lo) / (hi - lo))
}

func sigmoid(x, scale float64) float64 {
	if scale == 0 {
		return 0.5
	}
	return 1 / (1 + math.Exp(-x/scale))
}

func clip01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
