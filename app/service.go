package app

import (
	"fmt"

	"courtlens/domain/archetype"
	"courtlens/domain/core"
	"courtlens/domain/player"
	"courtlens/domain/prediction"
	"courtlens/domain/reference"
	"courtlens/internal/dependence"
	"courtlens/internal/gates"
	"courtlens/internal/metrics"
	"courtlens/internal/projection"
	"courtlens/internal/risk"
	"courtlens/ports"
)

// PredictionService runs the full conditional projection pipeline for one
// query: project the vector to the target usage, classify it, route it,
// gate the probabilities, then place the result on the risk matrix.
type PredictionService struct {
	classifier ports.Classifier
	ref        *reference.Distribution
	projector  *projection.Projector
	scorer     *dependence.Scorer
	pipeline   *gates.Pipeline
	gateParams gates.Params
	router     gates.RouterParams
	cuts       risk.Cuts
}

// NewPredictionService wires the engine components around a built
// reference distribution and a loaded classifier
func NewPredictionService(classifier ports.Classifier, ref *reference.Distribution) (*PredictionService, error) {
	if classifier == nil {
		return nil, fmt.Errorf("classifier is required")
	}
	if ref == nil {
		return nil, fmt.Errorf("reference distribution is required")
	}
	return &PredictionService{
		classifier: classifier,
		ref:        ref,
		projector:  projection.NewProjector(ref, projection.DefaultParams()),
		scorer:     dependence.NewScorer(ref, dependence.DefaultParams()),
		pipeline:   gates.NewPipeline(),
		gateParams: gates.DefaultParams(),
		router:     gates.DefaultRouterParams(),
		cuts:       risk.DefaultCuts(),
	}, nil
}

// WithCuts overrides the risk matrix cut points
func (s *PredictionService) WithCuts(cuts risk.Cuts) *PredictionService {
	s.cuts = cuts
	return s
}

// Reference exposes the built distribution for read-only inspection
func (s *PredictionService) Reference() *reference.Distribution {
	return s.ref
}

// Predict answers "what does this player become at targetUsage"
func (s *PredictionService) Predict(v player.FeatureVector, targetUsage float64) (*prediction.Result, error) {
	if targetUsage > 1.0 {
		targetUsage = targetUsage / 100.0
	}
	if targetUsage <= 0 || targetUsage > 1.0 {
		return nil, fmt.Errorf("%w: target usage %.4f", core.ErrInvalidUsage, targetUsage)
	}

	v = v.Normalize()

	// Projection runs on the raw vector so absent metrics stay absent;
	// defaults are a classifier concern, filled afterwards.
	proj := s.projector.Project(v, targetUsage)
	filled := player.FillDefaults(proj.Vector, s.ref)

	probs, err := s.classifyRow(filled)
	if err != nil {
		return nil, err
	}

	// Dependence is scored on the projected vector before defaults, so
	// missing inputs surface as dependence rather than median behavior.
	dep := s.scorer.Score(proj.Vector)
	depKnown := proj.Vector.FreeThrowRate.Known || proj.Vector.RimPressureRate.Known ||
		proj.Vector.CreationTax.Known || proj.Vector.ShotQualityDelta.Known ||
		proj.Vector.IsolationEfficiency.Known

	// Routing and gating consult the pre-default vector: a gate or
	// router check on a metric the source never measured is skipped,
	// not evaluated against a median stand-in.
	path := gates.Route(proj.Vector, s.ref, s.router)
	gateRes := s.pipeline.Run(probs, gates.Context{
		Vector:          proj.Vector,
		Path:            path,
		Ref:             s.ref,
		Dependence:      dep.Final,
		DependenceKnown: depKnown,
		Params:          s.gateParams,
	})

	performance := risk.PerformanceScore(gateRes.Probabilities)
	riskRes := risk.Classify(gateRes.Probabilities.Top(), performance, dep.Final, depKnown, s.cuts)

	flags := append([]string{}, dep.Flags...)
	if proj.DegenerateUsage {
		flags = append(flags, "degenerate_usage_ratio")
	}
	flags = append(flags, gateRes.Flags...)
	flags = append(flags, riskRes.Flags...)

	metrics.PredictionsTotal.WithLabelValues(string(riskRes.Archetype)).Inc()
	for _, g := range gateRes.AppliedGates {
		metrics.GateApplications.WithLabelValues(g).Inc()
	}

	return &prediction.Result{
		RunID:            core.RunID(core.NewID()),
		PlayerID:         v.PlayerID,
		Name:             v.Name,
		Season:           v.Season,
		TargetUsage:      targetUsage,
		Archetype:        riskRes.Archetype,
		Probabilities:    gateRes.Probabilities,
		PerformanceScore: performance,
		DependenceScore:  dep.Final,
		DependenceKnown:  depKnown,
		RiskCategory:     riskRes.Category,
		Path:             string(path),
		FlashApplied:     proj.FlashApplied,
		ContextPenalties: proj.ContextPenalties,
		AppliedGates:     gateRes.AppliedGates,
		ConfidenceFlags:  flags,
	}, nil
}

// classifyRow assembles the numeric row in the classifier's trained
// feature order and converts the raw probabilities into the canonical
// map. Any unknown feature name is a contract violation: padding a
// trained model's input with guesses corrupts every downstream stage.
func (s *PredictionService) classifyRow(v player.FeatureVector) (archetype.Probabilities, error) {
	names := s.classifier.FeatureNames()
	row := make([]float64, len(names))
	canonical := make(map[string]bool, len(player.FeatureNames()))
	for _, n := range player.FeatureNames() {
		canonical[n] = true
	}
	for i, name := range names {
		if !canonical[name] {
			return nil, core.NewContractError(fmt.Sprintf("classifier expects unknown feature %q", name))
		}
		m := v.Metric(name)
		if !m.Known {
			return nil, fmt.Errorf("%w: %s", core.ErrMissingFeature, name)
		}
		row[i] = m.Value
	}

	raw, err := s.classifier.PredictProba(row)
	if err != nil {
		return nil, err
	}
	probs, err := archetype.FromSlice(s.classifier.Classes(), raw)
	if err != nil {
		return nil, err
	}
	return probs, nil
}
