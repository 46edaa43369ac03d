// Package model adapts the trained statistical classifier artifact. The
// engine does not train or calibrate anything here: it loads the
// exported multinomial-logistic weights and serves probability rows,
// failing fast on any contract drift.
package model

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"courtlens/domain/archetype"
	"courtlens/domain/core"
)

// Artifact is the exported classifier file layout: feature order, class
// order, and the multinomial-logistic weights, versioned together so the
// engine and the trained model can never silently disagree.
type Artifact struct {
	Version      string      `json:"version"`
	Features     []string    `json:"features"`
	Classes      []string    `json:"classes"`
	Coefficients [][]float64 `json:"coefficients"` // [class][feature]
	Intercepts   []float64   `json:"intercepts"`   // [class]
}

// SoftmaxClassifier implements ports.Classifier over an Artifact
type SoftmaxClassifier struct {
	features []string
	classes  []archetype.Archetype
	weights  *mat.Dense
	bias     []float64
}

// Load reads and validates a classifier artifact from disk
func Load(path string) (*SoftmaxClassifier, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read classifier artifact: %w", err)
	}
	var art Artifact
	if err := json.Unmarshal(raw, &art); err != nil {
		return nil, fmt.Errorf("parse classifier artifact: %w", err)
	}
	return New(art)
}

// New validates an artifact and builds the classifier
func New(art Artifact) (*SoftmaxClassifier, error) {
	if len(art.Features) == 0 {
		return nil, core.NewContractError("artifact lists no features")
	}
	if len(art.Classes) != len(archetype.All()) {
		return nil, core.NewContractError(fmt.Sprintf(
			"artifact has %d classes, engine expects %d", len(art.Classes), len(archetype.All())))
	}
	classes := make([]archetype.Archetype, len(art.Classes))
	for i, label := range art.Classes {
		a, err := archetype.Parse(label)
		if err != nil {
			return nil, core.NewContractError(err.Error())
		}
		classes[i] = a
	}
	if len(art.Coefficients) != len(classes) || len(art.Intercepts) != len(classes) {
		return nil, core.NewContractError("coefficient/intercept rows do not match class count")
	}
	weights := mat.NewDense(len(classes), len(art.Features), nil)
	for c, row := range art.Coefficients {
		if len(row) != len(art.Features) {
			return nil, core.NewContractError(fmt.Sprintf(
				"class %s has %d coefficients, expected %d", art.Classes[c], len(row), len(art.Features)))
		}
		weights.SetRow(c, row)
	}
	return &SoftmaxClassifier{
		features: art.Features,
		classes:  classes,
		weights:  weights,
		bias:     art.Intercepts,
	}, nil
}

// FeatureNames returns the trained feature list, in row order
func (c *SoftmaxClassifier) FeatureNames() []string {
	out := make([]string, len(c.features))
	copy(out, c.features)
	return out
}

// Classes returns the label-encoder class order
func (c *SoftmaxClassifier) Classes() []archetype.Archetype {
	out := make([]archetype.Archetype, len(c.classes))
	copy(out, c.classes)
	return out
}

// PredictProba computes softmax(Wx + b) for one feature row. A row width
// that disagrees with the trained feature count is a contract violation,
// not something to pad or truncate.
func (c *SoftmaxClassifier) PredictProba(row []float64) ([]float64, error) {
	if len(row) != len(c.features) {
		return nil, core.NewContractError(fmt.Sprintf(
			"row has %d features, classifier trained on %d", len(row), len(c.features)))
	}

	x := mat.NewVecDense(len(row), row)
	z := mat.NewVecDense(len(c.classes), nil)
	z.MulVec(c.weights, x)

	logits := make([]float64, len(c.classes))
	for i := range logits {
		logits[i] = z.AtVec(i) + c.bias[i]
	}

	// Numerically stable softmax
	maxLogit := floats.Max(logits)
	for i := range logits {
		logits[i] = math.Exp(logits[i] - maxLogit)
	}
	total := floats.Sum(logits)
	if total == 0 {
		return nil, fmt.Errorf("degenerate softmax: all logits underflowed")
	}
	floats.Scale(1/total, logits)
	return logits, nil
}
