package ports

import (
	"courtlens/domain/archetype"
)

// Classifier is the trained statistical model boundary. The engine
// prepares a numeric row aligned to FeatureNames() and receives a
// probability vector aligned to Classes(); any order or width mismatch
// must surface core.ErrClassifierContract rather than degrade silently.
type Classifier interface {
	// FeatureNames returns the trained feature list, in row order
	FeatureNames() []string
	// Classes returns the label-encoder class order
	Classes() []archetype.Archetype
	// PredictProba returns one probability per class for the row
	PredictProba(row []float64) ([]float64, error)
}
