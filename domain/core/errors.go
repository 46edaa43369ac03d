package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound       = errors.New("resource not found")
	ErrPlayerNotFound = fmt.Errorf("%w: player", ErrNotFound)
	ErrRunNotFound    = fmt.Errorf("%w: run", ErrNotFound)

	// Recoverable prediction-path errors
	ErrMissingFeature  = errors.New("feature missing from input vector")
	ErrDegenerateRatio = errors.New("degenerate usage ratio")

	// Reference distribution errors
	ErrInsufficientReferenceData = errors.New("insufficient qualified rows for percentile")

	// Contract errors (fatal per item, never guessed around)
	ErrClassifierContract = errors.New("classifier feature contract violation")

	// Validation errors
	ErrInvalidUsage       = errors.New("usage fraction outside [0,1]")
	ErrInvalidProbability = errors.New("archetype probabilities do not sum to 1")
)

// Error constructors with context
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

func NewContractError(detail string) error {
	return fmt.Errorf("%w: %s", ErrClassifierContract, detail)
}

func NewReferenceError(metric string, percentile float64) error {
	return fmt.Errorf("%w: %s p%.0f", ErrInsufficientReferenceData, metric, percentile)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsContractError(err error) bool {
	return errors.Is(err, ErrClassifierContract)
}

func IsReferenceError(err error) bool {
	return errors.Is(err, ErrInsufficientReferenceData)
}

// IsRecoverable reports whether the prediction path may substitute a
// documented default and continue instead of failing the item.
func IsRecoverable(err error) bool {
	return errors.Is(err, ErrMissingFeature) || errors.Is(err, ErrDegenerateRatio)
}
