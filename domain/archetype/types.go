package archetype

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Archetype is one of the four fixed outcome labels the classifier is
// trained on.
type Archetype string

const (
	// King is the franchise-creator tier: high-usage self-created offense
	King Archetype = "King"
	// Bulldozer is the physical high-volume scorer tier
	Bulldozer Archetype = "Bulldozer"
	// Sniper is the off-ball shooting specialist tier
	Sniper Archetype = "Sniper"
	// Victim is the system-dependent role-player tier
	Victim Archetype = "Victim"
)

// All lists the archetypes in canonical (classifier label-encoder) order
func All() []Archetype {
	return []Archetype{King, Bulldozer, Sniper, Victim}
}

// StarTier is the group gates demote mass out of; RoleTier receives it.
// Gates only redistribute mass between these two groups, never invent it.
func StarTier() []Archetype { return []Archetype{King, Bulldozer} }
func RoleTier() []Archetype { return []Archetype{Sniper, Victim} }

// Parse validates a label string
func Parse(s string) (Archetype, error) {
	for _, a := range All() {
		if string(a) == s {
			return a, nil
		}
	}
	return "", fmt.Errorf("unknown archetype label %q", s)
}

// SumTolerance is the invariant bound on probability mass after every
// gate stage; DriftTolerance is the looser bound that triggers an
// explicit renormalization inside the pipeline.
const (
	SumTolerance   = 1e-6
	DriftTolerance = 1e-3
)

// Probabilities maps the four archetypes to a distribution summing to 1
type Probabilities map[Archetype]float64

// FromSlice builds Probabilities from classifier output aligned to the
// supplied class order
func FromSlice(classes []Archetype, probs []float64) (Probabilities, error) {
	if len(classes) != len(probs) {
		return nil, fmt.Errorf("class/probability length mismatch: %d vs %d", len(classes), len(probs))
	}
	out := make(Probabilities, len(classes))
	for i, c := range classes {
		out[c] = probs[i]
	}
	return out, nil
}

// Clone returns an independent copy; gates operate on copies only
func (p Probabilities) Clone() Probabilities {
	out := make(Probabilities, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Sum returns total probability mass
func (p Probabilities) Sum() float64 {
	vals := make([]float64, 0, len(p))
	for _, v := range p {
		vals = append(vals, v)
	}
	return floats.Sum(vals)
}

// Normalize rescales mass to 1.0 when drift exceeds DriftTolerance.
// A zero-mass map is left untouched.
func (p Probabilities) Normalize() Probabilities {
	sum := p.Sum()
	if sum == 0 || math.Abs(sum-1.0) <= DriftTolerance {
		return p.Clone()
	}
	out := make(Probabilities, len(p))
	for k, v := range p {
		out[k] = v / sum
	}
	return out
}

// Valid reports whether mass sums to 1 within SumTolerance
func (p Probabilities) Valid() bool {
	return math.Abs(p.Sum()-1.0) <= SumTolerance
}

// Top returns the modal archetype; ties break on canonical order so the
// result is deterministic
func (p Probabilities) Top() Archetype {
	best := All()[0]
	bestMass := math.Inf(-1)
	for _, a := range All() {
		if p[a] > bestMass {
			best = a
			bestMass = p[a]
		}
	}
	return best
}

// TierMass sums mass over a tier group
func (p Probabilities) TierMass(tier []Archetype) float64 {
	total := 0.0
	for _, a := range tier {
		total += p[a]
	}
	return total
}
