package env

import (
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
)

// Tolerance used when checking that a distribution sums to one
const Tolerance = 1e-9

// Distribution maps a resulting position to its probability. An empty
// distribution means no transition is possible from the source state.
type Distribution map[Position]float64

// add accumulates mass so that several actions landing on the same cell sum up
func (d Distribution) add(p Position, prob float64) {
	d[p] += prob
}

// Positions returns the keys in row-major order
func (d Distribution) Positions() []Position {
	out := make([]Position, 0, len(d))
	for p := range d {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].less(out[j]) })
	return out
}

// Weights returns the probabilities aligned with Positions
func (d Distribution) Weights() []float64 {
	positions := d.Positions()
	w := make([]float64, len(positions))
	for i, p := range positions {
		w[i] = d[p]
	}
	return w
}

// Total is the probability mass held by the distribution
func (d Distribution) Total() float64 {
	return floats.Sum(d.Weights())
}

// Normalized reports whether a non-empty distribution sums to one
func (d Distribution) Normalized() bool {
	return len(d) > 0 && scalar.EqualWithinAbs(d.Total(), 1, Tolerance)
}

// Sample draws one position using the probabilities as weights. Keys are
// visited in row-major order so a seeded rng always yields the same draw.
// ok is false when the distribution holds no mass.
func (d Distribution) Sample(rng *rand.Rand) (p Position, ok bool) {
	positions := d.Positions()
	if len(positions) == 0 {
		return Position{}, false
	}
	weights := make([]float64, len(positions))
	for i, pos := range positions {
		weights[i] = d[pos]
	}
	cum := floats.CumSum(make([]float64, len(weights)), weights)
	total := cum[len(cum)-1]
	if total <= 0 {
		return Position{}, false
	}

	u := rng.Float64() * total
	idx := sort.Search(len(cum), func(i int) bool { return cum[i] > u })
	if idx == len(cum) {
		// rounding pushed u onto the upper edge; take the last cell with mass
		for idx = len(cum) - 1; idx > 0 && weights[idx] == 0; idx-- {
		}
	}
	return positions[idx], true
}
