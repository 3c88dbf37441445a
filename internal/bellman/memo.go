package bellman

import "math"

// MemoEvaluator computes the same values as Evaluator but caches V per
// state, so each reachable state is expanded once.
type MemoEvaluator struct {
	*Evaluator
	cache map[State]float64
}

// NewMemo wraps an Evaluator with a value cache
func NewMemo(e *Evaluator) *MemoEvaluator {
	return &MemoEvaluator{Evaluator: e, cache: make(map[State]float64)}
}

// V returns the cached value of s, computing it on first use
func (m *MemoEvaluator) V(s State) float64 {
	return m.Evaluate(s).Value
}

// Evaluate reports how many states had to be expanded for this query
func (m *MemoEvaluator) Evaluate(s State) Result {
	var calls int
	v := m.value(s, &calls)
	return Result{State: s, Value: v, Calls: calls}
}

// Cached is the number of states currently held in the cache
func (m *MemoEvaluator) Cached() int {
	return len(m.cache)
}

func (m *MemoEvaluator) value(s State, calls *int) float64 {
	if v, ok := m.cache[s]; ok {
		return v
	}
	*calls++
	best := 0.0
	if !m.Terminal(s) {
		best = math.Inf(-1)
		for _, mv := range Moves {
			var expected float64
			for next, p := range m.Transitions(s, mv) {
				expected += p * m.value(next, calls)
			}
			best = math.Max(best, expected)
		}
	}
	v := float64(m.Reward(s)) + m.discount*best
	m.cache[s] = v
	return v
}
