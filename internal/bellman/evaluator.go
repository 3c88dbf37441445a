// Package bellman evaluates state values of a small symbolic decision
// process by unrolling the Bellman equation recursively.
//
// A state is a path of up/down moves. Once a path reaches the horizon it is
// classified as a happy end (at least HappyThreshold ups) or a bad end, both
// absorbing. Each move succeeds with MoveProb and otherwise the opposite
// move is appended instead.
//
// Evaluator deliberately recomputes every subtree: evaluating a state at
// depth d visits on the order of 4^(Horizon-d) states. MemoEvaluator is the
// cached variant.
package bellman

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"

	"gridmdp/internal/logging"
)

const (
	DefaultDiscount       = 0.99
	DefaultHorizon        = 5
	DefaultHappyThreshold = 4
	DefaultMoveProb       = 0.9
)

// Evaluator holds the parameters of the symbolic model. It has no mutable
// state and is safe to share.
type Evaluator struct {
	discount       float64
	horizon        int
	happyThreshold int
	moveProb       float64
	logger         *slog.Logger
}

// Option configures an Evaluator
type Option func(*Evaluator)

func WithDiscount(d float64) Option    { return func(e *Evaluator) { e.discount = d } }
func WithHorizon(h int) Option         { return func(e *Evaluator) { e.horizon = h } }
func WithHappyThreshold(n int) Option  { return func(e *Evaluator) { e.happyThreshold = n } }
func WithMoveProb(p float64) Option    { return func(e *Evaluator) { e.moveProb = p } }
func WithLogger(l *slog.Logger) Option { return func(e *Evaluator) { e.logger = l } }

// New builds an Evaluator, starting from the defaults
func New(opts ...Option) (*Evaluator, error) {
	e := &Evaluator{
		discount:       DefaultDiscount,
		horizon:        DefaultHorizon,
		happyThreshold: DefaultHappyThreshold,
		moveProb:       DefaultMoveProb,
	}
	for _, opt := range opts {
		opt(e)
	}
	switch {
	case e.horizon < 1:
		return nil, fmt.Errorf("horizon must be at least 1, got %d", e.horizon)
	case e.discount < 0 || e.discount > 1:
		return nil, fmt.Errorf("discount %v outside [0, 1]", e.discount)
	case e.moveProb < 0 || e.moveProb > 1:
		return nil, fmt.Errorf("move probability %v outside [0, 1]", e.moveProb)
	case e.happyThreshold < 0:
		return nil, fmt.Errorf("happy threshold must not be negative, got %d", e.happyThreshold)
	}
	if e.logger == nil {
		e.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return e, nil
}

func (e *Evaluator) Discount() float64 { return e.discount }
func (e *Evaluator) Horizon() int      { return e.horizon }

// Classify returns the absorbing end marker s stands for, or "" when s is
// still in play. Paths that reached the horizon count as ended.
func (e *Evaluator) Classify(s State) State {
	if s.IsTerminal() {
		return s
	}
	if s.Depth() < e.horizon {
		return ""
	}
	if s.UpCount() >= e.happyThreshold {
		return HappyEnd
	}
	return BadEnd
}

// Terminal reports whether no further decisions are made from s
func (e *Evaluator) Terminal(s State) bool {
	return e.Classify(s) != ""
}

// Reward is +1 on a happy end, -1 on a bad end and 0 otherwise
func (e *Evaluator) Reward(s State) int {
	switch e.Classify(s) {
	case HappyEnd:
		return 1
	case BadEnd:
		return -1
	}
	return 0
}

// Transitions returns the successor distribution when m is chosen in s.
// An ended path maps with certainty onto its end marker, which maps onto
// itself.
func (e *Evaluator) Transitions(s State, m Move) map[State]float64 {
	if end := e.Classify(s); end != "" {
		return map[State]float64{end: 1}
	}
	return map[State]float64{
		s.Extend(m):            e.moveProb,
		s.Extend(m.Opposite()): 1 - e.moveProb,
	}
}

// MaxExpectedContinuation is the best expected successor value over the
// two moves, or 0 once the path has ended.
func (e *Evaluator) MaxExpectedContinuation(s State) float64 {
	var calls int
	return e.maxContinuation(s, &calls)
}

// V returns Reward(s) + discount * MaxExpectedContinuation(s)
func (e *Evaluator) V(s State) float64 {
	var calls int
	return e.value(s, &calls)
}

// Result is a value together with the number of V evaluations it took
type Result struct {
	State State   `json:"state"`
	Value float64 `json:"value"`
	Calls int     `json:"calls"`
}

// Evaluate computes V(s) and counts the recursive calls
func (e *Evaluator) Evaluate(s State) Result {
	var calls int
	v := e.value(s, &calls)
	return Result{State: s, Value: v, Calls: calls}
}

func (e *Evaluator) value(s State, calls *int) float64 {
	*calls++
	v := float64(e.Reward(s)) + e.discount*e.maxContinuation(s, calls)
	e.logger.Log(context.Background(), logging.LevelTrace, "value", "state", s, "value", v)
	return v
}

func (e *Evaluator) maxContinuation(s State, calls *int) float64 {
	if e.Terminal(s) {
		return 0
	}
	best := math.Inf(-1)
	for _, m := range Moves {
		var expected float64
		for next, p := range e.Transitions(s, m) {
			expected += p * e.value(next, calls)
		}
		best = math.Max(best, expected)
	}
	return best
}
