package env

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand"
)

const (
	DefaultMoveProb      = 0.8
	DefaultDefaultReward = -0.04
)

// Status is the episode state of an Environment
type Status int

const (
	Running Status = iota
	Terminated
)

func (s Status) String() string {
	switch s {
	case Running:
		return "running"
	case Terminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// StepResult is what the agent observes after one transition.
// Halted is set when the source state had no transitions at all; Next and
// Reward are meaningless in that case.
type StepResult struct {
	Next   Position
	Reward float64
	Done   bool
	Halted bool
}

// Environment is a stochastic grid world. The agent's position is its only
// mutable field and is changed only by Reset and Step. An Environment is
// meant for a single caller.
type Environment struct {
	grid          *Grid
	moveProb      float64
	defaultReward float64
	rng           *rand.Rand
	logger        *slog.Logger

	agent  Position
	status Status
}

// Option configures an Environment
type Option func(*Environment)

// WithMoveProb sets the probability of moving in the intended direction
func WithMoveProb(p float64) Option {
	return func(e *Environment) { e.moveProb = p }
}

// WithDefaultReward sets the reward of non-terminal cells
func WithDefaultReward(r float64) Option {
	return func(e *Environment) { e.defaultReward = r }
}

// WithRand injects the random source used by Step and Transit
func WithRand(rng *rand.Rand) Option {
	return func(e *Environment) { e.rng = rng }
}

// WithLogger routes move diagnostics to logger
func WithLogger(logger *slog.Logger) Option {
	return func(e *Environment) { e.logger = logger }
}

// New creates an environment over grid and places the agent at the start cell
func New(grid *Grid, opts ...Option) (*Environment, error) {
	if grid == nil {
		return nil, fmt.Errorf("%w: nil grid", ErrInvalidGrid)
	}
	e := &Environment{
		grid:          grid,
		moveProb:      DefaultMoveProb,
		defaultReward: DefaultDefaultReward,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.moveProb < 0 || e.moveProb > 1 {
		return nil, fmt.Errorf("%w: move probability %v outside [0, 1]", ErrInvalidConfig, e.moveProb)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(1))
	}
	if e.logger == nil {
		e.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	e.Reset()
	return e, nil
}

func (e *Environment) Grid() *Grid            { return e.grid }
func (e *Environment) MoveProb() float64      { return e.moveProb }
func (e *Environment) DefaultReward() float64 { return e.defaultReward }
func (e *Environment) Current() Position      { return e.agent }
func (e *Environment) Status() Status         { return e.status }

// Actions returns the action set in canonical order
func (e *Environment) Actions() []Action {
	return Actions()
}

// States lists every non-blocked cell in row-major order
func (e *Environment) States() []Position {
	var states []Position
	for r := 0; r < e.grid.Rows(); r++ {
		for c := 0; c < e.grid.Columns(); c++ {
			p := Position{Row: r, Column: c}
			if attr, _ := e.grid.Attribute(p); attr != Blocked {
				states = append(states, p)
			}
		}
	}
	return states
}

// Reset puts the agent back on the bottom-left cell
func (e *Environment) Reset() Position {
	e.agent = e.grid.Start()
	e.status = Running
	return e.agent
}

// Step samples a transition from the agent's position and moves the agent
func (e *Environment) Step(action Action) StepResult {
	res := e.Transit(e.agent, action)
	if !res.Halted {
		e.agent = res.Next
	}
	if res.Done {
		e.status = Terminated
	}
	return res
}

// Transit samples one transition from state without touching the agent
func (e *Environment) Transit(state Position, action Action) StepResult {
	probs := e.Transitions(state, action)
	next, ok := probs.Sample(e.rng)
	if !ok {
		return StepResult{Done: true, Halted: true}
	}
	reward, done := e.Reward(next)
	e.logger.Debug("transit", "from", state, "action", action, "to", next, "reward", reward, "done", done)
	return StepResult{Next: next, Reward: reward, Done: done}
}
