// Package agent holds action-selection policies that drive an environment
package agent

import (
	"math/rand"

	"gridmdp/internal/env"
)

// Policy picks the next action for the agent at a position
type Policy interface {
	Act(state env.Position) env.Action
}

// PolicyFunc adapts a plain function to Policy
type PolicyFunc func(state env.Position) env.Action

func (f PolicyFunc) Act(state env.Position) env.Action { return f(state) }

// Random ignores the state and picks uniformly from the action set
type Random struct {
	actions []env.Action
	rng     *rand.Rand
}

// NewRandom creates a uniform random policy drawing from rng
func NewRandom(rng *rand.Rand) *Random {
	return &Random{actions: env.Actions(), rng: rng}
}

func (r *Random) Act(env.Position) env.Action {
	return r.actions[r.rng.Intn(len(r.actions))]
}

// Fixed always returns the same action
func Fixed(a env.Action) Policy {
	return PolicyFunc(func(env.Position) env.Action { return a })
}
