package env

import "fmt"

// Replay stores a deterministic action trace for playback
type Replay struct {
	Seed      int64        `json:"seed"`
	Actions   []Action     `json:"actions"`
	Positions []Position   `json:"positions"`
	Final     EpisodeStats `json:"final"`
}

// NewReplay creates a new replay recorder
func NewReplay(seed int64) *Replay {
	return &Replay{
		Seed:      seed,
		Actions:   make([]Action, 0, 64),
		Positions: make([]Position, 0, 64),
	}
}

// Record adds one step to the replay
func (r *Replay) Record(action Action, next Position) {
	r.Actions = append(r.Actions, action)
	r.Positions = append(r.Positions, next)
}

// SetFinalStats sets the final episode statistics
func (r *Replay) SetFinalStats(stats EpisodeStats) {
	r.Final = stats
}

// Verify replays the recorded actions on e, which must be built with a
// random source seeded like the recorded run, and checks that every sampled
// position matches.
func (r *Replay) Verify(e *Environment) error {
	e.Reset()
	for i, a := range r.Actions {
		res := e.Step(a)
		if res.Halted {
			return fmt.Errorf("replay step %d: environment halted early", i)
		}
		if res.Next != r.Positions[i] {
			return fmt.Errorf("replay step %d: got %v, recorded %v", i, res.Next, r.Positions[i])
		}
	}
	return nil
}
