package env

import "fmt"

// IsActionable reports whether the agent may act from p: p must be inside
// the grid on an ordinary cell.
func (e *Environment) IsActionable(p Position) bool {
	attr, ok := e.grid.Attribute(p)
	return ok && attr == Ordinary
}

// Transitions returns the distribution over next positions when the agent
// intends action from state. The intended direction gets moveProb, the two
// perpendicular directions split the remainder and the opposite direction
// gets nothing. Directions that collide onto the same cell are summed.
func (e *Environment) Transitions(state Position, action Action) Distribution {
	probs := Distribution{}
	if !e.IsActionable(state) || !action.Valid() {
		return probs
	}

	opposite := action.Opposite()
	for _, a := range allActions {
		var prob float64
		switch a {
		case action:
			prob = e.moveProb
		case opposite:
			prob = 0
		default:
			prob = (1 - e.moveProb) / 2
		}
		probs.add(e.move(state, a), prob)
	}
	return probs
}

// Move applies action to state under the collision rule. Leaving the grid or
// bumping into a blocked cell leaves the agent where it was. Moving from a
// terminal or blocked state is a caller bug and returns ErrNotActionable.
func (e *Environment) Move(state Position, action Action) (Position, error) {
	if !e.IsActionable(state) {
		return state, fmt.Errorf("%w: %v", ErrNotActionable, state)
	}
	if !action.Valid() {
		return state, fmt.Errorf("%w: %d", ErrInvalidAction, int(action))
	}
	return e.move(state, action), nil
}

func (e *Environment) move(state Position, action Action) Position {
	next := action.offset(state)

	attr, ok := e.grid.Attribute(next)
	if !ok {
		e.logger.Debug("move absorbed", "from", state, "action", action, "reason", "out_of_bounds")
		return state
	}
	if attr == Blocked {
		e.logger.Debug("move absorbed", "from", state, "action", action, "reason", "blocked")
		return state
	}
	return next
}
