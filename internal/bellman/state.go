package bellman

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidState = errors.New("invalid symbolic state")

const separator = "_"

// State is a path of moves appended to the start marker, e.g.
// "state_up_down". The two end markers are absorbing.
type State string

const (
	Start    State = "state"
	HappyEnd State = "happy_end"
	BadEnd   State = "bad_end"
)

// Move is a binary choice in the symbolic model
type Move string

const (
	Up   Move = "up"
	Down Move = "down"
)

// Moves is the choice set the evaluator maximises over
var Moves = []Move{Up, Down}

// Opposite returns the other move
func (m Move) Opposite() Move {
	if m == Up {
		return Down
	}
	return Up
}

// IsTerminal reports whether s is one of the absorbing end markers
func (s State) IsTerminal() bool {
	return s == HappyEnd || s == BadEnd
}

// moves returns the path after the start marker
func (s State) moves() []string {
	parts := strings.Split(string(s), separator)
	return parts[1:]
}

// Depth is the number of moves taken so far
func (s State) Depth() int {
	if s.IsTerminal() {
		return 0
	}
	return len(s.moves())
}

// UpCount is how many of the moves were up
func (s State) UpCount() int {
	if s.IsTerminal() {
		return 0
	}
	n := 0
	for _, m := range s.moves() {
		if Move(m) == Up {
			n++
		}
	}
	return n
}

// Extend returns a new, longer state; s itself is never modified
func (s State) Extend(m Move) State {
	return State(string(s) + separator + string(m))
}

// ParseState validates a path string such as "state_up_up"
func ParseState(raw string) (State, error) {
	s := State(strings.TrimSpace(raw))
	if s.IsTerminal() || s == Start {
		return s, nil
	}
	parts := strings.Split(string(s), separator)
	if parts[0] != string(Start) {
		return "", fmt.Errorf("%w: %q must begin with %q", ErrInvalidState, raw, Start)
	}
	for _, p := range parts[1:] {
		if Move(p) != Up && Move(p) != Down {
			return "", fmt.Errorf("%w: unknown move %q in %q", ErrInvalidState, p, raw)
		}
	}
	return s, nil
}
