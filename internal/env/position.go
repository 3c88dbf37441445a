package env

import (
	"fmt"
	"strings"
)

// Position is a cell coordinate on the grid. The origin is the top-left
// corner; rows grow downward and columns grow to the right.
type Position struct {
	Row    int `json:"row" yaml:"row"`
	Column int `json:"column" yaml:"column"`
}

func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.Row, p.Column)
}

// less orders positions row-major
func (p Position) less(o Position) bool {
	if p.Row != o.Row {
		return p.Row < o.Row
	}
	return p.Column < o.Column
}

// Action is an intended move direction. Opposite directions carry negated codes.
type Action int

const (
	Up    Action = 1
	Down  Action = -1
	Left  Action = 2
	Right Action = -2
)

var allActions = [...]Action{Up, Down, Left, Right}

// Actions returns the fixed action set in its canonical order
func Actions() []Action {
	out := make([]Action, len(allActions))
	copy(out, allActions[:])
	return out
}

// Opposite returns the action pointing the other way
func (a Action) Opposite() Action {
	return -a
}

// Valid reports whether a is one of the four directions
func (a Action) Valid() bool {
	switch a {
	case Up, Down, Left, Right:
		return true
	}
	return false
}

func (a Action) String() string {
	switch a {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// ParseAction maps a direction name to its Action (case-insensitive)
func ParseAction(s string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up":
		return Up, nil
	case "down":
		return Down, nil
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidAction, s)
}

// MarshalText encodes the action by name so traces stay readable
func (a Action) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidAction, int(a))
	}
	return []byte(a.String()), nil
}

func (a *Action) UnmarshalText(text []byte) error {
	parsed, err := ParseAction(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// offset returns the naive target of moving from p in direction a
func (a Action) offset(p Position) Position {
	switch a {
	case Up:
		p.Row--
	case Down:
		p.Row++
	case Left:
		p.Column--
	case Right:
		p.Column++
	}
	return p
}
