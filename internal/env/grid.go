package env

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Cell attributes
const (
	Ordinary = 0
	Happy    = 1
	Bad      = -1
	Blocked  = 9
)

var (
	ErrInvalidGrid   = errors.New("invalid grid")
	ErrInvalidAction = errors.New("invalid action")
	ErrNotActionable = errors.New("cannot move from a non-actionable state")
	ErrInvalidConfig = errors.New("invalid environment option")
)

// Grid is an immutable rectangle of cell attributes
type Grid struct {
	cells   [][]int
	rows    int
	columns int
}

// NewGrid copies cells into a Grid. The input must be non-empty and rectangular.
func NewGrid(cells [][]int) (*Grid, error) {
	if len(cells) == 0 || len(cells[0]) == 0 {
		return nil, fmt.Errorf("%w: grid is empty", ErrInvalidGrid)
	}
	columns := len(cells[0])
	copied := make([][]int, len(cells))
	for r, row := range cells {
		if len(row) != columns {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrInvalidGrid, r, len(row), columns)
		}
		copied[r] = append([]int(nil), row...)
	}
	return &Grid{cells: copied, rows: len(cells), columns: columns}, nil
}

// ParseGrid reads one row per line with whitespace-separated attributes.
// Blank lines are skipped.
func ParseGrid(text string) (*Grid, error) {
	var cells [][]int
	for i, line := range strings.Split(text, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		row := make([]int, len(fields))
		for j, f := range fields {
			v, err := strconv.Atoi(f)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidGrid, i+1, err)
			}
			row[j] = v
		}
		cells = append(cells, row)
	}
	return NewGrid(cells)
}

func (g *Grid) Rows() int    { return g.rows }
func (g *Grid) Columns() int { return g.columns }

// Contains reports whether p lies inside the grid bounds
func (g *Grid) Contains(p Position) bool {
	return p.Row >= 0 && p.Row < g.rows && p.Column >= 0 && p.Column < g.columns
}

// Attribute returns the attribute at p; ok is false outside the grid
func (g *Grid) Attribute(p Position) (attr int, ok bool) {
	if !g.Contains(p) {
		return 0, false
	}
	return g.cells[p.Row][p.Column], true
}

// Cells returns a copy of the attribute matrix
func (g *Grid) Cells() [][]int {
	out := make([][]int, g.rows)
	for r := range g.cells {
		out[r] = append([]int(nil), g.cells[r]...)
	}
	return out
}

// Start is the bottom-left corner, where every episode begins
func (g *Grid) Start() Position {
	return Position{Row: g.rows - 1, Column: 0}
}
