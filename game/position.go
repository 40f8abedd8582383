package game

import (
	"fmt"
	"math"
)

// Position is a board coordinate. Agents may sit between cells while
// moving, so coordinates are not necessarily whole numbers.
type Position struct {
	X float64
	Y float64
}

// Cell returns the cell-aligned position at column x, row y.
func Cell(x, y int) Position {
	return Position{X: float64(x), Y: float64(y)}
}

// Nearest snaps p to the nearest cell.
func (p Position) Nearest() Position {
	return Position{X: math.Floor(p.X + 0.5), Y: math.Floor(p.Y + 0.5)}
}

// Aligned reports whether p already sits on a cell.
func (p Position) Aligned() bool {
	return p == p.Nearest()
}

// Step returns the position one step away in direction d.
func (p Position) Step(d Direction) Position {
	dx, dy := d.Vector()
	return Position{X: p.X + dx, Y: p.Y + dy}
}

func (p Position) String() string {
	return fmt.Sprintf("(%g,%g)", p.X, p.Y)
}
