// Package layout provides an in-memory board that answers the queries the
// reflex agents make of the engine. It is meant for tests and offline
// inspection of single decisions, not for running matches.
package layout

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"capture/game"
)

var ErrMalformed = errors.New("malformed layout")

const (
	wallChar    = '%'
	foodChar    = '.'
	capsuleChar = 'o'
	openChar    = ' '
)

// Layout is a parsed maze. Row 0 of the text is the top of the board, so
// y grows northwards.
type Layout struct {
	Width    int
	Height   int
	walls    [][]bool // indexed [x][y]
	food     []game.Position
	capsules []game.Position
	starts   []game.Position // indexed by agent
}

// Parse reads a maze drawn with '%' walls, '.' food, 'o' capsules and the
// digits 0-9 for agent starting cells.
func Parse(text string) (*Layout, error) {
	lines := strings.Split(strings.Trim(text, "\n"), "\n")
	if len(lines) == 0 || lines[0] == "" {
		return nil, fmt.Errorf("%w: empty", ErrMalformed)
	}
	width := len(lines[0])
	height := len(lines)

	l := &Layout{Width: width, Height: height, walls: make([][]bool, width)}
	for x := range l.walls {
		l.walls[x] = make([]bool, height)
	}

	starts := map[int]game.Position{}
	for row, line := range lines {
		if len(line) != width {
			return nil, fmt.Errorf("%w: row %d has width %d, want %d", ErrMalformed, row, len(line), width)
		}
		y := height - 1 - row
		for x, c := range line {
			pos := game.Cell(x, y)
			switch {
			case c == wallChar:
				l.walls[x][y] = true
			case c == foodChar:
				l.food = append(l.food, pos)
			case c == capsuleChar:
				l.capsules = append(l.capsules, pos)
			case c >= '0' && c <= '9':
				index := int(c - '0')
				if _, dup := starts[index]; dup {
					return nil, fmt.Errorf("%w: agent %d placed twice", ErrMalformed, index)
				}
				starts[index] = pos
			case c == openChar:
			default:
				return nil, fmt.Errorf("%w: unexpected %q at row %d column %d", ErrMalformed, c, row, x)
			}
		}
	}

	l.starts = make([]game.Position, len(starts))
	for index, pos := range starts {
		if index >= len(starts) {
			return nil, fmt.Errorf("%w: agent indices must be 0..%d", ErrMalformed, len(starts)-1)
		}
		l.starts[index] = pos
	}
	sortPositions(l.food)
	sortPositions(l.capsules)
	return l, nil
}

// MustParse is like Parse but panics on error.
func MustParse(text string) *Layout {
	l, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return l
}

// Agents returns the number of agents placed on the layout.
func (l *Layout) Agents() int {
	return len(l.starts)
}

// Start returns the starting cell of agent.
func (l *Layout) Start(agent int) game.Position {
	return l.starts[agent]
}

// IsWall reports whether pos is a wall or off the board.
func (l *Layout) IsWall(pos game.Position) bool {
	if !pos.Aligned() {
		return true
	}
	x, y := int(pos.X), int(pos.Y)
	if x < 0 || x >= l.Width || y < 0 || y >= l.Height {
		return true
	}
	return l.walls[x][y]
}

// Side returns the team whose half contains pos. Red owns the left half.
func (l *Layout) Side(pos game.Position) game.Team {
	if int(pos.X) < l.Width/2 {
		return game.Red
	}
	return game.Blue
}

// neighbours returns the open cells one step from pos in direction order.
func (l *Layout) neighbours(pos game.Position) []game.Position {
	var out []game.Position
	for _, d := range game.Directions {
		if d == game.Stop {
			continue
		}
		next := pos.Step(d)
		if !l.IsWall(next) {
			out = append(out, next)
		}
	}
	return out
}

func sortPositions(ps []game.Position) {
	sort.Slice(ps, func(i, j int) bool {
		if ps[i].X != ps[j].X {
			return ps[i].X < ps[j].X
		}
		return ps[i].Y < ps[j].Y
	})
}
