package game

// Direction is a move token. Stop is the no-op.
type Direction int

const (
	North Direction = iota
	South
	East
	West
	Stop
)

// Directions lists every move token in enumeration order.
var Directions = []Direction{North, South, East, West, Stop}

var directionNames = map[Direction]string{
	North: "North",
	South: "South",
	East:  "East",
	West:  "West",
	Stop:  "Stop",
}

func (d Direction) String() string {
	if name, ok := directionNames[d]; ok {
		return name
	}
	return "Unknown"
}

// Reverse returns the opposite direction. Stop reverses to itself.
func (d Direction) Reverse() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	default:
		return Stop
	}
}

// Vector returns the unit offset of a single step in direction d.
func (d Direction) Vector() (dx, dy float64) {
	switch d {
	case North:
		return 0, 1
	case South:
		return 0, -1
	case East:
		return 1, 0
	case West:
		return -1, 0
	default:
		return 0, 0
	}
}
