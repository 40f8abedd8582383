package game

// Team identifies one side of the board.
type Team int

const (
	Red Team = iota
	Blue
)

func (t Team) String() string {
	if t == Red {
		return "Red"
	}
	return "Blue"
}

// Other returns the opposing team.
func (t Team) Other() Team {
	if t == Red {
		return Blue
	}
	return Red
}

// TeamOf returns the team of the agent at index. Red agents have even indices.
func TeamOf(index int) Team {
	if index%2 == 0 {
		return Red
	}
	return Blue
}

// AgentInfo is what the engine reveals about an agent's status.
type AgentInfo struct {
	Incursive bool      // attacking on the opponent's side (pursued)
	Carrying  int       // collected resources not yet banked
	Facing    Direction // direction of the last move
}

// State is an immutable game snapshot provided by the engine.
// Implementations must never mutate a State once handed out; Successor
// returns a new snapshot.
type State interface {
	LegalMoves(agent int) []Direction
	Successor(agent int, move Direction) (State, error)
	// AgentPosition reports false when the agent is not observable.
	AgentPosition(agent int) (Position, bool)
	AgentInfo(agent int) AgentInfo
	Opponents(agent int) []int
	// Food returns the resources team can still collect (on the opponent's side).
	Food(team Team) []Position
	// DefendedCapsules returns the capsules on team's own side.
	DefendedCapsules(team Team) []Position
}

// Distancer answers true shortest-path distances between cells.
type Distancer interface {
	Distance(a, b Position) (float64, error)
}
