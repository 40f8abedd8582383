package reflex

import (
	"math"

	"capture/game"
)

type mockState struct {
	moves      []game.Direction
	positions  map[int]game.Position // absent agents are not visible
	infos      map[int]game.AgentInfo
	opponents  []int
	food       []game.Position
	capsules   []game.Position
	successors map[game.Direction]*mockState // absent moves return the same state
	err        error
}

func (m *mockState) LegalMoves(agent int) []game.Direction {
	return m.moves
}

func (m *mockState) Successor(agent int, move game.Direction) (game.State, error) {
	if m.err != nil {
		return nil, m.err
	}
	if next, ok := m.successors[move]; ok {
		return next, nil
	}
	return m, nil
}

func (m *mockState) AgentPosition(agent int) (game.Position, bool) {
	pos, ok := m.positions[agent]
	return pos, ok
}

func (m *mockState) AgentInfo(agent int) game.AgentInfo {
	return m.infos[agent]
}

func (m *mockState) Opponents(agent int) []int {
	return m.opponents
}

func (m *mockState) Food(team game.Team) []game.Position {
	return m.food
}

func (m *mockState) DefendedCapsules(team game.Team) []game.Position {
	return m.capsules
}

// at returns a copy of m with agent 0 moved to pos.
func (m *mockState) at(pos game.Position) *mockState {
	c := *m
	c.positions = map[int]game.Position{}
	for k, v := range m.positions {
		c.positions[k] = v
	}
	c.positions[0] = pos
	c.successors = nil
	return &c
}

type distanceFunc func(a, b game.Position) (float64, error)

func (f distanceFunc) Distance(a, b game.Position) (float64, error) {
	return f(a, b)
}

var manhattan = distanceFunc(func(a, b game.Position) (float64, error) {
	return math.Abs(a.X-b.X) + math.Abs(a.Y-b.Y), nil
})

// stubVariant scores each move by a fixed table.
type stubVariant struct {
	scores map[game.Direction]float64
	extra  Features
}

var stubWeights = mustWeights([]Feature{SuccessorScore}, map[Feature]float64{SuccessorScore: 1})

func (stubVariant) Name() string     { return "stub" }
func (stubVariant) Weights() Weights { return stubWeights }

func (s stubVariant) Features(view View, state game.State, move game.Direction) (Features, error) {
	fs := Features{SuccessorScore: s.scores[move]}
	for f, v := range s.extra {
		fs[f] = v
	}
	return fs, nil
}
