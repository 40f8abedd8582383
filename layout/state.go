package layout

import (
	"errors"
	"fmt"
	"slices"

	"capture/game"
	"capture/utils"
)

var ErrIllegalMove = errors.New("illegal move")

type agentState struct {
	pos      game.Position
	facing   game.Direction
	carrying int
	hidden   bool
}

// State is an immutable snapshot of a layout in play. Every method that
// changes something returns a new State.
type State struct {
	layout   *Layout
	agents   []agentState
	food     []game.Position
	capsules []game.Position
	banked   [2]int // by team
}

var _ game.State = (*State)(nil)

// NewState places every agent on its start with all food and capsules
// still on the board.
func NewState(l *Layout) *State {
	s := &State{
		layout:   l,
		agents:   make([]agentState, l.Agents()),
		food:     slices.Clone(l.food),
		capsules: slices.Clone(l.capsules),
	}
	for i := range s.agents {
		s.agents[i] = agentState{pos: l.Start(i), facing: game.Stop}
	}
	return s
}

func (s *State) copy() *State {
	return &State{
		layout:   s.layout,
		agents:   slices.Clone(s.agents),
		food:     s.food,
		capsules: s.capsules,
		banked:   s.banked,
	}
}

func (s *State) Layout() *Layout {
	return s.layout
}

func (s *State) valid(agent int) bool {
	return agent >= 0 && agent < len(s.agents)
}

func (s *State) LegalMoves(agent int) []game.Direction {
	if !s.valid(agent) {
		return nil
	}
	pos := s.agents[agent].pos
	var moves []game.Direction
	for _, d := range game.Directions {
		if d == game.Stop || !s.layout.IsWall(pos.Step(d)) {
			moves = append(moves, d)
		}
	}
	return moves
}

func (s *State) Successor(agent int, move game.Direction) (game.State, error) {
	if !s.valid(agent) {
		return nil, fmt.Errorf("%w: no agent %d", ErrIllegalMove, agent)
	}
	if !slices.Contains(s.LegalMoves(agent), move) {
		return nil, fmt.Errorf("%w: agent %d cannot move %s from %s", ErrIllegalMove, agent, move, s.agents[agent].pos)
	}

	next := s.copy()
	a := &next.agents[agent]
	a.pos = a.pos.Step(move)
	a.facing = move

	team := game.TeamOf(agent)
	if s.layout.Side(a.pos) == team {
		next.banked[team] += a.carrying
		a.carrying = 0
		return next, nil
	}
	if i := utils.FindIndex(next.food, a.pos); i >= 0 {
		next.food = slices.Delete(slices.Clone(next.food), i, i+1)
		a.carrying++
	}
	if i := utils.FindIndex(next.capsules, a.pos); i >= 0 {
		next.capsules = slices.Delete(slices.Clone(next.capsules), i, i+1)
	}
	return next, nil
}

func (s *State) AgentPosition(agent int) (game.Position, bool) {
	if !s.valid(agent) || s.agents[agent].hidden {
		return game.Position{}, false
	}
	return s.agents[agent].pos, true
}

func (s *State) AgentInfo(agent int) game.AgentInfo {
	if !s.valid(agent) {
		return game.AgentInfo{}
	}
	a := s.agents[agent]
	return game.AgentInfo{
		Incursive: s.layout.Side(a.pos) != game.TeamOf(agent),
		Carrying:  a.carrying,
		Facing:    a.facing,
	}
}

func (s *State) Opponents(agent int) []int {
	team := game.TeamOf(agent)
	var out []int
	for i := range s.agents {
		if game.TeamOf(i) != team {
			out = append(out, i)
		}
	}
	return out
}

func (s *State) Food(team game.Team) []game.Position {
	var out []game.Position
	for _, pos := range s.food {
		if s.layout.Side(pos) != team {
			out = append(out, pos)
		}
	}
	return out
}

func (s *State) DefendedCapsules(team game.Team) []game.Position {
	var out []game.Position
	for _, pos := range s.capsules {
		if s.layout.Side(pos) == team {
			out = append(out, pos)
		}
	}
	return out
}

// Banked returns the food team has carried home.
func (s *State) Banked(team game.Team) int {
	return s.banked[team]
}

// Hide returns a copy in which the given agents are not observable.
func (s *State) Hide(agents ...int) *State {
	next := s.copy()
	for _, i := range agents {
		if next.valid(i) {
			next.agents[i].hidden = true
		}
	}
	return next
}

// Place returns a copy with agent moved to pos, facing facing and
// carrying carrying food. It is meant for setting up positions.
func (s *State) Place(agent int, pos game.Position, facing game.Direction, carrying int) (*State, error) {
	if !s.valid(agent) || s.layout.IsWall(pos) {
		return nil, fmt.Errorf("%w: cannot place agent %d at %s", ErrIllegalMove, agent, pos)
	}
	next := s.copy()
	next.agents[agent] = agentState{pos: pos, facing: facing, carrying: carrying}
	return next, nil
}
