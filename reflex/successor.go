package reflex

import (
	"fmt"

	"capture/game"
)

// Successor returns the state after agent plays move, advanced a second
// step with the same move when the first leaves the agent between cells.
func Successor(state game.State, agent int, move game.Direction) (game.State, error) {
	next, err := state.Successor(agent, move)
	if err != nil {
		return nil, fmt.Errorf("successor for agent %d %s: %w", agent, move, err)
	}
	pos, ok := next.AgentPosition(agent)
	if !ok {
		return nil, fmt.Errorf("%w: agent %d has no position after %s", ErrUnresolvedPosition, agent, move)
	}
	if pos.Aligned() {
		return next, nil
	}

	next, err = next.Successor(agent, move)
	if err != nil {
		return nil, fmt.Errorf("second step for agent %d %s: %w", agent, move, err)
	}
	pos, ok = next.AgentPosition(agent)
	if !ok || !pos.Aligned() {
		return nil, fmt.Errorf("%w: agent %d at %s after two %s steps", ErrUnresolvedPosition, agent, pos, move)
	}
	return next, nil
}
