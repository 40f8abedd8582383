package reflex

import (
	"fmt"

	"capture/game"
	"capture/utils"
)

var defensiveFeatures = []Feature{OnDefense, NumInvaders, InvaderDistance, Stop, Reverse, CapsuleProximity}

var defensiveWeights = mustWeights(defensiveFeatures, map[Feature]float64{
	NumInvaders:      -1000,
	OnDefense:        100,
	InvaderDistance:  -10,
	Stop:             -100,
	Reverse:          -2,
	CapsuleProximity: 50,
})

// Defensive stays home, hunts invaders and patrols its capsules.
type Defensive struct{}

func (Defensive) Name() string { return "defensive" }

func (Defensive) Weights() Weights { return defensiveWeights }

func (Defensive) Features(view View, state game.State, move game.Direction) (Features, error) {
	successor, err := Successor(state, view.Index, move)
	if err != nil {
		return nil, err
	}
	pos, _ := successor.AgentPosition(view.Index)
	distanceFrom := func(target game.Position) (float64, error) {
		return view.Distancer.Distance(pos, target)
	}

	features := Features{}

	features[OnDefense] = 1
	if successor.AgentInfo(view.Index).Incursive {
		features[OnDefense] = 0
	}

	var invaders []game.Position
	for _, opponent := range successor.Opponents(view.Index) {
		enemy, visible := successor.AgentPosition(opponent)
		if visible && successor.AgentInfo(opponent).Incursive {
			invaders = append(invaders, enemy)
		}
	}
	features[NumInvaders] = float64(len(invaders))
	if len(invaders) > 0 {
		dist, err := utils.MinOf(invaders, distanceFrom)
		if err != nil {
			return nil, fmt.Errorf("distance to invader: %w", err)
		}
		features[InvaderDistance] = dist
	}

	if move == game.Stop {
		features[Stop] = 1
	}
	// Facing is read before the move is played.
	if move == state.AgentInfo(view.Index).Facing.Reverse() {
		features[Reverse] = 1
	}

	capsules := successor.DefendedCapsules(view.Team())
	if len(capsules) > 0 {
		dist, err := utils.MinOf(capsules, distanceFrom)
		if err != nil {
			return nil, fmt.Errorf("distance to capsule: %w", err)
		}
		features[CapsuleProximity] = -dist
	}

	return features, nil
}
