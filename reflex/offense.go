package reflex

import (
	"fmt"

	"capture/game"
	"capture/meta"
	"capture/utils"
)

var offensiveFeatures = []Feature{SuccessorScore, DistanceToFood, EnemyDistance, ReturnPriority}

var offensiveWeights = mustWeights(offensiveFeatures, map[Feature]float64{
	SuccessorScore: 100,
	DistanceToFood: -1,
	EnemyDistance:  2,
	ReturnPriority: -10,
})

// Offensive forages on the opponent's side: it wants food eaten, food
// close, defenders far, and a full load taken home.
type Offensive struct{}

func (Offensive) Name() string { return "offensive" }

func (Offensive) Weights() Weights { return offensiveWeights }

func (Offensive) Features(view View, state game.State, move game.Direction) (Features, error) {
	successor, err := Successor(state, view.Index, move)
	if err != nil {
		return nil, err
	}
	pos, _ := successor.AgentPosition(view.Index)
	distanceFrom := func(target game.Position) (float64, error) {
		return view.Distancer.Distance(pos, target)
	}

	features := Features{}

	food := successor.Food(view.Team())
	features[SuccessorScore] = -float64(len(food))
	if len(food) > 0 {
		dist, err := utils.MinOf(food, distanceFrom)
		if err != nil {
			return nil, fmt.Errorf("distance to food: %w", err)
		}
		features[DistanceToFood] = dist
	}

	// Defenders on their own side are the ones that can eat us.
	var chasers []game.Position
	for _, opponent := range successor.Opponents(view.Index) {
		enemy, visible := successor.AgentPosition(opponent)
		if visible && !successor.AgentInfo(opponent).Incursive {
			chasers = append(chasers, enemy)
		}
	}
	if len(chasers) > 0 {
		dist, err := utils.MinOf(chasers, distanceFrom)
		if err != nil {
			return nil, fmt.Errorf("distance to chaser: %w", err)
		}
		features[EnemyDistance] = dist
	}

	if successor.AgentInfo(view.Index).Carrying > meta.CarryReturnThreshold {
		dist, err := distanceFrom(view.Start)
		if err != nil {
			return nil, fmt.Errorf("distance home: %w", err)
		}
		features[ReturnPriority] = dist
	}

	return features, nil
}
