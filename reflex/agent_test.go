package reflex

import (
	"errors"
	"testing"
	"time"

	"capture/game"
	"capture/metrics"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func plentyOfFood() []game.Position {
	return []game.Position{game.Cell(5, 5), game.Cell(6, 5), game.Cell(7, 5)}
}

func newTestAgent(t *testing.T, variant Variant, state game.State, distancer game.Distancer, options ...Option) *Agent {
	t.Helper()
	options = append([]Option{WithLogger(zerolog.Nop()), WithSeed(1)}, options...)
	a := New(0, time.Second, variant, options...)
	require.NoError(t, a.RegisterInitialState(state, distancer))
	return a
}

func TestRegisterInitialState(t *testing.T) {
	t.Run("records start once", func(t *testing.T) {
		first := &mockState{positions: map[int]game.Position{0: game.Cell(1, 1)}}
		later := &mockState{positions: map[int]game.Position{0: game.Cell(4, 4)}}
		a := New(0, time.Second, Offensive{}, WithLogger(zerolog.Nop()))

		_, ok := a.Start()
		require.False(t, ok)

		require.NoError(t, a.RegisterInitialState(first, manhattan))
		require.NoError(t, a.RegisterInitialState(later, manhattan))

		start, ok := a.Start()
		require.True(t, ok)
		require.Equal(t, game.Cell(1, 1), start, "Start should be read-only after registration")
	})

	t.Run("missing position", func(t *testing.T) {
		a := New(0, time.Second, Offensive{}, WithLogger(zerolog.Nop()))
		err := a.RegisterInitialState(&mockState{}, manhattan)
		require.ErrorIs(t, err, ErrUnresolvedPosition)
	})

	t.Run("nil distancer", func(t *testing.T) {
		a := New(0, time.Second, Offensive{}, WithLogger(zerolog.Nop()))
		state := &mockState{positions: map[int]game.Position{0: game.Cell(1, 1)}}
		require.Error(t, a.RegisterInitialState(state, nil))
	})

	t.Run("constructor keeps index and budget", func(t *testing.T) {
		a := New(3, 250*time.Millisecond, Defensive{})
		require.Equal(t, 3, a.Index())
		require.Equal(t, 250*time.Millisecond, a.TimeBudget())
		require.Equal(t, "defensive", a.Variant().Name())
	})

	t.Run("nil variant panics", func(t *testing.T) {
		require.Panics(t, func() { New(0, time.Second, nil) })
	})
}

func TestEvaluate(t *testing.T) {
	state := &mockState{
		moves:     []game.Direction{game.East, game.West},
		positions: map[int]game.Position{0: game.Cell(1, 1)},
		food:      plentyOfFood(),
	}

	t.Run("equal features give equal scores", func(t *testing.T) {
		variant := stubVariant{scores: map[game.Direction]float64{game.East: 0.7, game.West: 0.7}}
		a := newTestAgent(t, variant, state, manhattan)

		east, err := a.Evaluate(state, game.East)
		require.NoError(t, err)
		west, err := a.Evaluate(state, game.West)
		require.NoError(t, err)
		require.Equal(t, east, west)
	})

	t.Run("requires registration", func(t *testing.T) {
		a := New(0, time.Second, stubVariant{}, WithLogger(zerolog.Nop()))
		_, err := a.Evaluate(state, game.East)
		require.ErrorIs(t, err, ErrNotRegistered)
	})

	t.Run("undeclared feature fails", func(t *testing.T) {
		variant := stubVariant{extra: Features{Stop: 1}}
		a := newTestAgent(t, variant, state, manhattan)

		_, err := a.Evaluate(state, game.East)
		require.ErrorIs(t, err, ErrUnknownFeature)
	})
}

func TestChooseAction(t *testing.T) {
	t.Run("requires registration", func(t *testing.T) {
		a := New(0, time.Second, stubVariant{}, WithLogger(zerolog.Nop()))
		_, err := a.ChooseAction(&mockState{})
		require.ErrorIs(t, err, ErrNotRegistered)
	})

	t.Run("no legal moves", func(t *testing.T) {
		state := &mockState{positions: map[int]game.Position{0: game.Cell(1, 1)}, food: plentyOfFood()}
		a := newTestAgent(t, stubVariant{}, state, manhattan)

		_, err := a.ChooseAction(state)
		require.ErrorIs(t, err, ErrNoLegalMove)
	})

	t.Run("unique best move is deterministic", func(t *testing.T) {
		state := &mockState{
			moves:     []game.Direction{game.North, game.South, game.East, game.Stop},
			positions: map[int]game.Position{0: game.Cell(1, 1)},
			food:      plentyOfFood(),
		}
		variant := stubVariant{scores: map[game.Direction]float64{game.North: 1, game.South: 3, game.East: 2}}

		for seed := uint64(0); seed < 20; seed++ {
			a := newTestAgent(t, variant, state, manhattan, WithSeed(seed))
			got, err := a.ChooseAction(state)
			require.NoError(t, err)
			require.Equal(t, game.South, got)
		}
	})

	t.Run("ties are broken among best moves only", func(t *testing.T) {
		state := &mockState{
			moves:     []game.Direction{game.North, game.South, game.East, game.West},
			positions: map[int]game.Position{0: game.Cell(1, 1)},
			food:      plentyOfFood(),
		}
		variant := stubVariant{scores: map[game.Direction]float64{game.North: 5, game.South: 1, game.East: 5, game.West: 4}}
		a := newTestAgent(t, variant, state, manhattan, WithRand(rand.New(rand.NewSource(42))))

		seen := map[game.Direction]int{}
		for i := 0; i < 200; i++ {
			got, err := a.ChooseAction(state)
			require.NoError(t, err)
			seen[got]++
		}
		require.ElementsMatch(t, []game.Direction{game.North, game.East}, keys(seen))
	})

	t.Run("same seed replays the same choices", func(t *testing.T) {
		state := &mockState{
			moves:     []game.Direction{game.North, game.South, game.East},
			positions: map[int]game.Position{0: game.Cell(1, 1)},
			food:      plentyOfFood(),
		}
		variant := stubVariant{}
		a := newTestAgent(t, variant, state, manhattan, WithSeed(9))
		b := newTestAgent(t, variant, state, manhattan, WithSeed(9))
		for i := 0; i < 20; i++ {
			ga, err := a.ChooseAction(state)
			require.NoError(t, err)
			gb, err := b.ChooseAction(state)
			require.NoError(t, err)
			require.Equal(t, ga, gb)
		}
	})

	t.Run("endgame runs home regardless of score", func(t *testing.T) {
		start := game.Cell(1, 1)
		home := map[game.Position]float64{game.Cell(2, 1): 3, game.Cell(1, 2): 1}
		distancer := distanceFunc(func(a, b game.Position) (float64, error) {
			return home[b], nil
		})
		base := &mockState{
			moves:     []game.Direction{game.East, game.North},
			positions: map[int]game.Position{0: start},
			food:      []game.Position{game.Cell(9, 9), game.Cell(9, 8)},
		}
		base.successors = map[game.Direction]*mockState{
			game.East:  base.at(game.Cell(2, 1)),
			game.North: base.at(game.Cell(1, 2)),
		}
		variant := stubVariant{scores: map[game.Direction]float64{game.East: 1000, game.North: -1000}}
		a := newTestAgent(t, variant, base, distancer)

		got, err := a.ChooseAction(base)
		require.NoError(t, err)
		require.Equal(t, game.North, got)
	})

	t.Run("endgame ties keep the first move", func(t *testing.T) {
		base := &mockState{
			moves:     []game.Direction{game.West, game.East, game.North},
			positions: map[int]game.Position{0: game.Cell(2, 1)},
			food:      []game.Position{game.Cell(9, 9)},
		}
		base.successors = map[game.Direction]*mockState{
			game.West:  base.at(game.Cell(1, 1)),
			game.East:  base.at(game.Cell(3, 1)),
			game.North: base.at(game.Cell(2, 2)),
		}
		// Start (2,1): every successor is one step away.
		a := newTestAgent(t, stubVariant{scores: map[game.Direction]float64{game.North: 9}}, base, manhattan)

		got, err := a.ChooseAction(base)
		require.NoError(t, err)
		require.Equal(t, game.West, got)
	})

	t.Run("endgame threshold is configurable", func(t *testing.T) {
		base := &mockState{
			moves:     []game.Direction{game.West, game.East},
			positions: map[int]game.Position{0: game.Cell(2, 1)},
			food:      []game.Position{game.Cell(9, 9), game.Cell(9, 8)},
		}
		base.successors = map[game.Direction]*mockState{
			game.West: base.at(game.Cell(1, 1)),
			game.East: base.at(game.Cell(3, 1)),
		}
		variant := stubVariant{scores: map[game.Direction]float64{game.East: 1}}
		a := newTestAgent(t, variant, base, manhattan, WithEndgameThreshold(1))

		got, err := a.ChooseAction(base)
		require.NoError(t, err)
		require.Equal(t, game.East, got, "Two food left is not endgame with threshold 1")
	})

	t.Run("distance errors propagate in endgame", func(t *testing.T) {
		boom := errors.New("disconnected")
		distancer := distanceFunc(func(a, b game.Position) (float64, error) {
			return 0, boom
		})
		state := &mockState{
			moves:     []game.Direction{game.Stop},
			positions: map[int]game.Position{0: game.Cell(1, 1)},
		}
		a := newTestAgent(t, stubVariant{}, state, distancer)

		_, err := a.ChooseAction(state)
		require.ErrorIs(t, err, boom)
	})

	t.Run("metrics record the decision", func(t *testing.T) {
		state := &mockState{
			moves:     []game.Direction{game.North, game.South},
			positions: map[int]game.Position{0: game.Cell(1, 1)},
			food:      plentyOfFood(),
		}
		collector := metrics.NewCollector()
		a := newTestAgent(t, stubVariant{}, state, manhattan, WithMetrics(collector))

		_, err := a.ChooseAction(state)
		require.NoError(t, err)

		records := collector.Records()
		require.Len(t, records, 1)
		require.Equal(t, "stub", records[0].Variant)
		require.Equal(t, 2, records[0].Evaluations)
		require.Equal(t, 2, records[0].TieSize)
		require.False(t, records[0].Endgame)
	})
}

func keys[K comparable, V any](m map[K]V) []K {
	out := make([]K, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
