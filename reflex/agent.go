package reflex

import (
	"fmt"
	"math"
	"time"

	"capture/game"
	"capture/meta"
	"capture/metrics"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// View is what a variant knows about the agent it scores moves for.
type View struct {
	Index     int
	Start     game.Position
	Distancer game.Distancer
}

// Team returns the agent's team.
func (v View) Team() game.Team {
	return game.TeamOf(v.Index)
}

// Variant supplies the features and weights that make an agent offensive,
// defensive, or anything else scored by a linear combination.
type Variant interface {
	Name() string
	// Features extracts the feature vector of playing move from state.
	Features(view View, state game.State, move game.Direction) (Features, error)
	Weights() Weights
}

type Option func(a *Agent)

// WithRand sets the random source used to break ties between best moves.
func WithRand(rng *rand.Rand) Option {
	return func(a *Agent) {
		if rng != nil {
			a.rng = rng
		}
	}
}

// WithSeed seeds a fresh random source for tie-breaking.
func WithSeed(seed uint64) Option {
	return func(a *Agent) {
		a.rng = rand.New(rand.NewSource(seed))
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(a *Agent) {
		a.logger = logger
	}
}

func WithMetrics(collector metrics.Collector) Option {
	return func(a *Agent) {
		if collector != nil {
			a.metrics = collector
		}
	}
}

// WithEndgameThreshold sets the food count at or below which the agent
// runs home instead of scoring moves.
func WithEndgameThreshold(food int) Option {
	return func(a *Agent) {
		if food >= 0 {
			a.endgame = food
		}
	}
}

// Agent is a one-ply reflex agent: it scores every legal move with its
// variant and plays the best one.
type Agent struct {
	index      int
	timeBudget time.Duration
	variant    Variant
	rng        *rand.Rand
	logger     zerolog.Logger
	metrics    metrics.Collector
	endgame    int

	// Set once by RegisterInitialState.
	registered bool
	start      game.Position
	distancer  game.Distancer
}

func New(index int, timeBudget time.Duration, variant Variant, options ...Option) *Agent {
	if variant == nil {
		panic("agent needs a variant")
	}
	a := &Agent{ // Default values
		index:      index,
		timeBudget: timeBudget,
		variant:    variant,
		rng:        rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
		logger:     log.Logger,
		metrics:    metrics.NewDummyCollector(),
		endgame:    meta.EndgameFoodThreshold,
	}
	for _, option := range options {
		option(a)
	}
	a.logger = a.logger.With().Int("agent", index).Str("variant", variant.Name()).Logger()
	return a
}

func (a *Agent) Index() int                { return a.index }
func (a *Agent) TimeBudget() time.Duration { return a.timeBudget }
func (a *Agent) Variant() Variant          { return a.variant }

// Start returns the recorded starting position.
func (a *Agent) Start() (game.Position, bool) {
	return a.start, a.registered
}

// RegisterInitialState records the agent's starting position and the
// distance oracle for the match. Only the first call has any effect.
func (a *Agent) RegisterInitialState(state game.State, distancer game.Distancer) error {
	if a.registered {
		return nil
	}
	if distancer == nil {
		return fmt.Errorf("agent %d: nil distancer", a.index)
	}
	pos, ok := state.AgentPosition(a.index)
	if !ok {
		return fmt.Errorf("%w: agent %d has no starting position", ErrUnresolvedPosition, a.index)
	}
	a.start = pos
	a.distancer = distancer
	a.registered = true
	a.logger.Debug().Stringer("start", pos).Msg("registered initial state")
	return nil
}

func (a *Agent) view() View {
	return View{Index: a.index, Start: a.start, Distancer: a.distancer}
}

// Evaluate scores move as the dot product of its features and the
// variant's weights.
func (a *Agent) Evaluate(state game.State, move game.Direction) (float64, error) {
	if !a.registered {
		return 0, ErrNotRegistered
	}
	features, err := a.variant.Features(a.view(), state, move)
	if err != nil {
		return 0, err
	}
	score, err := a.variant.Weights().Dot(features)
	if err != nil {
		return 0, fmt.Errorf("%s agent %d: %w", a.variant.Name(), a.index, err)
	}
	a.logger.Debug().Stringer("move", move).Stringer("features", features).Float64("score", score).Msg("evaluated move")
	return score, nil
}

// ChooseAction picks the best scoring legal move, breaking ties at random.
// Once the team has little food left to collect it instead picks the move
// that brings the agent closest to its start.
func (a *Agent) ChooseAction(state game.State) (game.Direction, error) {
	if !a.registered {
		return game.Stop, ErrNotRegistered
	}
	began := time.Now()
	a.metrics.Start(a.index, a.variant.Name(), a.timeBudget)

	moves := state.LegalMoves(a.index)
	if len(moves) == 0 {
		return game.Stop, fmt.Errorf("%w: agent %d", ErrNoLegalMove, a.index)
	}

	best := math.Inf(-1)
	scores := make([]float64, len(moves))
	for i, move := range moves {
		score, err := a.Evaluate(state, move)
		if err != nil {
			return game.Stop, err
		}
		a.metrics.AddEvaluation()
		scores[i] = score
		if score > best {
			best = score
		}
	}

	ties := make([]game.Direction, 0, len(moves))
	for i, move := range moves {
		if scores[i] == best {
			ties = append(ties, move)
		}
	}
	a.metrics.SetTieSize(len(ties))

	var choice game.Direction
	foodLeft := len(state.Food(game.TeamOf(a.index)))
	if foodLeft <= a.endgame {
		a.metrics.SetEndgame(true)
		move, err := a.retreat(state, moves)
		if err != nil {
			return game.Stop, err
		}
		choice = move
	} else {
		choice = ties[a.rng.Intn(len(ties))]
	}

	a.metrics.Complete()
	elapsed := time.Since(began)
	if a.timeBudget > 0 && elapsed > a.timeBudget {
		a.logger.Warn().Dur("elapsed", elapsed).Dur("budget", a.timeBudget).Msg("decision exceeded time budget")
	}
	a.logger.Debug().
		Stringer("move", choice).
		Float64("best", best).
		Int("ties", len(ties)).
		Int("food_left", foodLeft).
		Msg("chose action")
	return choice, nil
}

// retreat returns the move whose successor is nearest to the start.
// The first move wins ties.
func (a *Agent) retreat(state game.State, moves []game.Direction) (game.Direction, error) {
	choice := moves[0]
	best := math.Inf(1)
	for _, move := range moves {
		next, err := Successor(state, a.index, move)
		if err != nil {
			return game.Stop, err
		}
		pos, _ := next.AgentPosition(a.index)
		dist, err := a.distancer.Distance(a.start, pos)
		if err != nil {
			return game.Stop, fmt.Errorf("distance home for agent %d: %w", a.index, err)
		}
		if dist < best {
			best = dist
			choice = move
		}
	}
	return choice, nil
}
