package agent

import (
	"errors"
	"fmt"
	"sort"

	"capture/meta"
	"capture/metrics"
	"capture/reflex"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var ErrUnknownVariant = errors.New("unknown agent variant")

var variants = map[string]reflex.Variant{
	reflex.Offensive{}.Name(): reflex.Offensive{},
	reflex.Defensive{}.Name(): reflex.Defensive{},
}

// Variants returns the registered variant names in sorted order.
func Variants() []string {
	names := make([]string, 0, len(variants))
	for name := range variants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LookupVariant returns the variant registered under name.
func LookupVariant(name string) (reflex.Variant, error) {
	v, ok := variants[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (have %v)", ErrUnknownVariant, name, Variants())
	}
	return v, nil
}

type teamOptions struct {
	logger  zerolog.Logger
	metrics metrics.Collector
}

type TeamOption func(o *teamOptions)

func WithLogger(logger zerolog.Logger) TeamOption {
	return func(o *teamOptions) {
		o.logger = logger
	}
}

// WithMetrics shares one collector between both agents of the team.
func WithMetrics(collector metrics.Collector) TeamOption {
	return func(o *teamOptions) {
		o.metrics = collector
	}
}

// CreateTeam builds the agents at indices first and second using the
// variants named in cfg. Each agent gets its own random source derived
// from cfg.Seed so a team can be replayed exactly.
func CreateTeam(first, second int, cfg meta.Config, options ...TeamOption) ([]*reflex.Agent, error) {
	o := &teamOptions{logger: log.Logger, metrics: metrics.NewDummyCollector()}
	for _, option := range options {
		option(o)
	}

	members := []struct {
		index   int
		variant string
	}{
		{first, cfg.First},
		{second, cfg.Second},
	}

	team := make([]*reflex.Agent, 0, len(members))
	for _, m := range members {
		variant, err := LookupVariant(m.variant)
		if err != nil {
			return nil, fmt.Errorf("agent %d: %w", m.index, err)
		}
		team = append(team, reflex.New(m.index, cfg.TimeBudget, variant,
			reflex.WithSeed(cfg.Seed+uint64(m.index)),
			reflex.WithLogger(o.logger),
			reflex.WithMetrics(o.metrics),
			reflex.WithEndgameThreshold(cfg.Endgame()),
		))
	}
	return team, nil
}
