package main

import (
	"flag"
	"os"

	"capture/agent"
	"capture/game"
	"capture/layout"
	"capture/meta"
	"capture/metrics"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const defaultLayout = `
%%%%%%%%%%%%%%%%%%%%
%0 .  %    .  %.  1%
% %%% % %%%%. %%% %%
%2 o. .   .   .  o3%
%%%%%%%%%%%%%%%%%%%%
`

func main() {
	layoutPath := flag.String("layout", "", "Path to a layout file (defaults to a built-in maze)")
	configPath := flag.String("config", "", "Path to a YAML team config")
	seed := flag.Uint64("seed", 0, "Tie-breaking seed (overrides the config)")
	blue := flag.Bool("blue", false, "Decide for the blue team instead of red")
	metricsDir := flag.String("metrics", "", "Directory to write decision records to")
	debug := flag.Bool("debug", false, "Log every evaluated move")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	cfg := meta.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = meta.LoadConfig(*configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load config")
		}
	}
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			cfg.Seed = *seed
		}
	})

	text := defaultLayout
	if *layoutPath != "" {
		data, err := os.ReadFile(*layoutPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to read layout")
		}
		text = string(data)
	}
	l, err := layout.Parse(text)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to parse layout")
	}

	first, second := 0, 2
	if *blue {
		first, second = 1, 3
	}
	if l.Agents() <= second {
		log.Fatal().Msgf("layout places %d agents, need at least %d", l.Agents(), second+1)
	}

	collector := metrics.NewDummyCollector()
	if *metricsDir != "" {
		collector = metrics.NewCollector()
	}

	team, err := agent.CreateTeam(first, second, cfg, agent.WithMetrics(collector))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create team")
	}

	state := layout.NewState(l)
	distancer := layout.NewDistancer(l)
	log.Info().Msgf("deciding for team %s on a %dx%d layout", game.TeamOf(first), l.Width, l.Height)

	for _, a := range team {
		if err := a.RegisterInitialState(state, distancer); err != nil {
			log.Fatal().Err(err).Msgf("failed to register agent %d", a.Index())
		}
		move, err := a.ChooseAction(state)
		if err != nil {
			log.Fatal().Err(err).Msgf("agent %d could not choose an action", a.Index())
		}
		log.Info().Msgf("agent %d (%s) plays %s", a.Index(), a.Variant().Name(), move)
	}

	if *metricsDir == "" {
		return
	}
	writer, err := metrics.NewWriter(*metricsDir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create metrics writer")
	}
	if err := writer.WriteDecisionRecords(collector.Records()); err != nil {
		log.Fatal().Err(err).Msg("failed to write decision records")
	}
	log.Info().Msgf("stored decision records in %s", writer.Dir())
}
