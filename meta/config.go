package meta

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid team config")

// Config describes how a team of two agents is built.
type Config struct {
	TimeBudget time.Duration `yaml:"time_budget"`
	Seed       uint64        `yaml:"seed"`
	First      string        `yaml:"first"`
	Second     string        `yaml:"second"`
	// EndgameThreshold overrides EndgameFoodThreshold when set.
	EndgameThreshold *int `yaml:"endgame_threshold,omitempty"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		TimeBudget: DefaultTimeBudget,
		First:      DefaultFirstVariant,
		Second:     DefaultSecondVariant,
	}
}

// LoadConfig reads a YAML team config from path.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes a YAML team config, filling unset fields with defaults.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if cfg.TimeBudget <= 0 {
		return Config{}, fmt.Errorf("%w: time_budget must be positive, got %s", ErrInvalidConfig, cfg.TimeBudget)
	}
	if cfg.First == "" || cfg.Second == "" {
		return Config{}, fmt.Errorf("%w: both variants must be named", ErrInvalidConfig)
	}
	if cfg.EndgameThreshold != nil && *cfg.EndgameThreshold < 0 {
		return Config{}, fmt.Errorf("%w: endgame_threshold must not be negative", ErrInvalidConfig)
	}
	return cfg, nil
}

// Endgame returns the effective endgame food threshold.
func (c Config) Endgame() int {
	if c.EndgameThreshold != nil {
		return *c.EndgameThreshold
	}
	return EndgameFoodThreshold
}
