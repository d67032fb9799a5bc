// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/verbroulette/internal/challenge"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Practice   PracticeConfig    `toml:"practice"`
	Challenges []ChallengeConfig `toml:"challenge"`
}

// PracticeConfig maps practice-related settings.
type PracticeConfig struct {
	Seed       *int64  `toml:"seed" env:"SEED"`
	SpinMinMs  *int    `toml:"spin-min-ms" env:"SPIN_MIN_MS"`
	SpinMaxMs  *int    `toml:"spin-max-ms" env:"SPIN_MAX_MS"`
	Catalog    *string `toml:"catalog" env:"CATALOG"`
	Difficulty *string `toml:"difficulty" env:"DIFFICULTY"`
	Speech     *string `toml:"speech" env:"SPEECH"`
}

// ChallengeConfig defines an extra challenge mode.
type ChallengeConfig struct {
	ID          string `toml:"id"`
	Name        string `toml:"name"`
	Description string `toml:"description"`
	Duration    int    `toml:"duration"`
	Target      int    `toml:"target"`
	Difficulty  string `toml:"difficulty"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}

// Modes appends the configured challenges to base and validates the result.
func (c FileConfig) Modes(base []challenge.Mode) ([]challenge.Mode, error) {
	modes := append([]challenge.Mode(nil), base...)
	for _, ch := range c.Challenges {
		name := ch.Name
		if name == "" {
			name = ch.ID
		}
		modes = append(modes, challenge.Mode{
			ID:              ch.ID,
			Name:            name,
			Description:     ch.Description,
			DurationSeconds: ch.Duration,
			TargetVerbs:     ch.Target,
			Difficulty:      ch.Difficulty,
		})
	}
	if err := challenge.ValidateModes(modes); err != nil {
		return nil, fmt.Errorf("invalid [[challenge]] entry: %w", err)
	}
	return modes, nil
}
