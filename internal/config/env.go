package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "VERBROULETTE_"

// ParseEnv loads VERBROULETTE_* overrides into a PracticeConfig. Unset
// variables leave their field nil.
func ParseEnv() (PracticeConfig, error) {
	var cfg PracticeConfig
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return PracticeConfig{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Overlay returns p with every field set in over replacing its value.
func (p PracticeConfig) Overlay(over PracticeConfig) PracticeConfig {
	if over.Seed != nil {
		p.Seed = over.Seed
	}
	if over.SpinMinMs != nil {
		p.SpinMinMs = over.SpinMinMs
	}
	if over.SpinMaxMs != nil {
		p.SpinMaxMs = over.SpinMaxMs
	}
	if over.Catalog != nil {
		p.Catalog = over.Catalog
	}
	if over.Difficulty != nil {
		p.Difficulty = over.Difficulty
	}
	if over.Speech != nil {
		p.Speech = over.Speech
	}
	return p
}
