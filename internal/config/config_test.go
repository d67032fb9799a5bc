package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/verte-zerg/verbroulette/internal/challenge"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("missing file should not fail: %v", err)
	}
	if cfg.Practice.Seed != nil || len(cfg.Challenges) != 0 {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigPractice(t *testing.T) {
	path := writeConfig(t, `
[practice]
seed = 7
spin-min-ms = 1000
spin-max-ms = 2000
difficulty = "advanced"

[[challenge]]
id = "sprint"
name = "Sprint"
duration = 30
target = 8
difficulty = "hard"
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Practice.Seed == nil || *cfg.Practice.Seed != 7 {
		t.Fatalf("unexpected seed %v", cfg.Practice.Seed)
	}
	if cfg.Practice.SpinMinMs == nil || *cfg.Practice.SpinMinMs != 1000 {
		t.Fatalf("unexpected spin-min-ms")
	}
	if cfg.Practice.Catalog != nil {
		t.Fatalf("catalog should stay unset")
	}
	modes, err := cfg.Modes(challenge.Defaults())
	if err != nil {
		t.Fatalf("modes: %v", err)
	}
	mode, ok := challenge.Find(modes, "sprint")
	if !ok || mode.DurationSeconds != 30 || mode.TargetVerbs != 8 {
		t.Fatalf("unexpected sprint mode %+v", mode)
	}
}

func TestLoadConfigRejectsUnknownKey(t *testing.T) {
	path := writeConfig(t, "[practice]\nwords = 5\n")
	_, err := LoadConfig(path)
	if err == nil || !strings.Contains(err.Error(), "words") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestModesRejectsDuplicate(t *testing.T) {
	cfg := FileConfig{Challenges: []ChallengeConfig{{ID: "marathon", Duration: 10, Target: 1}}}
	if _, err := cfg.Modes(challenge.Defaults()); err == nil {
		t.Fatalf("expected duplicate id error")
	}
}

func TestParseEnvOverlaysFile(t *testing.T) {
	t.Setenv("VERBROULETTE_SEED", "99")
	t.Setenv("VERBROULETTE_SPEECH", "off")
	envCfg, err := ParseEnv()
	if err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if envCfg.SpinMaxMs != nil {
		t.Fatalf("unset variable should stay nil")
	}
	seed := int64(1)
	spinMax := 4000
	file := PracticeConfig{Seed: &seed, SpinMaxMs: &spinMax}
	merged := file.Overlay(envCfg)
	if *merged.Seed != 99 {
		t.Fatalf("env should win over file, got %d", *merged.Seed)
	}
	if merged.SpinMaxMs == nil || *merged.SpinMaxMs != 4000 {
		t.Fatalf("file value should survive")
	}
	if merged.Speech == nil || *merged.Speech != "off" {
		t.Fatalf("expected speech from env")
	}
}

func TestParseEnvRejectsBadNumber(t *testing.T) {
	t.Setenv("VERBROULETTE_SPIN_MIN_MS", "soon")
	if _, err := ParseEnv(); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestDefaultPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/cfg")
	t.Setenv("XDG_DATA_HOME", "/tmp/data")
	if got := DefaultConfigPath(); got != filepath.Join("/tmp/cfg", "verbroulette", "config.toml") {
		t.Fatalf("unexpected config path %s", got)
	}
	if got := DefaultDBPath(); got != filepath.Join("/tmp/data", "verbroulette", "verbroulette.db") {
		t.Fatalf("unexpected db path %s", got)
	}
}
