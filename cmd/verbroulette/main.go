// Package main provides the CLI entrypoint for verbroulette.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/verbroulette/internal/achievement"
	"github.com/verte-zerg/verbroulette/internal/catalog"
	"github.com/verte-zerg/verbroulette/internal/challenge"
	"github.com/verte-zerg/verbroulette/internal/config"
	"github.com/verte-zerg/verbroulette/internal/model"
	"github.com/verte-zerg/verbroulette/internal/roulette"
	"github.com/verte-zerg/verbroulette/internal/session"
	"github.com/verte-zerg/verbroulette/internal/speech"
	"github.com/verte-zerg/verbroulette/internal/stats"
	"github.com/verte-zerg/verbroulette/internal/store"
	"github.com/verte-zerg/verbroulette/internal/tui"
)

const (
	defaultSpinMinMs   = 3000
	defaultSpinMaxMs   = 5000
	defaultDifficulty  = "beginner"
	defaultSpeech      = "auto"
	defaultScoresLast  = 20
	defaultCurveWindow = 3
	defaultSimSpins    = 50
)

var (
	practiceSeed       int64
	practiceSpinMinMs  int
	practiceSpinMaxMs  int
	practiceCatalog    string
	practiceDifficulty string
	practiceSpeech     string

	verbsKind   string
	verbsFormat string

	scoresLast        int
	scoresCurveWindow int

	simulateSpins     int
	simulateChallenge string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "verbroulette",
		Short:         "Spin the wheel and practice English verb forms",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPlayCmd,
	}

	addPracticeFlags(rootCmd)

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVerbsCmd())
	rootCmd.AddCommand(newScoresCmd())
	rootCmd.AddCommand(newSimulateCmd())

	return rootCmd
}

func addPracticeFlags(cmd *cobra.Command) {
	cmd.Flags().Int64Var(&practiceSeed, "seed", 0, "random seed (0 picks one from the clock)")
	cmd.Flags().IntVar(&practiceSpinMinMs, "spin-min-ms", defaultSpinMinMs, "shortest spin in milliseconds")
	cmd.Flags().IntVar(&practiceSpinMaxMs, "spin-max-ms", defaultSpinMaxMs, "longest spin in milliseconds (exclusive)")
	cmd.Flags().StringVar(&practiceCatalog, "catalog", "", "YAML verb catalog (default: built-in 100 verbs)")
	cmd.Flags().StringVar(&practiceDifficulty, "difficulty", defaultDifficulty, "starting difficulty tier")
	cmd.Flags().StringVar(&practiceSpeech, "speech", defaultSpeech, "speech command, 'auto' or 'off'")
}

// loadPracticeConfig merges flags over VERBROULETTE_* variables over the
// config file over defaults.
func loadPracticeConfig(cmd *cobra.Command) (model.Config, config.FileConfig, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, config.FileConfig{}, fmt.Errorf("failed to load config: %w", err)
	}
	envCfg, err := config.ParseEnv()
	if err != nil {
		return model.Config{}, config.FileConfig{}, fmt.Errorf("failed to load environment: %w", err)
	}
	practice := fileCfg.Practice.Overlay(envCfg)
	applyInt64Config(cmd, "seed", &practiceSeed, practice.Seed)
	applyIntConfig(cmd, "spin-min-ms", &practiceSpinMinMs, practice.SpinMinMs)
	applyIntConfig(cmd, "spin-max-ms", &practiceSpinMaxMs, practice.SpinMaxMs)
	applyStringConfig(cmd, "catalog", &practiceCatalog, practice.Catalog)
	applyStringConfig(cmd, "difficulty", &practiceDifficulty, practice.Difficulty)
	applyStringConfig(cmd, "speech", &practiceSpeech, practice.Speech)

	cfg := model.Config{
		Seed:        practiceSeed,
		SpinMinMs:   practiceSpinMinMs,
		SpinMaxMs:   practiceSpinMaxMs,
		CatalogPath: practiceCatalog,
		Difficulty:  practiceDifficulty,
		Speech:      practiceSpeech,
	}
	if err := validateConfig(cfg); err != nil {
		return model.Config{}, config.FileConfig{}, err
	}
	return cfg, fileCfg, nil
}

// sessionOptions builds controller options that do not depend on storage.
func sessionOptions(cfg model.Config, fileCfg config.FileConfig) (session.Options, error) {
	verbs := catalog.Default()
	if cfg.CatalogPath != "" {
		loaded, err := catalog.LoadFile(cfg.CatalogPath)
		if err != nil {
			return session.Options{}, fmt.Errorf("failed to load catalog: %w", err)
		}
		verbs = loaded
	}
	modes, err := fileCfg.Modes(challenge.Defaults())
	if err != nil {
		return session.Options{}, err
	}
	return session.Options{
		Verbs: verbs,
		Modes: modes,
		Rand:  roulette.NewSource(cfg.Seed),
		Spin: roulette.Options{
			MinDelay: time.Duration(cfg.SpinMinMs) * time.Millisecond,
			MaxDelay: time.Duration(cfg.SpinMaxMs) * time.Millisecond,
		},
		Difficulty: cfg.Difficulty,
	}, nil
}

func runPlayCmd(cmd *cobra.Command, _ []string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("verbroulette needs an interactive terminal (try: verbroulette simulate)")
	}
	cfg, fileCfg, err := loadPracticeConfig(cmd)
	if err != nil {
		return err
	}
	opts, err := sessionOptions(cfg, fileCfg)
	if err != nil {
		return err
	}

	storePath := config.DefaultDBPath()
	st, err := store.Open(storePath)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	ctx := context.Background()
	book, err := challenge.LoadScoreBook(ctx, st)
	if err != nil {
		logErrf("%v\n", err)
		book = challenge.NewScoreBook(nil)
	}
	unlocked, err := st.UnlockedAchievements(ctx)
	if err != nil {
		logErrf("failed to load achievements: %v\n", err)
	}
	opts.ScoreBook = book
	opts.Recorder = st
	opts.Trophies = st
	opts.Unlocked = unlocked

	uiOpts := tui.Options{Session: opts, Bell: os.Stdout}
	speaker, err := speech.Detect(cfg.Speech)
	switch {
	case err == nil:
		uiOpts.Speaker = speaker
	case errors.Is(err, speech.ErrDisabled):
		uiOpts.SpeechNotice = "speech is off (set speech in config)"
	default:
		uiOpts.SpeechNotice = fmt.Sprintf("%v: install espeak or set speech in config", err)
	}

	m, err := tui.NewModel(uiOpts)
	if err != nil {
		return err
	}
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newVerbsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verbs",
		Short: "List the verb catalog",
		Args:  cobra.NoArgs,
		RunE:  runVerbsCmd,
	}
	cmd.Flags().StringVar(&verbsKind, "kind", "", "only list regular or irregular verbs")
	cmd.Flags().StringVar(&verbsFormat, "format", "text", "output format: text or yaml")
	cmd.Flags().StringVar(&practiceCatalog, "catalog", "", "YAML verb catalog (default: built-in 100 verbs)")
	return cmd
}

func runVerbsCmd(cmd *cobra.Command, _ []string) error {
	verbs := catalog.Default()
	if practiceCatalog != "" {
		loaded, err := catalog.LoadFile(practiceCatalog)
		if err != nil {
			return fmt.Errorf("failed to load catalog: %w", err)
		}
		verbs = loaded
	}
	if verbsKind != "" {
		kind, err := model.ParseKind(verbsKind)
		if err != nil {
			return fmt.Errorf("invalid --kind value: %w", err)
		}
		verbs = catalog.FilterByKind(verbs, kind)
	}
	out := cmd.OutOrStdout()
	switch verbsFormat {
	case "yaml":
		return catalog.Encode(out, verbs)
	case "text":
		for _, v := range verbs {
			if _, err := fmt.Fprintf(out, "%-12s %-12s %-12s %s\n", v.Verb, v.Past, v.PastParticiple, v.Kind); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
		}
		regular, irregular := catalog.CountByKind(verbs)
		logErrf("%d verbs (%d regular, %d irregular)\n", len(verbs), regular, irregular)
		return nil
	default:
		return fmt.Errorf("--format must be text or yaml")
	}
}

func newScoresCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scores",
		Short: "Show challenge best scores and achievements",
		Args:  cobra.NoArgs,
		RunE:  runScoresCmd,
	}
	cmd.Flags().IntVar(&scoresLast, "last", defaultScoresLast, "limit the trend to the last N runs per mode")
	cmd.Flags().IntVar(&scoresCurveWindow, "curve-window", defaultCurveWindow, "moving average window for the trend")
	return cmd
}

func runScoresCmd(cmd *cobra.Command, _ []string) error {
	if scoresLast < 0 {
		return fmt.Errorf("--last must be >= 0")
	}
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	modes, err := fileCfg.Modes(challenge.Defaults())
	if err != nil {
		return err
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	report, err := stats.BuildReport(context.Background(), st, modes, scoresLast)
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}
	return stats.RenderScores(cmd.OutOrStdout(), report, achievement.Defaults(), scoresCurveWindow)
}

func newSimulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run spins headlessly on a simulated clock",
		Args:  cobra.NoArgs,
		RunE:  runSimulateCmd,
	}
	addPracticeFlags(cmd)
	cmd.Flags().IntVar(&simulateSpins, "spins", defaultSimSpins, "number of spins")
	cmd.Flags().StringVar(&simulateChallenge, "challenge", "", "run the spins inside this challenge mode")
	return cmd
}

func runSimulateCmd(cmd *cobra.Command, _ []string) error {
	if simulateSpins < 0 {
		return fmt.Errorf("--spins must be >= 0")
	}
	cfg, fileCfg, err := loadPracticeConfig(cmd)
	if err != nil {
		return err
	}
	opts, err := sessionOptions(cfg, fileCfg)
	if err != nil {
		return err
	}
	res, err := session.Simulate(opts, simulateSpins, simulateChallenge)
	if err != nil {
		return err
	}
	return printSimulation(cmd, res)
}

func printSimulation(cmd *cobra.Command, res session.SimulationResult) error {
	s := res.View.Statistics
	lines := []string{
		fmt.Sprintf("Simulated %s", res.Elapsed.Round(time.Second)),
		fmt.Sprintf("Spins %d (regular %d, irregular %d)", s.Total, s.Regular, s.Irregular),
		fmt.Sprintf("Best streak %d, average %.0f ms", s.BestStreak, s.AverageElapsedMs),
		fmt.Sprintf("Achievements %d/%d", res.View.Summary.Unlocked, res.View.Summary.Total),
	}
	for _, a := range res.Unlocked {
		lines = append(lines, fmt.Sprintf("  %s (%s)", a.Title, a.Rarity))
	}
	var tiers []string
	for _, t := range res.View.Tiers {
		if t.Unlocked {
			tiers = append(tiers, t.Name)
		}
	}
	lines = append(lines, "Tiers "+strings.Join(tiers, ", "))
	if r := res.Challenge; r != nil {
		verdict := "missed"
		if r.Success {
			verdict = "reached"
		}
		lines = append(lines, fmt.Sprintf("Challenge %s: %d/%d verbs, target %s", r.Mode.Name, r.Completed, r.Mode.TargetVerbs, verdict))
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyInt64Config(cmd *cobra.Command, name string, target, value *int64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# verbroulette configuration
# Uncomment a value to enable it. VERBROULETTE_* environment variables
# override config values; CLI flags override both.

[practice]
# seed = 0                # Random seed (0 picks one from the clock)
# spin-min-ms = %d      # Shortest spin in milliseconds
# spin-max-ms = %d      # Longest spin in milliseconds (exclusive)
# catalog = ""            # YAML verb catalog (export one with: verbroulette verbs --format yaml)
# difficulty = %q  # Starting tier if already unlocked
# speech = %q          # Speech command, "auto" or "off"

# Extra challenge modes:
# [[challenge]]
# id = "sprint"
# name = "Sprint"
# description = "Complete 8 verbs in 30 seconds"
# duration = 30
# target = 8
# difficulty = "hard"
`,
		defaultSpinMinMs,
		defaultSpinMaxMs,
		defaultDifficulty,
		defaultSpeech,
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.SpinMinMs < 0 {
		return fmt.Errorf("--spin-min-ms must be >= 0")
	}
	if cfg.SpinMaxMs <= cfg.SpinMinMs {
		return fmt.Errorf("--spin-max-ms must be greater than --spin-min-ms")
	}
	if strings.TrimSpace(cfg.Difficulty) == "" {
		return fmt.Errorf("--difficulty must not be empty")
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
