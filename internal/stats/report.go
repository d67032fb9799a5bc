package stats

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/verte-zerg/verbroulette/internal/achievement"
	"github.com/verte-zerg/verbroulette/internal/challenge"
	"github.com/verte-zerg/verbroulette/internal/model"
	"github.com/verte-zerg/verbroulette/internal/store"
)

// ScoreRow summarizes one challenge mode.
type ScoreRow struct {
	Mode      challenge.Mode
	Best      int
	HasBest   bool
	Runs      []model.ChallengeRun
	Successes int
}

// Report contains precomputed data for the scores command.
type Report struct {
	Rows     []ScoreRow
	Unlocked achievement.State
}

// BuildReport loads best scores, the last runs per mode and unlocked
// achievements. last <= 0 loads every run.
func BuildReport(ctx context.Context, st *store.Store, modes []challenge.Mode, last int) (Report, error) {
	best, err := st.BestScores(ctx)
	if err != nil {
		return Report{}, err
	}
	rows := make([]ScoreRow, 0, len(modes))
	for _, mode := range modes {
		runs, err := st.ListRuns(ctx, mode.ID, last)
		if err != nil {
			return Report{}, err
		}
		row := ScoreRow{Mode: mode, Runs: runs}
		row.Best, row.HasBest = best[mode.ID]
		for _, run := range runs {
			if run.Success {
				row.Successes++
			}
		}
		rows = append(rows, row)
	}
	ids, err := st.UnlockedAchievements(ctx)
	if err != nil {
		return Report{}, err
	}
	return Report{Rows: rows, Unlocked: achievement.NewState(ids...)}, nil
}

// RenderScores writes the challenge table and the achievement summary. The
// trend column is a sparkline of completed counts smoothed over window runs.
func RenderScores(w io.Writer, r Report, defs []achievement.Achievement, window int) error {
	headers := []string{"Mode", "Target", "Time", "Best", "Runs", "Wins", "Trend"}
	rows := make([][]string, 0, len(r.Rows))
	for _, row := range r.Rows {
		best := "-"
		if row.HasBest {
			best = strconv.Itoa(row.Best)
		}
		completed := make([]float64, len(row.Runs))
		for i, run := range row.Runs {
			completed[i] = float64(run.Completed)
		}
		rows = append(rows, []string{
			row.Mode.Name,
			strconv.Itoa(row.Mode.TargetVerbs),
			challenge.FormatClock(row.Mode.DurationSeconds),
			best,
			strconv.Itoa(len(row.Runs)),
			strconv.Itoa(row.Successes),
			Sparkline(MovingAverage(completed, window)),
		})
	}
	lines := formatTable(headers, rows, map[int]bool{1: true, 2: true, 3: true, 4: true, 5: true})

	sum := achievement.Summarize(defs, r.Unlocked)
	lines = append(lines, "", fmt.Sprintf("Achievements %d/%d", sum.Unlocked, sum.Total))
	var unlocked [][]string
	for _, a := range defs {
		if r.Unlocked.Unlocked(a.ID) {
			unlocked = append(unlocked, []string{"  " + a.Title, string(a.Rarity), string(a.Category)})
		}
	}
	lines = append(lines, formatTable(nil, unlocked, nil)...)

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}
