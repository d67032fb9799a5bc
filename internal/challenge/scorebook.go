package challenge

import (
	"context"
	"fmt"
)

// Saver persists best scores. It is read once when the ScoreBook is loaded.
type Saver interface {
	BestScores(ctx context.Context) (map[string]int, error)
	SaveBestScore(ctx context.Context, modeID string, score int) error
}

// ScoreBook holds best completed counts per mode id.
type ScoreBook struct {
	best  map[string]int
	saver Saver
}

// NewScoreBook returns an in-memory ScoreBook seeded with best.
func NewScoreBook(best map[string]int) *ScoreBook {
	owned := make(map[string]int, len(best))
	for id, score := range best {
		owned[id] = score
	}
	return &ScoreBook{best: owned}
}

// LoadScoreBook reads best scores from saver and writes new records back.
func LoadScoreBook(ctx context.Context, saver Saver) (*ScoreBook, error) {
	best, err := saver.BestScores(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load best scores: %w", err)
	}
	book := NewScoreBook(best)
	book.saver = saver
	return book, nil
}

// Best returns the best score for modeID.
func (b *ScoreBook) Best(modeID string) (int, bool) {
	score, ok := b.best[modeID]
	return score, ok
}

// Record stores score when it is strictly greater than the current best (an
// absent best counts as zero) and reports whether it is a new record. The
// in-memory best is updated even if the write fails.
func (b *ScoreBook) Record(ctx context.Context, modeID string, score int) (bool, error) {
	if score <= b.best[modeID] {
		return false, nil
	}
	b.best[modeID] = score
	if b.saver == nil {
		return true, nil
	}
	if err := b.saver.SaveBestScore(ctx, modeID, score); err != nil {
		return true, fmt.Errorf("failed to save best score: %w", err)
	}
	return true, nil
}

// Snapshot returns a copy of all best scores.
func (b *ScoreBook) Snapshot() map[string]int {
	out := make(map[string]int, len(b.best))
	for id, score := range b.best {
		out[id] = score
	}
	return out
}
