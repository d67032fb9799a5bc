package challenge

import (
	"context"
	"errors"
	"testing"
)

type failingLoader struct{ memorySaver }

func (failingLoader) BestScores(context.Context) (map[string]int, error) {
	return nil, errors.New("locked")
}

func TestScoreBookRecordStrictlyGreater(t *testing.T) {
	saver := &memorySaver{scores: map[string]int{"marathon": 20}}
	book, err := LoadScoreBook(context.Background(), saver)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	record, err := book.Record(context.Background(), "marathon", 20)
	if err != nil || record {
		t.Fatalf("equal score must not be a record: record=%v err=%v", record, err)
	}
	record, err = book.Record(context.Background(), "marathon", 21)
	if err != nil || !record {
		t.Fatalf("expected record: record=%v err=%v", record, err)
	}
	if saver.scores["marathon"] != 21 || saver.writes != 1 {
		t.Fatalf("unexpected saver state: %+v", saver)
	}
}

func TestScoreBookSnapshotIsCopy(t *testing.T) {
	book := NewScoreBook(map[string]int{"lightning": 3})
	snap := book.Snapshot()
	snap["lightning"] = 99
	if best, _ := book.Best("lightning"); best != 3 {
		t.Fatalf("snapshot mutation leaked: %d", best)
	}
}

func TestLoadScoreBookError(t *testing.T) {
	if _, err := LoadScoreBook(context.Background(), &failingLoader{}); err == nil {
		t.Fatalf("expected load error")
	}
}
