package challenge

import (
	"context"
	"errors"
	"time"

	"github.com/verte-zerg/verbroulette/internal/model"
)

// State is the lifecycle position of a Timer.
type State int

const (
	Idle State = iota
	Running
	Completed
)

// String returns the state label.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Completed:
		return "completed"
	default:
		return "unknown"
	}
}

// RunRecorder appends finished runs to a history.
type RunRecorder interface {
	InsertRun(ctx context.Context, run model.ChallengeRun) (int64, error)
}

// Session is the in-flight challenge.
type Session struct {
	Seq              uint64
	Mode             Mode
	RemainingSeconds int
	VerbsCompleted   int
}

// Result describes a completed challenge.
type Result struct {
	Mode         Mode
	Completed    int
	Success      bool
	PreviousBest int
	NewRecord    bool
}

// Timer is the challenge state machine: Idle -> Running -> Completed -> Idle.
// It is driven by one-second ticks from the owner's event loop.
type Timer struct {
	state    State
	session  Session
	result   Result
	seq      uint64
	book     *ScoreBook
	recorder RunRecorder
	now      func() time.Time
}

// NewTimer returns an idle Timer. recorder may be nil.
func NewTimer(book *ScoreBook, recorder RunRecorder, now func() time.Time) *Timer {
	if book == nil {
		book = NewScoreBook(nil)
	}
	if now == nil {
		now = time.Now
	}
	return &Timer{book: book, recorder: recorder, now: now}
}

// State returns the current state.
func (t *Timer) State() State {
	return t.state
}

// Session returns the in-flight session. It is only meaningful while Running
// or Completed.
func (t *Timer) Session() Session {
	return t.session
}

// Result returns the last completed result while Completed.
func (t *Timer) Result() (Result, bool) {
	if t.state != Completed {
		return Result{}, false
	}
	return t.result, true
}

// ScoreBook returns the book the timer records into.
func (t *Timer) ScoreBook() *ScoreBook {
	return t.book
}

// Start begins mode. It is only accepted from Idle.
func (t *Timer) Start(mode Mode) (Session, bool) {
	if t.state != Idle || mode.DurationSeconds <= 0 {
		return Session{}, false
	}
	t.seq++
	t.session = Session{
		Seq:              t.seq,
		Mode:             mode,
		RemainingSeconds: mode.DurationSeconds,
	}
	t.result = Result{}
	t.state = Running
	return t.session, true
}

// Tick advances the session tagged seq by one second. Ticks for other
// sessions, or outside Running, are ignored. It returns whether the session
// keeps running; persistence errors are returned after the transition to
// Completed has happened.
func (t *Timer) Tick(ctx context.Context, seq uint64) (bool, error) {
	if t.state != Running || seq != t.session.Seq {
		return false, nil
	}
	t.session.RemainingSeconds--
	if t.session.RemainingSeconds > 0 {
		return true, nil
	}
	t.session.RemainingSeconds = 0
	return false, t.complete(ctx)
}

func (t *Timer) complete(ctx context.Context) error {
	t.state = Completed
	mode := t.session.Mode
	score := t.session.VerbsCompleted
	prev, _ := t.book.Best(mode.ID)
	record, recErr := t.book.Record(ctx, mode.ID, score)
	t.result = Result{
		Mode:         mode,
		Completed:    score,
		Success:      score >= mode.TargetVerbs,
		PreviousBest: prev,
		NewRecord:    record,
	}
	var runErr error
	if t.recorder != nil {
		_, runErr = t.recorder.InsertRun(ctx, model.ChallengeRun{
			ModeID:    mode.ID,
			Completed: score,
			Target:    mode.TargetVerbs,
			Success:   t.result.Success,
			EndedAt:   t.now(),
		})
	}
	return errors.Join(recErr, runErr)
}

// RecordVerbCompleted counts a verb for the running session. It is ignored in
// any other state, so a spin landing after expiry does not count.
func (t *Timer) RecordVerbCompleted() bool {
	if t.state != Running {
		return false
	}
	t.session.VerbsCompleted++
	return true
}

// Cancel drops a running session without touching best scores.
func (t *Timer) Cancel() bool {
	if t.state != Running {
		return false
	}
	t.state = Idle
	t.session = Session{}
	return true
}

// Acknowledge returns a completed timer to Idle.
func (t *Timer) Acknowledge() bool {
	if t.state != Completed {
		return false
	}
	t.state = Idle
	t.session = Session{}
	t.result = Result{}
	return true
}
