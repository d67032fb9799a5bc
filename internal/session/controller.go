// Package session owns the practice state and coordinates spins, statistics,
// achievements, difficulty tiers and challenges. A Controller is a single
// actor: it takes no locks and must be driven from one goroutine.
package session

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/verte-zerg/verbroulette/internal/achievement"
	"github.com/verte-zerg/verbroulette/internal/catalog"
	"github.com/verte-zerg/verbroulette/internal/challenge"
	"github.com/verte-zerg/verbroulette/internal/difficulty"
	"github.com/verte-zerg/verbroulette/internal/model"
	"github.com/verte-zerg/verbroulette/internal/roulette"
	"github.com/verte-zerg/verbroulette/internal/stats"
)

// AchievementSaver persists unlocked achievement ids.
type AchievementSaver interface {
	SaveAchievement(ctx context.Context, id string, at time.Time) error
}

// Hooks receives semantic events. Every field is optional.
type Hooks struct {
	OnSpinStart           func(roulette.Ticket)
	OnSpinResult          func(model.SpinOutcome)
	OnAchievementUnlocked func(achievement.Achievement)
	OnFeedbackGiven       func(model.VerbRecord, model.Feedback)
	OnChallengeFinished   func(challenge.Result)
	OnView                func(View)
	OnError               func(error)
}

// Options configures a Controller. Nil definition slices fall back to the
// built-in catalog, achievements, tiers and modes; an empty non-nil Verbs is
// rejected.
type Options struct {
	Verbs        []model.VerbRecord
	Achievements []achievement.Achievement
	Tiers        []difficulty.Tier
	Modes        []challenge.Mode

	Rand  *rand.Rand
	Spin  roulette.Options
	Clock func() time.Time

	ScoreBook  *challenge.ScoreBook
	Recorder   challenge.RunRecorder
	Trophies   AchievementSaver
	Unlocked   []string
	Difficulty string

	Hooks Hooks
}

// Controller is the practice session.
type Controller struct {
	ctx    context.Context
	engine *roulette.Engine
	defs   []achievement.Achievement
	tiers  []difficulty.Tier
	modes  []challenge.Mode
	timer  *challenge.Timer
	clock  func() time.Time
	hooks  Hooks

	trophies AchievementSaver

	generation uint64
	stats      model.Statistics
	unlocked   achievement.State
	current    *model.VerbRecord
	feedback   model.Feedback
	difficulty string
	fresh      []achievement.Achievement
	notice     string
	closed     bool
}

// New composes a Controller from opts.
func New(opts Options) (*Controller, error) {
	verbs := opts.Verbs
	if verbs == nil {
		verbs = catalog.Default()
	}
	if err := catalog.Validate(verbs); err != nil {
		return nil, err
	}
	defs := opts.Achievements
	if defs == nil {
		defs = achievement.Defaults()
	}
	if err := achievement.ValidateDefinitions(defs); err != nil {
		return nil, err
	}
	tiers := opts.Tiers
	if tiers == nil {
		tiers = difficulty.Defaults()
	}
	if len(tiers) == 0 {
		return nil, fmt.Errorf("no difficulty tiers configured")
	}
	modes := opts.Modes
	if modes == nil {
		modes = challenge.Defaults()
	}
	if err := challenge.ValidateModes(modes); err != nil {
		return nil, err
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	engine, err := roulette.New(verbs, opts.Rand, opts.Spin)
	if err != nil {
		return nil, err
	}

	c := &Controller{
		ctx:      context.Background(),
		engine:   engine,
		defs:     append([]achievement.Achievement(nil), defs...),
		tiers:    append([]difficulty.Tier(nil), tiers...),
		modes:    append([]challenge.Mode(nil), modes...),
		timer:    challenge.NewTimer(opts.ScoreBook, opts.Recorder, clock),
		clock:    clock,
		hooks:    opts.Hooks,
		trophies: opts.Trophies,
		unlocked: achievement.NewState(opts.Unlocked...),
	}
	c.difficulty = c.tiers[0].ID
	if opts.Difficulty != "" && !c.selectTier(opts.Difficulty) {
		c.notice = fmt.Sprintf("difficulty %q is locked, using %s", opts.Difficulty, c.tiers[0].Name)
	}
	return c, nil
}

// Close disposes the controller. Later commands are ignored.
func (c *Controller) Close() {
	if c.closed {
		return
	}
	c.closed = true
	c.engine.Abandon()
	c.timer.Cancel()
	c.emit()
}

// Spin starts a spin. The caller schedules ticket.Delay and then calls
// CompleteSpin. It returns false while a spin is outstanding.
func (c *Controller) Spin() (roulette.Ticket, bool) {
	if c.closed {
		return roulette.Ticket{}, false
	}
	ticket, ok := c.engine.Begin(c.clock(), c.generation)
	if !ok {
		return roulette.Ticket{}, false
	}
	c.fresh = nil
	c.notice = ""
	if c.hooks.OnSpinStart != nil {
		c.hooks.OnSpinStart(ticket)
	}
	c.emit()
	return ticket, true
}

// CompleteSpin lands ticket. Tickets from a superseded generation, or that
// are no longer outstanding, are dropped.
func (c *Controller) CompleteSpin(ticket roulette.Ticket) bool {
	if c.closed || ticket.Generation != c.generation {
		return false
	}
	outcome, ok := c.engine.Resolve(ticket, c.clock())
	if !ok {
		return false
	}

	c.stats = stats.Apply(outcome, c.stats)
	verb := outcome.Verb
	c.current = &verb
	c.feedback = 0

	var fresh []achievement.Achievement
	c.unlocked, fresh = achievement.Evaluate(c.defs, c.stats, c.unlocked)
	c.fresh = fresh
	c.saveTrophies(fresh)

	if c.timer.State() == challenge.Running {
		c.timer.RecordVerbCompleted()
	}

	if c.hooks.OnSpinResult != nil {
		c.hooks.OnSpinResult(outcome)
	}
	if c.hooks.OnAchievementUnlocked != nil {
		for _, a := range fresh {
			c.hooks.OnAchievementUnlocked(a)
		}
	}
	c.emit()
	return true
}

func (c *Controller) saveTrophies(fresh []achievement.Achievement) {
	if c.trophies == nil {
		return
	}
	now := c.clock()
	for _, a := range fresh {
		if err := c.trophies.SaveAchievement(c.ctx, a.ID, now); err != nil {
			c.fail(fmt.Errorf("failed to save achievement %s: %w", a.ID, err))
		}
	}
}

// ResetStatistics zeroes the statistics and drops any outstanding spin.
// Unlocked achievements and a running challenge are kept.
func (c *Controller) ResetStatistics() {
	if c.closed {
		return
	}
	c.generation++
	c.engine.Abandon()
	c.stats = stats.Reset()
	c.current = nil
	c.feedback = 0
	c.fresh = nil
	c.notice = ""
	if tier, ok := difficulty.Find(c.tiers, c.difficulty); !ok || !difficulty.Unlocked(tier, c.stats) {
		c.difficulty = c.tiers[0].ID
	}
	c.emit()
}

// StartChallenge starts the mode with modeID. It is rejected for unknown
// modes and unless the timer is idle.
func (c *Controller) StartChallenge(modeID string) bool {
	if c.closed {
		return false
	}
	mode, ok := challenge.Find(c.modes, modeID)
	if !ok {
		return false
	}
	if _, ok := c.timer.Start(mode); !ok {
		return false
	}
	c.notice = ""
	c.emit()
	return true
}

// Tick advances the challenge tagged seq by one second. It returns whether
// the challenge keeps running, so the caller knows to schedule another tick.
func (c *Controller) Tick(seq uint64) bool {
	if c.closed {
		return false
	}
	if c.timer.State() != challenge.Running || c.timer.Session().Seq != seq {
		return false
	}
	running, err := c.timer.Tick(c.ctx, seq)
	if err != nil {
		c.fail(err)
	}
	if !running {
		if res, ok := c.timer.Result(); ok && c.hooks.OnChallengeFinished != nil {
			c.hooks.OnChallengeFinished(res)
		}
	}
	c.emit()
	return running
}

// CancelChallenge drops a running challenge.
func (c *Controller) CancelChallenge() bool {
	if c.closed || !c.timer.Cancel() {
		return false
	}
	c.emit()
	return true
}

// CompleteChallenge acknowledges a completed challenge, or cancels a running
// one.
func (c *Controller) CompleteChallenge() bool {
	if c.closed {
		return false
	}
	switch c.timer.State() {
	case challenge.Completed:
		c.timer.Acknowledge()
	case challenge.Running:
		c.timer.Cancel()
	default:
		return false
	}
	c.emit()
	return true
}

// SetDifficulty selects tierID. Locked and unknown tiers are rejected.
func (c *Controller) SetDifficulty(tierID string) bool {
	if c.closed || !c.selectTier(tierID) {
		return false
	}
	c.emit()
	return true
}

func (c *Controller) selectTier(id string) bool {
	tier, ok := difficulty.Find(c.tiers, id)
	if !ok || !difficulty.Unlocked(tier, c.stats) {
		return false
	}
	c.difficulty = tier.ID
	return true
}

// GiveFeedback records the learner's self-assessment of the current verb.
// Statistics are not affected.
func (c *Controller) GiveFeedback(f model.Feedback) bool {
	if c.closed || c.current == nil {
		return false
	}
	if f != model.FeedbackPositive && f != model.FeedbackNegative {
		return false
	}
	c.feedback = f
	if c.hooks.OnFeedbackGiven != nil {
		c.hooks.OnFeedbackGiven(*c.current, f)
	}
	c.emit()
	return true
}

// DismissVerb clears the displayed verb.
func (c *Controller) DismissVerb() {
	if c.closed || c.current == nil {
		return
	}
	c.current = nil
	c.feedback = 0
	c.emit()
}

// Notify sets the status notice shown with the next view.
func (c *Controller) Notify(msg string) {
	if c.closed {
		return
	}
	c.notice = msg
	c.emit()
}

// Statistics returns the current statistics.
func (c *Controller) Statistics() model.Statistics {
	return c.stats
}

// Current returns the displayed verb.
func (c *Controller) Current() (model.VerbRecord, bool) {
	if c.current == nil {
		return model.VerbRecord{}, false
	}
	return *c.current, true
}

func (c *Controller) fail(err error) {
	c.notice = err.Error()
	if c.hooks.OnError != nil {
		c.hooks.OnError(err)
	}
}

func (c *Controller) emit() {
	if c.hooks.OnView != nil {
		c.hooks.OnView(c.View())
	}
}

// View builds a snapshot of the current state.
func (c *Controller) View() View {
	v := View{
		Generation:  c.generation,
		Statistics:  c.stats,
		CatalogSize: c.engine.Len(),
		Progress:    stats.Progress(c.stats.Total, c.engine.Len()),
		Spinning:    c.engine.Spinning(),
		Feedback:    c.feedback,
		Summary:     achievement.Summarize(c.defs, c.unlocked),
		Difficulty:  c.difficulty,
		Modes:       append([]challenge.Mode(nil), c.modes...),
		BestScores:  c.timer.ScoreBook().Snapshot(),
		Notice:      c.notice,
		Closed:      c.closed,
	}
	if c.current != nil {
		verb := *c.current
		v.Current = &verb
	}
	v.Achievements = make([]AchievementView, len(c.defs))
	for i, a := range c.defs {
		v.Achievements[i] = AchievementView{Achievement: a, Unlocked: c.unlocked.Unlocked(a.ID)}
	}
	if len(c.fresh) > 0 {
		v.NewlyUnlocked = append([]achievement.Achievement(nil), c.fresh...)
	}
	v.Tiers = make([]TierView, len(c.tiers))
	for i, t := range c.tiers {
		req := difficulty.Check(t, c.stats)
		v.Tiers[i] = TierView{
			Tier:         t,
			Unlocked:     difficulty.Unlocked(t, c.stats),
			Requirements: req,
			Progress:     difficulty.Progress(t, c.stats),
		}
	}
	v.Challenge = ChallengeView{State: c.timer.State()}
	if v.Challenge.State != challenge.Idle {
		v.Challenge.Session = c.timer.Session()
	}
	if res, ok := c.timer.Result(); ok {
		v.Challenge.Result = res
	}
	return v
}
