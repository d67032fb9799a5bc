package session

import (
	"fmt"
	"time"

	"github.com/verte-zerg/verbroulette/internal/achievement"
	"github.com/verte-zerg/verbroulette/internal/challenge"
)

// SimClock is a manually advanced clock.
type SimClock struct {
	now time.Time
}

// NewSimClock returns a clock stopped at start.
func NewSimClock(start time.Time) *SimClock {
	return &SimClock{now: start}
}

// Now returns the simulated time.
func (c *SimClock) Now() time.Time {
	return c.now
}

// Set moves the clock to t. Moving backwards is ignored.
func (c *SimClock) Set(t time.Time) {
	if t.After(c.now) {
		c.now = t
	}
}

// SimulationResult is the outcome of Simulate.
type SimulationResult struct {
	View      View
	Elapsed   time.Duration
	Unlocked  []achievement.Achievement
	Challenge *challenge.Result
}

// Simulate runs spins headlessly on a simulated clock, optionally inside the
// challenge modeID. Ticks and spin landings are delivered in time order; a
// tick due at the same instant as a landing is delivered first.
func Simulate(opts Options, spins int, modeID string) (SimulationResult, error) {
	start := time.Unix(0, 0).UTC()
	clock := NewSimClock(start)
	var res SimulationResult
	opts.Clock = clock.Now
	opts.Hooks = Hooks{
		OnAchievementUnlocked: func(a achievement.Achievement) {
			res.Unlocked = append(res.Unlocked, a)
		},
		OnChallengeFinished: func(r challenge.Result) {
			finished := r
			res.Challenge = &finished
		},
	}
	c, err := New(opts)
	if err != nil {
		return SimulationResult{}, err
	}
	defer c.Close()

	var (
		seq      uint64
		nextTick time.Time
		running  bool
	)
	if modeID != "" {
		if !c.StartChallenge(modeID) {
			return SimulationResult{}, fmt.Errorf("unknown challenge %q", modeID)
		}
		seq = c.View().Challenge.Session.Seq
		nextTick = clock.Now().Add(time.Second)
		running = true
	}
	advance := func(until time.Time) {
		for running && !nextTick.After(until) {
			clock.Set(nextTick)
			running = c.Tick(seq)
			nextTick = nextTick.Add(time.Second)
		}
		clock.Set(until)
	}

	for i := 0; i < spins; i++ {
		ticket, ok := c.Spin()
		if !ok {
			break
		}
		advance(clock.Now().Add(ticket.Delay))
		c.CompleteSpin(ticket)
	}
	for running {
		advance(nextTick)
	}

	res.View = c.View()
	res.Elapsed = clock.Now().Sub(start)
	return res, nil
}
