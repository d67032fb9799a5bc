// Package roulette picks random verbs and manages the spin window.
package roulette

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/verte-zerg/verbroulette/internal/catalog"
	"github.com/verte-zerg/verbroulette/internal/model"
)

// Default spin window.
const (
	DefaultMinDelay = 3000 * time.Millisecond
	DefaultMaxDelay = 5000 * time.Millisecond
)

// Options configures the spin delay window.
type Options struct {
	MinDelay time.Duration
	MaxDelay time.Duration
}

// Ticket identifies an outstanding spin. The caller schedules Delay and then
// resolves the ticket.
type Ticket struct {
	ID         uint64
	Generation uint64
	Index      int
	Delay      time.Duration
	StartedAt  time.Time
}

// Engine selects verbs uniformly. It allows one outstanding spin at a time.
type Engine struct {
	rnd      *rand.Rand
	verbs    []model.VerbRecord
	minDelay time.Duration
	maxDelay time.Duration

	nextID      uint64
	outstanding *Ticket
}

// NewSource returns a random source seeded with seed, or with the current time
// when seed is zero.
func NewSource(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// New returns an Engine over verbs.
func New(verbs []model.VerbRecord, rnd *rand.Rand, opts Options) (*Engine, error) {
	if len(verbs) == 0 {
		return nil, catalog.ErrEmptyCatalog
	}
	if opts.MinDelay == 0 && opts.MaxDelay == 0 {
		opts.MinDelay = DefaultMinDelay
		opts.MaxDelay = DefaultMaxDelay
	}
	if opts.MinDelay < 0 || opts.MaxDelay <= opts.MinDelay {
		return nil, fmt.Errorf("invalid spin window [%s, %s)", opts.MinDelay, opts.MaxDelay)
	}
	if rnd == nil {
		rnd = NewSource(0)
	}
	owned := make([]model.VerbRecord, len(verbs))
	copy(owned, verbs)
	return &Engine{
		rnd:      rnd,
		verbs:    owned,
		minDelay: opts.MinDelay,
		maxDelay: opts.MaxDelay,
	}, nil
}

// Len returns the catalog size.
func (e *Engine) Len() int {
	return len(e.verbs)
}

// Spinning reports whether a spin is outstanding.
func (e *Engine) Spinning() bool {
	return e.outstanding != nil
}

// Begin starts a spin tagged with generation. It returns false while another
// spin is outstanding.
func (e *Engine) Begin(now time.Time, generation uint64) (Ticket, bool) {
	if e.outstanding != nil {
		return Ticket{}, false
	}
	e.nextID++
	window := int64(e.maxDelay - e.minDelay)
	t := Ticket{
		ID:         e.nextID,
		Generation: generation,
		Index:      e.rnd.Intn(len(e.verbs)),
		Delay:      e.minDelay + time.Duration(e.rnd.Int63n(window)),
		StartedAt:  now,
	}
	e.outstanding = &t
	return t, true
}

// Resolve completes the outstanding spin. Tickets other than the outstanding
// one are rejected.
func (e *Engine) Resolve(t Ticket, now time.Time) (model.SpinOutcome, bool) {
	if e.outstanding == nil || e.outstanding.ID != t.ID {
		return model.SpinOutcome{}, false
	}
	e.outstanding = nil
	elapsed := now.Sub(t.StartedAt).Milliseconds()
	if elapsed < 0 {
		elapsed = 0
	}
	return model.SpinOutcome{Verb: e.verbs[t.Index], ElapsedMs: elapsed}, true
}

// Abandon drops the outstanding spin, if any.
func (e *Engine) Abandon() {
	e.outstanding = nil
}
