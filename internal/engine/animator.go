package engine

import (
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/ivlev/numanim/internal/config"
	"github.com/ivlev/numanim/internal/effects"
	"github.com/ivlev/numanim/internal/frame"
	"github.com/ivlev/numanim/internal/surface"
)

// Animator hosts one surface and plays one run at a time on it.
//
// Every Play starts a new generation. A frame callback scheduled by an
// older generation finds a mismatch, draws nothing and does not reschedule,
// so a superseded run never touches the resized surface.
type Animator struct {
	mu       sync.Mutex
	provider surface.Provider
	sched    frame.Scheduler
	seed     int64
	seeded   bool

	gen  uint64
	run  effects.Run
	surf surface.Surface

	// OnFrame runs after every drawn frame, outside the lock.
	OnFrame func(gen uint64, ts float64, run effects.Run)
	// OnSettle runs once when a run reaches its final frame.
	OnSettle func(gen uint64, run effects.Run)
}

type Option func(*Animator)

// WithSeed makes scroll roll distances reproducible: run n uses seed+n.
func WithSeed(seed int64) Option {
	return func(a *Animator) {
		a.seed, a.seeded = seed, true
	}
}

func NewAnimator(p surface.Provider, s frame.Scheduler, opts ...Option) *Animator {
	a := &Animator{provider: p, sched: s}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Play supersedes whatever is running and starts req. It returns the new
// generation. Without a surface it does nothing else.
func (a *Animator) Play(req config.Request) uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.gen++
	gen := a.gen
	a.run, a.surf = nil, nil

	var s surface.Surface
	if a.provider != nil {
		s = a.provider()
	}
	if s == nil {
		slog.Debug("surface unavailable, skipping run", "gen", gen)
		return gen
	}

	run := effects.New(req, a.newRand(gen))
	run.Layout(s)
	a.run, a.surf = run, s

	slog.Debug("run started", "gen", gen, "effect", req.Effect, "text", req.Text)
	a.sched.RequestFrame(a.frameFunc(gen))
	return gen
}

func (a *Animator) newRand(gen uint64) *rand.Rand {
	if a.seeded {
		return rand.New(rand.NewSource(a.seed + int64(gen)))
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

func (a *Animator) frameFunc(gen uint64) frame.Callback {
	var start float64
	started := false

	var cb frame.Callback
	cb = func(ts float64) {
		a.mu.Lock()
		if gen != a.gen || a.run == nil {
			a.mu.Unlock()
			slog.Debug("stale frame dropped", "gen", gen, "current", a.Generation())
			return
		}
		if !started {
			start, started = ts, true
		}
		run := a.run
		settled := run.Frame(a.surf, ts-start)
		if !settled {
			a.sched.RequestFrame(cb)
		}
		onFrame, onSettle := a.OnFrame, a.OnSettle
		a.mu.Unlock()

		if onFrame != nil {
			onFrame(gen, ts, run)
		}
		if settled {
			slog.Debug("run settled", "gen", gen, "elapsed", ts-start)
			if onSettle != nil {
				onSettle(gen, run)
			}
		}
	}
	return cb
}

// Generation returns the id of the latest Play.
func (a *Animator) Generation() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.gen
}

// Current returns the active run, nil if the last Play had no surface.
func (a *Animator) Current() effects.Run {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.run
}

// Settled reports whether the active run has finished. With no run there is
// nothing to animate, so it reports true.
func (a *Animator) Settled() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.run == nil || a.run.Settled()
}
