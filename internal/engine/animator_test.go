package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/numanim/internal/config"
	"github.com/ivlev/numanim/internal/effects"
	"github.com/ivlev/numanim/internal/frame"
	"github.com/ivlev/numanim/internal/surface"
)

func TestAnimatorSupersedesStaleRun(t *testing.T) {
	rec := surface.NewRecorder()
	clock := frame.NewVirtual(0, 50)
	a := NewAnimator(surface.Static(rec), clock, WithSeed(1))

	framesBy := map[uint64]int{}
	a.OnFrame = func(gen uint64, _ float64, _ effects.Run) { framesBy[gen]++ }
	var settled []uint64
	a.OnSettle = func(gen uint64, _ effects.Run) { settled = append(settled, gen) }

	first := a.Play(config.FlipDefaults("111"))
	clock.Tick()
	clock.Tick()
	require.Equal(t, 2, framesBy[first])

	second := a.Play(config.ScrollDefaults("222"))
	assert.Equal(t, first+1, second)
	assert.Equal(t, second, a.Generation())
	assert.Equal(t, 2, clock.Pending(), "the stale callback is still queued")

	clock.Tick()
	assert.Equal(t, 1, clock.Pending(), "the stale callback did not reschedule")

	clock.RunUntilIdle(1000)
	assert.Equal(t, 2, framesBy[first], "no frames for the superseded run")
	assert.Equal(t, []uint64{second}, settled)
	assert.True(t, a.Settled())

	_, h := rec.Size()
	assert.Equal(t, "222", surface.VisibleText(rec.LastFrame(), float64(h)/2))
	assert.Equal(t, 12.0, rec.Style().Font.Size, "layout of the new run is intact")
}

func TestAnimatorWithoutSurface(t *testing.T) {
	clock := frame.NewVirtual(0, 60)
	a := NewAnimator(func() surface.Surface { return nil }, clock)

	gen := a.Play(config.FlipDefaults("42"))
	assert.Equal(t, uint64(1), gen)
	assert.Zero(t, clock.Pending())
	assert.Nil(t, a.Current())
	assert.True(t, a.Settled())

	nilProvider := NewAnimator(nil, clock)
	nilProvider.Play(config.FlipDefaults("42"))
	assert.Zero(t, clock.Pending())
}

func TestAnimatorSurfaceGoesAway(t *testing.T) {
	rec := surface.NewRecorder()
	var current surface.Surface = rec
	clock := frame.NewVirtual(0, 60)
	a := NewAnimator(func() surface.Surface { return current }, clock)

	a.Play(config.FlipDefaults("9"))
	clock.Tick()
	current = nil
	// the replacement run has nowhere to draw; the old one must stop too
	a.Play(config.FlipDefaults("8"))
	ops := len(rec.Ops)
	clock.RunUntilIdle(100)
	assert.Equal(t, ops, len(rec.Ops))
	assert.Zero(t, clock.Pending())
}

func TestAnimatorElapsedFromFirstFrame(t *testing.T) {
	rec := surface.NewRecorder()
	clock := frame.NewVirtual(123456, 50)
	a := NewAnimator(surface.Static(rec), clock)

	var settleTs float64
	frames := 0
	a.OnFrame = func(_ uint64, ts float64, _ effects.Run) {
		frames++
		settleTs = ts
	}
	a.Play(config.FlipDefaults("2024"))
	clock.RunUntilIdle(0)

	// 0, 20, ..., 1000 ms after the first frame
	assert.Equal(t, 51, frames)
	assert.Equal(t, 123456.0+1000, settleTs)
}

func TestAnimatorSeedIsReproducible(t *testing.T) {
	play := func() []effects.ScrollChar {
		a := NewAnimator(surface.Static(surface.NewRecorder()), frame.NewVirtual(0, 60), WithSeed(99))
		a.Play(config.ScrollDefaults("31415"))
		return a.Current().(*effects.Scroll).Chars()
	}
	assert.Equal(t, play(), play())
}
