package frame

// Virtual is a simulated display: every Tick is one repaint, spaced
// Interval milliseconds apart.
type Virtual struct {
	q        queue
	now      float64
	Interval float64

	// AfterFrame, if set, runs after the callbacks of each tick that had any.
	AfterFrame func(timestamp float64)
}

// NewVirtual starts the clock at start ms with the given frame rate.
func NewVirtual(start float64, fps int) *Virtual {
	if fps <= 0 {
		fps = 60
	}
	return &Virtual{now: start, Interval: 1000.0 / float64(fps)}
}

func (v *Virtual) RequestFrame(fn Callback) Handle {
	return v.q.push(fn)
}

// Cancel drops a frame request that has not fired yet.
func (v *Virtual) Cancel(h Handle) bool {
	return v.q.cancel(h)
}

// Now is the timestamp the next tick fires with.
func (v *Virtual) Now() float64 {
	return v.now
}

// Pending reports how many callbacks wait for the next tick.
func (v *Virtual) Pending() int {
	return v.q.len()
}

// Tick fires the callbacks queued so far and advances the clock.
// It reports whether anything ran.
func (v *Virtual) Tick() bool {
	batch := v.q.take()
	ts := v.now
	v.now += v.Interval
	if len(batch) == 0 {
		return false
	}
	dispatch(batch, ts)
	if v.AfterFrame != nil {
		v.AfterFrame(ts)
	}
	return true
}

// RunUntilIdle ticks until nothing is scheduled or limit ticks have run
// (limit <= 0 means no limit). It returns the number of frames that ran.
func (v *Virtual) RunUntilIdle(limit int) int {
	frames := 0
	for v.q.len() > 0 {
		if limit > 0 && frames >= limit {
			break
		}
		if v.Tick() {
			frames++
		}
	}
	return frames
}
