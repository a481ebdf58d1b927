package frame

import (
	"context"
	"time"
)

// Ticker is a wall-clock scheduler. Frames fire from the goroutine that
// calls Run.
type Ticker struct {
	q        queue
	interval time.Duration
	start    time.Time

	AfterFrame func(timestamp float64)
}

func NewTicker(fps int) *Ticker {
	if fps <= 0 {
		fps = 60
	}
	return &Ticker{interval: time.Second / time.Duration(fps), start: time.Now()}
}

func (t *Ticker) RequestFrame(fn Callback) Handle {
	return t.q.push(fn)
}

func (t *Ticker) Cancel(h Handle) bool {
	return t.q.cancel(h)
}

// Run dispatches frames until ctx is done.
func (t *Ticker) Run(ctx context.Context) error {
	tk := time.NewTicker(t.interval)
	defer tk.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-tk.C:
			batch := t.q.take()
			if len(batch) == 0 {
				continue
			}
			ts := float64(now.Sub(t.start).Microseconds()) / 1000
			dispatch(batch, ts)
			if t.AfterFrame != nil {
				t.AfterFrame(ts)
			}
		}
	}
}
