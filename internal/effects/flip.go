package effects

import (
	"math"

	"github.com/ivlev/numanim/internal/config"
	"github.com/ivlev/numanim/internal/surface"
)

// FlipChar is the state of one character of a flip run.
type FlipChar struct {
	Target     rune
	Current    rune
	LastChange float64 // elapsed ms of the last increment

	// DigitIndex counts digits only, left to right. -1 for non-digits.
	DigitIndex int
	StopAt     float64 // elapsed ms at which the digit locks
	Interval   float64 // minimal ms between increments
}

// Flip cycles every digit 0-9 until its stop time, then locks it to the
// target. In odometer mode the rightmost digit stops first.
type Flip struct {
	req      config.Request
	fontSize float64
	chars    []FlipChar
	settled  bool

	colWidth   float64
	totalWidth float64
}

func NewFlip(req config.Request) *Flip {
	f := &Flip{req: req, fontSize: req.ResolvedFontSize()}
	target := []rune(req.Text)

	digits := 0
	for _, r := range target {
		if isDigit(r) {
			digits++
		}
	}

	f.chars = make([]FlipChar, len(target))
	di := 0
	for i, r := range target {
		ch := FlipChar{Target: r, Current: r, DigitIndex: -1, LastChange: math.Inf(-1)}
		if isDigit(r) {
			ch.DigitIndex = di
			ch.StopAt = req.Duration
			if req.Odometer {
				ch.StopAt = req.Duration - float64(digits-di-1)*req.StopStep
			}
			ch.Interval = math.Max(50, 300-50*float64(di)) / req.SpeedMultiplier
			// the first frame should already be mid-cycle
			ch.Current = nextDigit(r)
			di++
		}
		f.chars[i] = ch
	}
	return f
}

func nextDigit(r rune) rune {
	return '0' + (r-'0'+1)%10
}

// Layout uses the width of "8" as a fixed column for every character, so
// cycling digits do not jitter.
func (f *Flip) Layout(s surface.Surface) {
	st := styleFor(f.req, f.fontSize)
	measureWith(s, st)
	f.colWidth = s.MeasureText("8")
	f.totalWidth = float64(len(f.chars)) * f.colWidth
	surface.Reconfigure(s, f.totalWidth+SafeWidth, f.fontSize*LineHeight, st)
}

// Step advances digits for elapsed ms and reports whether another frame
// is needed. Once every digit is past its stop time in the same step the
// run is settled and further steps change nothing.
func (f *Flip) Step(elapsed float64) bool {
	if f.settled {
		return false
	}
	done := true
	for i := range f.chars {
		ch := &f.chars[i]
		if ch.DigitIndex < 0 {
			continue
		}
		if elapsed < ch.StopAt {
			if elapsed-ch.LastChange > ch.Interval {
				ch.Current = nextDigit(ch.Current)
				ch.LastChange = elapsed
			}
			done = false
		} else {
			ch.Current = ch.Target
		}
	}
	f.settled = done
	return !done
}

// Draw repaints the whole surface, centring each glyph in its column.
func (f *Flip) Draw(s surface.Surface) {
	w, h := s.Size()
	s.ClearRect(0, 0, float64(w), float64(h))
	startX := (float64(w) - f.totalWidth) / 2
	baseY := float64(h) / 2

	for i, ch := range f.chars {
		str := string(ch.Current)
		cw := s.MeasureText(str)
		x := startX + float64(i)*f.colWidth + (f.colWidth-cw)/2
		s.FillText(str, x, baseY)
	}
}

func (f *Flip) Frame(s surface.Surface, elapsed float64) bool {
	f.Step(elapsed)
	f.Draw(s)
	return f.settled
}

func (f *Flip) Settled() bool     { return f.settled }
func (f *Flip) Text() string      { return f.req.Text }
func (f *Flip) FontSize() float64 { return f.fontSize }

// Chars exposes the per-character state.
func (f *Flip) Chars() []FlipChar {
	return f.chars
}

// Displayed returns what the run currently shows.
func (f *Flip) Displayed() string {
	out := make([]rune, len(f.chars))
	for i, ch := range f.chars {
		out[i] = ch.Current
	}
	return string(out)
}
