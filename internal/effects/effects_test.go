package effects

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/numanim/internal/config"
	"github.com/ivlev/numanim/internal/surface"
)

// drive runs r on rec at a fixed frame interval until it settles.
func drive(t *testing.T, r Run, rec *surface.Recorder, interval float64) int {
	t.Helper()
	r.Layout(rec)
	frames := 0
	for elapsed := 0.0; ; elapsed += interval {
		frames++
		if r.Frame(rec, elapsed) {
			return frames
		}
		require.Less(t, frames, 100000, "run never settled")
	}
}

func flipReq(text string, odometer bool) config.Request {
	req := config.FlipDefaults(text)
	req.Odometer = odometer
	return req
}

func TestEaseOutCubic(t *testing.T) {
	assert.Equal(t, 0.0, EaseOutCubic(0))
	assert.Equal(t, 1.0, EaseOutCubic(1))
	assert.InDelta(t, 0.875, EaseOutCubic(0.5), 1e-12)
	assert.Equal(t, 0.0, clamp01(-2))
	assert.Equal(t, 1.0, clamp01(3))
}

func TestFlipOdometerStopTimes(t *testing.T) {
	f := NewFlip(flipReq("105", true))
	chars := f.Chars()
	assert.Equal(t, 800.0, chars[0].StopAt)
	assert.Equal(t, 900.0, chars[1].StopAt)
	assert.Equal(t, 1000.0, chars[2].StopAt)

	for elapsed := 0.0; elapsed < 800; elapsed += 10 {
		require.True(t, f.Step(elapsed))
	}
	assert.True(t, f.Step(800))
	assert.Equal(t, '1', f.Chars()[0].Current, "leftmost digit locks at 800")
	assert.True(t, f.Step(900))
	assert.Equal(t, '0', f.Chars()[1].Current)
	assert.True(t, f.Step(990))
	assert.False(t, f.Step(1000))
	assert.True(t, f.Settled())
	assert.Equal(t, "105", f.Displayed())

	// settled runs do not mutate any more
	assert.False(t, f.Step(2000))
	assert.Equal(t, "105", f.Displayed())
}

func TestFlipOdometerRightmostFirst(t *testing.T) {
	f := NewFlip(flipReq("98765", true))
	chars := f.Chars()
	for i := 1; i < len(chars); i++ {
		assert.Greater(t, chars[i].StopAt, chars[i-1].StopAt)
	}
	assert.Equal(t, 1000.0, chars[len(chars)-1].StopAt)
	assert.Equal(t, 600.0, chars[0].StopAt)
}

func TestFlipSharedStop(t *testing.T) {
	f := NewFlip(flipReq("2024", false))
	for _, ch := range f.Chars() {
		assert.Equal(t, 1000.0, ch.StopAt)
	}
	assert.True(t, f.Step(999.9))
	assert.False(t, f.Step(1000))
	assert.Equal(t, "2024", f.Displayed())
}

func TestFlipCadence(t *testing.T) {
	f := NewFlip(flipReq("0000", false))
	want := []float64{60, 50, 40, 30}
	for i, ch := range f.Chars() {
		assert.InDelta(t, want[i], ch.Interval, 1e-9)
	}

	last := make([]float64, 4)
	prev := []rune(f.Displayed())
	for i := range last {
		last[i] = math.Inf(-1)
	}
	for elapsed := 0.0; elapsed < 1000; elapsed++ {
		f.Step(elapsed)
		for i, ch := range f.Chars() {
			if ch.Current != prev[i] {
				assert.Greater(t, elapsed-last[i], want[i], "digit %d changed too soon at %v", i, elapsed)
				last[i] = elapsed
				prev[i] = ch.Current
			}
		}
	}
}

func TestFlipCadenceFloor(t *testing.T) {
	f := NewFlip(flipReq("12345678", false))
	chars := f.Chars()
	// max(50, 300-50p) bottoms out at 50 from digit index 5 on
	assert.InDelta(t, 10.0, chars[5].Interval, 1e-9)
	assert.InDelta(t, 10.0, chars[7].Interval, 1e-9)
}

func TestFlipPreAdvanceAndWrap(t *testing.T) {
	f := NewFlip(flipReq("09", false))
	assert.Equal(t, "10", f.Displayed())
}

func TestFlipNonDigitsPassThrough(t *testing.T) {
	f := NewFlip(flipReq("1,234.5", true))
	chars := f.Chars()
	assert.Equal(t, -1, chars[1].DigitIndex)
	assert.Equal(t, -1, chars[5].DigitIndex)
	assert.Equal(t, 1, chars[2].DigitIndex)
	assert.InDelta(t, 50.0, chars[2].Interval, 1e-9)
	// five digits: '1' has four digits to its right
	assert.Equal(t, 600.0, chars[0].StopAt)

	for elapsed := 0.0; f.Step(elapsed); elapsed += 7 {
		d := f.Displayed()
		assert.Equal(t, ',', []rune(d)[1])
		assert.Equal(t, '.', []rune(d)[5])
	}
	assert.Equal(t, "1,234.5", f.Displayed())
}

func TestFlipLayoutAndDraw(t *testing.T) {
	rec := surface.NewRecorder()
	f := NewFlip(flipReq("105", false))
	f.Layout(rec)

	w, h := rec.Size()
	assert.Equal(t, 74, w) // 3 × 24 + 2
	assert.Equal(t, 60, h)

	st := rec.Style()
	assert.Equal(t, 40.0, st.Font.Size)
	assert.Equal(t, surface.BaselineMiddle, st.Baseline)
	assert.Equal(t, "#000000d9", st.Fill)
	assert.Equal(t, "transparent", st.Background)

	f.Frame(rec, 0)
	frame := rec.LastFrame()
	require.Len(t, frame, 3)
	for i, op := range frame {
		assert.InDelta(t, 1+float64(i)*24, op.X, 1e-9)
		assert.Equal(t, 30.0, op.Y)
	}
}

func TestFlipEmptyText(t *testing.T) {
	rec := surface.NewRecorder()
	f := NewFlip(flipReq("", false))
	f.Layout(rec)
	w, _ := rec.Size()
	assert.Equal(t, SafeWidth, w)
	assert.True(t, f.Frame(rec, 0))
	assert.Empty(t, rec.LastFrame())
}

func scrollReq(text string) config.Request {
	req := config.ScrollDefaults(text)
	req.FontSize = config.SizeOf(20)
	return req
}

func TestScrollRollDistance(t *testing.T) {
	req := scrollReq("9,876")
	for seed := int64(0); seed < 50; seed++ {
		s := NewScroll(req, rand.New(rand.NewSource(seed)))
		for _, ch := range s.Chars() {
			if !ch.IsDigit {
				assert.Zero(t, ch.StartOffset)
				continue
			}
			assert.GreaterOrEqual(t, ch.StartOffset, 0.7*6*20)
			assert.Less(t, ch.StartOffset, 1.3*6*20)
			assert.Equal(t, 1.0, ch.Direction)
		}
	}
}

func TestScrollSeedIsDeterministic(t *testing.T) {
	a := NewScroll(scrollReq("123"), rand.New(rand.NewSource(7)))
	b := NewScroll(scrollReq("123"), rand.New(rand.NewSource(7)))
	assert.Equal(t, a.Chars(), b.Chars())
}

func TestScrollOffsetMonotonic(t *testing.T) {
	s := NewScroll(scrollReq("4821"), rand.New(rand.NewSource(3)))
	prev := make([]float64, 4)
	for i := range prev {
		prev[i] = math.Inf(1)
	}
	for elapsed := 0.0; s.Step(elapsed); elapsed += 16 {
		for i := range prev {
			off := s.Offset(i)
			assert.LessOrEqual(t, off, prev[i])
			prev[i] = off
		}
	}
	assert.Equal(t, 1.0, s.Progress())
	for i := range prev {
		assert.Equal(t, 0.0, s.Offset(i))
	}
}

func TestScrollFilmstrip(t *testing.T) {
	rec := surface.NewRecorder()
	s := NewScroll(scrollReq("5:1"), rand.New(rand.NewSource(11)))
	s.Layout(rec)
	w, h := rec.Size()
	assert.Equal(t, 38, w) // 3 × 12 + 2
	assert.Equal(t, 30, h)

	s.Frame(rec, 0)
	frame := rec.LastFrame()
	require.Len(t, frame, 11, "5 rows per digit, 1 for the separator")

	baseY := 15.0
	off := s.Offset(0)
	rolling := (5 + int(math.Floor(off/20))) % 10
	for k, j := 0, -2; j <= 2; k, j = k+1, j+1 {
		op := frame[k]
		assert.InDelta(t, baseY+math.Mod(off, 20)+float64(j)*20, op.Y, 1e-9)
		assert.Equal(t, string(rune('0'+(rolling-j+10)%10)), op.Text)
		assert.Equal(t, 1.0, op.X)
	}

	sep := frame[5]
	assert.Equal(t, ":", sep.Text)
	assert.Equal(t, baseY, sep.Y)
	assert.Equal(t, 13.0, sep.X)
	assert.Equal(t, 25.0, frame[6].X)
}

func TestScrollFinalFrameIsPlainText(t *testing.T) {
	rec := surface.NewRecorder()
	s := NewScroll(scrollReq("12:30"), rand.New(rand.NewSource(1)))
	frames := drive(t, s, rec, 1000.0/60)
	assert.Greater(t, frames, 50)

	last := rec.LastFrame()
	require.Len(t, last, 1)
	assert.Equal(t, "12:30", last[0].Text)
	assert.Equal(t, 1.0, last[0].X)
	assert.Equal(t, 15.0, last[0].Y)

	// a settled run only ever redraws the plain text
	n := len(rec.Ops)
	assert.True(t, s.Frame(rec, 5000))
	assert.Equal(t, "12:30", rec.LastFrame()[0].Text)
	assert.Equal(t, n+2, len(rec.Ops))
}

func TestScrollZeroDurationSettlesAtOnce(t *testing.T) {
	req := scrollReq("42")
	req.Duration = 0
	s := NewScroll(req, rand.New(rand.NewSource(1)))
	rec := surface.NewRecorder()
	s.Layout(rec)
	assert.True(t, s.Frame(rec, 0))
}

func TestScrollEmptyText(t *testing.T) {
	rec := surface.NewRecorder()
	s := NewScroll(scrollReq(""), nil)
	assert.Equal(t, 1, drive(t, s, rec, 16))
	w, _ := rec.Size()
	assert.Equal(t, SafeWidth, w)
	last := rec.LastFrame()
	require.Len(t, last, 1)
	assert.Equal(t, "", last[0].Text)
}

func TestScrollNonDigitsNeverMove(t *testing.T) {
	rec := surface.NewRecorder()
	s := NewScroll(scrollReq("1-2"), rand.New(rand.NewSource(5)))
	drive(t, s, rec, 20)
	for _, frame := range rec.Frames() {
		if len(frame) == 1 {
			continue // final plain text
		}
		var dashes []surface.Op
		for _, op := range frame {
			if op.Text == "-" {
				dashes = append(dashes, op)
			}
		}
		require.Len(t, dashes, 1)
		assert.Equal(t, 15.0, dashes[0].Y)
	}
}

func TestSettledTextMatchesInput(t *testing.T) {
	texts := []string{"0", "105", "1,234,567", "$99.90", "abc", "", "٣4"}
	for _, text := range texts {
		for _, effect := range []string{config.EffectFlip, config.EffectScroll} {
			for _, odometer := range []bool{false, true} {
				req := config.Request{Effect: effect, Text: text, Odometer: odometer}
				run := New(req, rand.New(rand.NewSource(42)))
				rec := surface.NewRecorder()
				drive(t, run, rec, 1000.0/30)

				_, h := rec.Size()
				got := surface.VisibleText(rec.LastFrame(), float64(h)/2)
				assert.Equal(t, text, got, "effect=%s odometer=%v", effect, odometer)
				assert.True(t, run.Settled())
			}
		}
	}
}
