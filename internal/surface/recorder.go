package surface

import (
	"math"
	"unicode/utf8"
)

// OpKind identifies a recorded drawing call.
type OpKind int

const (
	OpResize OpKind = iota
	OpClear
	OpFill
)

// Op is one recorded drawing call.
type Op struct {
	Kind OpKind
	Text string
	X, Y float64
	W, H float64
	Font Font
	Fill string
}

// Recorder is a Surface that records draw calls instead of rasterizing.
// Every glyph advances by Advance × font size, which makes layout
// arithmetic exact in tests.
type Recorder struct {
	Advance float64
	Ops     []Op

	w, h     int
	font     Font
	baseline Baseline
	fill     string
	bg       string
}

func NewRecorder() *Recorder {
	r := &Recorder{Advance: 0.6}
	r.reset()
	return r
}

func (r *Recorder) reset() {
	r.font = DefaultFont
	r.baseline = BaselineAlphabetic
	r.fill = "#000000"
	r.bg = ""
}

func (r *Recorder) SetPixelSize(w, h float64) {
	r.w, r.h = toPixels(w), toPixels(h)
	r.reset()
	r.Ops = append(r.Ops, Op{Kind: OpResize, W: float64(r.w), H: float64(r.h)})
}

func (r *Recorder) Size() (int, int) { return r.w, r.h }

func (r *Recorder) SetFont(f Font)             { r.font = f }
func (r *Recorder) SetTextBaseline(b Baseline) { r.baseline = b }
func (r *Recorder) SetFillColor(spec string)   { r.fill = spec }
func (r *Recorder) SetBackgroundColor(spec string) {
	r.bg = spec
}

// Style returns the style currently in effect.
func (r *Recorder) Style() Style {
	return Style{Font: r.font, Baseline: r.baseline, Fill: r.fill, Background: r.bg}
}

func (r *Recorder) MeasureText(s string) float64 {
	return float64(utf8.RuneCountInString(s)) * (r.Advance * r.font.Size)
}

func (r *Recorder) ClearRect(x, y, w, h float64) {
	r.Ops = append(r.Ops, Op{Kind: OpClear, X: x, Y: y, W: w, H: h})
}

func (r *Recorder) FillText(s string, x, y float64) {
	r.Ops = append(r.Ops, Op{Kind: OpFill, Text: s, X: x, Y: y, Font: r.font, Fill: r.fill})
}

// LastFrame returns the fill operations issued after the most recent clear.
func (r *Recorder) LastFrame() []Op {
	var out []Op
	for i := len(r.Ops) - 1; i >= 0; i-- {
		op := r.Ops[i]
		if op.Kind != OpFill {
			break
		}
		out = append(out, op)
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Frames splits the recorded fills into frames at every clear.
func (r *Recorder) Frames() [][]Op {
	var frames [][]Op
	var cur []Op
	started := false
	for _, op := range r.Ops {
		switch op.Kind {
		case OpClear:
			if started {
				frames = append(frames, cur)
			}
			cur, started = nil, true
		case OpFill:
			cur = append(cur, op)
		}
	}
	if started {
		frames = append(frames, cur)
	}
	return frames
}

// VisibleText rebuilds the text a frame shows on the row centred at baseY.
// Fills further than half a font size from baseY are ignored, which drops
// filmstrip rows that are above or below the visible slot.
func VisibleText(frame []Op, baseY float64) string {
	var out []rune
	for _, op := range frame {
		if math.Abs(op.Y-baseY) < op.Font.Size/2 {
			out = append(out, []rune(op.Text)...)
		}
	}
	return string(out)
}

// Reset drops recorded operations.
func (r *Recorder) Reset() {
	r.Ops = r.Ops[:0]
}
