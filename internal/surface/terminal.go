package surface

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Terminal draws into a rectangle of a tcell screen. One pixel is one cell,
// a font size is a number of rows.
type Terminal struct {
	screen tcell.Screen
	x0, y0 int

	w, h     int
	baseline Baseline
	fg, bg   tcell.Color
}

// NewTerminal places the surface with its top-left cell at (x0, y0).
func NewTerminal(screen tcell.Screen, x0, y0 int) *Terminal {
	t := &Terminal{screen: screen, x0: x0, y0: y0}
	t.reset()
	return t
}

func (t *Terminal) reset() {
	t.baseline = BaselineAlphabetic
	t.fg = tcell.ColorDefault
	t.bg = tcell.ColorDefault
}

func (t *Terminal) SetPixelSize(w, h float64) {
	// старую область затираем целиком
	t.fill(0, 0, t.w, t.h, tcell.StyleDefault)
	t.w, t.h = toPixels(w), toPixels(h)
	t.reset()
}

func (t *Terminal) Size() (int, int) { return t.w, t.h }

// SetFont is a no-op: the terminal decides the glyphs.
func (t *Terminal) SetFont(Font) {}

func (t *Terminal) SetTextBaseline(b Baseline) { t.baseline = b }

func (t *Terminal) SetFillColor(spec string) {
	t.fg = termColor(spec, t.fg)
}

func (t *Terminal) SetBackgroundColor(spec string) {
	t.bg = termColor(spec, t.bg)
}

func termColor(spec string, prev tcell.Color) tcell.Color {
	c, ok := ParseColor(spec)
	if !ok {
		return prev
	}
	if c.A == 0 {
		return tcell.ColorDefault
	}
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func (t *Terminal) style() tcell.Style {
	return tcell.StyleDefault.Foreground(t.fg).Background(t.bg)
}

func (t *Terminal) MeasureText(s string) float64 {
	return float64(runewidth.StringWidth(s))
}

func (t *Terminal) ClearRect(x, y, w, h float64) {
	x1, y1 := int(math.Floor(x)), int(math.Floor(y))
	x2, y2 := int(math.Ceil(x+w)), int(math.Ceil(y+h))
	t.fill(x1, y1, x2, y2, tcell.StyleDefault.Background(t.bg))
}

func (t *Terminal) fill(x1, y1, x2, y2 int, st tcell.Style) {
	x1, y1 = max(x1, 0), max(y1, 0)
	x2, y2 = min(x2, t.w), min(y2, t.h)
	for y := y1; y < y2; y++ {
		for x := x1; x < x2; x++ {
			t.screen.SetContent(t.x0+x, t.y0+y, ' ', nil, st)
		}
	}
}

func (t *Terminal) FillText(s string, x, y float64) {
	var row int
	switch t.baseline {
	case BaselineMiddle, BaselineTop:
		row = int(math.Floor(y))
	default:
		row = int(math.Ceil(y)) - 1
	}
	if row < 0 || row >= t.h {
		return
	}

	col := int(math.Round(x))
	st := t.style()
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if col >= 0 && col+rw <= t.w {
			t.screen.SetContent(t.x0+col, t.y0+row, r, nil, st)
		}
		col += rw
	}
}
