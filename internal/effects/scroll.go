package effects

import (
	"math"
	"math/rand"
	"strconv"
	"time"

	"github.com/ivlev/numanim/internal/config"
	"github.com/ivlev/numanim/internal/surface"
)

// ScrollChar is the state of one character of a scroll run.
type ScrollChar struct {
	Char        rune
	IsDigit     bool
	StartOffset float64 // px, drawn once at init
	Direction   float64
}

// filmstrip rows above and below the centred one
const stripRows = 2

// Scroll rolls every digit through a random distance and eases it to rest
// over exactly Duration ms.
type Scroll struct {
	req      config.Request
	fontSize float64
	chars    []ScrollChar
	progress float64
	settled  bool
}

// NewScroll draws each digit's roll distance from
// [0.7, 1.3) × rolls × fontSize using rng.
func NewScroll(req config.Request, rng *rand.Rand) *Scroll {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	s := &Scroll{req: req, fontSize: req.ResolvedFontSize()}
	target := []rune(req.Text)
	s.chars = make([]ScrollChar, len(target))
	for i, r := range target {
		ch := ScrollChar{Char: r, IsDigit: isDigit(r), Direction: 1}
		if ch.IsDigit {
			ch.StartOffset = (rng.Float64()*0.6 + 0.7) * req.Rolls * s.fontSize
		}
		s.chars[i] = ch
	}
	return s
}

// Layout sizes the surface to the natural width of the whole text.
func (s *Scroll) Layout(sf surface.Surface) {
	st := styleFor(s.req, s.fontSize)
	measureWith(sf, st)
	textWidth := sf.MeasureText(s.req.Text)
	surface.Reconfigure(sf, textWidth+SafeWidth, s.fontSize*LineHeight, st)
}

// Step sets progress for elapsed ms and reports whether another frame is
// needed.
func (s *Scroll) Step(elapsed float64) bool {
	if s.settled {
		return false
	}
	p := 1.0
	if s.req.Duration > 0 && len(s.chars) > 0 {
		p = math.Min(elapsed/s.req.Duration, 1)
	}
	s.progress = clamp01(p)
	s.settled = s.progress >= 1
	return !s.settled
}

// Progress is the linear progress in [0, 1].
func (s *Scroll) Progress() float64 {
	return s.progress
}

// Offset is the current vertical offset of character i. It shrinks to 0
// as the run eases out and is always 0 for non-digits.
func (s *Scroll) Offset(i int) float64 {
	ch := s.chars[i]
	if !ch.IsDigit {
		return 0
	}
	return lerp(ch.StartOffset, 0, EaseOutCubic(s.progress)) * ch.Direction
}

// Draw paints the filmstrip while running and the plain text once settled.
func (s *Scroll) Draw(sf surface.Surface) {
	if s.settled {
		s.drawFinal(sf)
		return
	}

	w, h := sf.Size()
	sf.ClearRect(0, 0, float64(w), float64(h))
	x := (float64(w) - sf.MeasureText(s.req.Text)) / 2
	baseY := float64(h) / 2
	fs := s.fontSize

	for i, ch := range s.chars {
		str := string(ch.Char)
		cw := sf.MeasureText(str)
		if ch.IsDigit && fs > 0 {
			offset := s.Offset(i)
			rolling := (int(ch.Char-'0') + int(math.Floor(math.Abs(offset/fs)))) % 10
			shift := math.Mod(offset, fs)
			for j := -stripRows; j <= stripRows; j++ {
				y := baseY + shift + float64(j)*fs
				sf.FillText(strconv.Itoa((rolling-j+10)%10), x, y)
			}
		} else {
			sf.FillText(str, x, baseY)
		}
		x += cw
	}
}

// drawFinal renders the target as one plain string, centred the same way
// running frames are.
func (s *Scroll) drawFinal(sf surface.Surface) {
	w, h := sf.Size()
	sf.ClearRect(0, 0, float64(w), float64(h))
	tw := sf.MeasureText(s.req.Text)
	sf.FillText(s.req.Text, (float64(w)-tw)/2, float64(h)/2)
}

func (s *Scroll) Frame(sf surface.Surface, elapsed float64) bool {
	s.Step(elapsed)
	s.Draw(sf)
	return s.settled
}

func (s *Scroll) Settled() bool     { return s.settled }
func (s *Scroll) Text() string      { return s.req.Text }
func (s *Scroll) FontSize() float64 { return s.fontSize }

// Chars exposes the per-character state.
func (s *Scroll) Chars() []ScrollChar {
	return s.chars
}
