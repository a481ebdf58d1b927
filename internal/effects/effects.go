// Package effects holds the two text animations, flip and scroll.
//
// A run goes Initializing -> Running -> Settled. Layout sizes and styles the
// surface once, Frame advances state for the given elapsed time and redraws.
// Step logic is kept apart from drawing so it can be tested without a surface.
package effects

import (
	"math/rand"
	"strings"

	"github.com/ivlev/numanim/internal/config"
	"github.com/ivlev/numanim/internal/surface"
)

// SafeWidth is extra horizontal room so the last glyph is not clipped.
const SafeWidth = 2

// LineHeight is the surface height in font sizes.
const LineHeight = 1.5

// Run is one animation run over one text.
type Run interface {
	// Layout commits the surface dimensions and style for this run.
	Layout(s surface.Surface)
	// Frame advances to elapsed ms since the first frame and redraws.
	// It reports whether the run has settled.
	Frame(s surface.Surface, elapsed float64) bool
	Settled() bool
	Text() string
	FontSize() float64
}

// New builds the run for req. rng feeds the scroll effect's roll distances;
// nil means a time-seeded source.
func New(req config.Request, rng *rand.Rand) Run {
	req = req.WithDefaults()
	if strings.EqualFold(req.Effect, config.EffectScroll) {
		return NewScroll(req, rng)
	}
	return NewFlip(req)
}

func styleFor(req config.Request, fontSize float64) surface.Style {
	return surface.Style{
		Font: surface.Font{
			Size:   fontSize,
			Weight: req.FontWeight,
			Family: req.FontFamily,
		},
		Baseline:   surface.BaselineMiddle,
		Fill:       req.Color,
		Background: req.Background,
	}
}

// measureWith sets the font and baseline so measurements before the
// dimension commit match what is drawn after it.
func measureWith(s surface.Surface, st surface.Style) {
	s.SetFont(st.Font)
	s.SetTextBaseline(st.Baseline)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
