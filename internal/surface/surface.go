// Package surface defines the drawable target the animations paint on and
// ships three implementations: an RGBA raster, a terminal grid and a
// recorder for tests.
package surface

// Baseline selects how FillText interprets its y coordinate.
type Baseline int

const (
	BaselineAlphabetic Baseline = iota
	BaselineMiddle
	BaselineTop
)

// Font is a resolved font setting.
type Font struct {
	Size   float64
	Weight string
	Family string
}

// DefaultFont is what a surface falls back to after its size is committed.
var DefaultFont = Font{Size: 10, Weight: "normal", Family: "sans-serif"}

// Surface is a canvas-like 2D drawing context.
//
// SetPixelSize discards all style state (font, baseline, fill, background),
// so callers must reapply style afterwards. Use Reconfigure to do both.
type Surface interface {
	SetPixelSize(w, h float64)
	Size() (w, h int)
	SetFont(f Font)
	SetTextBaseline(b Baseline)
	SetFillColor(spec string)
	SetBackgroundColor(spec string)
	MeasureText(s string) float64
	ClearRect(x, y, w, h float64)
	FillText(s string, x, y float64)
}

// Style is everything that has to be reapplied after a dimension change.
type Style struct {
	Font       Font
	Baseline   Baseline
	Fill       string
	Background string
}

// Reconfigure commits new pixel dimensions and reapplies the style in one step.
func Reconfigure(s Surface, w, h float64, st Style) {
	s.SetPixelSize(w, h)
	s.SetFont(st.Font)
	s.SetTextBaseline(st.Baseline)
	s.SetFillColor(st.Fill)
	s.SetBackgroundColor(st.Background)
}

// Provider hands out the surface for a run. A nil result means the surface
// is not available (not mounted yet, or already torn down).
type Provider func() Surface

// Static returns a provider that always yields s.
func Static(s Surface) Provider {
	return func() Surface { return s }
}
