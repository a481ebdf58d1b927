package surface

import (
	"image"
	"image/color"
	"image/draw"
	"log/slog"
	"math"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/ivlev/numanim/internal/system"
)

// Raster is an in-memory RGBA canvas. The background is kept apart from the
// ink, as on a web canvas, and is only composited in Snapshot.
// A Raster is not safe for concurrent use.
type Raster struct {
	img *image.RGBA

	font     Font
	baseline Baseline
	fill     color.NRGBA
	bg       color.NRGBA

	faces map[faceKey]font.Face
	face  font.Face
}

type faceKey struct {
	variant string
	size    float64
}

// NewRaster returns a zero-sized raster. Call SetPixelSize (or Reconfigure)
// before drawing.
func NewRaster() *Raster {
	r := &Raster{
		img:   image.NewRGBA(image.Rect(0, 0, 0, 0)),
		faces: make(map[faceKey]font.Face),
	}
	r.resetStyle()
	return r
}

func (r *Raster) resetStyle() {
	r.baseline = BaselineAlphabetic
	r.fill = color.NRGBA{A: 255}
	r.bg = color.NRGBA{}
	r.SetFont(DefaultFont)
}

// SetPixelSize truncates to whole pixels, drops the old contents and resets
// style to the defaults.
func (r *Raster) SetPixelSize(w, h float64) {
	iw, ih := toPixels(w), toPixels(h)
	r.img = image.NewRGBA(image.Rect(0, 0, iw, ih))
	r.resetStyle()
}

func toPixels(v float64) int {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	return int(v)
}

func (r *Raster) Size() (int, int) {
	b := r.img.Bounds()
	return b.Dx(), b.Dy()
}

func (r *Raster) SetFont(f Font) {
	if f.Size <= 0 {
		f.Size = DefaultFont.Size
	}
	r.font = f
	key := faceKey{variant: variantFor(f), size: f.Size}
	if face, ok := r.faces[key]; ok {
		r.face = face
		return
	}
	face := newFace(key)
	r.faces[key] = face
	r.face = face
}

func (r *Raster) SetTextBaseline(b Baseline) {
	r.baseline = b
}

// SetFillColor keeps the previous fill when spec can not be parsed.
func (r *Raster) SetFillColor(spec string) {
	if c, ok := ParseColor(spec); ok {
		r.fill = c
	}
}

func (r *Raster) SetBackgroundColor(spec string) {
	if c, ok := ParseColor(spec); ok {
		r.bg = c
	}
}

func (r *Raster) MeasureText(s string) float64 {
	return fixedToFloat(font.MeasureString(r.face, s))
}

func (r *Raster) ClearRect(x, y, w, h float64) {
	rect := image.Rect(
		int(math.Floor(x)), int(math.Floor(y)),
		int(math.Ceil(x+w)), int(math.Ceil(y+h)),
	).Intersect(r.img.Bounds())
	if rect.Empty() {
		return
	}
	draw.Draw(r.img, rect, image.Transparent, image.Point{}, draw.Src)
}

func (r *Raster) FillText(s string, x, y float64) {
	if s == "" {
		return
	}
	m := r.face.Metrics()
	ascent, descent := fixedToFloat(m.Ascent), fixedToFloat(m.Descent)

	dotY := y
	switch r.baseline {
	case BaselineMiddle:
		dotY = y + (ascent-descent)/2
	case BaselineTop:
		dotY = y + ascent
	}

	d := &font.Drawer{
		Dst:  r.img,
		Src:  image.NewUniform(r.fill),
		Face: r.face,
		Dot:  fixed.Point26_6{X: floatToFixed(x), Y: floatToFixed(dotY)},
	}
	d.DrawString(s)
}

// Ink returns the drawn layer without the background.
func (r *Raster) Ink() *image.RGBA {
	return r.img
}

// Snapshot composites the ink over the background into a frame taken from
// the image pool. The caller owns the frame and may hand it back with
// system.PutImage.
func (r *Raster) Snapshot() *image.RGBA {
	bounds := r.img.Bounds()
	dst := system.GetImage(bounds)
	draw.Draw(dst, bounds, image.NewUniform(r.bg), image.Point{}, draw.Src)
	draw.Draw(dst, bounds, r.img, bounds.Min, draw.Over)
	return dst
}

// Background returns the current background color.
func (r *Raster) Background() color.NRGBA {
	return r.bg
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}

// Шрифты парсим один раз на процесс, Face создаём на каждый Raster,
// т.к. opentype.Face не потокобезопасен.
var (
	fontsOnce sync.Once
	fonts     map[string]*opentype.Font
)

func loadFonts() {
	fonts = make(map[string]*opentype.Font)
	for name, ttf := range map[string][]byte{
		"mono":      gomono.TTF,
		"mono-bold": gomonobold.TTF,
		"sans":      goregular.TTF,
		"sans-bold": gobold.TTF,
	} {
		f, err := opentype.Parse(ttf)
		if err != nil {
			slog.Warn("failed to parse builtin font", "font", name, "err", err)
			continue
		}
		fonts[name] = f
	}
}

func variantFor(f Font) string {
	family := strings.ToLower(f.Family)
	base := "sans"
	if strings.Contains(family, "mono") || strings.Contains(family, "courier") {
		base = "mono"
	}
	switch strings.ToLower(f.Weight) {
	case "bold", "bolder", "600", "700", "800", "900":
		return base + "-bold"
	}
	return base
}

func newFace(key faceKey) font.Face {
	fontsOnce.Do(loadFonts)
	f, ok := fonts[key.variant]
	if !ok {
		return basicfont.Face7x13
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    key.size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		slog.Warn("failed to create font face, using basicfont", "variant", key.variant, "size", key.size, "err", err)
		return basicfont.Face7x13
	}
	return face
}
