package video

import (
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"math"
	"os"
)

// framePalette keeps index 0 transparent so transparent backgrounds survive.
var framePalette = append(color.Palette{color.Transparent}, palette.Plan9[:255]...)

// GIFSink collects paletted frames and encodes them on Close.
type GIFSink struct {
	path  string
	delay int // 1/100 s
	anim  gif.GIF
}

func NewGIFSink(path string, fps int) (*GIFSink, error) {
	if fps <= 0 {
		return nil, fmt.Errorf("fps must be positive: %d", fps)
	}
	// GIF delays below 2cs are clamped by most viewers
	delay := int(math.Max(2, math.Round(100/float64(fps))))
	return &GIFSink{path: path, delay: delay, anim: gif.GIF{LoopCount: -1}}, nil
}

// WriteFrame quantizes img right away, so the caller may reuse it.
func (s *GIFSink) WriteFrame(img image.Image) error {
	b := img.Bounds()
	pm := image.NewPaletted(image.Rect(0, 0, b.Dx(), b.Dy()), framePalette)
	draw.FloydSteinberg.Draw(pm, pm.Bounds(), img, b.Min)
	s.anim.Image = append(s.anim.Image, pm)
	s.anim.Delay = append(s.anim.Delay, s.delay)
	s.anim.Disposal = append(s.anim.Disposal, gif.DisposalBackground)
	return nil
}

// Frames returns how many frames were collected so far.
func (s *GIFSink) Frames() int {
	return len(s.anim.Image)
}

func (s *GIFSink) Close() error {
	if len(s.anim.Image) == 0 {
		return fmt.Errorf("gif %s: no frames", s.path)
	}
	f, err := os.Create(s.path)
	if err != nil {
		return err
	}
	if err := gif.EncodeAll(f, &s.anim); err != nil {
		f.Close()
		return fmt.Errorf("gif encode: %w", err)
	}
	return f.Close()
}
