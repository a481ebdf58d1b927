package analyzer

import (
	"image"
	"image/color"
)

// InkDetector finds glyph regions on a transparent ink layer by alpha.
type InkDetector struct {
	AlphaThreshold uint8 // pixels at or below count as empty
	MinBlockArea   int
}

func NewInkDetector() *InkDetector {
	return &InkDetector{
		AlphaThreshold: 32,
		MinBlockArea:   4,
	}
}

func (d *InkDetector) Detect(img image.Image) ([]Block, error) {
	mask := alphaMask(img, d.AlphaThreshold)
	// один пиксель: соседние штрихи сливаются, соседние строки нет
	rects := findContours(dilate(mask, 3, 1))
	return toBlocks(rects, d.MinBlockArea, "glyphs", 0.9), nil
}

func alphaMask(img image.Image, threshold uint8) *image.Gray {
	bounds := img.Bounds()
	mask := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			_, _, _, a := img.At(x, y).RGBA()
			if uint8(a>>8) > threshold {
				mask.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return mask
}

func toBlocks(rects []image.Rectangle, minArea int, kind string, confidence float64) []Block {
	blocks := []Block{}
	for _, rect := range rects {
		if rect.Dx()*rect.Dy() >= minArea {
			blocks = append(blocks, Block{Rect: rect, Type: kind, Confidence: confidence})
		}
	}
	return blocks
}
