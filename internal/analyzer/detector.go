package analyzer

import "image"

// Block is a connected region of drawn pixels
type Block struct {
	Rect       image.Rectangle
	Type       string  // "glyphs", "unknown"
	Confidence float64 // 0.0-1.0
}

// Detector is the interface for frame analysis strategies
type Detector interface {
	Detect(img image.Image) ([]Block, error)
}
