package video

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
)

// PNGSink writes frame_00000.png, frame_00001.png, ... into a directory.
type PNGSink struct {
	dir    string
	frames int
	enc    png.Encoder
}

func NewPNGSink(dir string) (*PNGSink, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &PNGSink{dir: dir, enc: png.Encoder{CompressionLevel: png.BestSpeed}}, nil
}

func (s *PNGSink) WriteFrame(img image.Image) error {
	path := filepath.Join(s.dir, fmt.Sprintf("frame_%05d.png", s.frames))
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := s.enc.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("png %s: %w", path, err)
	}
	s.frames++
	return f.Close()
}

func (s *PNGSink) Frames() int {
	return s.frames
}

func (s *PNGSink) Close() error { return nil }
