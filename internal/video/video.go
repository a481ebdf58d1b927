package video

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	"io"
	"path/filepath"
	"strings"
)

// Sink receives the frames of one rendered run in order.
type Sink interface {
	WriteFrame(img image.Image) error
	Close() error
}

// Options are the export settings shared by all sinks.
type Options struct {
	FPS     int
	Encoder string // ffmpeg video codec, e.g. libx264
	Quality int
}

// NewSink picks a sink by the extension of path. Video containers go
// through ffmpeg, .gif is encoded in process and anything else is treated
// as a directory for a PNG sequence.
func NewSink(ctx context.Context, path string, w, h int, opts Options) (Sink, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("пустой кадр %dx%d", w, h)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp4", ".mov", ".mkv", ".webm":
		return NewFFmpegSink(ctx, path, w, h, opts)
	case ".gif":
		return NewGIFSink(path, opts.FPS)
	default:
		return NewPNGSink(path)
	}
}

// writeRawRGBA пишет пиксели как есть, без промежуточного копирования,
// если у изображения стандартный stride.
func writeRawRGBA(w io.Writer, img image.Image) error {
	bounds := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Stride != bounds.Dx()*4 || rgba.Rect.Min.X != 0 || rgba.Rect.Min.Y != 0 {
		rgba = image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	}
	_, err := w.Write(rgba.Pix)
	return err
}
