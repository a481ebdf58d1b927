package video

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/gif"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestBuildFFmpegArgs(t *testing.T) {
	tests := []struct {
		encoder string
		want    []string
	}{
		{"", []string{"-c:v", "libx264", "-crf", "23", "-preset", "medium"}},
		{"h264_nvenc", []string{"-cq", "23"}},
		{"h264_videotoolbox", []string{"-b:v", "2300k"}},
	}
	for _, tt := range tests {
		t.Run(tt.encoder, func(t *testing.T) {
			args := buildFFmpegArgs(75, 60, "out.mp4", Options{FPS: 30, Encoder: tt.encoder, Quality: 23})
			assert.Subset(t, args, tt.want)
			assert.Contains(t, args, "75x60")
			assert.Contains(t, args, "pad=ceil(iw/2)*2:ceil(ih/2)*2")
			assert.Equal(t, "out.mp4", args[len(args)-1])
		})
	}
}

func TestWriteRawRGBASubImage(t *testing.T) {
	big := solid(4, 4, color.RGBA{R: 255, A: 255})
	sub := big.SubImage(image.Rect(1, 1, 3, 3))

	var buf bytes.Buffer
	require.NoError(t, writeRawRGBA(&buf, sub))
	assert.Len(t, buf.Bytes(), 2*2*4)
	assert.Equal(t, []byte{255, 0, 0, 255}, buf.Bytes()[:4])
}

func TestGIFSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.gif")
	s, err := NewGIFSink(path, 30)
	require.NoError(t, err)

	require.NoError(t, s.WriteFrame(solid(10, 6, color.Black)))
	require.NoError(t, s.WriteFrame(solid(10, 6, color.Transparent)))
	require.NoError(t, s.WriteFrame(solid(10, 6, color.White)))
	assert.Equal(t, 3, s.Frames())
	require.NoError(t, s.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	g, err := gif.DecodeAll(f)
	require.NoError(t, err)
	require.Len(t, g.Image, 3)
	assert.Equal(t, 3, g.Delay[0])
	assert.Equal(t, 10, g.Image[0].Bounds().Dx())

	_, _, _, a := g.Image[1].At(5, 3).RGBA()
	assert.Zero(t, a, "transparent background is kept")
}

func TestGIFSinkEmpty(t *testing.T) {
	s, err := NewGIFSink(filepath.Join(t.TempDir(), "empty.gif"), 60)
	require.NoError(t, err)
	assert.Error(t, s.Close())

	_, err = NewGIFSink("x.gif", 0)
	assert.Error(t, err)
}

func TestPNGSink(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "frames")
	s, err := NewPNGSink(dir)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		require.NoError(t, s.WriteFrame(solid(4, 4, color.White)))
	}
	require.NoError(t, s.Close())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "frame_00000.png", entries[0].Name())
	assert.Equal(t, "frame_00002.png", entries[2].Name())
}

func TestNewSinkByExtension(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s, err := NewSink(ctx, filepath.Join(dir, "a.GIF"), 4, 4, Options{FPS: 25})
	require.NoError(t, err)
	assert.IsType(t, &GIFSink{}, s)

	s, err = NewSink(ctx, filepath.Join(dir, "seq"), 4, 4, Options{FPS: 25})
	require.NoError(t, err)
	assert.IsType(t, &PNGSink{}, s)

	_, err = NewSink(ctx, filepath.Join(dir, "b.gif"), 0, 4, Options{FPS: 25})
	assert.Error(t, err)
}
