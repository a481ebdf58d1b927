package system

import (
	"image"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindLatestFile(t *testing.T) {
	dir := t.TempDir()
	names := []string{"a.gif", "b.GIF", "c.png", "d.gif"}
	for i, n := range names {
		p := filepath.Join(dir, n)
		require.NoError(t, os.WriteFile(p, []byte("x"), 0644))
		mt := time.Now().Add(time.Duration(i) * time.Minute)
		require.NoError(t, os.Chtimes(p, mt, mt))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "z.gif"), 0755))

	got, err := FindLatestFile(dir, ".gif")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "d.gif"), got)

	got, err = FindLatestFile(dir, ".png", ".jpg")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "c.png"), got)

	_, err = FindLatestFile(dir, ".yaml")
	assert.Error(t, err)

	_, err = FindLatestFile(filepath.Join(dir, "missing"), ".gif")
	assert.Error(t, err)
}

func TestImagePoolReuse(t *testing.T) {
	rect := image.Rect(0, 0, 13, 7)
	before := PoolAllocs()
	img := GetImage(rect)
	assert.Equal(t, before+1, PoolAllocs())
	require.Equal(t, rect, img.Bounds())
	PutImage(img)

	again := GetImage(rect)
	assert.Equal(t, rect, again.Bounds())

	// foreign sizes are dropped silently
	PutImage(image.NewRGBA(image.Rect(0, 0, 1, 99)))
	PutImage(nil)
}

func TestDefaultQuality(t *testing.T) {
	assert.Equal(t, 23, DefaultQuality("libx264"))
	assert.Equal(t, 75, DefaultQuality("h264_videotoolbox"))
	assert.Equal(t, 28, DefaultQuality("h264_nvenc"))
}

func TestProcessStats(t *testing.T) {
	st, err := ProcessStats()
	require.NoError(t, err)
	assert.Positive(t, st.Goroutines)
	assert.NotEmpty(t, st.String())
}
