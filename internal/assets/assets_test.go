package assets

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstallIcon(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "icons")

	path, err := InstallIcon(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "bell.png"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, Bell(), data)
	assert.Equal(t, []byte("\x89PNG"), data[:4])
}

func TestInstallIcon_RewritesStaleCopy(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bell.png"), []byte("stale"), 0o644))

	path, err := InstallIcon(dir)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, Bell(), data)
}

func TestBell_IsVisibleIcon(t *testing.T) {
	img, err := png.Decode(bytes.NewReader(Bell()))
	require.NoError(t, err)

	b := img.Bounds()
	assert.GreaterOrEqual(t, b.Dx(), 32)
	assert.GreaterOrEqual(t, b.Dy(), 32)

	opaque := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a > 0 {
				opaque++
			}
		}
	}
	assert.Greater(t, opaque, b.Dx()*b.Dy()/10)
}
