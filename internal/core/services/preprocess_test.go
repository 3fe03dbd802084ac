package services

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestPNG(t *testing.T, img image.Image) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "in.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	return path
}

func decodeGray(t *testing.T, path string) *image.Gray {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, _, err := image.Decode(f)
	require.NoError(t, err)
	gray, ok := img.(*image.Gray)
	require.True(t, ok, "preprocessed output should be single-channel grayscale")
	return gray
}

func TestPreparePassesThroughSmallGrayImages(t *testing.T) {
	in := writeTestPNG(t, image.NewGray(image.Rect(0, 0, 100, 50)))
	p := NewPreprocessor()
	p.TempDir = t.TempDir()

	out, temp, err := p.Prepare(in, 0)

	require.NoError(t, err)
	assert.False(t, temp)
	assert.Equal(t, in, out)
}

func TestPrepareConvertsColorToGray(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 40, 40))
	for i := range img.Pix {
		img.Pix[i] = 180
	}
	in := writeTestPNG(t, img)
	p := NewPreprocessor()
	p.TempDir = t.TempDir()

	out, temp, err := p.Prepare(in, 0)

	require.NoError(t, err)
	require.True(t, temp)
	defer os.Remove(out)
	gray := decodeGray(t, out)
	assert.Equal(t, 40, gray.Bounds().Dx())
	assert.Equal(t, 40, gray.Bounds().Dy())
}

func TestPrepareResizesPreservingAspect(t *testing.T) {
	in := writeTestPNG(t, image.NewGray(image.Rect(0, 0, 256, 128)))
	p := NewPreprocessor()
	p.TempDir = t.TempDir()
	p.MaxDimension = 128

	out, temp, err := p.Prepare(in, 0)

	require.NoError(t, err)
	require.True(t, temp)
	defer os.Remove(out)
	gray := decodeGray(t, out)
	assert.Equal(t, 128, gray.Bounds().Dx())
	assert.Equal(t, 64, gray.Bounds().Dy())
}

func TestPrepareRotationExpandsCanvas(t *testing.T) {
	in := writeTestPNG(t, image.NewGray(image.Rect(0, 0, 40, 20)))
	p := NewPreprocessor()
	p.TempDir = t.TempDir()

	out, temp, err := p.Prepare(in, 90)

	require.NoError(t, err)
	require.True(t, temp)
	defer os.Remove(out)
	gray := decodeGray(t, out)
	assert.InDelta(t, 20, gray.Bounds().Dx(), 1)
	assert.InDelta(t, 40, gray.Bounds().Dy(), 1)
}

func TestPrepareRotationFillsCornersBlack(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 40, 40))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	in := writeTestPNG(t, img)
	p := NewPreprocessor()
	p.TempDir = t.TempDir()

	out, temp, err := p.Prepare(in, 45)

	require.NoError(t, err)
	require.True(t, temp)
	defer os.Remove(out)
	gray := decodeGray(t, out)
	// 45 degrees turns a 40px square into a ~57px diamond.
	assert.InDelta(t, 57, gray.Bounds().Dx(), 2)
	assert.Equal(t, uint8(0), gray.GrayAt(0, 0).Y, "corners outside the rotated image are black")
	cx, cy := gray.Bounds().Dx()/2, gray.Bounds().Dy()/2
	assert.Equal(t, uint8(255), gray.GrayAt(cx, cy).Y, "image content survives rotation")
}

func TestPrepareRejectsNonImages(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.png")
	require.NoError(t, os.WriteFile(path, []byte("not an image"), 0o644))
	p := NewPreprocessor()

	_, _, err := p.Prepare(path, 0)

	require.Error(t, err)
}
