package raster

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/SAMJ447/inspection-proto/internal/canvas"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestPNG(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 0x7f
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	path := filepath.Join(t.TempDir(), "drawing.png")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
	return path
}

func TestOpenAndPage(t *testing.T) {
	r, err := Open(writeTestPNG(t, 120, 90))
	require.NoError(t, err)

	img, err := r.Page(context.Background(), 1, canvas.BaseRasterScale)
	require.NoError(t, err)
	assert.Equal(t, 120, img.Bounds().Dx())
	assert.Equal(t, 90, img.Bounds().Dy())

	_, err = r.Page(context.Background(), 2, canvas.BaseRasterScale)
	assert.Error(t, err)
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
}

func TestCropClampsToBounds(t *testing.T) {
	r, err := Open(writeTestPNG(t, 100, 100))
	require.NoError(t, err)

	crop, err := r.Crop(canvas.OCRRegion{X: 80, Y: 80, W: 50, H: 50})
	require.NoError(t, err)
	assert.Equal(t, 20, crop.Bounds().Dx())
	assert.Equal(t, 20, crop.Bounds().Dy())
}

func TestCropOutsideBounds(t *testing.T) {
	r, err := Open(writeTestPNG(t, 100, 100))
	require.NoError(t, err)

	_, err = r.Crop(canvas.OCRRegion{X: 200, Y: 200, W: 10, H: 10})
	assert.Error(t, err)
}
