package canvas

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBase(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestRenderIsDeterministic(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	base := testBase(200, 150)
	shapes := []Shape{
		{ID: "r", Type: KindRect, Page: 1, X: 10, Y: 10, W: 50, H: 40, Stroke: "#ef4444"},
		{ID: "h", Type: KindHighlight, Page: 1, X: 70, Y: 20, W: 60, H: 30, Stroke: "#ef4444", Fill: "#eab308"},
		{ID: "a", Type: KindArrow, Page: 1, X: 20, Y: 100, X2: 120, Y2: 130, Stroke: "#ef4444"},
		{ID: "t", Type: KindText, Page: 1, X: 10, Y: 60, W: 200, H: 40, Text: "gridline B", TextColor: "#1f2937"},
		{ID: "k", Type: KindCheck, Page: 1, X: 160, Y: 100, Size: 24, Stroke: "#ef4444"},
		{ID: "x", Type: KindCross, Page: 1, X: 180, Y: 130, Size: 24, Stroke: "#ef4444"},
	}
	region := &OCRRegion{Page: 1, X: 5, Y: 5, W: 40, H: 40}

	one := r.Render(base, shapes, "r", region, 1.0)
	two := r.Render(base, shapes, "r", region, 1.0)
	assert.Equal(t, encodePNG(t, one), encodePNG(t, two))
}

func TestRenderSurfaceSizeScalesWithZoom(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	base := testBase(100, 60)
	out := r.Render(base, nil, "", nil, 1.5)
	assert.Equal(t, 150, out.Bounds().Dx())
	assert.Equal(t, 90, out.Bounds().Dy())

	out = r.Render(base, nil, "", nil, 0.5)
	assert.Equal(t, 50, out.Bounds().Dx())
	assert.Equal(t, 30, out.Bounds().Dy())
}

func TestRenderDrawsShapes(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	base := testBase(100, 100)
	empty := r.Render(base, nil, "", nil, 1.0)
	withRect := r.Render(base, []Shape{
		{ID: "r", Type: KindRect, Page: 1, X: 20, Y: 20, W: 50, H: 50, Stroke: "#ef4444"},
	}, "", nil, 1.0)

	assert.NotEqual(t, encodePNG(t, empty), encodePNG(t, withRect))
}

func TestSelectionIndicatorChangesOutput(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	base := testBase(100, 100)
	shapes := []Shape{
		{ID: "r", Type: KindRect, Page: 1, X: 20, Y: 20, W: 50, H: 50, Stroke: "#ef4444"},
	}

	plain := r.Render(base, shapes, "", nil, 1.0)
	selected := r.Render(base, shapes, "r", nil, 1.0)
	assert.NotEqual(t, encodePNG(t, plain), encodePNG(t, selected))
}

func TestHexRGB(t *testing.T) {
	cr, cg, cb := hexRGB("#ef4444")
	assert.Equal(t, 0xef, cr)
	assert.Equal(t, 0x44, cg)
	assert.Equal(t, 0x44, cb)

	cr, cg, cb = hexRGB("not-a-color")
	assert.Zero(t, cr)
	assert.Zero(t, cg)
	assert.Zero(t, cb)
}
