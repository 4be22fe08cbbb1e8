package canvas

import (
	"context"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRaster serves a solid-color page of a fixed size and records requests.
type fakeRaster struct {
	w, h     int
	requests []int
	err      error
}

func (f *fakeRaster) Page(_ context.Context, page int, _ float64) (image.Image, error) {
	f.requests = append(f.requests, page)
	if f.err != nil {
		return nil, f.err
	}
	img := image.NewRGBA(image.Rect(0, 0, f.w, f.h))
	for i := range img.Pix {
		img.Pix[i] = 0xcc
	}
	return img, nil
}

type fakeCompositor struct {
	pages []image.Image
}

func (f *fakeCompositor) Compose(pages []image.Image) ([]byte, error) {
	f.pages = pages
	return []byte("pdf"), nil
}

func TestZoomClampSaturates(t *testing.T) {
	s := newTestSession(1)

	for i := 0; i < 50; i++ {
		s.ZoomIn()
	}
	assert.Equal(t, MaxZoom, s.Zoom())
	s.ZoomIn()
	assert.Equal(t, MaxZoom, s.Zoom())

	for i := 0; i < 50; i++ {
		s.ZoomOut()
	}
	assert.Equal(t, MinZoom, s.Zoom())

	s.ResetZoom()
	assert.Equal(t, 1.0, s.Zoom())
}

func TestZoomNeverTouchesGeometry(t *testing.T) {
	s := newTestSession(1)
	var p Pointer
	p.Down(s, ToolRect, DefaultStyle(), Point{X: 10, Y: 20})
	p.Move(s, Point{X: 110, Y: 120})
	p.Up(s)
	before := s.Shapes()[0]

	s.ZoomIn()
	s.ZoomIn()
	assert.Equal(t, before, s.Shapes()[0])
}

func TestGoToPageRejectsOutOfRange(t *testing.T) {
	s := newTestSession(3)
	ctx := context.Background()

	err := s.GoToPage(ctx, 0)
	assert.ErrorIs(t, err, ErrPageOutOfRange)
	err = s.GoToPage(ctx, 4)
	assert.ErrorIs(t, err, ErrPageOutOfRange)
	assert.Equal(t, 1, s.Page())

	require.NoError(t, s.GoToPage(ctx, 3))
	assert.Equal(t, 3, s.Page())
}

func TestNavigationClearsRegionAndSelection(t *testing.T) {
	s := newTestSession(2)
	var p Pointer
	p.Down(s, ToolRect, DefaultStyle(), Point{X: 0, Y: 0})
	p.Move(s, Point{X: 50, Y: 50})
	p.Up(s)
	p.Down(s, ToolOCR, DefaultStyle(), Point{X: 10, Y: 10})
	p.Move(s, Point{X: 30, Y: 30})
	p.Up(s)

	require.NotEmpty(t, s.Selected())
	require.NotNil(t, s.Region())

	require.NoError(t, s.GoToPage(context.Background(), 2))
	assert.Empty(t, s.Selected())
	assert.Nil(t, s.Region())

	// shapes survive navigation, they stay partitioned by page
	assert.Len(t, s.Shapes(), 1)
}

func TestGoToPageFetchesRaster(t *testing.T) {
	fr := &fakeRaster{w: 100, h: 80}
	s := NewSession("d", 3, &SeqSource{}, fr)

	require.NoError(t, s.GoToPage(context.Background(), 2))
	assert.Equal(t, []int{2}, fr.requests)
	assert.NotNil(t, s.Base())
}

func TestGoToPageRasterError(t *testing.T) {
	fr := &fakeRaster{err: errors.New("decode failed")}
	s := NewSession("d", 2, &SeqSource{}, fr)
	err := s.GoToPage(context.Background(), 2)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrPageOutOfRange)
}

func TestRenderWithoutRaster(t *testing.T) {
	s := newTestSession(1)
	r, err := NewRenderer()
	require.NoError(t, err)

	_, err = s.Render(r)
	assert.ErrorIs(t, err, ErrNoRaster)
}

func TestDeleteSelectedAndUndo(t *testing.T) {
	s := newTestSession(1)
	var p Pointer
	p.Down(s, ToolCheck, DefaultStyle(), Point{X: 10, Y: 10})
	p.Up(s)
	p.Down(s, ToolCross, DefaultStyle(), Point{X: 20, Y: 20})
	p.Up(s)
	require.Len(t, s.Shapes(), 2)

	crossID := s.Shapes()[1].ID
	s.Select(crossID)
	s.DeleteSelected()
	assert.Len(t, s.Shapes(), 1)
	assert.Empty(t, s.Selected())

	// delete with no selection is a no-op
	s.DeleteSelected()
	assert.Len(t, s.Shapes(), 1)

	require.True(t, s.Undo())
	assert.Len(t, s.Shapes(), 2)
	assert.Empty(t, s.Selected())
}

func TestUpdateTextPushesHistory(t *testing.T) {
	s := newTestSession(1)
	var p Pointer
	p.Down(s, ToolText, DefaultStyle(), Point{X: 10, Y: 10})
	p.Up(s)
	id := s.Shapes()[0].ID

	require.NoError(t, s.UpdateText(id, "detail 5/S-301"))
	assert.Equal(t, "detail 5/S-301", s.Shapes()[0].Text)

	require.True(t, s.Undo())
	assert.Equal(t, "Text", s.Shapes()[0].Text)

	assert.Error(t, s.UpdateText("missing", "x"))
}

func TestExportRendersEveryPageAtZoomOne(t *testing.T) {
	fr := &fakeRaster{w: 60, h: 40}
	s := NewSession("d", 3, &SeqSource{}, fr)
	var p Pointer
	p.Down(s, ToolCheck, DefaultStyle(), Point{X: 30, Y: 20})
	p.Up(s)

	// on-screen zoom must not leak into the export
	s.ZoomIn()
	s.ZoomIn()

	r, err := NewRenderer()
	require.NoError(t, err)

	comp := &fakeCompositor{}
	out, err := s.Export(context.Background(), r, comp)
	require.NoError(t, err)
	assert.Equal(t, []byte("pdf"), out)

	require.Len(t, comp.pages, 3)
	assert.Equal(t, []int{1, 2, 3}, fr.requests)
	for _, page := range comp.pages {
		assert.Equal(t, 60, page.Bounds().Dx())
		assert.Equal(t, 40, page.Bounds().Dy())
	}
}

func TestExportPartitionsShapesByPage(t *testing.T) {
	fr := &fakeRaster{w: 200, h: 200}
	s := NewSession("d", 2, &SeqSource{}, fr)
	s.SetShapes([]Shape{
		{ID: "a", Type: KindRect, Page: 1, X: 20, Y: 20, W: 100, H: 100, Stroke: "#ef4444"},
	})

	r, err := NewRenderer()
	require.NoError(t, err)

	comp := &fakeCompositor{}
	_, err = s.Export(context.Background(), r, comp)
	require.NoError(t, err)
	require.Len(t, comp.pages, 2)

	// page 1 carries the rect stroke, page 2 is the bare raster
	assert.True(t, hasColorOtherThan(comp.pages[0], comp.pages[1]))
}

// hasColorOtherThan reports whether a differs from b anywhere.
func hasColorOtherThan(a, b image.Image) bool {
	if a.Bounds() != b.Bounds() {
		return true
	}
	for y := a.Bounds().Min.Y; y < a.Bounds().Max.Y; y++ {
		for x := a.Bounds().Min.X; x < a.Bounds().Max.X; x++ {
			if !sameColor(a.At(x, y), b.At(x, y)) {
				return true
			}
		}
	}
	return false
}

func sameColor(a, b color.Color) bool {
	ar, ag, ab, aa := a.RGBA()
	br, bg, bb, ba := b.RGBA()
	return ar == br && ag == bg && ab == bb && aa == ba
}
