package canvas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewShapeDefaults(t *testing.T) {
	style := DefaultStyle()

	text := NewShape("t1", KindText, 1, Point{X: 10, Y: 20}, style)
	assert.Equal(t, "Text", text.Text)
	assert.Equal(t, float64(DefaultTextBoxW), text.W)
	assert.Equal(t, float64(DefaultTextBoxH), text.H)

	callout := NewShape("c1", KindCallout, 1, Point{X: 10, Y: 20}, style)
	assert.Equal(t, "Callout", callout.Text)

	check := NewShape("k1", KindCheck, 1, Point{X: 10, Y: 20}, style)
	assert.Equal(t, float64(DefaultMarkSize), check.Size)

	arrow := NewShape("a1", KindArrow, 1, Point{X: 10, Y: 20}, style)
	assert.Equal(t, arrow.X, arrow.X2)
	assert.Equal(t, arrow.Y, arrow.Y2)
}

func TestNormalizeNegativeExtent(t *testing.T) {
	s := Shape{Type: KindRect, X: 100, Y: 100, W: -40, H: -30}
	s.Normalize()
	assert.Equal(t, 60.0, s.X)
	assert.Equal(t, 70.0, s.Y)
	assert.Equal(t, 40.0, s.W)
	assert.Equal(t, 30.0, s.H)
}

func TestNormalizeLeavesArrowAlone(t *testing.T) {
	s := Shape{Type: KindArrow, X: 100, Y: 100, X2: 20, Y2: 30}
	s.Normalize()
	assert.Equal(t, 100.0, s.X)
	assert.Equal(t, 20.0, s.X2)
}

func TestSetTextOnlyForTextKinds(t *testing.T) {
	s := Shape{Type: KindText, Text: "Text"}
	require.NoError(t, s.SetText("weld at B-4"))
	assert.Equal(t, "weld at B-4", s.Text)

	r := Shape{Type: KindRect}
	assert.Error(t, r.SetText("nope"))
}

func TestBoundsPerKind(t *testing.T) {
	arrow := Shape{Type: KindArrow, X: 50, Y: 80, X2: 10, Y2: 20}
	b := arrow.Bounds()
	assert.Equal(t, Rect{X: 10, Y: 20, W: 40, H: 60}, b)

	check := Shape{Type: KindCheck, X: 100, Y: 100, Size: 24}
	assert.Equal(t, Rect{X: 88, Y: 88, W: 24, H: 24}, check.Bounds())

	rect := Shape{Type: KindRect, X: 5, Y: 6, W: 7, H: 8}
	assert.Equal(t, Rect{X: 5, Y: 6, W: 7, H: 8}, rect.Bounds())
}

func TestPageShapesPartition(t *testing.T) {
	shapes := []Shape{
		{ID: "a", Page: 1},
		{ID: "b", Page: 2},
		{ID: "c", Page: 1},
	}
	got := PageShapes(shapes, 1)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "c", got[1].ID)
	assert.Empty(t, PageShapes(shapes, 3))
}

func TestHitTestTopmostWins(t *testing.T) {
	shapes := []Shape{
		{ID: "bottom", Type: KindRect, Page: 1, X: 0, Y: 0, W: 100, H: 100},
		{ID: "top", Type: KindRect, Page: 1, X: 40, Y: 40, W: 100, H: 100},
	}

	id, ok := HitTest(shapes, 1, Point{X: 50, Y: 50})
	require.True(t, ok)
	assert.Equal(t, "top", id)

	id, ok = HitTest(shapes, 1, Point{X: 10, Y: 10})
	require.True(t, ok)
	assert.Equal(t, "bottom", id)

	_, ok = HitTest(shapes, 1, Point{X: 500, Y: 500})
	assert.False(t, ok)
}

func TestHitTestIgnoresOtherPages(t *testing.T) {
	shapes := []Shape{
		{ID: "p2", Type: KindRect, Page: 2, X: 0, Y: 0, W: 100, H: 100},
	}
	_, ok := HitTest(shapes, 1, Point{X: 50, Y: 50})
	assert.False(t, ok)
}

func TestHitTestArrowUsesSegmentBox(t *testing.T) {
	shapes := []Shape{
		{ID: "a", Type: KindArrow, Page: 1, X: 0, Y: 0, X2: 100, Y2: 100},
	}
	// inside the bounding box but far from the segment still hits
	id, ok := HitTest(shapes, 1, Point{X: 90, Y: 10})
	require.True(t, ok)
	assert.Equal(t, "a", id)
}
