package canvas

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestViewportRoundTrip(t *testing.T) {
	v := Viewport{
		OriginX: 12, OriginY: 34,
		DisplayW: 800, DisplayH: 600,
		PixelW: 1600, PixelH: 1200,
	}

	zooms := []float64{MinZoom, 0.5, 1.0, 1.44, MaxZoom}
	points := []Point{{X: 12, Y: 34}, {X: 400, Y: 300}, {X: 811.5, Y: 633.25}}

	for _, zoom := range zooms {
		for _, p := range points {
			img := v.ToImage(p, zoom)
			back := v.ToCanvas(img, zoom)
			assert.InDelta(t, p.X, back.X, 1e-9)
			assert.InDelta(t, p.Y, back.Y, 1e-9)
		}
	}
}

func TestViewportBackingStoreRatio(t *testing.T) {
	// retina-style 2x backing store, zoom 1: pointer deltas double in image space
	v := Viewport{DisplayW: 400, DisplayH: 300, PixelW: 800, PixelH: 600}
	img := v.ToImage(Point{X: 100, Y: 50}, 1.0)
	assert.Equal(t, 200.0, img.X)
	assert.Equal(t, 100.0, img.Y)
}

func TestViewportZoomDivides(t *testing.T) {
	v := Viewport{DisplayW: 400, DisplayH: 300, PixelW: 400, PixelH: 300}
	img := v.ToImage(Point{X: 100, Y: 60}, 2.0)
	assert.Equal(t, 50.0, img.X)
	assert.Equal(t, 30.0, img.Y)
}
