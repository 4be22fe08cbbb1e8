package canvas

// Viewport describes the on-screen drawing surface: where it sits, how big
// it is displayed, and how big its backing store is. Browsers may display a
// canvas at a different size than its pixel buffer, so the two are tracked
// separately. Panning is fixed at (0,0); the single division by zoom is then
// sufficient to invert the renderer's forward transform.
type Viewport struct {
	// OriginX, OriginY is the top-left of the surface in pointer coordinates.
	OriginX, OriginY float64
	// DisplayW, DisplayH is the displayed (CSS) size.
	DisplayW, DisplayH float64
	// PixelW, PixelH is the backing-store pixel size.
	PixelW, PixelH float64
}

// ToImage converts a pointer position to image space: correct for the
// backing-store/display ratio, subtract the viewport origin, divide by zoom.
// Pure; the exact inverse of ToCanvas for any zoom.
func (v Viewport) ToImage(pointer Point, zoom float64) Point {
	rx := v.PixelW / v.DisplayW
	ry := v.PixelH / v.DisplayH
	return Point{
		X: (pointer.X - v.OriginX) * rx / zoom,
		Y: (pointer.Y - v.OriginY) * ry / zoom,
	}
}

// ToCanvas applies the renderer's forward transform (image * zoom) and maps
// back into pointer coordinates.
func (v Viewport) ToCanvas(img Point, zoom float64) Point {
	rx := v.PixelW / v.DisplayW
	ry := v.PixelH / v.DisplayH
	return Point{
		X: img.X*zoom/rx + v.OriginX,
		Y: img.Y*zoom/ry + v.OriginY,
	}
}
