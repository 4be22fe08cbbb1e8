package canvas

import (
	"context"
	"errors"
	"fmt"
	"image"
)

// Zoom bounds and the multiplicative step applied per zoom in/out.
const (
	MinZoom  = 0.2
	MaxZoom  = 5.0
	ZoomStep = 1.2
)

// BaseRasterScale is the fixed scale every base raster is requested at, for
// display and export alike. Using one scale everywhere is what makes image
// space a single consistent coordinate system, so export output is
// independent of the on-screen zoom.
const BaseRasterScale = 2.0

var (
	// ErrPageOutOfRange rejects navigation outside [1, PageCount].
	ErrPageOutOfRange = errors.New("page out of range")
	// ErrNoRaster means no base raster is available yet; rendering skips
	// silently since this is a normal transient state during load.
	ErrNoRaster = errors.New("no base raster loaded")
	// ErrStaleNavigation is returned when a page raster arrives after a
	// later navigation has superseded the request.
	ErrStaleNavigation = errors.New("navigation superseded")
	// ErrNoRegion rejects OCR requests before a region has been drawn.
	ErrNoRegion = errors.New("no OCR region drawn")
)

// Rasterizer is the opaque page-rasterizer collaborator: it returns a bitmap
// for a page at a caller-chosen scale. For non-PDF uploads the original image
// itself is the single-page raster.
type Rasterizer interface {
	Page(ctx context.Context, page int, scale float64) (image.Image, error)
}

// Compositor turns an ordered list of page rasters into a single
// downloadable artifact.
type Compositor interface {
	Compose(pages []image.Image) ([]byte, error)
}

// OCRRegion is the single live crop rectangle, replaced on every OCR-tool
// drag and cleared on page navigation.
type OCRRegion struct {
	Page int     `json:"page"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	W    float64 `json:"w"`
	H    float64 `json:"h"`
}

// Session holds all per-document state: current page, the full shape
// collection across pages (page is a partition key, not a separate store),
// selection, undo history, zoom, the live OCR region and the current base
// raster. All mutation runs on a single event sequence; the generation
// counter only guards against stale rasterizer responses from superseded
// navigations.
type Session struct {
	DrawingID string
	PageCount int

	page     int
	zoom     float64
	shapes   []Shape
	selected string
	history  History
	ocr      *OCRRegion
	ids      IDSource

	raster Rasterizer
	base   image.Image
	gen    uint64
}

// NewSession starts a session on page 1 at zoom 1. The rasterizer may be nil
// for pure state-machine use; rendering then reports ErrNoRaster.
func NewSession(drawingID string, pageCount int, ids IDSource, raster Rasterizer) *Session {
	if ids == nil {
		ids = UUIDSource{}
	}
	return &Session{
		DrawingID: drawingID,
		PageCount: pageCount,
		page:      1,
		zoom:      1.0,
		ids:       ids,
		raster:    raster,
	}
}

func (s *Session) Page() int          { return s.page }
func (s *Session) Zoom() float64      { return s.zoom }
func (s *Session) Shapes() []Shape    { return s.shapes }
func (s *Session) Selected() string   { return s.selected }
func (s *Session) Region() *OCRRegion { return s.ocr }
func (s *Session) Base() image.Image  { return s.base }

// CurrentPageShapes returns the current page's partition in creation order.
func (s *Session) CurrentPageShapes() []Shape {
	return PageShapes(s.shapes, s.page)
}

// SetShapes replaces the whole collection, e.g. after loading from the
// annotation store. History is not touched; callers decide whether the
// replacement is undoable.
func (s *Session) SetShapes(shapes []Shape) {
	s.shapes = shapes
}

// GoToPage navigates to page n. Out-of-range pages are rejected without any
// state change. Navigation clears the OCR region and the selection and
// fetches the target page's base raster; a raster arriving after a newer
// navigation is discarded.
func (s *Session) GoToPage(ctx context.Context, n int) error {
	if n < 1 || n > s.PageCount {
		return fmt.Errorf("%w: %d of %d", ErrPageOutOfRange, n, s.PageCount)
	}
	s.page = n
	s.ocr = nil
	s.selected = ""
	s.gen++
	gen := s.gen

	if s.raster == nil {
		s.base = nil
		return nil
	}
	img, err := s.raster.Page(ctx, n, BaseRasterScale)
	if err != nil {
		return fmt.Errorf("rasterize page %d: %w", n, err)
	}
	if gen != s.gen {
		return ErrStaleNavigation
	}
	s.base = img
	return nil
}

// ZoomIn, ZoomOut and ResetZoom adjust the display zoom, clamped to
// [MinZoom, MaxZoom]. Zoom never touches shape geometry.
func (s *Session) ZoomIn() {
	s.zoom = clampZoom(s.zoom * ZoomStep)
}

func (s *Session) ZoomOut() {
	s.zoom = clampZoom(s.zoom / ZoomStep)
}

func (s *Session) ResetZoom() {
	s.zoom = 1.0
}

func clampZoom(z float64) float64 {
	if z < MinZoom {
		return MinZoom
	}
	if z > MaxZoom {
		return MaxZoom
	}
	return z
}

// Select sets (or clears, with "") the selected shape id.
func (s *Session) Select(id string) {
	s.selected = id
}

// SetRegion replaces the live OCR region.
func (s *Session) SetRegion(r OCRRegion) {
	s.ocr = &r
}

// addShape appends a new shape after pushing the pre-creation snapshot, and
// selects it. Used by the pointer state machine on draw-tool pointer-down.
func (s *Session) addShape(sh Shape) {
	s.history.Push(s.shapes)
	s.shapes = append(s.shapes, sh)
	s.selected = sh.ID
}

// updateShape rewrites the shape with the given id in place. No history
// push: drag updates are covered by the snapshot taken at pointer-down.
func (s *Session) updateShape(sh Shape) {
	for i := range s.shapes {
		if s.shapes[i].ID == sh.ID {
			s.shapes[i] = sh
			return
		}
	}
}

func (s *Session) shapeByID(id string) (Shape, bool) {
	for _, sh := range s.shapes {
		if sh.ID == id {
			return sh, true
		}
	}
	return Shape{}, false
}

// UpdateText edits the text of a text-bearing shape, pushing an undo
// snapshot first.
func (s *Session) UpdateText(id, text string) error {
	sh, ok := s.shapeByID(id)
	if !ok {
		return fmt.Errorf("no shape %q", id)
	}
	if err := sh.SetText(text); err != nil {
		return err
	}
	s.history.Push(s.shapes)
	s.updateShape(sh)
	return nil
}

// DeleteSelected removes the selected shape and clears the selection.
// With no selection it is a no-op.
func (s *Session) DeleteSelected() {
	if s.selected == "" {
		return
	}
	s.history.Push(s.shapes)
	out := s.shapes[:0:0]
	for _, sh := range s.shapes {
		if sh.ID != s.selected {
			out = append(out, sh)
		}
	}
	s.shapes = out
	s.selected = ""
}

// Undo restores the most recent snapshot and clears the selection. An empty
// history is a silent no-op; the return reports whether anything changed.
func (s *Session) Undo() bool {
	snap, ok := s.history.Undo()
	if !ok {
		return false
	}
	s.shapes = snap
	s.selected = ""
	return true
}

// Render draws the current page onto a fresh surface at the session zoom.
// Returns ErrNoRaster while the base raster is still loading; callers treat
// that as "skip this repaint", not as a failure.
func (s *Session) Render(r *Renderer) (image.Image, error) {
	if s.base == nil {
		return nil, ErrNoRaster
	}
	var region *OCRRegion
	if s.ocr != nil && s.ocr.Page == s.page {
		region = s.ocr
	}
	return r.Render(s.base, s.CurrentPageShapes(), s.selected, region, s.zoom), nil
}

// Export renders every page in order at zoom 1 onto a fresh raster fetched
// at the fixed base scale, so output is independent of the on-screen zoom,
// and hands the ordered set to the compositor. Pages are rasterized
// sequentially to bound memory to one decoded page at a time.
func (s *Session) Export(ctx context.Context, r *Renderer, comp Compositor) ([]byte, error) {
	if s.raster == nil {
		return nil, ErrNoRaster
	}
	pages := make([]image.Image, 0, s.PageCount)
	for page := 1; page <= s.PageCount; page++ {
		base, err := s.raster.Page(ctx, page, BaseRasterScale)
		if err != nil {
			return nil, fmt.Errorf("rasterize page %d: %w", page, err)
		}
		pages = append(pages, r.Render(base, PageShapes(s.shapes, page), "", nil, 1.0))
	}
	return comp.Compose(pages)
}
