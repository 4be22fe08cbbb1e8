package canvas

import (
	"fmt"
	"math"
)

// Kind discriminates the annotation shape variants. The same string is the
// "type" field of the wire representation saved/loaded per page.
type Kind string

const (
	KindRect      Kind = "rect"
	KindHighlight Kind = "highlight"
	KindArrow     Kind = "arrow"
	KindText      Kind = "text"
	KindCallout   Kind = "callout"
	KindCheck     Kind = "check"
	KindCross     Kind = "cross"
)

const (
	// DefaultMarkSize is the uniform size of check/cross marks.
	DefaultMarkSize = 24
	// DefaultTextBoxW and DefaultTextBoxH bound text/callout shapes for
	// selection and hit-testing only.
	DefaultTextBoxW = 200
	DefaultTextBoxH = 40

	placeholderText    = "Text"
	placeholderCallout = "Callout"
)

// Point is a position in image space (unscaled raster pixels).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an axis-aligned box in image space.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether p lies inside the rect (edges inclusive).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

// Style carries the color defaults applied to new shapes.
type Style struct {
	Stroke    string `json:"stroke"`
	Fill      string `json:"fill"`
	TextColor string `json:"textColor"`
}

// DefaultStyle matches the palette the drawing surface starts with.
func DefaultStyle() Style {
	return Style{Stroke: "#ef4444", Fill: "#eab308", TextColor: "#1f2937"}
}

// Shape is one annotation. All geometry is stored in image space, never in
// viewport pixels; that single invariant keeps zoom, rendering and
// hit-testing consistent. Fields beyond the common ones are meaningful only
// for the kinds listed on them; the flat layout is exactly the wire mapping
// the annotation store round-trips.
type Shape struct {
	ID   string `json:"id"`
	Type Kind   `json:"type"`
	Page int    `json:"page"`

	// rect/highlight: top-left + extent. text/callout: anchor + hit box.
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w,omitempty"`
	H float64 `json:"h,omitempty"`

	// arrow only: second endpoint. (X, Y) is the first.
	X2 float64 `json:"x2,omitempty"`
	Y2 float64 `json:"y2,omitempty"`

	// check/cross only: uniform mark size centered on (X, Y).
	Size float64 `json:"size,omitempty"`

	// text/callout only.
	Text string `json:"text,omitempty"`

	Stroke    string `json:"stroke,omitempty"`
	Fill      string `json:"fill,omitempty"`
	TextColor string `json:"textColor,omitempty"`
}

// NewShape builds a shape of the given kind anchored at p, applying the
// kind-specific defaults. The id comes from the session's IDSource so shape
// creation stays reproducible in tests.
func NewShape(id string, kind Kind, page int, p Point, style Style) Shape {
	s := Shape{
		ID:        id,
		Type:      kind,
		Page:      page,
		X:         p.X,
		Y:         p.Y,
		Stroke:    style.Stroke,
		Fill:      style.Fill,
		TextColor: style.TextColor,
	}
	switch kind {
	case KindArrow:
		// degenerate zero-length segment until the drag sizes it
		s.X2, s.Y2 = p.X, p.Y
	case KindCheck, KindCross:
		s.Size = DefaultMarkSize
	case KindText:
		s.W, s.H = DefaultTextBoxW, DefaultTextBoxH
		s.Text = placeholderText
	case KindCallout:
		s.W, s.H = DefaultTextBoxW, DefaultTextBoxH
		s.Text = placeholderCallout
	}
	return s
}

// Normalize rewrites a box shape so (X, Y) is the minimum corner and W/H are
// non-negative. Dragging up-left from the start point yields the same shape
// as dragging down-right to the mirrored point. Arrows keep their direction
// and are left untouched.
func (s *Shape) Normalize() {
	switch s.Type {
	case KindRect, KindHighlight, KindText, KindCallout:
		if s.W < 0 {
			s.X += s.W
			s.W = -s.W
		}
		if s.H < 0 {
			s.Y += s.H
			s.H = -s.H
		}
	}
}

// SetText replaces the text content. It is the only mutation permitted
// outside the drag lifecycle and applies only to text-bearing kinds.
func (s *Shape) SetText(text string) error {
	if s.Type != KindText && s.Type != KindCallout {
		return fmt.Errorf("shape kind %q has no text", s.Type)
	}
	s.Text = text
	return nil
}

// Bounds returns the hit-test box. The selection indicator is drawn around
// exactly this box, whatever the kind.
func (s Shape) Bounds() Rect {
	switch s.Type {
	case KindArrow:
		// bounding box of the segment, not distance to line
		return Rect{
			X: math.Min(s.X, s.X2),
			Y: math.Min(s.Y, s.Y2),
			W: math.Abs(s.X2 - s.X),
			H: math.Abs(s.Y2 - s.Y),
		}
	case KindCheck, KindCross:
		return Rect{X: s.X - s.Size/2, Y: s.Y - s.Size/2, W: s.Size, H: s.Size}
	default:
		return Rect{X: s.X, Y: s.Y, W: s.W, H: s.H}
	}
}

// PageShapes returns the subset of shapes on the given page, preserving
// creation order.
func PageShapes(shapes []Shape, page int) []Shape {
	var out []Shape
	for _, s := range shapes {
		if s.Page == page {
			out = append(out, s)
		}
	}
	return out
}

// HitTest walks the page's shapes in reverse creation order (topmost paints
// last, so topmost is tested first) and returns the id of the first shape
// whose bounds contain p.
func HitTest(shapes []Shape, page int, p Point) (string, bool) {
	for i := len(shapes) - 1; i >= 0; i-- {
		if shapes[i].Page != page {
			continue
		}
		if shapes[i].Bounds().Contains(p) {
			return shapes[i].ID, true
		}
	}
	return "", false
}
