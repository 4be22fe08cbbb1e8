package canvas

// Tool is the active drawing tool. Select and OCR are special; every other
// tool creates a shape of the matching kind.
type Tool string

const (
	ToolSelect    Tool = "select"
	ToolOCR       Tool = "ocr"
	ToolRect      Tool = "rect"
	ToolHighlight Tool = "highlight"
	ToolArrow     Tool = "arrow"
	ToolText      Tool = "text"
	ToolCallout   Tool = "callout"
	ToolCheck     Tool = "check"
	ToolCross     Tool = "cross"
)

func (t Tool) kind() (Kind, bool) {
	switch t {
	case ToolRect, ToolHighlight, ToolArrow, ToolText, ToolCallout, ToolCheck, ToolCross:
		return Kind(t), true
	}
	return "", false
}

type dragMode int

const (
	dragNone dragMode = iota
	dragShape
	dragOCR
)

// Pointer is the interaction state machine driving a session from
// pointer-down/move/up events. Positions are already in image space (the
// viewport mapper runs before events reach it). States: Idle, and Dragging
// with mode createOrResize or ocrRegion.
type Pointer struct {
	mode   dragMode
	start  Point
	target string
}

// Dragging reports whether a drag is in progress.
func (p *Pointer) Dragging() bool {
	return p.mode != dragNone
}

// Down handles pointer-down in Idle.
//
// Select: hit-test topmost-first and set or clear the selection.
// OCR: remember the start point and begin an ocrRegion drag.
// Drawing tools: create the shape at the pointer (pushing the pre-creation
// snapshot), select it, and for box/line kinds continue into a
// createOrResize drag; point-placed kinds (check, cross, text, callout) are
// done immediately at their default size.
func (p *Pointer) Down(s *Session, tool Tool, style Style, at Point) {
	if p.mode != dragNone {
		return
	}
	switch tool {
	case ToolSelect:
		id, ok := HitTest(s.Shapes(), s.Page(), at)
		if !ok {
			s.Select("")
			return
		}
		s.Select(id)
	case ToolOCR:
		p.mode = dragOCR
		p.start = at
		s.SetRegion(OCRRegion{Page: s.Page(), X: at.X, Y: at.Y})
	default:
		kind, ok := tool.kind()
		if !ok {
			return
		}
		sh := NewShape(s.ids.NewID(), kind, s.Page(), at, style)
		s.addShape(sh)
		switch kind {
		case KindRect, KindHighlight, KindArrow:
			p.mode = dragShape
			p.start = at
			p.target = sh.ID
		}
	}
}

// Move handles pointer-move. While Idle it is a no-op. In a createOrResize
// drag the target shape's geometry is recomputed from the start point and
// the current point; in an ocrRegion drag the single OCR rectangle is
// recomputed the same way.
func (p *Pointer) Move(s *Session, at Point) {
	switch p.mode {
	case dragShape:
		sh, ok := s.shapeByID(p.target)
		if !ok {
			return
		}
		if sh.Type == KindArrow {
			sh.X, sh.Y = p.start.X, p.start.Y
			sh.X2, sh.Y2 = at.X, at.Y
		} else {
			sh.X, sh.Y = p.start.X, p.start.Y
			sh.W = at.X - p.start.X
			sh.H = at.Y - p.start.Y
			sh.Normalize()
		}
		s.updateShape(sh)
	case dragOCR:
		r := normalizedRegion(p.start, at)
		r.Page = s.Page()
		s.SetRegion(r)
	}
}

// Up ends any drag and returns to Idle. No history push happens here; the
// snapshot was already taken at pointer-down.
func (p *Pointer) Up(s *Session) {
	p.mode = dragNone
	p.target = ""
}

func normalizedRegion(a, b Point) OCRRegion {
	r := OCRRegion{X: a.X, Y: a.Y, W: b.X - a.X, H: b.Y - a.Y}
	if r.W < 0 {
		r.X += r.W
		r.W = -r.W
	}
	if r.H < 0 {
		r.Y += r.H
		r.H = -r.H
	}
	return r
}
