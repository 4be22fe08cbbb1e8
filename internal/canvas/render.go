package canvas

import (
	"image"
	"math"
	"strconv"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	strokeWidth    = 2.0
	baseFontSize   = 16.0
	lineHeight     = 1.3 // multiplier over baseFontSize for multi-line text
	arrowBarbLen   = 10.0
	arrowBarbAngle = math.Pi / 6 // 30 degrees
	selectMargin   = 4.0
	highlightAlpha = 64
)

// fixed indicator colors, not themeable
const (
	selectColor = "#2563eb"
	regionColor = "#f59e0b"
)

// Renderer composes a base raster and a shape list into a single RGBA
// surface. Rendering is deterministic and always a full redraw: clear, base
// raster scaled by zoom, shapes in collection order, selection indicator,
// live OCR rectangle. All shape geometry is multiplied by zoom explicitly,
// so the forward transform is exactly imageSpace * zoom = canvasSpace and
// the viewport mapper inverts it.
type Renderer struct {
	font *truetype.Font
}

func NewRenderer() (*Renderer, error) {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}
	return &Renderer{font: f}, nil
}

// Render draws onto a fresh surface sized to the base raster scaled by zoom.
// Pass zoom 1 for export surfaces; output is then independent of the live
// on-screen zoom.
func (r *Renderer) Render(base image.Image, shapes []Shape, selected string, region *OCRRegion, zoom float64) image.Image {
	w := int(math.Ceil(float64(base.Bounds().Dx()) * zoom))
	h := int(math.Ceil(float64(base.Bounds().Dy()) * zoom))
	dc := gg.NewContext(w, h)

	dc.SetRGB(1, 1, 1)
	dc.Clear()

	dc.Push()
	dc.Scale(zoom, zoom)
	dc.DrawImage(base, 0, 0)
	dc.Pop()

	for _, s := range shapes {
		r.drawShape(dc, s, zoom)
		if s.ID == selected {
			drawSelection(dc, s, zoom)
		}
	}

	if region != nil {
		drawRegion(dc, *region, zoom)
	}

	return dc.Image()
}

func (r *Renderer) drawShape(dc *gg.Context, s Shape, z float64) {
	dc.SetLineWidth(strokeWidth * z)
	switch s.Type {
	case KindRect:
		dc.SetHexColor(s.Stroke)
		dc.DrawRectangle(s.X*z, s.Y*z, s.W*z, s.H*z)
		dc.Stroke()

	case KindHighlight:
		cr, cg, cb := hexRGB(s.Fill)
		dc.SetRGBA255(cr, cg, cb, highlightAlpha)
		dc.DrawRectangle(s.X*z, s.Y*z, s.W*z, s.H*z)
		dc.Fill()
		dc.SetHexColor(s.Stroke)
		dc.DrawRectangle(s.X*z, s.Y*z, s.W*z, s.H*z)
		dc.Stroke()

	case KindArrow:
		dc.SetHexColor(s.Stroke)
		dc.DrawLine(s.X*z, s.Y*z, s.X2*z, s.Y2*z)
		dc.Stroke()
		// two barbs off the tip; barb length is in image units so it
		// scales with zoom identically to the shaft
		theta := math.Atan2(s.Y2-s.Y, s.X2-s.X)
		for _, da := range []float64{arrowBarbAngle, -arrowBarbAngle} {
			a := theta + math.Pi + da
			bx := s.X2 + math.Cos(a)*arrowBarbLen
			by := s.Y2 + math.Sin(a)*arrowBarbLen
			dc.DrawLine(s.X2*z, s.Y2*z, bx*z, by*z)
			dc.Stroke()
		}

	case KindCheck:
		// three-segment tick inside the size box centered on the anchor
		sz := s.Size
		pts := []Point{
			{s.X - 0.50*sz, s.Y - 0.05*sz},
			{s.X - 0.32*sz, s.Y + 0.12*sz},
			{s.X - 0.08*sz, s.Y + 0.38*sz},
			{s.X + 0.50*sz, s.Y - 0.38*sz},
		}
		dc.SetHexColor(s.Stroke)
		dc.MoveTo(pts[0].X*z, pts[0].Y*z)
		for _, p := range pts[1:] {
			dc.LineTo(p.X*z, p.Y*z)
		}
		dc.Stroke()

	case KindCross:
		hs := s.Size / 2
		dc.SetHexColor(s.Stroke)
		dc.DrawLine((s.X-hs)*z, (s.Y-hs)*z, (s.X+hs)*z, (s.Y+hs)*z)
		dc.Stroke()
		dc.DrawLine((s.X-hs)*z, (s.Y+hs)*z, (s.X+hs)*z, (s.Y-hs)*z)
		dc.Stroke()

	case KindText, KindCallout:
		face := truetype.NewFace(r.font, &truetype.Options{Size: baseFontSize * z})
		dc.SetFontFace(face)
		dc.SetHexColor(s.TextColor)
		for i, line := range strings.Split(s.Text, "\n") {
			baseline := s.Y*z + (float64(i)+1)*baseFontSize*lineHeight*z
			dc.DrawString(line, s.X*z, baseline)
		}
	}
}

// drawSelection overlays the dashed indicator around the shape's hit-test
// box expanded by a fixed margin, the same geometry for every kind.
func drawSelection(dc *gg.Context, s Shape, z float64) {
	b := s.Bounds()
	dc.SetDash(4*z, 3*z)
	dc.SetHexColor(selectColor)
	dc.SetLineWidth(1.5 * z)
	dc.DrawRectangle((b.X-selectMargin)*z, (b.Y-selectMargin)*z,
		(b.W+2*selectMargin)*z, (b.H+2*selectMargin)*z)
	dc.Stroke()
	dc.SetDash()
}

func drawRegion(dc *gg.Context, r OCRRegion, z float64) {
	dc.SetDash(6*z, 4*z)
	dc.SetHexColor(regionColor)
	dc.SetLineWidth(2 * z)
	dc.DrawRectangle(r.X*z, r.Y*z, r.W*z, r.H*z)
	dc.Stroke()
	dc.SetDash()
}

// hexRGB parses #rrggbb; anything unparseable comes back black.
func hexRGB(s string) (int, int, int) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return 0, 0, 0
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, 0, 0
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff)
}
