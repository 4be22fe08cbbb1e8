package raster

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/SAMJ447/inspection-proto/internal/canvas"
)

// ImageRasterizer serves a single-page drawing backed by an ordinary image
// upload. The original image itself is the page raster: its natural pixel
// dimensions define image space, so the scale hint is ignored.
type ImageRasterizer struct {
	img image.Image
}

func NewImageRasterizer(img image.Image) *ImageRasterizer {
	return &ImageRasterizer{img: img}
}

// Open decodes the image at path into a single-page rasterizer.
func Open(path string) (*ImageRasterizer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open drawing image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode drawing image: %w", err)
	}
	return &ImageRasterizer{img: img}, nil
}

func (r *ImageRasterizer) Page(_ context.Context, page int, _ float64) (image.Image, error) {
	if page != 1 {
		return nil, fmt.Errorf("image drawing has a single page, got %d", page)
	}
	return r.img, nil
}

// Crop returns the sub-image covered by an OCR region, clamped to the page
// bounds.
func (r *ImageRasterizer) Crop(region canvas.OCRRegion) (image.Image, error) {
	b := r.img.Bounds()
	rect := image.Rect(int(region.X), int(region.Y), int(region.X+region.W), int(region.Y+region.H))
	rect = rect.Intersect(b)
	if rect.Empty() {
		return nil, fmt.Errorf("region outside page bounds")
	}

	type subImager interface {
		SubImage(image.Rectangle) image.Image
	}
	if si, ok := r.img.(subImager); ok {
		return si.SubImage(rect), nil
	}

	out := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	for y := 0; y < rect.Dy(); y++ {
		for x := 0; x < rect.Dx(); x++ {
			out.Set(x, y, r.img.At(rect.Min.X+x, rect.Min.Y+y))
		}
	}
	return out, nil
}

var _ canvas.Rasterizer = (*ImageRasterizer)(nil)
