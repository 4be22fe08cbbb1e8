package export

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"strings"

	"codeberg.org/go-pdf/fpdf"
)

// PDF composes page rasters into a single multi-page PDF, each page sized
// exactly to its image so the export is page-accurate. Only rasterized
// pages are embedded; there is no vector re-embedding.
type PDF struct{}

// Compose writes one PDF page per raster, in order.
func (PDF) Compose(pages []image.Image) ([]byte, error) {
	if len(pages) == 0 {
		return nil, fmt.Errorf("no pages to compose")
	}

	doc := fpdf.NewCustom(&fpdf.InitType{UnitStr: "pt"})
	for i, img := range pages {
		w := float64(img.Bounds().Dx())
		h := float64(img.Bounds().Dy())

		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("encode page %d: %w", i+1, err)
		}

		name := fmt.Sprintf("page-%d", i+1)
		opts := fpdf.ImageOptions{ImageType: "PNG"}
		doc.RegisterImageOptionsReader(name, opts, &buf)
		doc.AddPageFormat("P", fpdf.SizeType{Wd: w, Ht: h})
		doc.ImageOptions(name, 0, 0, w, h, false, opts, 0, "")
	}

	var out bytes.Buffer
	if err := doc.Output(&out); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return out.Bytes(), nil
}

// ComposeDataURLs accepts pre-rendered pages as data:image/...;base64 URLs,
// the contract the browser-side export sends, and composes them the same
// way. Entries that are not image data URLs are skipped.
func (p PDF) ComposeDataURLs(pages []string) ([]byte, error) {
	imgs := make([]image.Image, 0, len(pages))
	for i, encoded := range pages {
		if !strings.HasPrefix(encoded, "data:image") {
			continue
		}
		_, b64, ok := strings.Cut(encoded, ",")
		if !ok {
			continue
		}
		raw, err := base64.StdEncoding.DecodeString(b64)
		if err != nil {
			return nil, fmt.Errorf("decode page %d: %w", i+1, err)
		}
		img, _, err := image.Decode(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("decode page %d image: %w", i+1, err)
		}
		imgs = append(imgs, img)
	}
	return p.Compose(imgs)
}
