package ocr

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"

	"github.com/SAMJ447/inspection-proto/internal/canvas"
	llmHandlers "github.com/SAMJ447/inspection-proto/internal/llm_handlers"
)

// Request identifies the crop to recognize: a drawing, a page, and a region
// in image space.
type Request struct {
	DrawingID string
	Page      int
	Region    canvas.OCRRegion
}

// Engine recognizes text in a crop. The crop image may be nil when the
// server cannot rasterize the page itself (PDF drawings); engines decide
// what they can do without it.
type Engine interface {
	Recognize(ctx context.Context, req Request, crop image.Image) (string, error)
}

// StubEngine echoes the crop box without doing any recognition, useful for
// development and as the fallback when no vision model is configured.
type StubEngine struct{}

func (StubEngine) Recognize(_ context.Context, req Request, _ image.Image) (string, error) {
	return fmt.Sprintf(
		"[OCR stub] Drawing: %s, page %d, crop box: x=%g, y=%g, w=%g, h=%g",
		req.DrawingID, req.Page, req.Region.X, req.Region.Y, req.Region.W, req.Region.H,
	), nil
}

// VisionEngine sends the cropped raster to a multimodal chat model and
// returns the transcription.
type VisionEngine struct {
	client llmHandlers.Client
}

func NewVisionEngine(client llmHandlers.Client) *VisionEngine {
	return &VisionEngine{client: client}
}

const visionPrompt = "Transcribe all text visible in this drawing crop. " +
	"Return the text only, preserving line breaks; no commentary."

func (e *VisionEngine) Recognize(ctx context.Context, req Request, crop image.Image) (string, error) {
	if crop == nil {
		return "", fmt.Errorf("no crop raster available for drawing %s page %d", req.DrawingID, req.Page)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, crop); err != nil {
		return "", fmt.Errorf("encode crop: %w", err)
	}
	encoded := base64.StdEncoding.EncodeToString(buf.Bytes())

	msg := llmHandlers.ImageMessage(visionPrompt, "image/png", encoded)
	text, err := e.client.Chat(ctx, "", []llmHandlers.Message{msg})
	if err != nil {
		return "", fmt.Errorf("vision ocr: %w", err)
	}
	return text, nil
}
