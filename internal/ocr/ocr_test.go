package ocr

import (
	"context"
	"testing"

	"github.com/SAMJ447/inspection-proto/internal/canvas"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStubEngineEchoesCropBox(t *testing.T) {
	req := Request{
		DrawingID: "abc123",
		Page:      3,
		Region:    canvas.OCRRegion{X: 120, Y: 210, W: 400, H: 90},
	}

	text, err := StubEngine{}.Recognize(context.Background(), req, nil)
	require.NoError(t, err)
	assert.Equal(t, "[OCR stub] Drawing: abc123, page 3, crop box: x=120, y=210, w=400, h=90", text)
}

func TestVisionEngineRequiresCrop(t *testing.T) {
	e := NewVisionEngine(nil)
	_, err := e.Recognize(context.Background(), Request{DrawingID: "d", Page: 1}, nil)
	assert.Error(t, err)
}
