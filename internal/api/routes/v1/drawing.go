package v1

import (
	"context"
	"log"
	"os"

	"github.com/SAMJ447/inspection-proto/internal/config"
	"github.com/SAMJ447/inspection-proto/internal/handlers"
	"github.com/SAMJ447/inspection-proto/internal/libraries"
	llmHandlers "github.com/SAMJ447/inspection-proto/internal/llm_handlers"
	"github.com/SAMJ447/inspection-proto/internal/ocr"
	"github.com/SAMJ447/inspection-proto/internal/repo"

	"github.com/gofiber/fiber/v2"
)

var hub *libraries.Hub

func init() {
	// Initialize the Hub once
	hub = libraries.NewHub()
	// Start the Hub in a goroutine
	go hub.Run()
}

// ocrEngine picks the vision model when one is configured, otherwise the
// stub that echoes the crop box.
func ocrEngine() ocr.Engine {
	provider := os.Getenv("OCR_PROVIDER")
	if provider == "" {
		return ocr.StubEngine{}
	}
	client, err := llmHandlers.NewLLMClient(context.Background(), provider)
	if err != nil {
		log.Printf("ocr provider %q unavailable, falling back to stub: %v", provider, err)
		return ocr.StubEngine{}
	}
	return ocr.NewVisionEngine(client)
}

func registerDrawings(r fiber.Router) {
	// Initialize handler
	drawingRepo := repo.NewDrawingRepository(config.DB)
	annotationRepo := repo.NewAnnotationRepository(config.DB)
	drawingHandler := handlers.NewDrawingHandler(drawingRepo, annotationRepo, hub, ocrEngine())

	// Register routes
	r.Get("/drawings", drawingHandler.GetAllDrawings)
	r.Post("/drawings", drawingHandler.UploadDrawing)
	r.Get("/drawings/:drawingId", drawingHandler.GetDrawingByID)
	r.Get("/drawings/:drawingId/annotations", drawingHandler.LoadAnnotations)
	r.Post("/drawings/:drawingId/annotations", drawingHandler.SaveAnnotations)
	r.Post("/drawings/:drawingId/ocr", drawingHandler.OCRCrop)
	r.Get("/drawings/:drawingId/export", drawingHandler.ExportDrawing)
	r.Post("/export-pdf", drawingHandler.ExportPDF)

	// Use the Hub-based WebSocket handler
	r.Get("/ws", libraries.WebSocketHandler(hub))
}
