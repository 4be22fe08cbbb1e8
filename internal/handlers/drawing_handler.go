package handlers

import (
	"context"
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/SAMJ447/inspection-proto/internal/canvas"
	"github.com/SAMJ447/inspection-proto/internal/export"
	"github.com/SAMJ447/inspection-proto/internal/libraries"
	"github.com/SAMJ447/inspection-proto/internal/models"
	"github.com/SAMJ447/inspection-proto/internal/ocr"
	"github.com/SAMJ447/inspection-proto/internal/raster"
	"github.com/SAMJ447/inspection-proto/internal/repo"

	"github.com/google/uuid"
	"github.com/h2non/filetype"
	pdfapi "github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/gofiber/fiber/v2"
)

const uploadDir = "uploads/drawings"

// for simple crud operations service layer is not required
type DrawingHandler struct {
	repo           repo.DrawingRepoInterface
	annotationRepo repo.AnnotationRepoInterface
	hub            *libraries.Hub
	ocrEngine      ocr.Engine
}

func NewDrawingHandler(repo repo.DrawingRepoInterface, annotationRepo repo.AnnotationRepoInterface, hub *libraries.Hub, ocrEngine ocr.Engine) *DrawingHandler {
	return &DrawingHandler{
		repo:           repo,
		annotationRepo: annotationRepo,
		hub:            hub,
		ocrEngine:      ocrEngine,
	}
}

// function to upload a drawing (PDF or image)
func (h *DrawingHandler) UploadDrawing(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No file provided",
		})
	}

	src, err := file.Open()
	if err != nil {
		log.Println(err, "Error opening uploaded file")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to read upload",
		})
	}
	head := make([]byte, 262)
	n, _ := src.Read(head)
	src.Close()

	kind, err := filetype.Match(head[:n])
	if err != nil || kind == filetype.Unknown {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unrecognized file type",
		})
	}
	contentType := kind.MIME.Value
	switch contentType {
	case "application/pdf", "image/png", "image/jpeg":
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Unsupported file type: %s", contentType),
		})
	}

	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		log.Println(err, "Error creating upload directory")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create upload directory",
		})
	}

	storedName := fmt.Sprintf("%s%s", uuid.NewString(), filepath.Ext(file.Filename))
	storedPath := filepath.Join(uploadDir, storedName)
	if err := c.SaveFile(file, storedPath); err != nil {
		log.Println(err, "Error saving uploaded file")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save upload",
		})
	}

	pageCount := 1
	if contentType == "application/pdf" {
		pageCount, err = pdfapi.PageCountFile(storedPath)
		if err != nil {
			log.Println(err, "Error counting PDF pages")
			os.Remove(storedPath)
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid PDF file",
			})
		}
	}

	drawing := &models.Drawing{
		Filename:    file.Filename,
		StoredName:  storedName,
		ContentType: contentType,
		PageCount:   pageCount,
	}
	id, err := h.repo.CreateDrawing(drawing)
	if err != nil {
		log.Println(err, "Error creating drawing")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create drawing",
		})
	}

	// mirror to GCS when configured, local disk stays authoritative
	if clients := libraries.GetClients(); clients != nil {
		go func() {
			f, err := os.Open(storedPath)
			if err != nil {
				log.Println(err, "Error reopening upload for GCS mirror")
				return
			}
			defer f.Close()
			ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
			defer cancel()
			if err := clients.UploadObject(ctx, storedName, contentType, f); err != nil {
				log.Println(err, "Error mirroring drawing to GCS")
			}
		}()
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"uuid":       id.String(),
		"filename":   file.Filename,
		"page_count": pageCount,
		"message":    "Drawing uploaded successfully",
	})
}

// function to get all drawings
func (h *DrawingHandler) GetAllDrawings(c *fiber.Ctx) error {
	drawings, err := h.repo.GetAllDrawings()
	if err != nil {
		log.Println(err, "Error getting drawings")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get drawings",
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"drawings": drawings,
	})
}

// function to get drawing by ID
func (h *DrawingHandler) GetDrawingByID(c *fiber.Ctx) error {
	drawingID, err := uuid.Parse(c.Params("drawingId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid drawing ID",
		})
	}

	drawing, err := h.repo.GetDrawing(drawingID)
	if err != nil {
		log.Println(err, "Error getting drawing")
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Drawing not found",
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"drawing": drawing,
	})
}

// function to save annotations for one page of a drawing
func (h *DrawingHandler) SaveAnnotations(c *fiber.Ctx) error {
	drawingID, err := uuid.Parse(c.Params("drawingId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid drawing ID",
		})
	}

	var dto struct {
		Page        int            `json:"page"`
		Annotations []canvas.Shape `json:"annotations"`
	}
	if err := c.BodyParser(&dto); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if dto.Page < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Page must be >= 1",
		})
	}
	for i := range dto.Annotations {
		dto.Annotations[i].Page = dto.Page
	}

	if err := h.annotationRepo.SavePage(drawingID, dto.Page, dto.Annotations); err != nil {
		log.Println(err, "Error saving annotations")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save annotations",
		})
	}

	if h.hub != nil {
		h.hub.BroadcastAnnotationsSaved(drawingID.String(), dto.Page, len(dto.Annotations))
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"ok":         true,
		"drawing_id": drawingID.String(),
		"page":       dto.Page,
	})
}

// function to load annotations for one page of a drawing
func (h *DrawingHandler) LoadAnnotations(c *fiber.Ctx) error {
	drawingID, err := uuid.Parse(c.Params("drawingId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid drawing ID",
		})
	}
	page := c.QueryInt("page", 1)
	if page < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Page must be >= 1",
		})
	}

	shapes, err := h.annotationRepo.LoadPage(drawingID, page)
	if err != nil {
		log.Println(err, "Error loading annotations")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load annotations",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"annotations": shapes,
	})
}

// function to run OCR over a cropped region of a drawing page
func (h *DrawingHandler) OCRCrop(c *fiber.Ctx) error {
	drawingID, err := uuid.Parse(c.Params("drawingId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid drawing ID",
		})
	}

	var dto struct {
		Page int               `json:"page"`
		Crop *canvas.OCRRegion `json:"crop"`
	}
	if err := c.BodyParser(&dto); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if dto.Crop == nil || dto.Crop.W <= 0 || dto.Crop.H <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Crop box with positive size is required",
		})
	}
	if dto.Page < 1 {
		dto.Page = 1
	}

	drawing, err := h.repo.GetDrawing(drawingID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Drawing not found",
		})
	}

	req := ocr.Request{
		DrawingID: drawingID.String(),
		Page:      dto.Page,
		Region:    *dto.Crop,
	}

	var crop image.Image
	if drawing.IsImage() {
		r, err := raster.Open(filepath.Join(uploadDir, drawing.StoredName))
		if err == nil {
			if cropped, err := r.Crop(*dto.Crop); err == nil {
				crop = cropped
			}
		}
	}

	text, err := h.ocrEngine.Recognize(c.Context(), req, crop)
	if err != nil {
		log.Println(err, "Error running OCR")
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "OCR failed",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"text": text,
	})
}

// function to compose client-rendered page images into a PDF
func (h *DrawingHandler) ExportPDF(c *fiber.Ctx) error {
	var dto struct {
		Pages []string `json:"pages"`
	}
	if err := c.BodyParser(&dto); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if len(dto.Pages) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No pages provided",
		})
	}

	pdf := export.PDF{}
	data, err := pdf.ComposeDataURLs(dto.Pages)
	if err != nil {
		log.Println(err, "Error composing PDF")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to compose PDF",
		})
	}

	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", `attachment; filename="annotated.pdf"`)
	return c.Status(fiber.StatusOK).Send(data)
}

// function to render a drawing with its stored annotations server-side
func (h *DrawingHandler) ExportDrawing(c *fiber.Ctx) error {
	drawingID, err := uuid.Parse(c.Params("drawingId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid drawing ID",
		})
	}

	drawing, err := h.repo.GetDrawing(drawingID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Drawing not found",
		})
	}
	if !drawing.IsImage() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Server-side export supports image drawings only, use /export-pdf with rendered pages",
		})
	}

	shapes, err := h.annotationRepo.LoadAll(drawingID)
	if err != nil {
		log.Println(err, "Error loading annotations")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load annotations",
		})
	}

	rast, err := raster.Open(filepath.Join(uploadDir, drawing.StoredName))
	if err != nil {
		log.Println(err, "Error opening drawing raster")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to open drawing",
		})
	}

	renderer, err := canvas.NewRenderer()
	if err != nil {
		log.Println(err, "Error creating renderer")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create renderer",
		})
	}

	session := canvas.NewSession(drawingID.String(), drawing.PageCount, canvas.UUIDSource{}, rast)
	session.SetShapes(shapes)
	data, err := session.Export(c.Context(), renderer, export.PDF{})
	if err != nil {
		log.Println(err, "Error exporting drawing")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to export drawing",
		})
	}

	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", `attachment; filename="annotated.pdf"`)
	return c.Status(fiber.StatusOK).Send(data)
}
