package handlers

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/SAMJ447/inspection-proto/internal/export"
	llmHandlers "github.com/SAMJ447/inspection-proto/internal/llm_handlers"
	"github.com/SAMJ447/inspection-proto/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/h2non/filetype"
)

const (
	photoDir    = "uploads/photos"
	templateDir = "templates"
)

const imageReportSystemPrompt = "You are a NYC special inspector writing a concise inspection report.\n" +
	"Use professional NYC DOB special inspection style, referencing:\n" +
	"- Project name and location\n" +
	"- Trade (welding / bolting / detail)\n" +
	"- Area inspected, gridlines, and drawing/detail references\n" +
	"- Observations and acceptance/rejection\n" +
	"- Conclusion summarizing status.\n\n" +
	"TRADE-SPECIFIC INSTRUCTIONS:\n"

const imageReportInstruction = "Return a JSON object with keys: " +
	"project_name, inspection_date, trade, area_inspected, " +
	"reference_drawing, reference_detail, reference_details, " +
	"overall_summary, detailed_findings, conclusion, " +
	"inspector_notes, previous_deficiencies_resolved."

// function to generate a structured report from site photos
func (h *ReportHandler) GenerateReportFromImages(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid form data",
		})
	}

	req := models.ImageReportData{
		ProjectName:      formValue(form, "project_name"),
		InspectionDate:   formValue(form, "inspection_date"),
		Trade:            formValue(form, "trade"),
		AreaInspected:    formValue(form, "area_inspected"),
		ReferenceDrawing: formValue(form, "reference_drawing"),
		ReferenceDetail:  formValue(form, "reference_detail"),
		ReferenceDetails: formValue(form, "reference_details"),
		InspectorNotes:   formValue(form, "inspector_notes"),
	}
	if req.ProjectName == "" || req.InspectionDate == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "project_name and inspection_date are required",
		})
	}
	if req.Trade == "" {
		req.Trade = "welding"
	}

	mainImages := form.File["main_image"]
	if len(mainImages) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "main_image is required",
		})
	}
	photos := append(mainImages[:1:1], form.File["detail_images"]...)

	if err := os.MkdirAll(photoDir, 0755); err != nil {
		log.Println(err, "Error creating photo directory")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create photo directory",
		})
	}

	imageIDs := make([]string, 0, len(photos))
	imageBlocks := make([]map[string]interface{}, 0, len(photos))
	for _, file := range photos {
		raw, err := readUpload(file)
		if err != nil {
			log.Println(err, "Error reading photo")
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("Failed to read %s", file.Filename),
			})
		}

		kind, err := filetype.Match(raw)
		if err != nil || !strings.HasPrefix(kind.MIME.Value, "image/") {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("%s is not an image", file.Filename),
			})
		}

		imgID := fmt.Sprintf("%s.%s", uuid.NewString(), kind.Extension)
		if err := os.WriteFile(filepath.Join(photoDir, imgID), raw, 0644); err != nil {
			log.Println(err, "Error saving photo")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to save photo",
			})
		}
		imageIDs = append(imageIDs, imgID)
		imageBlocks = append(imageBlocks, map[string]interface{}{
			"type": "image",
			"source": map[string]interface{}{
				"media_type": kind.MIME.Value,
				"data":       base64.StdEncoding.EncodeToString(raw),
			},
		})
	}

	tradeCfg, err := h.tradeRepo.GetTradeConfig(req.Trade)
	if err != nil {
		tradeCfg = &models.TradeConfig{Trade: req.Trade}
	}

	userContext, err := json.Marshal(fiber.Map{
		"instruction": imageReportInstruction,
		"context": fiber.Map{
			"project_name":      req.ProjectName,
			"inspection_date":   req.InspectionDate,
			"trade":             req.Trade,
			"area_inspected":    req.AreaInspected,
			"reference_drawing": req.ReferenceDrawing,
			"reference_detail":  req.ReferenceDetail,
			"reference_details": req.ReferenceDetails,
			"inspector_notes":   req.InspectorNotes,
			"saved_image_ids":   imageIDs,
		},
	})
	if err != nil {
		log.Println(err, "Error marshaling image report context")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to build report context",
		})
	}

	if h.llmClient == nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "No report model is configured on the server",
		})
	}

	// one multimodal turn: the context text plus the photos themselves
	blocks := append([]map[string]interface{}{
		{"type": "text", "text": string(userContext)},
	}, imageBlocks...)
	content, err := h.llmClient.Chat(c.Context(), imageReportSystemPrompt+tradeCfg.SystemPrompt,
		[]llmHandlers.Message{{Role: llmHandlers.RoleUser, Content: blocks}})
	if err != nil {
		log.Println(err, "Error generating image report")
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Report generation failed",
		})
	}

	data := parseImageReport(content, req)
	return c.Status(fiber.StatusOK).JSON(data)
}

// function to fill a trade docx template from a structured report
func (h *ReportHandler) ExportReportDocx(c *fiber.Ctx) error {
	var report models.ImageReportData
	if err := c.BodyParser(&report); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	trade := strings.ToLower(report.Trade)
	if trade == "" {
		trade = "welding"
	}
	templateName := trade + "_report_template.docx"
	templatePath := filepath.Join(templateDir, templateName)
	if _, err := os.Stat(templatePath); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": fmt.Sprintf("No DOCX template found at %s. Place a template named %s in the templates folder.",
				templatePath, templateName),
		})
	}

	out, err := export.FillReportTemplate(templatePath, report)
	if err != nil {
		log.Println(err, "Error filling docx template")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fill docx template",
		})
	}

	project := report.ProjectName
	if project == "" {
		project = "inspection_report"
	}
	filename := strings.ReplaceAll(project, " ", "_") + "_" + trade + ".docx"

	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.wordprocessingml.document")
	c.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Status(fiber.StatusOK).Send(out)
}

// parseImageReport decodes the model's JSON and backfills every field the
// model omitted from the request values, so the docx export always has the
// scalars it needs.
func parseImageReport(content string, req models.ImageReportData) models.ImageReportData {
	var data models.ImageReportData
	trimmed := stripJSONFences(content)
	if err := json.Unmarshal([]byte(trimmed), &data); err != nil {
		data = models.ImageReportData{OverallSummary: content}
	}

	if data.ProjectName == "" {
		data.ProjectName = req.ProjectName
	}
	if data.InspectionDate == "" {
		data.InspectionDate = req.InspectionDate
	}
	if data.Trade == "" {
		data.Trade = req.Trade
	}
	if data.AreaInspected == "" {
		data.AreaInspected = req.AreaInspected
	}
	if data.ReferenceDrawing == "" {
		data.ReferenceDrawing = req.ReferenceDrawing
	}
	if data.ReferenceDetail == "" {
		data.ReferenceDetail = req.ReferenceDetail
	}
	if data.ReferenceDetails == "" {
		data.ReferenceDetails = req.ReferenceDetails
	}
	if data.InspectorNotes == "" {
		data.InspectorNotes = req.InspectorNotes
	}
	if data.DetailedFindings == nil {
		data.DetailedFindings = []models.ImageReportFinding{}
	}
	return data
}

func formValue(form *multipart.Form, key string) string {
	if values := form.Value[key]; len(values) > 0 {
		return strings.TrimSpace(values[0])
	}
	return ""
}

func readUpload(file *multipart.FileHeader) ([]byte, error) {
	f, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
