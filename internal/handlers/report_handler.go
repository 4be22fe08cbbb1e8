package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"strings"

	"github.com/SAMJ447/inspection-proto/internal/libraries"
	llmHandlers "github.com/SAMJ447/inspection-proto/internal/llm_handlers"
	"github.com/SAMJ447/inspection-proto/internal/models"
	"github.com/SAMJ447/inspection-proto/internal/repo"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	tradeRepo repo.TradeRepoInterface
	llmClient llmHandlers.Client
	hub       *libraries.Hub
}

func NewReportHandler(tradeRepo repo.TradeRepoInterface, llmClient llmHandlers.Client, hub *libraries.Hub) *ReportHandler {
	return &ReportHandler{
		tradeRepo: tradeRepo,
		llmClient: llmClient,
		hub:       hub,
	}
}

const reportSystemPrompt = "You are a NYC construction special inspector. " +
	"Write clear, professional inspection text based on the provided context. " +
	"Use NYC DOB style, reference gridlines and details where possible.\n\n" +
	"TRADE-SPECIFIC INSTRUCTIONS:\n"

const reportInstruction = "Return a pure JSON object with keys: report_text, checklist_text, json_items."

var errNoLLMClient = errors.New("no llm client configured")

// function to generate an inspection report from page annotations
func (h *ReportHandler) GenerateReport(c *fiber.Ctx) error {
	var req models.ReportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.TradeType == "" {
		req.TradeType = "welding"
	}
	if req.Page < 1 {
		req.Page = 1
	}

	tradeCfg, err := h.tradeRepo.GetTradeConfig(req.TradeType)
	if err != nil {
		tradeCfg = &models.TradeConfig{Trade: req.TradeType}
	}
	if req.ChecklistTemplate == "" {
		req.ChecklistTemplate = tradeCfg.ChecklistTemplate
	}

	userContext, err := json.Marshal(fiber.Map{
		"instruction": reportInstruction,
		"context":     req,
	})
	if err != nil {
		log.Println(err, "Error marshaling report context")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to build report context",
		})
	}

	systemPrompt := reportSystemPrompt + tradeCfg.SystemPrompt

	var content string
	if h.llmClient != nil {
		content, err = h.llmClient.Chat(c.Context(), systemPrompt, []llmHandlers.Message{
			llmHandlers.TextMessage(llmHandlers.RoleUser, string(userContext)),
		})
	} else {
		err = errNoLLMClient
	}
	if err != nil {
		log.Println(err, "Error generating report")
		// manual draft fallback keeps the endpoint usable when the model is down
		return c.Status(fiber.StatusOK).JSON(models.ReportResponse{
			ReportText: "Inspection report could not be generated by AI due to an error. " +
				"Please draft manually based on project info and annotations.",
			ChecklistText: req.ChecklistTemplate,
			JSONItems:     []models.ChecklistItem{},
		})
	}

	resp := parseReportResponse(content)
	if resp.ChecklistText == "" {
		resp.ChecklistText = req.ChecklistTemplate
	}

	if h.hub != nil {
		h.hub.BroadcastReportReady(req.DrawingID, req.TradeType)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// stripJSONFences tolerates models that wrap JSON in markdown fences.
func stripJSONFences(content string) string {
	trimmed := strings.TrimSpace(content)
	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```json")
		trimmed = strings.TrimPrefix(trimmed, "```")
		trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
		trimmed = strings.TrimSpace(trimmed)
	}
	return trimmed
}

func parseReportResponse(content string) models.ReportResponse {
	trimmed := stripJSONFences(content)

	var resp models.ReportResponse
	if err := json.Unmarshal([]byte(trimmed), &resp); err != nil {
		// not JSON, treat the whole reply as report prose
		return models.ReportResponse{
			ReportText: content,
			JSONItems:  []models.ChecklistItem{},
		}
	}
	if resp.JSONItems == nil {
		resp.JSONItems = []models.ChecklistItem{}
	}
	return resp
}
