package handlers

import (
	"log"
	"strings"

	"github.com/SAMJ447/inspection-proto/internal/models"
	"github.com/SAMJ447/inspection-proto/internal/repo"

	"github.com/gofiber/fiber/v2"
)

type TradeHandler struct {
	repo repo.TradeRepoInterface
}

func NewTradeHandler(repo repo.TradeRepoInterface) *TradeHandler {
	return &TradeHandler{repo: repo}
}

// function to get a trade config by trade key
func (h *TradeHandler) GetTradeConfig(c *fiber.Ctx) error {
	trade := c.Query("trade")
	if trade == "" {
		configs, err := h.repo.GetAllTradeConfigs()
		if err != nil {
			log.Println(err, "Error getting trade configs")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to get trade configs",
			})
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"configs": configs,
		})
	}

	config, err := h.repo.GetTradeConfig(trade)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Trade '" + trade + "' not found",
		})
	}
	return c.Status(fiber.StatusOK).JSON(config)
}

// function to save a trade config
func (h *TradeHandler) SaveTradeConfig(c *fiber.Ctx) error {
	var dto struct {
		Trade             string `json:"trade"`
		SystemPrompt      string `json:"system_prompt"`
		ChecklistTemplate string `json:"checklist_template"`
	}
	if err := c.BodyParser(&dto); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if dto.Trade == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "'trade' is required",
		})
	}

	config := &models.TradeConfig{
		Trade:             dto.Trade,
		SystemPrompt:      strings.TrimSpace(dto.SystemPrompt),
		ChecklistTemplate: strings.TrimSpace(dto.ChecklistTemplate),
	}
	if err := h.repo.UpsertTradeConfig(config); err != nil {
		log.Println(err, "Error saving trade config")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save trade config",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"ok":    true,
		"trade": dto.Trade,
	})
}
