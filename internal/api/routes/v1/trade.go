package v1

import (
	"github.com/SAMJ447/inspection-proto/internal/config"
	"github.com/SAMJ447/inspection-proto/internal/handlers"
	"github.com/SAMJ447/inspection-proto/internal/repo"

	"github.com/gofiber/fiber/v2"
)

func registerTrades(r fiber.Router) {
	tradeRepo := repo.NewTradeRepository(config.DB)
	tradeHandler := handlers.NewTradeHandler(tradeRepo)

	r.Get("/trade-config", tradeHandler.GetTradeConfig)
	r.Post("/trade-config", tradeHandler.SaveTradeConfig)
}
