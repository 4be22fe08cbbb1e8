package v1

import (
	"context"
	"log"
	"os"

	"github.com/SAMJ447/inspection-proto/internal/config"
	"github.com/SAMJ447/inspection-proto/internal/handlers"
	llmHandlers "github.com/SAMJ447/inspection-proto/internal/llm_handlers"
	"github.com/SAMJ447/inspection-proto/internal/repo"

	"github.com/gofiber/fiber/v2"
)

func registerReports(r fiber.Router) {
	tradeRepo := repo.NewTradeRepository(config.DB)

	provider := os.Getenv("LLM_PROVIDER")
	if provider == "" {
		provider = "openai"
	}
	llmClient, err := llmHandlers.NewLLMClient(context.Background(), provider)
	if err != nil {
		log.Printf("llm provider %q unavailable, report generation will use the manual fallback: %v", provider, err)
	}

	reportHandler := handlers.NewReportHandler(tradeRepo, llmClient, hub)

	r.Post("/generate-report", reportHandler.GenerateReport)
	r.Post("/generate-report-from-images", reportHandler.GenerateReportFromImages)
	r.Post("/export-report-docx", reportHandler.ExportReportDocx)
}
