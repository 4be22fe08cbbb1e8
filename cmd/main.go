package main

import (
	"log"

	"github.com/SAMJ447/inspection-proto/internal/api"
	"github.com/SAMJ447/inspection-proto/internal/api/routes"
	"github.com/SAMJ447/inspection-proto/internal/config"
	"github.com/SAMJ447/inspection-proto/internal/repo"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// Connect to database
	if err := config.ConnectDB(); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Run migrations
	if err := config.MigrateAllModels(true); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Seed built-in trade configs
	if err := repo.NewTradeRepository(config.DB).SeedDefaults(); err != nil {
		log.Fatal("Failed to seed trade configs:", err)
	}

	// Create and configure Fiber app
	app := api.NewServer()

	// Register routes
	routes.Register(app)

	// Start server
	if err := api.StartServer(app); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
