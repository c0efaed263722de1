package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"tdac-backend/internal/adapters/http/middleware"
	"tdac-backend/internal/adapters/http/routes"
	"tdac-backend/internal/adapters/persistence/models"
	"tdac-backend/internal/adapters/persistence/repositories"
	"tdac-backend/internal/config"
	"tdac-backend/internal/core/services"
	"tdac-backend/internal/pkg/upload"

	"github.com/gofiber/fiber/v2"

	_ "tdac-backend/docs" // Swagger docs
)

// @title TDAC API
// @version 1.0
// @description Travel declaration and arrival card submission API
// @termsOfService http://swagger.io/terms/

// @contact.name API Support

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	// Seed the initial admin account
	if err := config.NewSeeder(db, cfg).Run(); err != nil {
		log.Printf("⚠️ Warning: Failed to seed database: %v", err)
	}

	// Upload store for attachments
	store, err := upload.NewStore(cfg.UploadDir)
	if err != nil {
		log.Fatalf("❌ Failed to initialize upload store: %v", err)
	}

	// Start the orphaned-upload sweep (03:30 daily)
	sweepService := services.NewSweepService(repositories.NewDeclarationRepository(db), store)
	sweepService.Start()
	defer sweepService.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "TDAC API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
		BodyLimit:    12 * 1024 * 1024, // two 5MB attachments plus form fields
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db and cfg for dependency injection)
	routes.Setup(app, db, cfg, store)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
