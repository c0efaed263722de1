package routes

import (
	"tdac-backend/internal/adapters/http/handlers"
	"tdac-backend/internal/adapters/http/middleware"
	"tdac-backend/internal/adapters/persistence/repositories"
	"tdac-backend/internal/config"
	"tdac-backend/internal/core/services"
	"tdac-backend/internal/pkg/upload"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config, store *upload.Store) {
	// Initialize repositories
	adminRepo := repositories.NewAdminRepository(db)
	declRepo := repositories.NewDeclarationRepository(db)

	// Initialize services
	authService := services.NewAuthService(adminRepo, cfg)
	declService := services.NewDeclarationService(declRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService)
	dashboardHandler := handlers.NewDashboardHandler(declService)
	arrivalCardHandler := handlers.NewArrivalCardHandler(declService, store)
	tdacHandler := handlers.NewTDACHandler(declService, store)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Uploaded attachments. The resource policy must be relaxed here so
	// admin frontends on other origins can embed the images.
	app.Use("/uploads", func(c *fiber.Ctx) error {
		c.Set("Cross-Origin-Resource-Policy", "cross-origin")
		return c.Next()
	})
	app.Static("/uploads", store.Dir())

	// Admin auth & dashboard
	adminRoutes := app.Group("/api/admin")
	adminRoutes.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)
	adminRoutes.Get("/me", middleware.AuthMiddleware(cfg), authHandler.Me)
	adminRoutes.Get("/dashboard", middleware.AuthMiddleware(cfg), dashboardHandler.GetAdminDashboard)

	// Arrival card routes
	arrivalCardRoutes := app.Group("/api/v1/arrival-card")
	setupArrivalCardRoutes(arrivalCardRoutes, arrivalCardHandler, cfg)

	// TDAC registration routes
	tdacRoutes := app.Group("/api/tdac")
	setupTDACRoutes(tdacRoutes, tdacHandler, cfg)
}

// setupArrivalCardRoutes configures the arrival-card form routes
func setupArrivalCardRoutes(router fiber.Router, handler *handlers.DeclarationHandler, cfg *config.Config) {
	// Public routes
	router.Post("/submit", handler.Submit)
	router.Get("/:id", handler.GetByID)

	// Admin routes
	adminRoutes := router.Group("/admin")
	adminRoutes.Use(middleware.AuthMiddleware(cfg))
	adminRoutes.Get("/all", handler.List)
	adminRoutes.Get("/stats", handler.Stats)
	adminRoutes.Get("/:id", handler.GetByID)
	adminRoutes.Patch("/:id/status", handler.UpdateStatus)
	adminRoutes.Put("/:id", handler.Update)
	adminRoutes.Delete("/:id", handler.Delete)
}

// setupTDACRoutes configures the TDAC registration routes
func setupTDACRoutes(router fiber.Router, handler *handlers.DeclarationHandler, cfg *config.Config) {
	// Public routes
	router.Post("/register", handler.Submit)
	router.Get("/registration/:id", handler.GetByID)

	// Admin routes
	adminRoutes := router.Group("/admin")
	adminRoutes.Use(middleware.AuthMiddleware(cfg))
	adminRoutes.Get("/registrations", handler.List)
	adminRoutes.Get("/stats", handler.Stats)
	adminRoutes.Get("/registration/:id", handler.GetByID)
	adminRoutes.Patch("/registration/:id/status", handler.UpdateStatus)
	adminRoutes.Put("/registration/:id", handler.Update)
	adminRoutes.Delete("/registration/:id", handler.Delete)
}
