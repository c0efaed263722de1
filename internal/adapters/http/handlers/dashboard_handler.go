package handlers

import (
	"tdac-backend/internal/core/domain"
	"tdac-backend/internal/core/services"
	"tdac-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler handles the admin overview endpoint
type DashboardHandler struct {
	declService *services.DeclarationService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(declService *services.DeclarationService) *DashboardHandler {
	return &DashboardHandler{
		declService: declService,
	}
}

// GetAdminDashboard returns statistics across both submission variants
// @Summary Admin Dashboard
// @Description Get system overview for both submission variants (Admin only)
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /admin/dashboard [get]
func (h *DashboardHandler) GetAdminDashboard(c *fiber.Ctx) error {
	arrivalCards, err := h.declService.Stats(c.Context(), domain.VariantArrivalCard)
	if err != nil {
		return response.InternalServerError(c, "Failed to get admin dashboard", errDetail(err))
	}

	registrations, err := h.declService.Stats(c.Context(), domain.VariantTDAC)
	if err != nil {
		return response.InternalServerError(c, "Failed to get admin dashboard", errDetail(err))
	}

	return response.Success(c, "Admin dashboard retrieved successfully", fiber.Map{
		"arrivalCards":  arrivalCards,
		"registrations": registrations,
	})
}
