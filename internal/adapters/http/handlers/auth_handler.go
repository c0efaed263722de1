package handlers

import (
	"errors"
	"strings"

	"tdac-backend/internal/core/services"
	"tdac-backend/internal/pkg/response"
	"tdac-backend/internal/pkg/validate"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles admin authentication endpoints
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Login handles admin login
// @Summary Admin login
// @Description Authenticate an admin and return a bearer token
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body services.LoginInput true "Login credentials"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /admin/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req services.LoginInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	req.Email = strings.TrimSpace(req.Email)
	if errs := validate.Struct(&req); errs != nil {
		return response.ValidationFailed(c, errs)
	}

	result, err := h.authService.Login(c.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return response.Unauthorized(c, "Invalid email or password")
		}
		return response.InternalServerError(c, "Failed to login", errDetail(err))
	}

	return response.Success(c, "Login successful", result)
}

// Me returns the current admin info
// @Summary Get current admin
// @Description Get the currently authenticated admin's information
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /admin/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	adminID, ok := c.Locals("adminID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	admin, err := h.authService.GetAdminByID(c.Context(), adminID)
	if err != nil {
		return response.NotFound(c, "Admin not found")
	}

	return response.Success(c, "Admin retrieved successfully", admin)
}
