package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"strings"

	"tdac-backend/internal/config"
	"tdac-backend/internal/core/domain"
	"tdac-backend/internal/core/services"
	"tdac-backend/internal/pkg/pagination"
	"tdac-backend/internal/pkg/response"
	"tdac-backend/internal/pkg/upload"
	"tdac-backend/internal/pkg/validate"

	"github.com/gofiber/fiber/v2"
)

// Attachment form field names and the payload keys they map to.
var attachmentFields = map[string]string{
	"passportPhoto": "passportPhotoUrl",
	"paymentSlip":   "paymentSlipUrl",
}

// DeclarationHandler serves one submission variant. The descriptor decides
// which fields and enum sets apply; the handler logic is shared.
type DeclarationHandler struct {
	declService *services.DeclarationService
	store       *upload.Store
	desc        domain.Descriptor
	label       string
}

// NewArrivalCardHandler creates the handler for the arrival-card form
func NewArrivalCardHandler(declService *services.DeclarationService, store *upload.Store) *DeclarationHandler {
	return &DeclarationHandler{
		declService: declService,
		store:       store,
		desc:        domain.ArrivalCardDescriptor(),
		label:       "Arrival card",
	}
}

// NewTDACHandler creates the handler for the TDAC registration form
func NewTDACHandler(declService *services.DeclarationService, store *upload.Store) *DeclarationHandler {
	return &DeclarationHandler{
		declService: declService,
		store:       store,
		desc:        domain.TDACDescriptor(),
		label:       "Registration",
	}
}

// Submit handles a public submission
// @Summary Submit declaration
// @Description Submit a new travel declaration (JSON or multipart with attachments)
// @Tags Declarations
// @Accept json
// @Accept mpfd
// @Produce json
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /tdac/register [post]
func (h *DeclarationHandler) Submit(c *fiber.Ctx) error {
	payload, staged, err := h.parsePayload(c)
	if err != nil {
		h.cleanup(staged)
		if errors.Is(err, upload.ErrFileTooLarge) || errors.Is(err, upload.ErrUnsupportedType) {
			return response.BadRequest(c, err.Error())
		}
		return response.BadRequest(c, "Invalid request body")
	}

	decl, fieldErrs, err := h.declService.Submit(c.Context(), payload, h.desc)
	if len(fieldErrs) > 0 {
		h.cleanup(staged)
		log.Printf("⚠️ %s submission rejected: %s", h.label, fieldErrs.Messages())
		return response.ValidationFailed(c, fieldErrs)
	}
	if err != nil {
		h.cleanup(staged)
		if errors.Is(err, domain.ErrDuplicatePassportNo) {
			return response.Conflict(c, "A declaration with this passport number already exists")
		}
		return response.InternalServerError(c, "Failed to submit declaration", errDetail(err))
	}

	return response.Created(c, h.label+" submitted successfully", decl.ToReceipt())
}

// GetByID returns one declaration
// @Summary Get declaration by ID
// @Tags Declarations
// @Produce json
// @Param id path string true "Declaration ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /tdac/registration/{id} [get]
func (h *DeclarationHandler) GetByID(c *fiber.Ctx) error {
	decl, err := h.declService.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrDeclarationNotFound) {
			return response.NotFound(c, h.label+" not found")
		}
		return response.InternalServerError(c, "Failed to get declaration", errDetail(err))
	}

	return response.Success(c, h.label+" retrieved successfully", decl)
}

// List returns a paginated admin listing
// @Summary List declarations
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Param status query string false "Filter by status (PENDING, APPROVED, REJECTED)"
// @Success 200 {object} response.PaginatedResponse
// @Failure 401 {object} response.Response
// @Router /tdac/admin/registrations [get]
func (h *DeclarationHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	result, err := h.declService.List(c.Context(), &services.ListInput{
		Page:    params.Page,
		Limit:   params.Limit,
		Status:  strings.ToUpper(strings.TrimSpace(c.Query("status"))),
		Variant: h.desc.Variant,
	})
	if err != nil {
		return response.InternalServerError(c, "Failed to list declarations", errDetail(err))
	}

	return response.Paginated(c, "Declarations retrieved successfully",
		result.Declarations, pagination.Meta(params, result.Total))
}

// StatusRequest represents the admin status-update body
type StatusRequest struct {
	Status string  `json:"status" validate:"required,oneof=PENDING APPROVED REJECTED"`
	Notes  *string `json:"notes"`
}

// UpdateStatus applies a workflow transition
// @Summary Update declaration status
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Declaration ID"
// @Param body body StatusRequest true "New status"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /tdac/admin/registration/{id}/status [patch]
func (h *DeclarationHandler) UpdateStatus(c *fiber.Ctx) error {
	var req StatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	req.Status = strings.ToUpper(strings.TrimSpace(req.Status))
	if errs := validate.Struct(&req); errs != nil {
		return response.ValidationFailed(c, errs)
	}

	decl, err := h.declService.SetStatus(c.Context(), c.Params("id"), req.Status, req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidStatus):
			return response.BadRequest(c, "Invalid status value")
		case errors.Is(err, domain.ErrDeclarationNotFound):
			return response.NotFound(c, h.label+" not found")
		default:
			return response.InternalServerError(c, "Failed to update status", errDetail(err))
		}
	}

	return response.Success(c, "Status updated successfully", decl.ToStatusReceipt())
}

// Update merges admin corrections into a declaration
// @Summary Update declaration
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Declaration ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /tdac/admin/registration/{id} [put]
func (h *DeclarationHandler) Update(c *fiber.Ctx) error {
	var req services.UpdateInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	decl, fieldErrs, err := h.declService.Update(c.Context(), c.Params("id"), &req, h.desc)
	if len(fieldErrs) > 0 {
		return response.ValidationFailed(c, fieldErrs)
	}
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDeclarationNotFound):
			return response.NotFound(c, h.label+" not found")
		case errors.Is(err, domain.ErrDuplicatePassportNo):
			return response.Conflict(c, "A declaration with this passport number already exists")
		default:
			return response.InternalServerError(c, "Failed to update declaration", errDetail(err))
		}
	}

	return response.Success(c, h.label+" updated successfully", decl)
}

// Delete removes a declaration and its attachments
// @Summary Delete declaration
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Declaration ID"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /tdac/admin/registration/{id} [delete]
func (h *DeclarationHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")

	decl, err := h.declService.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrDeclarationNotFound) {
			return response.NotFound(c, h.label+" not found")
		}
		return response.InternalServerError(c, "Failed to delete declaration", errDetail(err))
	}

	if err := h.declService.Delete(c.Context(), id); err != nil {
		if errors.Is(err, domain.ErrDeclarationNotFound) {
			return response.NotFound(c, h.label+" not found")
		}
		return response.InternalServerError(c, "Failed to delete declaration", errDetail(err))
	}

	// Attachments go with the record. Removal is best effort; the sweep
	// catches leftovers.
	if decl.PassportPhotoURL != nil {
		_ = h.store.Remove(*decl.PassportPhotoURL)
	}
	if decl.PaymentSlipURL != nil {
		_ = h.store.Remove(*decl.PaymentSlipURL)
	}

	return response.Success(c, h.label+" deleted successfully", nil)
}

// Stats returns the admin statistics for this variant
// @Summary Declaration statistics
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /tdac/admin/stats [get]
func (h *DeclarationHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.declService.Stats(c.Context(), h.desc.Variant)
	if err != nil {
		return response.InternalServerError(c, "Failed to get statistics", errDetail(err))
	}

	return response.Success(c, "Statistics retrieved successfully", stats)
}

// parsePayload reads the submission body as a raw key-value map. Multipart
// requests additionally stage their attachments and inject the stored URLs
// into the payload; the returned staged list is what cleanup must remove if
// the submission does not go through.
func (h *DeclarationHandler) parsePayload(c *fiber.Ctx) (map[string]any, []string, error) {
	payload := map[string]any{}

	contentType := c.Get(fiber.HeaderContentType)
	if !strings.HasPrefix(contentType, fiber.MIMEMultipartForm) {
		if err := json.Unmarshal(c.Body(), &payload); err != nil {
			return nil, nil, err
		}
		return payload, nil, nil
	}

	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil, err
	}

	for key, values := range form.Value {
		if len(values) > 0 {
			payload[key] = values[0]
		}
	}

	var staged []string
	for field, payloadKey := range attachmentFields {
		files := form.File[field]
		if len(files) == 0 {
			continue
		}
		url, err := h.store.Save(c, files[0])
		if err != nil {
			return nil, staged, err
		}
		staged = append(staged, url)
		payload[payloadKey] = url
	}

	return payload, staged, nil
}

// cleanup removes staged uploads after a failed submission.
func (h *DeclarationHandler) cleanup(staged []string) {
	for _, url := range staged {
		if err := h.store.Remove(url); err != nil {
			log.Printf("⚠️ Failed to remove staged upload %s: %v", url, err)
		}
	}
}

// errDetail exposes the underlying error in development mode only.
func errDetail(err error) string {
	if config.AppConfig != nil && config.AppConfig.IsDev() {
		return err.Error()
	}
	return ""
}
