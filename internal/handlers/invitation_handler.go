package handlers

import (
	"kanban/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// InvitationHandler handles HTTP requests for board invitations.
type InvitationHandler struct {
	invitationService *services.InvitationService
	validate          *validator.Validate
}

// NewInvitationHandler creates a new InvitationHandler.
func NewInvitationHandler(invitationService *services.InvitationService) *InvitationHandler {
	return &InvitationHandler{
		invitationService: invitationService,
		validate:          validator.New(),
	}
}

// RegisterRoutes registers the invitation routes with the Fiber app. All of
// them require authentication.
func (h *InvitationHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	invitationRoutes := router.Group("/invitations", auth)
	invitationRoutes.Post("/board", h.HandleCreateBoardInvitation)
}

// BoardInvitationRequest represents the request body for a board invitation.
type BoardInvitationRequest struct {
	InviteeEmail string `json:"inviteeEmail" validate:"required,email"`
	BoardID      string `json:"boardId" validate:"required"`
}

// HandleCreateBoardInvitation invites another user to a board. The inviter is
// the authenticated caller.
func (h *InvitationHandler) HandleCreateBoardInvitation(c *fiber.Ctx) error {
	inviterID, ok := c.Locals("user_id").(string)
	if !ok || inviterID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized",
		})
	}

	var req BoardInvitationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  formatValidationErrors(err),
		})
	}

	invitation, err := h.invitationService.CreateBoardInvitation(inviterID, req.InviteeEmail, req.BoardID)
	if err != nil {
		return serviceErrorResponse(c, "Invitation failed", err)
	}

	return c.Status(fiber.StatusCreated).JSON(invitation)
}
