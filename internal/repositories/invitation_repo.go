package repositories

import "kanban/internal/models"

// InvitationRepository defines the interface for invitation data access.
type InvitationRepository interface {
	Create(invitation *models.Invitation) error
	GetByID(id string) (*models.Invitation, error)
}
