package repositories

import (
	"fmt"

	"kanban/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMInvitationRepository is a GORM implementation of InvitationRepository.
type GORMInvitationRepository struct {
	db *gorm.DB
}

// NewGORMInvitationRepository creates a new instance of GORMInvitationRepository.
func NewGORMInvitationRepository(db *gorm.DB) *GORMInvitationRepository {
	return &GORMInvitationRepository{
		db: db,
	}
}

// Create creates a new invitation in the database.
func (r *GORMInvitationRepository) Create(invitation *models.Invitation) error {
	if invitation.ID == "" {
		invitation.ID = uuid.New().String()
	}
	if err := r.db.Create(invitation).Error; err != nil {
		return fmt.Errorf("failed to create invitation: %w", err)
	}
	return nil
}

// GetByID retrieves an invitation by its ID from the database.
func (r *GORMInvitationRepository) GetByID(id string) (*models.Invitation, error) {
	var invitation models.Invitation
	if err := r.db.First(&invitation, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("invitation with ID %s not found", id)
		}
		return nil, fmt.Errorf("failed to get invitation by ID %s: %w", id, err)
	}
	return &invitation, nil
}
