package repositories

import (
	"fmt"
	"sync"

	"kanban/internal/models"

	"github.com/google/uuid"
)

// MockInvitationRepository is an in-memory implementation of InvitationRepository.
type MockInvitationRepository struct {
	invitations map[string]models.Invitation
	mu          sync.RWMutex
}

// NewMockInvitationRepository creates a new instance of MockInvitationRepository.
func NewMockInvitationRepository() *MockInvitationRepository {
	return &MockInvitationRepository{
		invitations: make(map[string]models.Invitation),
	}
}

// Create adds a new invitation.
func (r *MockInvitationRepository) Create(invitation *models.Invitation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if invitation.ID == "" {
		invitation.ID = uuid.New().String()
	}
	r.invitations[invitation.ID] = *invitation
	return nil
}

// GetByID returns an invitation by its ID.
func (r *MockInvitationRepository) GetByID(id string) (*models.Invitation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	invitation, ok := r.invitations[id]
	if !ok {
		return nil, fmt.Errorf("invitation with ID %s not found", id)
	}
	return &invitation, nil
}
