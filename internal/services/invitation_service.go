package services

import (
	"fmt"
	"log"

	"kanban/internal/models"
	"kanban/internal/repositories"
)

// EventPublisher publishes best-effort domain events for other consumers
// (notification workers, audit log). A publish failure never fails the
// request that triggered it.
type EventPublisher interface {
	PublishInvitationCreated(event map[string]interface{}) error
}

// InvitationService handles business logic for board invitations.
type InvitationService struct {
	invitationRepo repositories.InvitationRepository
	userRepo       repositories.UserRepository
	boardRepo      repositories.BoardRepository
	publisher      EventPublisher
}

// NewInvitationService creates a new InvitationService. publisher may be nil
// when no message broker is configured.
func NewInvitationService(invitationRepo repositories.InvitationRepository, userRepo repositories.UserRepository, boardRepo repositories.BoardRepository, publisher EventPublisher) *InvitationService {
	return &InvitationService{
		invitationRepo: invitationRepo,
		userRepo:       userRepo,
		boardRepo:      boardRepo,
		publisher:      publisher,
	}
}

// CreateBoardInvitation records a pending invitation of inviteeEmail to
// boardID, issued by inviterID. All three referenced entities must exist.
// The response is denormalized: it embeds the full board and the public
// projections of both users, while the store itself only holds ids.
func (s *InvitationService) CreateBoardInvitation(inviterID, inviteeEmail, boardID string) (*models.InvitationDetails, error) {
	// The three reads are independent and unordered; nothing guards against
	// one of the entities disappearing mid-request.
	inviter, err := s.userRepo.GetByID(inviterID)
	if err != nil || inviter == nil {
		return nil, notFoundf("inviter, invitee or board not found")
	}
	invitee, err := s.userRepo.GetByEmail(inviteeEmail)
	if err != nil || invitee == nil {
		return nil, notFoundf("inviter, invitee or board not found")
	}
	board, err := s.boardRepo.GetByID(boardID)
	if err != nil || board == nil {
		return nil, notFoundf("inviter, invitee or board not found")
	}

	invitation := &models.Invitation{
		InviterID: inviter.ID,
		InviteeID: invitee.ID,
		Type:      models.InvitationTypeBoard,
		BoardInvitation: models.BoardInvitation{
			BoardID: board.ID,
			Status:  models.BoardInvitationPending,
		},
	}
	if err := s.invitationRepo.Create(invitation); err != nil {
		return nil, fmt.Errorf("failed to create invitation: %w", err)
	}

	if s.publisher != nil {
		event := map[string]interface{}{
			"invitationId": invitation.ID,
			"inviterId":    invitation.InviterID,
			"inviteeId":    invitation.InviteeID,
			"boardId":      invitation.BoardInvitation.BoardID,
			"status":       invitation.BoardInvitation.Status,
		}
		if err := s.publisher.PublishInvitationCreated(event); err != nil {
			log.Printf("Warning: failed to publish invitation created event for %s: %v", invitation.ID, err)
		}
	} else {
		log.Println("Event publisher is not initialized. Skipping invitation event publication.")
	}

	return &models.InvitationDetails{
		Invitation: *invitation,
		Board:      *board,
		Inviter:    inviter.Public(),
		Invitee:    invitee.Public(),
	}, nil
}
