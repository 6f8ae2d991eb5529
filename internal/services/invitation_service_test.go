package services_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"kanban/internal/models"
	"kanban/internal/repositories"
	"kanban/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// MockEventPublisher is a mock implementation of services.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishInvitationCreated(event map[string]interface{}) error {
	args := m.Called(event)
	return args.Error(0)
}

func invitationFixtures(t *testing.T) (*models.User, *models.User, *models.Board, string) {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	assert.NoError(t, err)

	inviter := &models.User{
		ID:          "inviter-1",
		Email:       "inviter@example.com",
		Password:    string(hashed),
		Username:    "inviter",
		DisplayName: "inviter",
		IsActive:    true,
	}
	invitee := &models.User{
		ID:          "invitee-1",
		Email:       "invitee@example.com",
		Password:    string(hashed),
		Username:    "invitee",
		DisplayName: "invitee",
		IsActive:    true,
	}
	board := &models.Board{
		ID:    "board-1",
		Title: "Sprint Board",
		Slug:  "sprint-board",
		Type:  "public",
	}
	return inviter, invitee, board, string(hashed)
}

func TestInvitationService_CreateBoardInvitation_NotFound(t *testing.T) {
	inviter, invitee, board, _ := invitationFixtures(t)

	boardRepo := repositories.NewMockBoardRepository()
	assert.NoError(t, boardRepo.Create(board))
	invitationRepo := repositories.NewMockInvitationRepository()

	// Inviter missing
	mockUserRepo := new(MockUserRepository)
	mockUserRepo.On("GetByID", "ghost").Return(nil, fmt.Errorf("user with ID ghost not found")).Once()
	invitationService := services.NewInvitationService(invitationRepo, mockUserRepo, boardRepo, nil)
	_, err := invitationService.CreateBoardInvitation("ghost", invitee.Email, board.ID)
	assertErrorKind(t, err, services.KindNotFound)

	// Invitee email missing
	mockUserRepo = new(MockUserRepository)
	mockUserRepo.On("GetByID", inviter.ID).Return(inviter, nil).Once()
	mockUserRepo.On("GetByEmail", "nobody@example.com").Return(nil, fmt.Errorf("user with email nobody@example.com not found")).Once()
	invitationService = services.NewInvitationService(invitationRepo, mockUserRepo, boardRepo, nil)
	_, err = invitationService.CreateBoardInvitation(inviter.ID, "nobody@example.com", board.ID)
	assertErrorKind(t, err, services.KindNotFound)

	// Board missing
	mockUserRepo = new(MockUserRepository)
	mockUserRepo.On("GetByID", inviter.ID).Return(inviter, nil).Once()
	mockUserRepo.On("GetByEmail", invitee.Email).Return(invitee, nil).Once()
	invitationService = services.NewInvitationService(invitationRepo, mockUserRepo, boardRepo, nil)
	_, err = invitationService.CreateBoardInvitation(inviter.ID, invitee.Email, "no-such-board")
	assertErrorKind(t, err, services.KindNotFound)

	mockUserRepo.AssertExpectations(t)
}

func TestInvitationService_CreateBoardInvitation_Success(t *testing.T) {
	inviter, invitee, board, hashed := invitationFixtures(t)

	boardRepo := repositories.NewMockBoardRepository()
	assert.NoError(t, boardRepo.Create(board))
	invitationRepo := repositories.NewMockInvitationRepository()

	mockUserRepo := new(MockUserRepository)
	mockUserRepo.On("GetByID", inviter.ID).Return(inviter, nil).Once()
	mockUserRepo.On("GetByEmail", invitee.Email).Return(invitee, nil).Once()

	mockPublisher := new(MockEventPublisher)
	mockPublisher.On("PublishInvitationCreated", mock.Anything).Return(nil).Once()

	invitationService := services.NewInvitationService(invitationRepo, mockUserRepo, boardRepo, mockPublisher)
	details, err := invitationService.CreateBoardInvitation(inviter.ID, invitee.Email, board.ID)
	assert.NoError(t, err)
	assert.NotNil(t, details)

	assert.NotEmpty(t, details.ID)
	assert.Equal(t, models.InvitationTypeBoard, details.Type)
	assert.Equal(t, models.BoardInvitationPending, details.BoardInvitation.Status)
	assert.Equal(t, board.ID, details.BoardInvitation.BoardID)
	assert.Equal(t, inviter.ID, details.InviterID)
	assert.Equal(t, invitee.ID, details.InviteeID)

	// Denormalized response embeds the board and both public projections
	assert.Equal(t, board.Title, details.Board.Title)
	assert.Equal(t, inviter.Email, details.Inviter.Email)
	assert.Equal(t, invitee.Email, details.Invitee.Email)

	// The projections never leak credentials
	body, err := json.Marshal(details)
	assert.NoError(t, err)
	assert.NotContains(t, string(body), hashed)
	assert.NotContains(t, string(body), "password")

	// The record was persisted with ids only
	stored, err := invitationRepo.GetByID(details.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.BoardInvitationPending, stored.BoardInvitation.Status)

	mockUserRepo.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)
}

func TestInvitationService_CreateBoardInvitation_PublisherFailureIsNotFatal(t *testing.T) {
	inviter, invitee, board, _ := invitationFixtures(t)

	boardRepo := repositories.NewMockBoardRepository()
	assert.NoError(t, boardRepo.Create(board))
	invitationRepo := repositories.NewMockInvitationRepository()

	mockUserRepo := new(MockUserRepository)
	mockUserRepo.On("GetByID", inviter.ID).Return(inviter, nil).Once()
	mockUserRepo.On("GetByEmail", invitee.Email).Return(invitee, nil).Once()

	mockPublisher := new(MockEventPublisher)
	mockPublisher.On("PublishInvitationCreated", mock.Anything).Return(fmt.Errorf("broker unavailable")).Once()

	invitationService := services.NewInvitationService(invitationRepo, mockUserRepo, boardRepo, mockPublisher)
	details, err := invitationService.CreateBoardInvitation(inviter.ID, invitee.Email, board.ID)
	assert.NoError(t, err)
	assert.NotNil(t, details)

	mockPublisher.AssertExpectations(t)
}
