package repositories

import (
	"fmt"
	"sync"

	"kanban/internal/models"

	"github.com/google/uuid"
)

// MockBoardRepository is an in-memory implementation of BoardRepository.
type MockBoardRepository struct {
	boards map[string]models.Board
	mu     sync.RWMutex
}

// NewMockBoardRepository creates a new instance of MockBoardRepository.
func NewMockBoardRepository() *MockBoardRepository {
	return &MockBoardRepository{
		boards: make(map[string]models.Board),
	}
}

// GetByID returns a board by its ID.
func (r *MockBoardRepository) GetByID(id string) (*models.Board, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	board, ok := r.boards[id]
	if !ok {
		return nil, fmt.Errorf("board with ID %s not found", id)
	}
	return &board, nil
}

// Create adds a new board.
func (r *MockBoardRepository) Create(board *models.Board) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if board.ID == "" {
		board.ID = uuid.New().String()
	}
	r.boards[board.ID] = *board
	return nil
}
