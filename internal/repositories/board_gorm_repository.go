package repositories

import (
	"fmt"

	"kanban/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMBoardRepository is a GORM implementation of BoardRepository.
type GORMBoardRepository struct {
	db *gorm.DB
}

// NewGORMBoardRepository creates a new instance of GORMBoardRepository.
func NewGORMBoardRepository(db *gorm.DB) *GORMBoardRepository {
	return &GORMBoardRepository{
		db: db,
	}
}

// GetByID retrieves a board by its ID from the database.
func (r *GORMBoardRepository) GetByID(id string) (*models.Board, error) {
	var board models.Board
	if err := r.db.First(&board, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("board with ID %s not found", id)
		}
		return nil, fmt.Errorf("failed to get board by ID %s: %w", id, err)
	}
	return &board, nil
}

// Create creates a new board in the database.
func (r *GORMBoardRepository) Create(board *models.Board) error {
	if board.ID == "" {
		board.ID = uuid.New().String()
	}
	if err := r.db.Create(board).Error; err != nil {
		return fmt.Errorf("failed to create board: %w", err)
	}
	return nil
}
