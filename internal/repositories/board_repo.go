package repositories

import "kanban/internal/models"

// BoardRepository defines the interface for board data access. Boards are
// read-only from this service's point of view; Create exists for seeding
// and tests.
type BoardRepository interface {
	GetByID(id string) (*models.Board, error)
	Create(board *models.Board) error
}
