package repositories

import (
	"context"

	"taskboard/domain/models"
)

type BoardRepository interface {
	Create(ctx context.Context, board *models.Board) error
	// GetByID returns the board with its tasks preloaded.
	GetByID(ctx context.Context, id uint) (*models.Board, error)
	// GetByIDForUpdate locks the board row for the rest of the transaction.
	GetByIDForUpdate(ctx context.Context, id uint) (*models.Board, error)
	Exists(ctx context.Context, id uint) (bool, error)
	// ExistsForShare is Exists plus a shared row lock, so the board cannot be
	// deleted before the surrounding transaction ends.
	ExistsForShare(ctx context.Context, id uint) (bool, error)
	// Update writes name, description and updated_at only.
	Update(ctx context.Context, board *models.Board) error
	Delete(ctx context.Context, id uint) error
	// List returns all boards ordered by id with their tasks preloaded.
	List(ctx context.Context) ([]*models.Board, error)
}
