package repositories

import (
	"context"

	"taskboard/domain/models"
)

type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	GetByID(ctx context.Context, id uint) (*models.Task, error)
	GetByIDForUpdate(ctx context.Context, id uint) (*models.Task, error)
	GetByBoardID(ctx context.Context, boardID uint) ([]*models.Task, error)
	// Update writes the mutable columns and updated_at; board_id and
	// created_at are never written.
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id uint) error
	DeleteByBoardID(ctx context.Context, boardID uint) (int64, error)
	List(ctx context.Context) ([]*models.Task, error)
}
