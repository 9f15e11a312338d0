package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"taskboard/domain/models"
	"taskboard/domain/repositories"
)

type TaskRepositoryImpl struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) repositories.TaskRepository {
	return &TaskRepositoryImpl{db: db}
}

func (r *TaskRepositoryImpl) Create(ctx context.Context, task *models.Task) error {
	return conn(ctx, r.db).Create(task).Error
}

func (r *TaskRepositoryImpl) GetByID(ctx context.Context, id uint) (*models.Task, error) {
	var task models.Task
	if err := conn(ctx, r.db).Where("id = ?", id).First(&task).Error; err != nil {
		return nil, translate(err)
	}
	return &task, nil
}

func (r *TaskRepositoryImpl) GetByIDForUpdate(ctx context.Context, id uint) (*models.Task, error) {
	var task models.Task
	err := conn(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&task).Error
	if err != nil {
		return nil, translate(err)
	}
	return &task, nil
}

func (r *TaskRepositoryImpl) GetByBoardID(ctx context.Context, boardID uint) ([]*models.Task, error) {
	var tasks []*models.Task
	err := conn(ctx, r.db).Where("board_id = ?", boardID).Order("id ASC").Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepositoryImpl) Update(ctx context.Context, task *models.Task) error {
	result := conn(ctx, r.db).Model(&models.Task{}).
		Where("id = ?", task.ID).
		UpdateColumns(map[string]any{
			"title":       task.Title,
			"description": task.Description,
			"status":      task.Status,
			"priority":    task.Priority,
			"due_date":    task.DueDate,
			"updated_at":  task.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repositories.ErrRecordNotFound
	}
	return nil
}

func (r *TaskRepositoryImpl) Delete(ctx context.Context, id uint) error {
	result := conn(ctx, r.db).Where("id = ?", id).Delete(&models.Task{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repositories.ErrRecordNotFound
	}
	return nil
}

func (r *TaskRepositoryImpl) DeleteByBoardID(ctx context.Context, boardID uint) (int64, error) {
	result := conn(ctx, r.db).Where("board_id = ?", boardID).Delete(&models.Task{})
	return result.RowsAffected, result.Error
}

func (r *TaskRepositoryImpl) List(ctx context.Context) ([]*models.Task, error) {
	var tasks []*models.Task
	err := conn(ctx, r.db).Order("id ASC").Find(&tasks).Error
	return tasks, err
}
