package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"taskboard/domain/models"
	"taskboard/domain/repositories"
)

type BoardRepositoryImpl struct {
	db *gorm.DB
}

func NewBoardRepository(db *gorm.DB) repositories.BoardRepository {
	return &BoardRepositoryImpl{db: db}
}

func preloadTasks(db *gorm.DB) *gorm.DB {
	return db.Preload("Tasks", func(db *gorm.DB) *gorm.DB {
		return db.Order("tasks.id ASC")
	})
}

func (r *BoardRepositoryImpl) Create(ctx context.Context, board *models.Board) error {
	return conn(ctx, r.db).Omit(clause.Associations).Create(board).Error
}

func (r *BoardRepositoryImpl) GetByID(ctx context.Context, id uint) (*models.Board, error) {
	var board models.Board
	err := preloadTasks(conn(ctx, r.db)).Where("id = ?", id).First(&board).Error
	if err != nil {
		return nil, translate(err)
	}
	return &board, nil
}

func (r *BoardRepositoryImpl) GetByIDForUpdate(ctx context.Context, id uint) (*models.Board, error) {
	var board models.Board
	err := preloadTasks(conn(ctx, r.db)).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&board).Error
	if err != nil {
		return nil, translate(err)
	}
	return &board, nil
}

func (r *BoardRepositoryImpl) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := conn(ctx, r.db).Model(&models.Board{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *BoardRepositoryImpl) ExistsForShare(ctx context.Context, id uint) (bool, error) {
	var ids []uint
	err := conn(ctx, r.db).Model(&models.Board{}).
		Clauses(clause.Locking{Strength: "SHARE"}).
		Where("id = ?", id).
		Pluck("id", &ids).Error
	return len(ids) > 0, err
}

func (r *BoardRepositoryImpl) Update(ctx context.Context, board *models.Board) error {
	result := conn(ctx, r.db).Model(&models.Board{}).
		Where("id = ?", board.ID).
		UpdateColumns(map[string]any{
			"name":        board.Name,
			"description": board.Description,
			"updated_at":  board.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repositories.ErrRecordNotFound
	}
	return nil
}

func (r *BoardRepositoryImpl) Delete(ctx context.Context, id uint) error {
	result := conn(ctx, r.db).Where("id = ?", id).Delete(&models.Board{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repositories.ErrRecordNotFound
	}
	return nil
}

func (r *BoardRepositoryImpl) List(ctx context.Context) ([]*models.Board, error) {
	var boards []*models.Board
	err := preloadTasks(conn(ctx, r.db)).Order("id ASC").Find(&boards).Error
	return boards, err
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repositories.ErrRecordNotFound
	}
	return err
}
