package services

import (
	"context"

	"taskboard/domain/dto"
)

type BoardService interface {
	// ListBoards returns every board with its tasks, ordered by id.
	ListBoards(ctx context.Context) ([]dto.BoardResponse, error)

	// GetBoard fails with a NotFound error for an unknown id.
	GetBoard(ctx context.Context, id uint) (*dto.BoardResponse, error)

	// CreateBoard assumes the name was already checked by the caller.
	CreateBoard(ctx context.Context, req *dto.CreateBoardRequest) (*dto.BoardResponse, error)

	UpdateBoard(ctx context.Context, id uint, req *dto.UpdateBoardRequest) (*dto.BoardResponse, error)

	// DeleteBoard removes the board and all of its tasks atomically.
	DeleteBoard(ctx context.Context, id uint) error
}
