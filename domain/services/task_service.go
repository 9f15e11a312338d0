package services

import (
	"context"

	"taskboard/domain/dto"
)

type TaskService interface {
	ListTasks(ctx context.Context) ([]dto.TaskResponse, error)

	// ListTasksByBoard fails with NotFound when the board does not exist,
	// and returns an empty slice for an existing board without tasks.
	ListTasksByBoard(ctx context.Context, boardID uint) ([]dto.TaskResponse, error)

	GetTask(ctx context.Context, id uint) (*dto.TaskResponse, error)

	// CreateTask fails with NotFound when req.BoardID does not exist.
	CreateTask(ctx context.Context, req *dto.CreateTaskRequest) (*dto.TaskResponse, error)

	UpdateTask(ctx context.Context, id uint, req *dto.UpdateTaskRequest) (*dto.TaskResponse, error)

	DeleteTask(ctx context.Context, id uint) error
}
