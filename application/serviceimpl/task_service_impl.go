package serviceimpl

import (
	"context"
	"time"

	"taskboard/domain/dto"
	"taskboard/domain/models"
	"taskboard/domain/ports"
	"taskboard/domain/repositories"
	"taskboard/domain/services"
	"taskboard/pkg/apperror"
	"taskboard/pkg/logger"
)

type TaskServiceImpl struct {
	taskRepo  repositories.TaskRepository
	boardRepo repositories.BoardRepository
	tx        repositories.Transactor
	notifier  changeNotifier
	clock     func() time.Time
}

func NewTaskService(
	taskRepo repositories.TaskRepository,
	boardRepo repositories.BoardRepository,
	tx repositories.Transactor,
	publisher ports.EventPublisherPort,
) services.TaskService {
	return &TaskServiceImpl{
		taskRepo:  taskRepo,
		boardRepo: boardRepo,
		tx:        tx,
		notifier:  changeNotifier{publisher: publisher},
		clock:     now,
	}
}

// NewTaskServiceWithCache invalidates the owning board's cached snapshot on
// every task mutation. Task reads are not cached.
func NewTaskServiceWithCache(
	taskRepo repositories.TaskRepository,
	boardRepo repositories.BoardRepository,
	tx repositories.Transactor,
	publisher ports.EventPublisherPort,
	cache ports.BoardCachePort,
) services.TaskService {
	return &TaskServiceImpl{
		taskRepo:  taskRepo,
		boardRepo: boardRepo,
		tx:        tx,
		notifier:  changeNotifier{cache: cache, publisher: publisher},
		clock:     now,
	}
}

func (s *TaskServiceImpl) ListTasks(ctx context.Context) ([]dto.TaskResponse, error) {
	tasks, err := s.taskRepo.List(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to list tasks", "error", err)
		return nil, infraError("list tasks", err)
	}
	return dto.TasksToTaskResponses(tasks), nil
}

func (s *TaskServiceImpl) ListTasksByBoard(ctx context.Context, boardID uint) ([]dto.TaskResponse, error) {
	var tasks []*models.Task
	err := s.tx.WithinSnapshot(ctx, func(ctx context.Context) error {
		exists, err := s.boardRepo.Exists(ctx, boardID)
		if err != nil {
			return err
		}
		if !exists {
			return apperror.NotFound("Board", boardID)
		}
		tasks, err = s.taskRepo.GetByBoardID(ctx, boardID)
		return err
	})
	if err != nil {
		if apperror.IsNotFound(err) {
			logger.WarnContext(ctx, "Board not found", "board_id", boardID)
			return nil, err
		}
		logger.ErrorContext(ctx, "Failed to list board tasks", "board_id", boardID, "error", err)
		return nil, infraError("list board tasks", err)
	}
	return dto.TasksToTaskResponses(tasks), nil
}

func (s *TaskServiceImpl) GetTask(ctx context.Context, id uint) (*dto.TaskResponse, error) {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		if isRecordNotFound(err) {
			logger.WarnContext(ctx, "Task not found", "task_id", id)
			return nil, apperror.NotFound("Task", id)
		}
		logger.ErrorContext(ctx, "Failed to get task", "task_id", id, "error", err)
		return nil, infraError("get task", err)
	}
	return dto.TaskToTaskResponse(task), nil
}

func (s *TaskServiceImpl) CreateTask(ctx context.Context, req *dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	logger.InfoContext(ctx, "Creating task", "title", req.Title, "board_id", req.BoardID)

	task := dto.CreateTaskRequestToTask(req)
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		// The shared lock holds off a concurrent board delete until this
		// insert is committed, so the cascade sees the new task.
		exists, err := s.boardRepo.ExistsForShare(ctx, req.BoardID)
		if err != nil {
			return err
		}
		if !exists {
			return apperror.NotFound("Board", req.BoardID)
		}

		createdAt := s.clock()
		task.CreatedAt = createdAt
		task.UpdatedAt = createdAt
		return s.taskRepo.Create(ctx, task)
	})
	if err != nil {
		if apperror.IsNotFound(err) {
			logger.WarnContext(ctx, "Board not found for task creation", "board_id", req.BoardID)
			return nil, err
		}
		logger.ErrorContext(ctx, "Failed to create task", "board_id", req.BoardID, "error", err)
		return nil, infraError("create task", err)
	}

	logger.InfoContext(ctx, "Task created", "task_id", task.ID, "board_id", task.BoardID)
	s.notifier.boardChanged(ctx, ports.EventTaskCreated, task.BoardID, &task.ID)

	return dto.TaskToTaskResponse(task), nil
}

func (s *TaskServiceImpl) UpdateTask(ctx context.Context, id uint, req *dto.UpdateTaskRequest) (*dto.TaskResponse, error) {
	logger.InfoContext(ctx, "Updating task", "task_id", id)

	var task *models.Task
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		task, err = s.taskRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			if isRecordNotFound(err) {
				return apperror.NotFound("Task", id)
			}
			return err
		}

		dto.ApplyUpdateTaskRequest(task, req)
		task.UpdatedAt = touch(s.clock, task.UpdatedAt)

		return s.taskRepo.Update(ctx, task)
	})
	if err != nil {
		if apperror.IsNotFound(err) {
			logger.WarnContext(ctx, "Task not found for update", "task_id", id)
			return nil, err
		}
		logger.ErrorContext(ctx, "Failed to update task", "task_id", id, "error", err)
		return nil, infraError("update task", err)
	}

	logger.InfoContext(ctx, "Task updated", "task_id", id, "status", task.Status.String())
	s.notifier.boardChanged(ctx, ports.EventTaskUpdated, task.BoardID, &task.ID)

	return dto.TaskToTaskResponse(task), nil
}

func (s *TaskServiceImpl) DeleteTask(ctx context.Context, id uint) error {
	logger.InfoContext(ctx, "Deleting task", "task_id", id)

	var boardID uint
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		task, err := s.taskRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			if isRecordNotFound(err) {
				return apperror.NotFound("Task", id)
			}
			return err
		}
		boardID = task.BoardID
		return s.taskRepo.Delete(ctx, id)
	})
	if err != nil {
		if apperror.IsNotFound(err) {
			logger.WarnContext(ctx, "Task not found for deletion", "task_id", id)
			return err
		}
		logger.ErrorContext(ctx, "Failed to delete task", "task_id", id, "error", err)
		return infraError("delete task", err)
	}

	logger.InfoContext(ctx, "Task deleted", "task_id", id)
	s.notifier.boardChanged(ctx, ports.EventTaskDeleted, boardID, &id)
	return nil
}
