package serviceimpl

import (
	"context"
	"errors"
	"time"

	"taskboard/domain/dto"
	"taskboard/domain/models"
	"taskboard/domain/ports"
	"taskboard/domain/repositories"
	"taskboard/domain/services"
	"taskboard/pkg/apperror"
	"taskboard/pkg/logger"
)

type BoardServiceImpl struct {
	boardRepo repositories.BoardRepository
	taskRepo  repositories.TaskRepository
	tx        repositories.Transactor
	cache     ports.BoardCachePort
	notifier  changeNotifier
	clock     func() time.Time
}

func NewBoardService(
	boardRepo repositories.BoardRepository,
	taskRepo repositories.TaskRepository,
	tx repositories.Transactor,
	publisher ports.EventPublisherPort,
) services.BoardService {
	return &BoardServiceImpl{
		boardRepo: boardRepo,
		taskRepo:  taskRepo,
		tx:        tx,
		notifier:  changeNotifier{publisher: publisher},
		clock:     now,
	}
}

// NewBoardServiceWithCache serves reads from cache when possible.
func NewBoardServiceWithCache(
	boardRepo repositories.BoardRepository,
	taskRepo repositories.TaskRepository,
	tx repositories.Transactor,
	publisher ports.EventPublisherPort,
	cache ports.BoardCachePort,
) services.BoardService {
	return &BoardServiceImpl{
		boardRepo: boardRepo,
		taskRepo:  taskRepo,
		tx:        tx,
		cache:     cache,
		notifier:  changeNotifier{cache: cache, publisher: publisher},
		clock:     now,
	}
}

func (s *BoardServiceImpl) ListBoards(ctx context.Context) ([]dto.BoardResponse, error) {
	if s.cache != nil {
		boards, err := s.cache.GetBoardList(ctx)
		if err == nil {
			logger.DebugContext(ctx, "Boards served from cache", "count", len(boards))
			return boards, nil
		}
		if !errors.Is(err, ports.ErrCacheMiss) {
			logger.WarnContext(ctx, "Board cache read failed", "error", err)
		}
	}

	// The version is taken before the snapshot so an invalidation that
	// lands while we read makes the write below a no-op.
	version, cacheable := s.listVersion(ctx)

	var boards []*models.Board
	err := s.tx.WithinSnapshot(ctx, func(ctx context.Context) error {
		var err error
		boards, err = s.boardRepo.List(ctx)
		return err
	})
	if err != nil {
		logger.ErrorContext(ctx, "Failed to list boards", "error", err)
		return nil, infraError("list boards", err)
	}

	responses := dto.BoardsToBoardResponses(boards)
	if cacheable {
		logCacheWrite(ctx, s.cache.SetBoardList(ctx, responses, version), "Failed to cache board list")
	}
	return responses, nil
}

func (s *BoardServiceImpl) GetBoard(ctx context.Context, id uint) (*dto.BoardResponse, error) {
	if s.cache != nil {
		board, err := s.cache.GetBoard(ctx, id)
		if err == nil {
			return board, nil
		}
		if !errors.Is(err, ports.ErrCacheMiss) {
			logger.WarnContext(ctx, "Board cache read failed", "board_id", id, "error", err)
		}
	}

	version, cacheable := s.boardVersion(ctx, id)

	var board *models.Board
	err := s.tx.WithinSnapshot(ctx, func(ctx context.Context) error {
		var err error
		board, err = s.boardRepo.GetByID(ctx, id)
		return err
	})
	if err != nil {
		if isRecordNotFound(err) {
			logger.WarnContext(ctx, "Board not found", "board_id", id)
			return nil, apperror.NotFound("Board", id)
		}
		logger.ErrorContext(ctx, "Failed to get board", "board_id", id, "error", err)
		return nil, infraError("get board", err)
	}

	response := dto.BoardToBoardResponse(board)
	if cacheable {
		logCacheWrite(ctx, s.cache.SetBoard(ctx, response, version), "Failed to cache board", "board_id", id)
	}
	return response, nil
}

func (s *BoardServiceImpl) listVersion(ctx context.Context) (int64, bool) {
	if s.cache == nil {
		return 0, false
	}
	version, err := s.cache.ListVersion(ctx)
	if err != nil {
		logger.WarnContext(ctx, "Board cache version read failed", "error", err)
		return 0, false
	}
	return version, true
}

func (s *BoardServiceImpl) boardVersion(ctx context.Context, id uint) (int64, bool) {
	if s.cache == nil {
		return 0, false
	}
	version, err := s.cache.BoardVersion(ctx, id)
	if err != nil {
		logger.WarnContext(ctx, "Board cache version read failed", "board_id", id, "error", err)
		return 0, false
	}
	return version, true
}

func (s *BoardServiceImpl) CreateBoard(ctx context.Context, req *dto.CreateBoardRequest) (*dto.BoardResponse, error) {
	logger.InfoContext(ctx, "Creating board", "name", req.Name)

	board := dto.CreateBoardRequestToBoard(req)
	createdAt := s.clock()
	board.CreatedAt = createdAt
	board.UpdatedAt = createdAt

	if err := s.boardRepo.Create(ctx, board); err != nil {
		logger.ErrorContext(ctx, "Failed to create board", "name", req.Name, "error", err)
		return nil, infraError("create board", err)
	}

	logger.InfoContext(ctx, "Board created", "board_id", board.ID)
	s.notifier.boardChanged(ctx, ports.EventBoardCreated, board.ID, nil)

	return dto.BoardToBoardResponse(board), nil
}

func (s *BoardServiceImpl) UpdateBoard(ctx context.Context, id uint, req *dto.UpdateBoardRequest) (*dto.BoardResponse, error) {
	logger.InfoContext(ctx, "Updating board", "board_id", id)

	var board *models.Board
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		board, err = s.boardRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			if isRecordNotFound(err) {
				return apperror.NotFound("Board", id)
			}
			return err
		}

		board.Name = req.Name
		board.Description = req.Description
		board.UpdatedAt = touch(s.clock, board.UpdatedAt)

		return s.boardRepo.Update(ctx, board)
	})
	if err != nil {
		if apperror.IsNotFound(err) {
			logger.WarnContext(ctx, "Board not found for update", "board_id", id)
			return nil, err
		}
		logger.ErrorContext(ctx, "Failed to update board", "board_id", id, "error", err)
		return nil, infraError("update board", err)
	}

	logger.InfoContext(ctx, "Board updated", "board_id", id)
	s.notifier.boardChanged(ctx, ports.EventBoardUpdated, id, nil)

	return dto.BoardToBoardResponse(board), nil
}

func (s *BoardServiceImpl) DeleteBoard(ctx context.Context, id uint) error {
	logger.InfoContext(ctx, "Deleting board", "board_id", id)

	var removedTasks int64
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.boardRepo.GetByIDForUpdate(ctx, id); err != nil {
			if isRecordNotFound(err) {
				return apperror.NotFound("Board", id)
			}
			return err
		}

		// The foreign key cascades as well; deleting explicitly keeps the
		// invariant on schemas created without the constraint.
		var err error
		removedTasks, err = s.taskRepo.DeleteByBoardID(ctx, id)
		if err != nil {
			return err
		}
		return s.boardRepo.Delete(ctx, id)
	})
	if err != nil {
		if apperror.IsNotFound(err) {
			logger.WarnContext(ctx, "Board not found for deletion", "board_id", id)
			return err
		}
		logger.ErrorContext(ctx, "Failed to delete board", "board_id", id, "error", err)
		return infraError("delete board", err)
	}

	logger.InfoContext(ctx, "Board deleted", "board_id", id, "tasks_removed", removedTasks)
	s.notifier.boardChanged(ctx, ports.EventBoardDeleted, id, nil)
	return nil
}
