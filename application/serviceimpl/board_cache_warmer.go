package serviceimpl

import (
	"context"
	"errors"
	"fmt"

	"taskboard/domain/dto"
	"taskboard/domain/models"
	"taskboard/domain/ports"
	"taskboard/domain/repositories"
	"taskboard/pkg/logger"
	"taskboard/pkg/scheduler"
)

const boardCacheWarmJobID = "board_cache_warm"

// BoardCacheWarmer periodically reloads the board list snapshot so list
// reads rarely fall through to the database.
type BoardCacheWarmer struct {
	boardRepo repositories.BoardRepository
	tx        repositories.Transactor
	cache     ports.BoardCachePort
	scheduler scheduler.EventScheduler
	cron      string
}

func NewBoardCacheWarmer(
	boardRepo repositories.BoardRepository,
	tx repositories.Transactor,
	cache ports.BoardCachePort,
	eventScheduler scheduler.EventScheduler,
	cron string,
) *BoardCacheWarmer {
	return &BoardCacheWarmer{
		boardRepo: boardRepo,
		tx:        tx,
		cache:     cache,
		scheduler: eventScheduler,
		cron:      cron,
	}
}

// RegisterWarmJob registers the warm-up job with the scheduler.
func (w *BoardCacheWarmer) RegisterWarmJob() error {
	return w.scheduler.AddJob(boardCacheWarmJobID, w.cron, func() {
		if err := w.Warm(context.Background()); err != nil {
			logger.Warn("Board cache warm-up failed", "error", err)
		}
	})
}

// Warm loads every board in one snapshot and stores the list. If a
// mutation invalidates the list while loading, the result is discarded.
func (w *BoardCacheWarmer) Warm(ctx context.Context) error {
	version, err := w.cache.ListVersion(ctx)
	if err != nil {
		return fmt.Errorf("read list version: %w", err)
	}

	var boards []*models.Board
	err = w.tx.WithinSnapshot(ctx, func(ctx context.Context) error {
		var err error
		boards, err = w.boardRepo.List(ctx)
		return err
	})
	if err != nil {
		return fmt.Errorf("load boards: %w", err)
	}

	err = w.cache.SetBoardList(ctx, dto.BoardsToBoardResponses(boards), version)
	if errors.Is(err, ports.ErrCacheStale) {
		logger.DebugContext(ctx, "Board list changed during warm-up, skipped")
		return nil
	}
	if err != nil {
		return fmt.Errorf("store board list: %w", err)
	}

	logger.InfoContext(ctx, "Board cache warmed", "boards", len(boards))
	return nil
}
