package ports

import (
	"context"
	"errors"

	"taskboard/domain/dto"
)

var (
	// ErrCacheMiss is returned by BoardCachePort getters when nothing is cached.
	ErrCacheMiss = errors.New("cache miss")
	// ErrCacheStale is returned by the setters when an invalidation ran
	// after the version was read; nothing is stored.
	ErrCacheStale = errors.New("cache version changed")
)

// BoardCachePort stores board-with-tasks snapshots. Writers read the
// version before loading from the store and pass it back on Set, so a
// snapshot loaded before an invalidation is never cached after it.
type BoardCachePort interface {
	GetBoard(ctx context.Context, id uint) (*dto.BoardResponse, error)
	BoardVersion(ctx context.Context, id uint) (int64, error)
	SetBoard(ctx context.Context, board *dto.BoardResponse, version int64) error

	GetBoardList(ctx context.Context) ([]dto.BoardResponse, error)
	ListVersion(ctx context.Context) (int64, error)
	SetBoardList(ctx context.Context, boards []dto.BoardResponse, version int64) error

	// InvalidateBoard bumps the board and list versions and drops both
	// snapshots.
	InvalidateBoard(ctx context.Context, id uint) error
}
