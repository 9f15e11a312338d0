package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"taskboard/domain/dto"
	"taskboard/domain/ports"
)

const (
	boardListKey        = "taskboard:boards:all"
	boardListVersionKey = "taskboard:boards:all:version"

	// Version keys outlive snapshots so a reader that started before an
	// invalidation still sees the bump when it writes.
	versionTTL = 24 * time.Hour
)

func boardKey(id uint) string {
	return fmt.Sprintf("taskboard:board:%d", id)
}

func boardVersionKey(id uint) string {
	return fmt.Sprintf("taskboard:board:%d:version", id)
}

// BoardCache stores board snapshots, tasks included, as JSON.
type BoardCache struct {
	client *Client
	ttl    time.Duration
}

func NewBoardCache(client *Client, ttl time.Duration) ports.BoardCachePort {
	return &BoardCache{client: client, ttl: ttl}
}

func (c *BoardCache) GetBoard(ctx context.Context, id uint) (*dto.BoardResponse, error) {
	var board dto.BoardResponse
	if err := c.client.GetJSON(ctx, boardKey(id), &board); err != nil {
		return nil, cacheError(err)
	}
	return &board, nil
}

func (c *BoardCache) BoardVersion(ctx context.Context, id uint) (int64, error) {
	return c.client.Version(ctx, boardVersionKey(id))
}

func (c *BoardCache) SetBoard(ctx context.Context, board *dto.BoardResponse, version int64) error {
	return cacheError(c.client.SetJSONIfVersion(ctx, boardKey(board.ID), boardVersionKey(board.ID), version, board, c.ttl))
}

func (c *BoardCache) GetBoardList(ctx context.Context) ([]dto.BoardResponse, error) {
	var boards []dto.BoardResponse
	if err := c.client.GetJSON(ctx, boardListKey, &boards); err != nil {
		return nil, cacheError(err)
	}
	if boards == nil {
		boards = []dto.BoardResponse{}
	}
	return boards, nil
}

func (c *BoardCache) ListVersion(ctx context.Context) (int64, error) {
	return c.client.Version(ctx, boardListVersionKey)
}

func (c *BoardCache) SetBoardList(ctx context.Context, boards []dto.BoardResponse, version int64) error {
	return cacheError(c.client.SetJSONIfVersion(ctx, boardListKey, boardListVersionKey, version, boards, c.ttl))
}

// InvalidateBoard bumps both versions and drops the board snapshot and the
// list, which embeds it.
func (c *BoardCache) InvalidateBoard(ctx context.Context, id uint) error {
	return c.client.BumpAndDelete(ctx,
		[]string{boardVersionKey(id), boardListVersionKey}, versionTTL,
		boardKey(id), boardListKey)
}

func cacheError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, redis.Nil):
		return ports.ErrCacheMiss
	case errors.Is(err, ErrVersionChanged):
		return ports.ErrCacheStale
	}
	return err
}
