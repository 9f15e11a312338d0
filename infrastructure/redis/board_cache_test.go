package redis

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/domain/dto"
	"taskboard/domain/models"
	"taskboard/domain/ports"
	"taskboard/pkg/config"
)

func newTestCache(t *testing.T) (*miniredis.Miniredis, ports.BoardCachePort) {
	t.Helper()

	m, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(m.Close)

	rdb := redis.NewClient(&redis.Options{Addr: m.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return m, NewBoardCache(NewClientFromRedis(rdb), time.Minute)
}

func sampleBoard(id uint) *dto.BoardResponse {
	created := time.Date(2026, 3, 1, 9, 0, 0, 123456000, time.UTC)
	due := created.Add(48 * time.Hour)
	return &dto.BoardResponse{
		ID:          id,
		Name:        "Alpha",
		Description: "Main",
		CreatedAt:   created,
		UpdatedAt:   created,
		Tasks: []dto.TaskResponse{{
			ID:        7,
			Title:     "Write tests",
			Status:    models.TaskStatusInProgress,
			Priority:  models.TaskPriorityHigh,
			DueDate:   &due,
			BoardID:   id,
			CreatedAt: created,
			UpdatedAt: created,
		}},
	}
}

func TestBoardCacheRoundTrip(t *testing.T) {
	_, cache := newTestCache(t)
	ctx := context.Background()

	_, err := cache.GetBoard(ctx, 1)
	assert.ErrorIs(t, err, ports.ErrCacheMiss)

	want := sampleBoard(1)
	require.NoError(t, cache.SetBoard(ctx, want, 0))

	got, err := cache.GetBoard(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, want.Name, got.Name)
	assert.True(t, want.CreatedAt.Equal(got.CreatedAt))
	require.Len(t, got.Tasks, 1)
	assert.Equal(t, models.TaskStatusInProgress, got.Tasks[0].Status)
	require.NotNil(t, got.Tasks[0].DueDate)
	assert.True(t, want.Tasks[0].DueDate.Equal(*got.Tasks[0].DueDate))
}

func TestBoardCacheListAndInvalidate(t *testing.T) {
	m, cache := newTestCache(t)
	ctx := context.Background()

	_, err := cache.GetBoardList(ctx)
	assert.ErrorIs(t, err, ports.ErrCacheMiss)

	require.NoError(t, cache.SetBoardList(ctx, []dto.BoardResponse{*sampleBoard(1), *sampleBoard(2)}, 0))
	require.NoError(t, cache.SetBoard(ctx, sampleBoard(1), 0))
	require.NoError(t, cache.SetBoard(ctx, sampleBoard(2), 0))

	list, err := cache.GetBoardList(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	require.NoError(t, cache.InvalidateBoard(ctx, 1))

	_, err = cache.GetBoard(ctx, 1)
	assert.ErrorIs(t, err, ports.ErrCacheMiss)
	_, err = cache.GetBoardList(ctx)
	assert.ErrorIs(t, err, ports.ErrCacheMiss)

	_, err = cache.GetBoard(ctx, 2)
	assert.NoError(t, err)
	assert.True(t, m.Exists(boardKey(2)))
}

func TestBoardCacheInvalidateBumpsVersions(t *testing.T) {
	m, cache := newTestCache(t)
	ctx := context.Background()

	v, err := cache.BoardVersion(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), v)

	require.NoError(t, cache.InvalidateBoard(ctx, 1))
	require.NoError(t, cache.InvalidateBoard(ctx, 1))

	v, err = cache.BoardVersion(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), v)
	lv, err := cache.ListVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), lv)

	other, err := cache.BoardVersion(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(0), other)

	assert.True(t, m.TTL(boardVersionKey(1)) > 0)
}

func TestBoardCacheDropsWritesAfterInvalidation(t *testing.T) {
	m, cache := newTestCache(t)
	ctx := context.Background()

	// A reader takes the versions, then a mutation invalidates before the
	// reader gets to write its snapshot back.
	bv, err := cache.BoardVersion(ctx, 1)
	require.NoError(t, err)
	lv, err := cache.ListVersion(ctx)
	require.NoError(t, err)

	require.NoError(t, cache.InvalidateBoard(ctx, 1))

	err = cache.SetBoard(ctx, sampleBoard(1), bv)
	assert.ErrorIs(t, err, ports.ErrCacheStale)
	err = cache.SetBoardList(ctx, []dto.BoardResponse{*sampleBoard(1)}, lv)
	assert.ErrorIs(t, err, ports.ErrCacheStale)

	assert.False(t, m.Exists(boardKey(1)))
	assert.False(t, m.Exists(boardListKey))

	// A fresh read after the invalidation is cached normally.
	bv, err = cache.BoardVersion(ctx, 1)
	require.NoError(t, err)
	require.NoError(t, cache.SetBoard(ctx, sampleBoard(1), bv))
	_, err = cache.GetBoard(ctx, 1)
	assert.NoError(t, err)
}

func TestBoardCacheEmptyList(t *testing.T) {
	_, cache := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.SetBoardList(ctx, []dto.BoardResponse{}, 0))

	list, err := cache.GetBoardList(ctx)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestBoardCacheExpires(t *testing.T) {
	m, cache := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.SetBoard(ctx, sampleBoard(3), 0))
	m.FastForward(2 * time.Minute)

	_, err := cache.GetBoard(ctx, 3)
	assert.ErrorIs(t, err, ports.ErrCacheMiss)
}

func TestBoardCacheReportsConnectionErrors(t *testing.T) {
	m, cache := newTestCache(t)
	m.Close()

	_, err := cache.GetBoard(context.Background(), 1)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ports.ErrCacheMiss)
}

func TestNewClient(t *testing.T) {
	m, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(m.Close)

	client, err := NewClient(&config.RedisConfig{URL: "redis://" + m.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	assert.NoError(t, client.Ping(context.Background()))

	_, err = NewClient(&config.RedisConfig{URL: "not a url"})
	assert.Error(t, err)
}
