package serviceimpl

import (
	"context"
	"errors"
	"time"

	"taskboard/domain/ports"
	"taskboard/domain/repositories"
	"taskboard/pkg/apperror"
	"taskboard/pkg/logger"
)

// changeNotifier runs the post-commit side effects shared by the board and
// task services: dropping stale cache snapshots and publishing events.
// Both collaborators are optional.
type changeNotifier struct {
	cache     ports.BoardCachePort
	publisher ports.EventPublisherPort
}

func (n changeNotifier) boardChanged(ctx context.Context, eventType string, boardID uint, taskID *uint) {
	if n.cache != nil {
		if err := n.cache.InvalidateBoard(ctx, boardID); err != nil {
			logger.WarnContext(ctx, "Failed to invalidate board cache", "board_id", boardID, "error", err)
		}
	}

	if n.publisher == nil {
		return
	}
	event := &ports.DomainEvent{
		Type:       eventType,
		BoardID:    boardID,
		TaskID:     taskID,
		OccurredAt: time.Now().UTC(),
	}
	if err := n.publisher.Publish(ctx, event); err != nil {
		logger.WarnContext(ctx, "Failed to publish domain event", "type", eventType, "board_id", boardID, "error", err)
	}
}

// logCacheWrite reports a failed snapshot write. A write dropped because
// the snapshot went stale is expected under concurrent mutations.
func logCacheWrite(ctx context.Context, err error, msg string, args ...any) {
	switch {
	case err == nil:
	case errors.Is(err, ports.ErrCacheStale):
		logger.DebugContext(ctx, "Skipped caching stale snapshot", args...)
	default:
		logger.WarnContext(ctx, msg, append(args, "error", err)...)
	}
}

// now returns the current instant at the precision the database stores.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// touch returns a refresh timestamp that never goes below previous.
func touch(clock func() time.Time, previous time.Time) time.Time {
	t := clock()
	if t.Before(previous) {
		return previous
	}
	return t
}

// infraError passes typed errors through and wraps anything else as an
// infrastructure failure of op.
func infraError(op string, err error) error {
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		return err
	}
	return apperror.Infrastructure(op, err)
}

func isRecordNotFound(err error) bool {
	return errors.Is(err, repositories.ErrRecordNotFound)
}
