package ports

import (
	"context"
	"time"
)

// Event types published after a mutation commits.
const (
	EventBoardCreated = "board.created"
	EventBoardUpdated = "board.updated"
	EventBoardDeleted = "board.deleted"
	EventTaskCreated  = "task.created"
	EventTaskUpdated  = "task.updated"
	EventTaskDeleted  = "task.deleted"
)

// DomainEvent is a plain struct with no transport dependency.
type DomainEvent struct {
	Type       string    `json:"type"`
	BoardID    uint      `json:"boardId"`
	TaskID     *uint     `json:"taskId,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// EventPublisherPort delivers domain events to subscribers outside the process.
type EventPublisherPort interface {
	Publish(ctx context.Context, event *DomainEvent) error
}
