package models

import "time"

// TaskStatus is persisted and transmitted as its ordinal.
type TaskStatus int

const (
	TaskStatusTodo TaskStatus = iota
	TaskStatusInProgress
	TaskStatusDone
)

func (s TaskStatus) String() string {
	switch s {
	case TaskStatusTodo:
		return "Todo"
	case TaskStatusInProgress:
		return "InProgress"
	case TaskStatusDone:
		return "Done"
	default:
		return "Unknown"
	}
}

func (s TaskStatus) IsValid() bool {
	return s >= TaskStatusTodo && s <= TaskStatusDone
}

// TaskPriority is persisted and transmitted as its ordinal.
type TaskPriority int

const (
	TaskPriorityLow TaskPriority = iota
	TaskPriorityMedium
	TaskPriorityHigh
)

func (p TaskPriority) String() string {
	switch p {
	case TaskPriorityLow:
		return "Low"
	case TaskPriorityMedium:
		return "Medium"
	case TaskPriorityHigh:
		return "High"
	default:
		return "Unknown"
	}
}

func (p TaskPriority) IsValid() bool {
	return p >= TaskPriorityLow && p <= TaskPriorityHigh
}

type Task struct {
	ID          uint         `gorm:"primaryKey"`
	Title       string       `gorm:"size:200;not null"`
	Description string       `gorm:"size:1000;not null;default:''"`
	Status      TaskStatus   `gorm:"not null"`
	Priority    TaskPriority `gorm:"not null"`
	DueDate     *time.Time
	BoardID     uint      `gorm:"not null;index"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

func (Task) TableName() string {
	return "tasks"
}
