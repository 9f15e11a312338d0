package dto

import (
	"time"

	"taskboard/domain/models"
)

// CreateTaskRequest leaves Status and Priority nil when the caller omits
// them; the mapper fills in Todo and Medium.
type CreateTaskRequest struct {
	Title       string               `json:"title" validate:"notblank,max=200"`
	Description string               `json:"description" validate:"max=1000"`
	Status      *models.TaskStatus   `json:"status" validate:"omitempty,min=0,max=2"`
	Priority    *models.TaskPriority `json:"priority" validate:"omitempty,min=0,max=2"`
	DueDate     *time.Time           `json:"dueDate"`
	BoardID     uint                 `json:"boardId" validate:"required,min=1,max=9223372036854775807"`
}

// UpdateTaskRequest replaces every mutable field. There is no boardId:
// a task never changes owner.
type UpdateTaskRequest struct {
	Title       string              `json:"title" validate:"notblank,max=200"`
	Description string              `json:"description" validate:"max=1000"`
	Status      models.TaskStatus   `json:"status" validate:"min=0,max=2"`
	Priority    models.TaskPriority `json:"priority" validate:"min=0,max=2"`
	DueDate     *time.Time          `json:"dueDate"`
}

type TaskResponse struct {
	ID          uint                `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Status      models.TaskStatus   `json:"status"`
	Priority    models.TaskPriority `json:"priority"`
	DueDate     *time.Time          `json:"dueDate"`
	BoardID     uint                `json:"boardId"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}
