package dto

import (
	"time"

	"taskboard/domain/models"
)

func TaskToTaskResponse(task *models.Task) *TaskResponse {
	if task == nil {
		return nil
	}
	return &TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		Priority:    task.Priority,
		DueDate:     task.DueDate,
		BoardID:     task.BoardID,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

func TasksToTaskResponses(tasks []*models.Task) []TaskResponse {
	responses := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		responses = append(responses, *TaskToTaskResponse(task))
	}
	return responses
}

// BoardToBoardResponse maps a board with its preloaded tasks. Tasks is
// always a non-nil slice so it encodes as [] rather than null.
func BoardToBoardResponse(board *models.Board) *BoardResponse {
	if board == nil {
		return nil
	}
	tasks := make([]TaskResponse, 0, len(board.Tasks))
	for i := range board.Tasks {
		tasks = append(tasks, *TaskToTaskResponse(&board.Tasks[i]))
	}
	return &BoardResponse{
		ID:          board.ID,
		Name:        board.Name,
		Description: board.Description,
		CreatedAt:   board.CreatedAt,
		UpdatedAt:   board.UpdatedAt,
		Tasks:       tasks,
	}
}

func BoardsToBoardResponses(boards []*models.Board) []BoardResponse {
	responses := make([]BoardResponse, 0, len(boards))
	for _, board := range boards {
		responses = append(responses, *BoardToBoardResponse(board))
	}
	return responses
}

func CreateBoardRequestToBoard(req *CreateBoardRequest) *models.Board {
	return &models.Board{
		Name:        req.Name,
		Description: req.Description,
	}
}

// CreateTaskRequestToTask applies the Todo/Medium defaults only to fields
// the caller left out.
func CreateTaskRequestToTask(req *CreateTaskRequest) *models.Task {
	task := &models.Task{
		Title:       req.Title,
		Description: req.Description,
		Status:      models.TaskStatusTodo,
		Priority:    models.TaskPriorityMedium,
		DueDate:     normalizeDueDate(req.DueDate),
		BoardID:     req.BoardID,
	}
	if req.Status != nil {
		task.Status = *req.Status
	}
	if req.Priority != nil {
		task.Priority = *req.Priority
	}
	return task
}

// ApplyUpdateTaskRequest overwrites the mutable fields of task in place.
func ApplyUpdateTaskRequest(task *models.Task, req *UpdateTaskRequest) {
	task.Title = req.Title
	task.Description = req.Description
	task.Status = req.Status
	task.Priority = req.Priority
	task.DueDate = normalizeDueDate(req.DueDate)
}

// normalizeDueDate stores due dates in UTC at the precision the database
// keeps, so a freshly written task reads back unchanged.
func normalizeDueDate(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC().Truncate(time.Microsecond)
	return &v
}
