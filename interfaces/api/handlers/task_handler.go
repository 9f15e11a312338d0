package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"taskboard/domain/dto"
	"taskboard/domain/services"
	"taskboard/pkg/logger"
	"taskboard/pkg/utils"
)

type TaskHandler struct {
	taskService services.TaskService
}

func NewTaskHandler(taskService services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

func (h *TaskHandler) ListTasks(c *fiber.Ctx) error {
	tasks, err := h.taskService.ListTasks(c.UserContext())
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, tasks)
}

func (h *TaskHandler) ListTasksByBoard(c *fiber.Ctx) error {
	ctx := c.UserContext()

	boardID, ok := parseID(c, "boardId")
	if !ok {
		logger.WarnContext(ctx, "Invalid board ID", "board_id", c.Params("boardId"))
		return utils.BadRequestResponse(c, "Invalid board ID")
	}

	tasks, err := h.taskService.ListTasksByBoard(ctx, boardID)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, tasks)
}

func (h *TaskHandler) GetTask(c *fiber.Ctx) error {
	ctx := c.UserContext()

	taskID, ok := parseID(c, "id")
	if !ok {
		logger.WarnContext(ctx, "Invalid task ID", "task_id", c.Params("id"))
		return utils.BadRequestResponse(c, "Invalid task ID")
	}

	task, err := h.taskService.GetTask(ctx, taskID)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, task)
}

func (h *TaskHandler) CreateTask(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req dto.CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		logger.WarnContext(ctx, "Invalid request body", "error", err)
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	if err := utils.ValidateStruct(&req); err != nil {
		logger.WarnContext(ctx, "Validation failed", "errors", utils.GetValidationErrors(err))
		return utils.ServiceErrorResponse(c, err)
	}

	task, err := h.taskService.CreateTask(ctx, &req)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}
	return utils.CreatedResponse(c, fmt.Sprintf("/api/tasks/%d", task.ID), task)
}

func (h *TaskHandler) UpdateTask(c *fiber.Ctx) error {
	ctx := c.UserContext()

	taskID, ok := parseID(c, "id")
	if !ok {
		logger.WarnContext(ctx, "Invalid task ID", "task_id", c.Params("id"))
		return utils.BadRequestResponse(c, "Invalid task ID")
	}

	var req dto.UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		logger.WarnContext(ctx, "Invalid request body", "error", err)
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	if err := utils.ValidateStruct(&req); err != nil {
		logger.WarnContext(ctx, "Validation failed", "errors", utils.GetValidationErrors(err))
		return utils.ServiceErrorResponse(c, err)
	}

	task, err := h.taskService.UpdateTask(ctx, taskID, &req)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, task)
}

func (h *TaskHandler) DeleteTask(c *fiber.Ctx) error {
	ctx := c.UserContext()

	taskID, ok := parseID(c, "id")
	if !ok {
		logger.WarnContext(ctx, "Invalid task ID", "task_id", c.Params("id"))
		return utils.BadRequestResponse(c, "Invalid task ID")
	}

	if err := h.taskService.DeleteTask(ctx, taskID); err != nil {
		return utils.ServiceErrorResponse(c, err)
	}
	return utils.NoContentResponse(c)
}
