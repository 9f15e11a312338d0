package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"taskboard/domain/dto"
	"taskboard/domain/services"
	"taskboard/pkg/logger"
	"taskboard/pkg/utils"
)

type BoardHandler struct {
	boardService services.BoardService
}

func NewBoardHandler(boardService services.BoardService) *BoardHandler {
	return &BoardHandler{
		boardService: boardService,
	}
}

func (h *BoardHandler) ListBoards(c *fiber.Ctx) error {
	boards, err := h.boardService.ListBoards(c.UserContext())
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, boards)
}

func (h *BoardHandler) GetBoard(c *fiber.Ctx) error {
	ctx := c.UserContext()

	boardID, ok := parseID(c, "id")
	if !ok {
		logger.WarnContext(ctx, "Invalid board ID", "board_id", c.Params("id"))
		return utils.BadRequestResponse(c, "Invalid board ID")
	}

	board, err := h.boardService.GetBoard(ctx, boardID)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, board)
}

func (h *BoardHandler) CreateBoard(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req dto.CreateBoardRequest
	if err := c.BodyParser(&req); err != nil {
		logger.WarnContext(ctx, "Invalid request body", "error", err)
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	if err := utils.ValidateStruct(&req); err != nil {
		logger.WarnContext(ctx, "Validation failed", "errors", utils.GetValidationErrors(err))
		return utils.ServiceErrorResponse(c, err)
	}

	board, err := h.boardService.CreateBoard(ctx, &req)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}
	return utils.CreatedResponse(c, fmt.Sprintf("/api/boards/%d", board.ID), board)
}

func (h *BoardHandler) UpdateBoard(c *fiber.Ctx) error {
	ctx := c.UserContext()

	boardID, ok := parseID(c, "id")
	if !ok {
		logger.WarnContext(ctx, "Invalid board ID", "board_id", c.Params("id"))
		return utils.BadRequestResponse(c, "Invalid board ID")
	}

	var req dto.UpdateBoardRequest
	if err := c.BodyParser(&req); err != nil {
		logger.WarnContext(ctx, "Invalid request body", "error", err)
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	if err := utils.ValidateStruct(&req); err != nil {
		logger.WarnContext(ctx, "Validation failed", "errors", utils.GetValidationErrors(err))
		return utils.ServiceErrorResponse(c, err)
	}

	board, err := h.boardService.UpdateBoard(ctx, boardID, &req)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, board)
}

func (h *BoardHandler) DeleteBoard(c *fiber.Ctx) error {
	ctx := c.UserContext()

	boardID, ok := parseID(c, "id")
	if !ok {
		logger.WarnContext(ctx, "Invalid board ID", "board_id", c.Params("id"))
		return utils.BadRequestResponse(c, "Invalid board ID")
	}

	if err := h.boardService.DeleteBoard(ctx, boardID); err != nil {
		return utils.ServiceErrorResponse(c, err)
	}
	return utils.NoContentResponse(c)
}
