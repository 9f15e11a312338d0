package routes

import (
	"github.com/gofiber/fiber/v2"

	"taskboard/interfaces/api/handlers"
)

func SetupBoardRoutes(api fiber.Router, h *handlers.Handlers) {
	boards := api.Group("/boards")
	boards.Get("/", h.BoardHandler.ListBoards)
	boards.Post("/", h.BoardHandler.CreateBoard)
	boards.Get("/:id", h.BoardHandler.GetBoard)
	boards.Put("/:id", h.BoardHandler.UpdateBoard)
	boards.Delete("/:id", h.BoardHandler.DeleteBoard)
}
