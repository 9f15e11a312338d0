package handlers

import (
	"taskboard/domain/services"
)

// Services contains all the services needed for handlers
type Services struct {
	BoardService services.BoardService
	TaskService  services.TaskService
	ServiceName  string
	HealthChecks map[string]HealthCheck
}

// Handlers contains all HTTP handlers
type Handlers struct {
	BoardHandler  *BoardHandler
	TaskHandler   *TaskHandler
	HealthHandler *HealthHandler
}

func NewHandlers(services *Services) *Handlers {
	return &Handlers{
		BoardHandler:  NewBoardHandler(services.BoardService),
		TaskHandler:   NewTaskHandler(services.TaskService),
		HealthHandler: NewHealthHandler(services.ServiceName, services.HealthChecks),
	}
}
