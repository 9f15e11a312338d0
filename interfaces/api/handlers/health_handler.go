package handlers

import (
	"context"
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"

	"taskboard/domain/dto"
	"taskboard/pkg/logger"
)

// HealthCheck returns nil when the dependency is reachable. A non-nil
// details value is reported under the check's name.
type HealthCheck func(ctx context.Context) (details any, err error)

type HealthHandler struct {
	service string
	checks  map[string]HealthCheck
}

func NewHealthHandler(service string, checks map[string]HealthCheck) *HealthHandler {
	return &HealthHandler{service: service, checks: checks}
}

// Health answers 503 when any dependency check fails.
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 3*time.Second)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	resp := dto.HealthResponse{
		Status:  "ok",
		Service: h.service,
		Checks:  make(map[string]string, len(names)),
	}
	for _, name := range names {
		details, err := h.checks[name](ctx)
		if err != nil {
			logger.WarnContext(ctx, "Health check failed", "check", name, "error", err)
			resp.Checks[name] = "down"
			resp.Status = "degraded"
			continue
		}
		resp.Checks[name] = "up"
		if details != nil {
			if resp.Details == nil {
				resp.Details = map[string]any{}
			}
			resp.Details[name] = details
		}
	}

	status := fiber.StatusOK
	if resp.Status != "ok" {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(resp)
}
