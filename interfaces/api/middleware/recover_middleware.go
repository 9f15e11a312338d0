package middleware

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"taskboard/pkg/logger"
)

// RecoverMiddleware turns a panic into a 500 and logs the panic value.
func RecoverMiddleware() fiber.Handler {
	return recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e any) {
			logger.ErrorContext(c.UserContext(), "Panic recovered",
				"method", c.Method(),
				"path", c.Path(),
				"panic", fmt.Sprint(e),
			)
		},
	})
}
