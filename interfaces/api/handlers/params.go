package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// parseID reads a non-negative integer route parameter that fits the
// signed 64-bit key column.
func parseID(c *fiber.Ctx, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Params(name), 10, 63)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}
