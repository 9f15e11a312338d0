package utils

import (
	"github.com/gofiber/fiber/v2"

	"taskboard/pkg/apperror"
)

type Response struct {
	Success bool       `json:"success"`
	Error   *ErrorInfo `json:"error,omitempty"`
}

type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

const (
	ErrCodeValidation    = "VALIDATION_ERROR"
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeInternalError = "INTERNAL_ERROR"
	ErrCodeBadRequest    = "BAD_REQUEST"

	ErrCodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
)

// ========== Success Responses ==========
// Success bodies are the bare transfer shapes.

func SuccessResponse(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusOK).JSON(data)
}

func CreatedResponse(c *fiber.Ctx, location string, data any) error {
	if location != "" {
		c.Location(location)
	}
	return c.Status(fiber.StatusCreated).JSON(data)
}

func NoContentResponse(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}

// ========== Error Responses ==========

func ErrorResponse(c *fiber.Ctx, statusCode int, code, message string, details any) error {
	return c.Status(statusCode).JSON(Response{
		Success: false,
		Error: &ErrorInfo{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

func ValidationErrorResponse(c *fiber.Ctx, details any) error {
	return ErrorResponse(c, fiber.StatusBadRequest, ErrCodeValidation, "Validation failed", details)
}

func BadRequestResponse(c *fiber.Ctx, message string) error {
	return ErrorResponse(c, fiber.StatusBadRequest, ErrCodeBadRequest, message, nil)
}

func NotFoundResponse(c *fiber.Ctx, message string) error {
	if message == "" {
		message = "Resource not found"
	}
	return ErrorResponse(c, fiber.StatusNotFound, ErrCodeNotFound, message, nil)
}

func InternalServerErrorResponse(c *fiber.Ctx) error {
	return ErrorResponse(c, fiber.StatusInternalServerError, ErrCodeInternalError, "Internal server error", nil)
}

// ServiceErrorResponse maps a service error to its response. Only NotFound
// and Validation messages reach the caller.
func ServiceErrorResponse(c *fiber.Ctx, err error) error {
	switch apperror.KindOf(err) {
	case apperror.KindNotFound:
		return NotFoundResponse(c, err.Error())
	case apperror.KindValidation:
		return ValidationErrorResponse(c, GetValidationErrors(err))
	default:
		return InternalServerErrorResponse(c)
	}
}
