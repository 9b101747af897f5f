package middleware

import (
	"errors"
	"sort"
	"strings"

	"github.com/gofiber/fiber/v2"

	"microcourses/services"
)

// ErrorBody is the error envelope every failing endpoint returns.
type ErrorBody struct {
	Code    string  `json:"code"`
	Field   *string `json:"field"`
	Message string  `json:"message"`
}

// ErrorResponse writes the standard error envelope:
// {"error": {"code": ..., "field": ..., "message": ...}}
func ErrorResponse(c *fiber.Ctx, statusCode int, code, field, message string) error {
	var f *string
	if field != "" {
		f = &field
	}
	return c.Status(statusCode).JSON(fiber.Map{
		"error": ErrorBody{Code: code, Field: f, Message: message},
	})
}

// ServiceError maps a services.APIError onto the envelope; anything else
// becomes a SERVER_ERROR carrying the underlying message.
func ServiceError(c *fiber.Ctx, err error) error {
	var apiErr *services.APIError
	if errors.As(err, &apiErr) {
		return ErrorResponse(c, apiErr.Status, apiErr.Code, apiErr.Field, apiErr.Message)
	}
	return ErrorResponse(c, fiber.StatusInternalServerError, services.CodeServerError, "", err.Error())
}

// ValidationErrorResponse reports field-level validation failures, folding
// the offending fields into a single envelope ("title/description" style).
func ValidationErrorResponse(c *fiber.Ctx, fields map[string]string) error {
	if len(fields) == 0 {
		return ErrorResponse(c, fiber.StatusBadRequest, services.CodeFieldRequired, "", "Validation failed")
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	messages := make([]string, 0, len(keys))
	for _, k := range keys {
		messages = append(messages, fields[k])
	}

	return ErrorResponse(c, fiber.StatusBadRequest, services.CodeFieldRequired,
		strings.Join(keys, "/"), strings.Join(messages, " "))
}
