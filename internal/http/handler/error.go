package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"docreview/internal/http/middleware"
	"docreview/internal/model"
	"docreview/internal/service"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "UNKNOWN_CATEGORY", "NOT_FOUND")
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := errorPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

// writeDomainError maps the domain error taxonomy to HTTP statuses.
func writeDomainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, model.ErrUnknownCategory):
		return writeError(c, fiber.StatusNotFound, "UNKNOWN_CATEGORY", "unknown category")
	case errors.Is(err, model.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "document or record not found")
	case errors.Is(err, model.ErrAlreadyExists):
		return writeError(c, fiber.StatusConflict, "ALREADY_EXISTS", "a document with that name already exists")
	case errors.Is(err, model.ErrInvalidType):
		return writeError(c, fiber.StatusBadRequest, "INVALID_TYPE", "payload is not a valid PDF")
	case errors.Is(err, service.ErrNameRequired):
		return writeError(c, fiber.StatusBadRequest, "NAME_REQUIRED", "document name is required")
	case errors.Is(err, service.ErrRecordRequired):
		return writeError(c, fiber.StatusBadRequest, "RECORD_REQUIRED", "record is required")
	case errors.Is(err, model.ErrPersistence):
		return writeError(c, fiber.StatusInternalServerError, "PERSISTENCE_ERROR", "failed to persist changes")
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
