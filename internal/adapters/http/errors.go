package http

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/aliaga/companymap/internal/core/domain"
)

// APIError is the structured error response. Errors carries the per-field
// breakdown for validation failures and is omitted otherwise.
type APIError struct {
	Status    int                `json:"status"`
	Code      string             `json:"code"`
	Message   string             `json:"message"`
	RequestID string             `json:"request_id,omitempty"`
	Errors    []domain.FieldError `json:"errors,omitempty"`
}

// newError builds a JSON error response with a request ID.
func newError(c *fiber.Ctx, status int, code, message string, fields []domain.FieldError) error {
	reqID, _ := c.Locals("requestid").(string)
	return c.Status(status).JSON(APIError{
		Status:    status,
		Code:      code,
		Message:   message,
		RequestID: reqID,
		Errors:    fields,
	})
}

// errBadRequest returns a 400 error without field detail.
func errBadRequest(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusBadRequest, "bad_request", msg, nil)
}

// respondError maps a pipeline error onto the transport. Validation errors
// carry their field breakdown; everything unclassified is logged in full and
// surfaced with a generic message only.
func respondError(c *fiber.Ctx, err error) error {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return newError(c, fiber.StatusBadRequest, "validation_error",
			"request validation failed", verr.Fields)
	case errors.Is(err, domain.ErrNotFound):
		return newError(c, fiber.StatusNotFound, "not_found",
			"company not found", nil)
	case errors.Is(err, domain.ErrConflict):
		return newError(c, fiber.StatusConflict, "conflict",
			"company conflicts with an existing record", nil)
	case errors.Is(err, domain.ErrUnavailable):
		slog.Error("storage unavailable", "path", c.Path(), "error", err)
		return newError(c, fiber.StatusInternalServerError, "storage_unavailable",
			"storage is temporarily unavailable", nil)
	default:
		slog.Error("unexpected error", "path", c.Path(), "error", err)
		return newError(c, fiber.StatusInternalServerError, "internal_error",
			"an unexpected error occurred", nil)
	}
}
