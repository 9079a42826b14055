package presenter

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/docmaker/pkg/apperrors"
)

type ErrorResponse struct {
	Message     string `json:"message"`
	Unavailable bool   `json:"unavailable,omitempty"`
	Remediation string `json:"remediation,omitempty"`
}

type ListResponse[T any] struct {
	Items  []T `json:"items"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

func JSON(c *fiber.Ctx, status int, v any) error {
	return c.Status(status).JSON(v)
}

func Error(c *fiber.Ctx, status int, message string) error {
	return JSON(c, status, ErrorResponse{Message: message})
}

func List[T any](c *fiber.Ctx, items []T, limit, offset int) error {
	if items == nil {
		items = []T{}
	}
	return JSON(c, http.StatusOK, ListResponse[T]{Items: items, Limit: limit, Offset: offset})
}

// Status maps a domain error to its HTTP status.
func Status(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Fail writes err with the status from Status. Internal errors are replaced by
// fallback so driver messages never reach the client.
func Fail(c *fiber.Ctx, err error, fallback string) error {
	status := Status(err)
	switch status {
	case http.StatusInternalServerError:
		return Error(c, status, fallback)
	case http.StatusServiceUnavailable:
		return JSON(c, status, ErrorResponse{
			Message:     err.Error(),
			Unavailable: true,
			Remediation: apperrors.Remediation(err),
		})
	default:
		return Error(c, status, err.Error())
	}
}
