package httpapi

import (
	"errors"

	"github.com/dmitrijs2005/gophid/internal/common"
	"github.com/dmitrijs2005/gophid/internal/server/services"
	"github.com/gofiber/fiber/v2"
)

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// errorHandler maps service errors to HTTP statuses. Unrecognised errors
// are logged and answered with a generic 500.
func (s *HTTPServer) errorHandler(c *fiber.Ctx, err error) error {
	code, body := s.describe(c, err)
	return c.Status(code).JSON(body)
}

func (s *HTTPServer) describe(c *fiber.Ctx, err error) (int, errorResponse) {
	var (
		ve *services.ValidationError
		fe *fiber.Error
	)
	switch {
	case errors.As(err, &ve):
		return fiber.StatusBadRequest, errorResponse{Error: common.ErrValidation.Error(), Fields: ve.Fields}
	case errors.Is(err, common.ErrValidation):
		return fiber.StatusBadRequest, errorResponse{Error: err.Error()}
	case errors.Is(err, common.ErrConflict):
		return fiber.StatusConflict, errorResponse{Error: common.ErrConflict.Error()}
	case errors.Is(err, common.ErrInvalidCredentials):
		return fiber.StatusForbidden, errorResponse{Error: "Invalid email or password"}
	case errors.Is(err, common.ErrEmailNotVerified):
		return fiber.StatusForbidden, errorResponse{Error: "Email Not Verified"}
	case errors.Is(err, common.ErrUnauthenticated):
		return fiber.StatusUnauthorized, errorResponse{Error: err.Error()}
	case errors.Is(err, common.ErrNotFound):
		return fiber.StatusNotFound, errorResponse{Error: common.ErrNotFound.Error()}
	case errors.As(err, &fe):
		return fe.Code, errorResponse{Error: fe.Message}
	default:
		s.logger.Error(c.UserContext(), "request failed", "method", c.Method(), "path", c.Path(), "error", err)
		return fiber.StatusInternalServerError, errorResponse{Error: common.ErrInternal.Error()}
	}
}
