package httpapi

import (
	"github.com/dmitrijs2005/gophid/internal/server/auth"
	"github.com/gofiber/fiber/v2"
)

// requireAuth resolves the caller from the Authorization header. On failure
// the error handler answers and the route handler never runs.
func (s *HTTPServer) requireAuth(c *fiber.Ctx) error {
	ctx, err := s.guard.Authenticate(c.UserContext(), auth.BearerToken(c.Get(fiber.HeaderAuthorization)))
	if err != nil {
		return err
	}
	c.SetUserContext(ctx)
	return c.Next()
}
