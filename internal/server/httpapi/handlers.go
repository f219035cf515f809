package httpapi

import (
	"github.com/dmitrijs2005/gophid/internal/common"
	"github.com/dmitrijs2005/gophid/internal/identitypb"
	"github.com/dmitrijs2005/gophid/internal/server/auth"
	"github.com/dmitrijs2005/gophid/internal/server/services"
	"github.com/gofiber/fiber/v2"
)

func (s *HTTPServer) health(c *fiber.Ctx) error {
	return c.SendString("ok")
}

func (s *HTTPServer) registerUser(c *fiber.Ctx) error {
	var req identitypb.RegisterUserRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "malformed request body")
	}

	_, err := s.users.Register(c.UserContext(), services.RegisterUserInput{
		Email:         req.Email,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Password:      req.Password,
		StreetAddress: req.StreetAddress,
		City:          req.City,
		State:         req.State,
		Zip:           req.Zip,
	})
	if err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// verifyEmail always redirects to the login page; the query flag tells the
// front end whether the account ended up verified.
func (s *HTTPServer) verifyEmail(c *fiber.Ctx) error {
	outcome, err := s.verifications.Consume(c.UserContext(), c.Params("emailVerificationToken"))
	if err != nil {
		return err
	}

	target := s.publicURL + "/login"
	if outcome.EmailVerified() {
		target += "?emailVerified=true"
	}
	return c.Redirect(target, fiber.StatusFound)
}

func (s *HTTPServer) resendVerification(c *fiber.Ctx) error {
	var req identitypb.ResendVerificationRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "malformed request body")
	}

	if err := s.verifications.Resend(c.UserContext(), req.Email); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusAccepted)
}

func (s *HTTPServer) login(c *fiber.Ctx) error {
	var req identitypb.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "malformed request body")
	}

	tokens, err := s.users.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(identitypb.LoginResponse{AccessToken: tokens.AccessToken, IDToken: tokens.IDToken})
}

func (s *HTTPServer) currentUser(c *fiber.Ctx) error {
	userID, ok := auth.UserIDFromContext(c.UserContext())
	if !ok {
		return common.ErrUnauthenticated
	}

	user, err := s.users.GetUserByIDOrFail(c.UserContext(), userID)
	if err != nil {
		return err
	}

	return c.JSON(services.NewUserResponse(user))
}
