package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/gophid/internal/client/client"
	"github.com/dmitrijs2005/gophid/internal/client/services"
	"github.com/dmitrijs2005/gophid/internal/common"
	"github.com/dmitrijs2005/gophid/internal/identitypb"
)

// getSimpleText, getOptionalText and getPassword are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var (
	getSimpleText   = GetSimpleText
	getOptionalText = GetOptionalText
	getPassword     = GetPassword
)

// Register prompts for the account fields and creates the account. The
// server then mails a verification link.
func (a *App) Register(ctx context.Context) error {
	var (
		req identitypb.RegisterUserRequest
		err error
	)

	for _, f := range []struct {
		prompt string
		dst    *string
	}{
		{"Enter email", &req.Email},
		{"Enter first name", &req.FirstName},
		{"Enter last name", &req.LastName},
	} {
		if *f.dst, err = getSimpleText(a.reader, f.prompt, a.out); err != nil {
			return err
		}
	}

	for _, f := range []struct {
		prompt string
		dst    **string
	}{
		{"Enter street address", &req.StreetAddress},
		{"Enter city", &req.City},
		{"Enter state", &req.State},
		{"Enter zip", &req.Zip},
	} {
		if *f.dst, err = getOptionalText(a.reader, f.prompt, a.out); err != nil {
			return err
		}
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	req.Password = string(password)

	if err := a.authService.Register(ctx, req); err != nil {
		return err
	}

	a.printf("Registered. Check %s for the verification link, then run: verify <link>", req.Email)
	return nil
}

// Verify consumes a verification token given as an argument or prompted for.
func (a *App) Verify(ctx context.Context, args []string) error {
	var (
		input string
		err   error
	)
	if len(args) > 0 {
		input = args[0]
	} else if input, err = getSimpleText(a.reader, "Paste the verification link or token", a.out); err != nil {
		return err
	}

	resp, err := a.authService.Verify(ctx, input)
	if err != nil {
		return err
	}

	if resp.EmailVerified {
		a.printf("Email verified (%s). You can log in now.", resp.Outcome)
	} else {
		a.printf("Email not verified (%s). Run resend to get a new link.", resp.Outcome)
	}
	return nil
}

// Resend asks for a fresh verification link. The server answers the same way
// whether or not the address is known.
func (a *App) Resend(ctx context.Context, args []string) error {
	var (
		email string
		err   error
	)
	if len(args) > 0 {
		email = args[0]
	} else if email, err = getSimpleText(a.reader, "Enter email", a.out); err != nil {
		return err
	}

	if err := a.authService.Resend(ctx, email); err != nil {
		return err
	}

	a.printf("If %s has an unverified account, a new link is on its way.", email)
	return nil
}

// Login prompts for credentials and, on success, keeps the session.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.authService.Login(ctx, email, password); err != nil {
		if errors.Is(err, client.ErrEmailNotVerified) {
			a.printf("Email not verified. Run resend to get a new link.")
		}
		return err
	}

	a.email = email
	a.printf("Login successful")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	user, err := a.authService.WhoAmI(ctx)
	if err != nil {
		if errors.Is(err, services.ErrNotLoggedIn) || errors.Is(err, client.ErrUnauthorized) {
			a.email = ""
		}
		return err
	}

	a.printf("%s %s <%s>", user.FirstName, user.LastName, user.Email)
	a.printf("id: %s, created: %s, verified: %t", user.ID, user.CreatedAt, user.EmailVerified)
	return nil
}

func (a *App) Ping(ctx context.Context) error {
	if err := a.authService.Ping(ctx); err != nil {
		return err
	}
	a.printf("OK")
	return nil
}

// Logout forgets the saved session.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	a.email = ""
	a.printf("Logged out")
	return nil
}
