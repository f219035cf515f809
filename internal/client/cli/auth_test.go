package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/dmitrijs2005/gophid/internal/client/client"
	"github.com/dmitrijs2005/gophid/internal/client/repositories/session"
	"github.com/dmitrijs2005/gophid/internal/client/services"
	"github.com/dmitrijs2005/gophid/internal/identitypb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubInputs answers text prompts in order and returns password for the
// password prompt. The returned slice lets tests check it got wiped.
func stubInputs(t *testing.T, answers []string, password string) []byte {
	t.Helper()
	origST, origOT, origGP := getSimpleText, getOptionalText, getPassword
	t.Cleanup(func() {
		getSimpleText = origST
		getOptionalText = origOT
		getPassword = origGP
	})

	next := func() string {
		if len(answers) == 0 {
			t.Fatalf("unexpected prompt")
		}
		a := answers[0]
		answers = answers[1:]
		return a
	}
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return next(), nil }
	getOptionalText = func(_ *bufio.Reader, _ string, _ io.Writer) (*string, error) {
		if a := next(); a != "" {
			return &a, nil
		}
		return nil, nil
	}

	pw := []byte(password)
	getPassword = func(_ io.Writer) ([]byte, error) { return pw, nil }
	return pw
}

type fakeAuth struct {
	regReq identitypb.RegisterUserRequest
	regErr error

	verifyInput string
	verifyResp  *identitypb.VerifyEmailResponse
	verifyErr   error

	resendEmail string

	loginEmail string
	loginPass  string
	loginErr   error

	restored *session.Session

	whoami    *identitypb.UserResponse
	whoamiErr error

	logoutCalled bool
	logoutErr    error

	pingErr error
	closed  bool
}

func (f *fakeAuth) Register(_ context.Context, req identitypb.RegisterUserRequest) error {
	f.regReq = req
	return f.regErr
}
func (f *fakeAuth) Verify(_ context.Context, in string) (*identitypb.VerifyEmailResponse, error) {
	f.verifyInput = in
	return f.verifyResp, f.verifyErr
}
func (f *fakeAuth) Resend(_ context.Context, email string) error {
	f.resendEmail = email
	return nil
}
func (f *fakeAuth) Login(_ context.Context, email string, pass []byte) error {
	f.loginEmail, f.loginPass = email, string(pass)
	return f.loginErr
}
func (f *fakeAuth) Restore(context.Context) (*session.Session, error) { return f.restored, nil }
func (f *fakeAuth) WhoAmI(context.Context) (*identitypb.UserResponse, error) {
	return f.whoami, f.whoamiErr
}
func (f *fakeAuth) Logout(context.Context) error {
	f.logoutCalled = true
	return f.logoutErr
}
func (f *fakeAuth) Ping(context.Context) error  { return f.pingErr }
func (f *fakeAuth) Close(context.Context) error { f.closed = true; return nil }

var _ services.AuthService = (*fakeAuth)(nil)

func newTestApp(f *fakeAuth) (*App, *bytes.Buffer) {
	var out bytes.Buffer
	return &App{authService: f, out: &out, reader: bufio.NewReader(strings.NewReader(""))}, &out
}

func TestRegister_Success(t *testing.T) {
	f := &fakeAuth{}
	a, out := newTestApp(f)
	pw := stubInputs(t, []string{"ada@example.com", "Ada", "Lovelace", "12 St James's Square", "", "", "SW1Y"}, "engine")

	require.NoError(t, a.Register(context.Background()))

	assert.Equal(t, "ada@example.com", f.regReq.Email)
	assert.Equal(t, "Ada", f.regReq.FirstName)
	assert.Equal(t, "Lovelace", f.regReq.LastName)
	assert.Equal(t, "engine", f.regReq.Password)
	require.NotNil(t, f.regReq.StreetAddress)
	assert.Equal(t, "12 St James's Square", *f.regReq.StreetAddress)
	assert.Nil(t, f.regReq.City)
	assert.Nil(t, f.regReq.State)
	require.NotNil(t, f.regReq.Zip)
	assert.Equal(t, bytes.Repeat([]byte{0}, len(pw)), pw, "password must be wiped")
	assert.Contains(t, out.String(), "verify <link>")
}

func TestRegister_ErrorPropagates(t *testing.T) {
	f := &fakeAuth{regErr: client.ErrAlreadyRegistered}
	a, _ := newTestApp(f)
	stubInputs(t, []string{"ada@example.com", "Ada", "Lovelace", "", "", "", ""}, "engine")

	assert.ErrorIs(t, a.Register(context.Background()), client.ErrAlreadyRegistered)
}

func TestVerify(t *testing.T) {
	t.Run("argument", func(t *testing.T) {
		f := &fakeAuth{verifyResp: &identitypb.VerifyEmailResponse{EmailVerified: true, Outcome: "verified"}}
		a, out := newTestApp(f)

		require.NoError(t, a.Verify(context.Background(), []string{"http://api/email/verify/abc"}))
		assert.Equal(t, "http://api/email/verify/abc", f.verifyInput)
		assert.Contains(t, out.String(), "Email verified")
	})

	t.Run("prompt, not verified", func(t *testing.T) {
		f := &fakeAuth{verifyResp: &identitypb.VerifyEmailResponse{Outcome: "expired"}}
		a, out := newTestApp(f)
		stubInputs(t, []string{"tok"}, "")

		require.NoError(t, a.Verify(context.Background(), nil))
		assert.Equal(t, "tok", f.verifyInput)
		assert.Contains(t, out.String(), "Email not verified (expired)")
	})

	t.Run("error", func(t *testing.T) {
		f := &fakeAuth{verifyErr: client.ErrNoVerificationToken}
		a, _ := newTestApp(f)
		assert.ErrorIs(t, a.Verify(context.Background(), []string{"!"}), client.ErrNoVerificationToken)
	})
}

func TestResend(t *testing.T) {
	f := &fakeAuth{}
	a, _ := newTestApp(f)

	require.NoError(t, a.Resend(context.Background(), []string{"ada@example.com"}))
	assert.Equal(t, "ada@example.com", f.resendEmail)

	stubInputs(t, []string{"bob@example.com"}, "")
	require.NoError(t, a.Resend(context.Background(), nil))
	assert.Equal(t, "bob@example.com", f.resendEmail)
}

func TestLogin(t *testing.T) {
	f := &fakeAuth{}
	a, _ := newTestApp(f)
	pw := stubInputs(t, []string{"ada@example.com"}, "engine")

	require.NoError(t, a.Login(context.Background()))
	assert.Equal(t, "ada@example.com", f.loginEmail)
	assert.Equal(t, "engine", f.loginPass)
	assert.True(t, a.isLoggedIn())
	assert.Equal(t, "(ada@example.com)", a.status())
	assert.Equal(t, bytes.Repeat([]byte{0}, len(pw)), pw)
}

func TestLogin_NotVerified(t *testing.T) {
	f := &fakeAuth{loginErr: fmt.Errorf("login error: %w", client.ErrEmailNotVerified)}
	a, out := newTestApp(f)
	stubInputs(t, []string{"ada@example.com"}, "engine")

	assert.ErrorIs(t, a.Login(context.Background()), client.ErrEmailNotVerified)
	assert.False(t, a.isLoggedIn())
	assert.Contains(t, out.String(), "resend")
}

func TestWhoAmI(t *testing.T) {
	f := &fakeAuth{whoami: &identitypb.UserResponse{ID: "u1", Email: "ada@example.com", FirstName: "Ada", LastName: "Lovelace", EmailVerified: true}}
	a, out := newTestApp(f)

	require.NoError(t, a.WhoAmI(context.Background()))
	assert.Contains(t, out.String(), "Ada Lovelace <ada@example.com>")

	f.whoamiErr = services.ErrNotLoggedIn
	a.email = "ada@example.com"
	assert.ErrorIs(t, a.WhoAmI(context.Background()), services.ErrNotLoggedIn)
	assert.False(t, a.isLoggedIn())
}

func TestLogout(t *testing.T) {
	f := &fakeAuth{}
	a, _ := newTestApp(f)
	a.email = "ada@example.com"

	require.NoError(t, a.Logout(context.Background()))
	assert.True(t, f.logoutCalled)
	assert.False(t, a.isLoggedIn())
}

func TestLogout_ErrorPropagates(t *testing.T) {
	f := &fakeAuth{logoutErr: errors.New("clean-fail")}
	a, _ := newTestApp(f)
	a.email = "ada@example.com"

	require.Error(t, a.Logout(context.Background()))
	assert.True(t, a.isLoggedIn())
}

func TestPing(t *testing.T) {
	a, out := newTestApp(&fakeAuth{})
	require.NoError(t, a.Ping(context.Background()))
	assert.Contains(t, out.String(), "OK")

	a, _ = newTestApp(&fakeAuth{pingErr: client.ErrUnavailable})
	assert.ErrorIs(t, a.Ping(context.Background()), client.ErrUnavailable)
}

func TestRun_RestoresSessionAndCloses(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	f := &fakeAuth{restored: &session.Session{Email: "ada@example.com", AccessToken: "acc"}}
	a, _ := newTestApp(f)
	a.reader = bufio.NewReader(strings.NewReader("exit\n"))

	a.Run(context.Background())

	assert.Equal(t, "ada@example.com", a.email)
	assert.True(t, f.closed)
}
