package common

import (
	"errors"
	"testing"
)

func TestTokenErrors_AreUnauthenticated(t *testing.T) {
	for _, err := range []error{ErrMissingToken, ErrInvalidToken, ErrTokenExpired, ErrWrongTokenType} {
		if !errors.Is(err, ErrUnauthenticated) {
			t.Fatalf("%v must match ErrUnauthenticated", err)
		}
	}
}

func TestCredentialErrors_AreDistinct(t *testing.T) {
	if errors.Is(ErrEmailNotVerified, ErrInvalidCredentials) || errors.Is(ErrInvalidCredentials, ErrEmailNotVerified) {
		t.Fatal("credential errors must not match each other")
	}
	if errors.Is(ErrInvalidCredentials, ErrUnauthenticated) {
		t.Fatal("login failures are not token failures")
	}
}
