package client

import (
	"errors"
	"regexp"
	"strings"
)

var (
	verifyLinkRe = regexp.MustCompile(`/email/verify/([A-Za-z0-9_-]+)`)
	rawTokenRe   = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
)

var ErrNoVerificationToken = errors.New("no verification token found")

// ExtractVerificationToken accepts a bare token, the verification link, or
// text containing the link, and returns the token.
func ExtractVerificationToken(s string) (string, error) {
	if m := verifyLinkRe.FindStringSubmatch(s); m != nil {
		return m[1], nil
	}
	s = strings.TrimSpace(s)
	if rawTokenRe.MatchString(s) {
		return s, nil
	}
	return "", ErrNoVerificationToken
}
