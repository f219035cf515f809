package common

import (
	"crypto/rand"
	"encoding/base64"
)

// MakeRandURLToken generates size random bytes and returns them encoded with
// unpadded base64url, suitable for use as a path segment.
func MakeRandURLToken(size int) (string, error) {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// WipeByteArray overwrites b with zeros. Used to drop passwords read from the
// terminal as soon as they are no longer needed. Nil is a no-op.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
