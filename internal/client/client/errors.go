package client

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrUnavailable       = errors.New("server unavailable")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrEmailNotVerified  = errors.New("email not verified")
	ErrAlreadyRegistered = errors.New("email already registered")
	ErrNotFound          = errors.New("not found")
)

// FieldError is an InvalidArgument reply. Fields maps field names to the
// reason they were rejected; it may be empty.
type FieldError struct {
	Message string
	Fields  map[string]string
}

func (e *FieldError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return e.Message + " (" + strings.Join(parts, "; ") + ")"
}
