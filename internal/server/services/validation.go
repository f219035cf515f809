package services

import (
	"errors"
	"sort"
	"strings"

	"github.com/dmitrijs2005/gophid/internal/common"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// ValidationError lists per-field problems of a request. It matches
// common.ErrValidation with errors.Is.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return common.ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return common.ErrValidation
}

// asValidationError turns ozzo-validation output into a *ValidationError.
// Internal rule errors are returned unchanged.
func asValidationError(err error) error {
	if err == nil {
		return nil
	}

	var errs validation.Errors
	if !errors.As(err, &errs) {
		var internal validation.InternalError
		if errors.As(err, &internal) {
			return err
		}
		return &ValidationError{Fields: map[string]string{"request": err.Error()}}
	}

	fields := make(map[string]string, len(errs))
	for name, fe := range errs {
		if fe != nil {
			fields[name] = fe.Error()
		}
	}
	return &ValidationError{Fields: fields}
}

// RegisterUserInput is what a new account is created from. Address fields
// are optional.
type RegisterUserInput struct {
	Email         string  `json:"email"`
	FirstName     string  `json:"firstName"`
	LastName      string  `json:"lastName"`
	Password      string  `json:"password"`
	StreetAddress *string `json:"streetAddress"`
	City          *string `json:"city"`
	State         *string `json:"state"`
	Zip           *string `json:"zip"`
}

func (in *RegisterUserInput) normalize() {
	in.Email = strings.TrimSpace(in.Email)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
}

// Validate checks field presence, formats and column limits.
func (in RegisterUserInput) Validate() error {
	return asValidationError(validation.ValidateStruct(&in,
		validation.Field(&in.Email, validation.Required, validation.RuneLength(1, 256), is.Email),
		validation.Field(&in.FirstName, validation.Required, validation.RuneLength(1, 64)),
		validation.Field(&in.LastName, validation.Required, validation.RuneLength(1, 64)),
		// bcrypt reads at most 72 bytes
		validation.Field(&in.Password, validation.Required, validation.Length(1, 72)),
		validation.Field(&in.StreetAddress, validation.RuneLength(0, 128)),
		validation.Field(&in.City, validation.RuneLength(0, 64)),
		validation.Field(&in.State, validation.RuneLength(0, 32)),
		validation.Field(&in.Zip, validation.RuneLength(0, 16)),
	))
}

type emailInput struct {
	Email string `json:"email"`
}

func (in emailInput) Validate() error {
	return asValidationError(validation.ValidateStruct(&in,
		validation.Field(&in.Email, validation.Required, validation.RuneLength(1, 256), is.Email),
	))
}
