// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is a registered account. PasswordHash is a bcrypt hash; the
// plaintext password never reaches this type.
type User struct {
	ID            string
	Email         string
	FirstName     string
	LastName      string
	PasswordHash  string
	EmailVerified bool

	// Postal address, optional.
	StreetAddress *string
	City          *string
	State         *string
	Zip           *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
