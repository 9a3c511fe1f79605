//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	apperrors "github.com/zenstudio/booking-api/internal/errors"
)

const (
	maxEmailLen    = 50
	minNameLen     = 3
	maxNameLen     = 20
	minPasswordLen = 6
	maxPasswordLen = 40
)

// User is an account able to authenticate and participate in sessions.
// Password holds the bcrypt hash and is never serialized.
type User struct {
	ID        string    `json:"id"        db:"id"`
	Email     string    `json:"email"     db:"email"`
	FirstName string    `json:"firstName" db:"first_name"`
	LastName  string    `json:"lastName"  db:"last_name"`
	Password  string    `json:"-"         db:"password"`
	Admin     bool      `json:"admin"     db:"admin"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// Equal reports value equality over all persisted fields. Used by tests and
// deduplication; roster membership keys on IDs, not on this.
func (u *User) Equal(other *User) bool {
	if u == nil || other == nil {
		return u == other
	}
	return u.ID == other.ID &&
		u.Email == other.Email &&
		u.FirstName == other.FirstName &&
		u.LastName == other.LastName &&
		u.Password == other.Password &&
		u.Admin == other.Admin &&
		u.CreatedAt.Equal(other.CreatedAt) &&
		u.UpdatedAt.Equal(other.UpdatedAt)
}

// CreateUserRequest represents parameters to register a new user.
// Password is the plaintext credential; it is hashed before storage and must
// never be logged or echoed.
type CreateUserRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Password  string `json:"password"`
}

// Validate checks field constraints for registration.
func (r *CreateUserRequest) Validate() error {
	if err := ValidateEmail(r.Email); err != nil {
		return err
	}
	if err := validateName("firstName", r.FirstName); err != nil {
		return err
	}
	if err := validateName("lastName", r.LastName); err != nil {
		return err
	}
	return ValidatePassword(r.Password)
}

// ValidateEmail checks that an email is present, bounded, and parseable.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return apperrors.ValidationField("email", "email is required and cannot be empty")
	}
	if utf8.RuneCountInString(email) > maxEmailLen {
		return apperrors.ValidationField("email", "email cannot exceed 50 characters")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return apperrors.ValidationField("email", "email must be a valid address")
	}
	return nil
}

func validateName(field, value string) error {
	n := utf8.RuneCountInString(strings.TrimSpace(value))
	if n < minNameLen || n > maxNameLen {
		return apperrors.ValidationField(field, field+" must be between 3 and 20 characters")
	}
	return nil
}

// ValidatePassword checks plaintext password length bounds.
// No trimming: leading and trailing whitespace is significant in a password.
func ValidatePassword(password string) error {
	if n := len(password); n < minPasswordLen || n > maxPasswordLen {
		return apperrors.ValidationField("password", "password must be between 6 and 40 characters")
	}
	return nil
}
