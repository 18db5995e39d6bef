package domain

import (
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
)

const (
	usernameMinLength = 3
	usernameMaxLength = 50
	passwordMinLength = 8
	passwordMaxLength = 255
)

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

	// fieldValidator backs the email and URL format checks.
	fieldValidator = validator.New()
)

// User represents a registered account. PasswordHash is never serialized.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Actor returns the identity this user acts as once authenticated.
func (u *User) Actor() Actor {
	return Actor{UserID: u.ID, Role: u.Role}
}

// NewUserInput carries the fields accepted when creating a user.
type NewUserInput struct {
	Username string
	Email    string
	Password string
	Role     Role
}

// Normalize trims surrounding whitespace from identifying fields.
func (in *NewUserInput) Normalize() {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
}

// Validate applies the create rules: username, email and password are
// required and format-checked; role, when supplied, must be known.
func (in NewUserInput) Validate() error {
	if in.Username == "" {
		return NewValidationError("username", "Username is required")
	}
	if in.Email == "" {
		return NewValidationError("email", "Email is required")
	}
	if in.Password == "" {
		return NewValidationError("password", "Password is required")
	}
	if err := ValidatePassword(in.Password); err != nil {
		return err
	}
	if err := ValidateUsername(in.Username); err != nil {
		return err
	}
	if err := ValidateEmail(in.Email); err != nil {
		return err
	}
	if in.Role != "" {
		return ValidateRole(in.Role)
	}
	return nil
}

// UserUpdate is a partial update; nil fields are left unchanged.
type UserUpdate struct {
	Username *string
	Email    *string
	Role     *Role
}

// Normalize trims surrounding whitespace from supplied identifying fields.
func (u *UserUpdate) Normalize() {
	if u.Username != nil {
		v := strings.TrimSpace(*u.Username)
		u.Username = &v
	}
	if u.Email != nil {
		v := strings.TrimSpace(*u.Email)
		u.Email = &v
	}
}

// Empty reports whether the update changes nothing.
func (u UserUpdate) Empty() bool {
	return u.Username == nil && u.Email == nil && u.Role == nil
}

// Validate format-checks every supplied field.
func (u UserUpdate) Validate() error {
	if u.Username != nil {
		if err := ValidateUsername(*u.Username); err != nil {
			return err
		}
	}
	if u.Email != nil {
		if err := ValidateEmail(*u.Email); err != nil {
			return err
		}
	}
	if u.Role != nil {
		if err := ValidateRole(*u.Role); err != nil {
			return err
		}
	}
	return nil
}

// Apply copies supplied fields onto user.
func (u UserUpdate) Apply(user *User) {
	if u.Username != nil {
		user.Username = *u.Username
	}
	if u.Email != nil {
		user.Email = *u.Email
	}
	if u.Role != nil {
		user.Role = *u.Role
	}
}

// ValidateUsername checks length (3-50) and charset (letters, digits, underscore).
func ValidateUsername(username string) error {
	n := length(username)
	switch {
	case n < usernameMinLength:
		return NewValidationError("username", "Username must be at least 3 characters long")
	case n > usernameMaxLength:
		return NewValidationError("username", "Username cannot exceed 50 characters")
	case !usernamePattern.MatchString(username):
		return NewValidationError("username", "Username can only contain letters, numbers, and underscores")
	}
	return nil
}

// ValidateEmail checks that email parses as an address.
func ValidateEmail(email string) error {
	if err := fieldValidator.Var(email, "required,email"); err != nil {
		return NewValidationError("email", "Invalid email format")
	}
	return nil
}

// IsEmail reports whether s looks like an email address. Login uses it to
// decide between email and username lookup.
func IsEmail(s string) bool {
	return ValidateEmail(s) == nil
}

// ValidatePassword checks length (8-255) and that the password mixes at
// least one letter with at least one digit.
func ValidatePassword(password string) error {
	n := length(password)
	if n < passwordMinLength {
		return NewValidationError("password", "Password must be at least 8 characters long")
	}
	if n > passwordMaxLength {
		return NewValidationError("password", "Password is too long")
	}

	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case r < unicode.MaxASCII && unicode.IsLetter(r):
			hasLetter = true
		case r >= '0' && r <= '9':
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return NewValidationError("password", "Password must contain at least one letter and one number")
	}
	return nil
}

// ValidateRole checks that role is user or admin.
func ValidateRole(role Role) error {
	if !role.Valid() {
		return NewValidationError("role", `Invalid role. Must be "user" or "admin"`)
	}
	return nil
}
