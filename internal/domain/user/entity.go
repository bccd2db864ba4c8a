// Package user defines the user domain entity
package user

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUsernameRequired = errors.New("username is required")
	ErrUsernameTooShort = errors.New("username must be at least 2 characters")
	ErrUsernameTooLong  = errors.New("username must not exceed 100 characters")
	ErrEmailRequired    = errors.New("email is required")
	ErrEmailInvalid     = errors.New("invalid email format")
	ErrEmailTooLong     = errors.New("email too long")
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
	ErrPasswordTooLong  = errors.New("password too long")

	// ErrNotFound is returned by repositories when no user matches.
	ErrNotFound = errors.New("user not found")
)

// User represents a registered user of the system.
type User struct {
	id           uuid.UUID
	username     string
	email        string
	passwordHash string
	createdAt    time.Time
	updatedAt    time.Time
}

// NewUser creates a new user with validation and a bcrypt password hash.
func NewUser(username, email, password string) (*User, error) {
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.New("failed to hash password")
	}

	now := time.Now()
	return &User{
		id:           uuid.New(),
		username:     strings.TrimSpace(username),
		email:        strings.ToLower(strings.TrimSpace(email)),
		passwordHash: string(hash),
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// Reconstitute rebuilds a user from persisted state.
func Reconstitute(id uuid.UUID, username, email, passwordHash string, createdAt, updatedAt time.Time) *User {
	return &User{
		id:           id,
		username:     username,
		email:        email,
		passwordHash: passwordHash,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// ID returns the user's id.
func (u *User) ID() uuid.UUID { return u.id }

// Username returns the user's display name.
func (u *User) Username() string { return u.username }

// Email returns the user's lowercased email.
func (u *User) Email() string { return u.email }

// PasswordHash returns the stored bcrypt hash.
func (u *User) PasswordHash() string { return u.passwordHash }

// CreatedAt returns when the user registered.
func (u *User) CreatedAt() time.Time { return u.createdAt }

// UpdatedAt returns when the user was last updated.
func (u *User) UpdatedAt() time.Time { return u.updatedAt }

// CheckPassword verifies a candidate password against the stored hash.
func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.passwordHash), []byte(password))
}

func validateUsername(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return ErrUsernameRequired
	}
	if len(username) < 2 {
		return ErrUsernameTooShort
	}
	if len(username) > 100 {
		return ErrUsernameTooLong
	}
	return nil
}

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ErrEmailRequired
	}
	if !strings.Contains(email, "@") {
		return ErrEmailInvalid
	}
	if len(email) > 255 {
		return ErrEmailTooLong
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 6 {
		return ErrPasswordTooShort
	}
	if len(password) > 128 {
		return ErrPasswordTooLong
	}
	return nil
}
