package store

import (
	"context"
	"errors"

	"github.com/doodlesbykumbi/substack-in-go/pkg/model"
)

// ErrUserNotFound is returned when a user doesn't exist
var ErrUserNotFound = errors.New("user not found")

// ErrEmailTaken is returned when an email is already registered
var ErrEmailTaken = errors.New("email already registered")

// UsersStore abstracts user account storage
type UsersStore interface {
	// CreateUser inserts user and sets its ID.
	// Returns ErrEmailTaken if the email is already registered.
	CreateUser(ctx context.Context, user *model.User) error

	// GetUser returns the user with id, or ErrUserNotFound.
	GetUser(ctx context.Context, id uint) (*model.User, error)

	// GetUserByEmail looks up a user by email, ignoring case.
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)

	// UpdateUser saves the notification preferences and timezone of user.
	UpdateUser(ctx context.Context, user *model.User) error
}
