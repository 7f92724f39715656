package user

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/smart-hire/internal/models"
)

const (
	RoleProvider = "provider"
	RoleSeeker   = "seeker"
)

var (
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("email already registered")
)

func ValidRole(role string) bool {
	return role == RoleProvider || role == RoleSeeker
}

type Repository interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// UpdateUser writes the editable profile fields: name, bio and timezone.
	UpdateUser(ctx context.Context, u *models.User) error
}
