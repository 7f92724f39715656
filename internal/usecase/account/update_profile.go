package account

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/BruksfildServices01/smart-hire/internal/actor"
	"github.com/BruksfildServices01/smart-hire/internal/domain/user"
	"github.com/BruksfildServices01/smart-hire/internal/httperr"
	"github.com/BruksfildServices01/smart-hire/internal/models"
	"github.com/BruksfildServices01/smart-hire/internal/timezone"
)

// UpdateProfileInput carries only the fields being changed; nil keeps the
// stored value.
type UpdateProfileInput struct {
	Name     *string
	Bio      *string
	Timezone *string
}

type UpdateProfile struct {
	users user.Repository
}

func NewUpdateProfile(users user.Repository) *UpdateProfile {
	return &UpdateProfile{users: users}
}

// Execute edits the caller's own profile. A provider's timezone change
// applies to every later slot computation.
func (uc *UpdateProfile) Execute(
	ctx context.Context,
	who actor.Actor,
	in UpdateProfileInput,
) (*models.User, error) {

	if !who.Authenticated() {
		return nil, httperr.Unauthenticated("unauthorized", "sign in to edit your profile")
	}

	u, err := uc.users.GetUser(ctx, who.ID)
	if errors.Is(err, user.ErrNotFound) {
		return nil, httperr.Missing("user_not_found", "user no longer exists")
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, httperr.Validation("missing_fields", "name cannot be empty")
		}
		u.Name = name
	}
	if in.Bio != nil {
		u.Bio = strings.TrimSpace(*in.Bio)
	}
	if in.Timezone != nil {
		if !timezone.IsValid(*in.Timezone) {
			return nil, httperr.Validation("invalid_timezone", "timezone must be an IANA zone name")
		}
		u.Timezone = *in.Timezone
	}

	if err := uc.users.UpdateUser(ctx, u); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, httperr.Missing("user_not_found", "user no longer exists")
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return u, nil
}
