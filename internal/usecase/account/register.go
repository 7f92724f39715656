package account

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/BruksfildServices01/smart-hire/internal/auth"
	"github.com/BruksfildServices01/smart-hire/internal/domain/user"
	"github.com/BruksfildServices01/smart-hire/internal/httperr"
	"github.com/BruksfildServices01/smart-hire/internal/models"
	"github.com/BruksfildServices01/smart-hire/internal/timezone"
)

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
	Timezone string
	Bio      string
}

type AuthResult struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// EmailChecker reports whether an address can receive mail.
type EmailChecker func(email string) bool

type Register struct {
	users      user.Repository
	issuer     *auth.Issuer
	checkEmail EmailChecker
}

// NewRegister takes an optional checkEmail; nil skips the domain check.
func NewRegister(users user.Repository, issuer *auth.Issuer, checkEmail EmailChecker) *Register {
	return &Register{users: users, issuer: issuer, checkEmail: checkEmail}
}

func (uc *Register) Execute(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))

	if name == "" || email == "" || in.Password == "" {
		return nil, httperr.Validation("missing_fields", "name, email and password are required")
	}
	if !strings.Contains(email, "@") {
		return nil, httperr.Validation("invalid_email", "email is not valid")
	}
	if len(in.Password) < 6 {
		return nil, httperr.Validation("weak_password", "password must have at least 6 characters")
	}
	if !user.ValidRole(in.Role) {
		return nil, httperr.Validation("invalid_role", "role must be provider or seeker")
	}

	tz := in.Timezone
	if tz == "" {
		tz = timezone.DefaultTimezone
	}
	if !timezone.IsValid(tz) {
		return nil, httperr.Validation("invalid_timezone", "timezone must be an IANA zone name")
	}

	if uc.checkEmail != nil && !uc.checkEmail(email) {
		return nil, httperr.Validation("invalid_email_domain", "email domain does not accept mail")
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         in.Role,
		Timezone:     tz,
		Bio:          strings.TrimSpace(in.Bio),
	}

	if err := uc.users.CreateUser(ctx, u); err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			return nil, httperr.Validation("email_already_registered", "an account with this email already exists")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	token, err := uc.issuer.Issue(u)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &AuthResult{User: u, Token: token}, nil
}
