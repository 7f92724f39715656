package account

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/BruksfildServices01/smart-hire/internal/auth"
	"github.com/BruksfildServices01/smart-hire/internal/domain/user"
	"github.com/BruksfildServices01/smart-hire/internal/httperr"
)

type Login struct {
	users  user.Repository
	issuer *auth.Issuer
}

func NewLogin(users user.Repository, issuer *auth.Issuer) *Login {
	return &Login{users: users, issuer: issuer}
}

func (uc *Login) Execute(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, httperr.Validation("missing_fields", "email and password are required")
	}

	u, err := uc.users.GetUserByEmail(ctx, email)
	if errors.Is(err, user.ErrNotFound) {
		return nil, httperr.Unauthenticated("invalid_credentials", "invalid email or password")
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	if !auth.CheckPassword(u.PasswordHash, password) {
		return nil, httperr.Unauthenticated("invalid_credentials", "invalid email or password")
	}

	token, err := uc.issuer.Issue(u)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &AuthResult{User: u, Token: token}, nil
}
