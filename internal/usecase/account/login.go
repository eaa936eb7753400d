package account

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/fishmaster-api/internal/audit"
	"github.com/BruksfildServices01/fishmaster-api/internal/auth"
	"github.com/BruksfildServices01/fishmaster-api/internal/domain"
	domainaccount "github.com/BruksfildServices01/fishmaster-api/internal/domain/account"
)

type LoginResult struct {
	Token string `json:"token"`
	// ExpiresAt is the token lifetime in milliseconds.
	ExpiresAt int64 `json:"expiresAt"`
}

type Login struct {
	repo   domainaccount.Repository
	tokens *auth.TokenManager
	audit  audit.Recorder
}

func NewLogin(repo domainaccount.Repository, tokens *auth.TokenManager, audit audit.Recorder) *Login {
	return &Login{repo: repo, tokens: tokens, audit: audit}
}

func (uc *Login) Execute(ctx context.Context, email, password string) (*LoginResult, error) {
	u, err := uc.repo.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrBadCredentials
		}
		return nil, err
	}

	if err := auth.CheckPassword(u.PasswordHash, password); err != nil {
		return nil, ErrBadCredentials
	}
	if !u.Enabled {
		return nil, ErrNotVerified
	}

	token, err := uc.tokens.Generate(u.ID, u.Email)
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   u.ID,
		Action:   audit.ActionLogin,
		Entity:   audit.EntityUser,
		EntityID: audit.ID(u.ID),
	})

	return &LoginResult{
		Token:     token,
		ExpiresAt: uc.tokens.TTL().Milliseconds(),
	}, nil
}
