package account

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/fishmaster-api/internal/audit"
	"github.com/BruksfildServices01/fishmaster-api/internal/domain"
	domainaccount "github.com/BruksfildServices01/fishmaster-api/internal/domain/account"
	"github.com/BruksfildServices01/fishmaster-api/internal/domain/verification"
)

type VerifyEmail struct {
	repo  domainaccount.Repository
	audit audit.Recorder
	now   func() time.Time
}

func NewVerifyEmail(repo domainaccount.Repository, audit audit.Recorder) *VerifyEmail {
	return &VerifyEmail{repo: repo, audit: audit, now: time.Now}
}

// Execute checks code against the pending one with the user row locked, so
// two concurrent submissions cannot both succeed.
func (uc *VerifyEmail) Execute(ctx context.Context, email, code string) error {
	var userID uint

	err := uc.repo.WithinTx(ctx, func(tx domainaccount.Repository) error {
		u, err := tx.LockUserByEmail(ctx, normalizeEmail(email))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		if err := verification.Verify(u, code, uc.now()); err != nil {
			return err
		}
		userID = u.ID
		return tx.UpdateUser(ctx, u)
	})
	if err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   userID,
		Action:   audit.ActionVerify,
		Entity:   audit.EntityUser,
		EntityID: audit.ID(userID),
	})
	return nil
}
