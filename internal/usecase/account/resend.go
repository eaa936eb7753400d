package account

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/fishmaster-api/internal/domain"
	domainaccount "github.com/BruksfildServices01/fishmaster-api/internal/domain/account"
	"github.com/BruksfildServices01/fishmaster-api/internal/domain/verification"
	"github.com/BruksfildServices01/fishmaster-api/internal/mailer"
	"github.com/BruksfildServices01/fishmaster-api/internal/models"
)

type ResendCode struct {
	repo         domainaccount.Repository
	codes        CodeSource
	mail         mailer.Queue
	log          logrus.FieldLogger
	dashboardURL string
	now          func() time.Time
}

func NewResendCode(
	repo domainaccount.Repository,
	codes CodeSource,
	mail mailer.Queue,
	log logrus.FieldLogger,
	dashboardURL string,
) *ResendCode {
	return &ResendCode{
		repo:         repo,
		codes:        codes,
		mail:         mail,
		log:          log,
		dashboardURL: dashboardURL,
		now:          time.Now,
	}
}

func (uc *ResendCode) Execute(ctx context.Context, email string) error {
	var (
		user *models.User
		code string
	)

	err := uc.repo.WithinTx(ctx, func(tx domainaccount.Repository) error {
		u, err := tx.LockUserByEmail(ctx, normalizeEmail(email))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		code, err = uc.codes.Code()
		if err != nil {
			return err
		}
		if err := verification.Reissue(u, code, uc.now()); err != nil {
			return err
		}
		user = u
		return tx.UpdateUser(ctx, u)
	})
	if err != nil {
		return err
	}

	sendCode(uc.mail, uc.log, user, code, verification.ResendTTL, uc.dashboardURL)
	return nil
}
