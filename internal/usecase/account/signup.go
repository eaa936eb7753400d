package account

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/fishmaster-api/internal/audit"
	"github.com/BruksfildServices01/fishmaster-api/internal/auth"
	"github.com/BruksfildServices01/fishmaster-api/internal/domain"
	domainaccount "github.com/BruksfildServices01/fishmaster-api/internal/domain/account"
	"github.com/BruksfildServices01/fishmaster-api/internal/domain/verification"
	"github.com/BruksfildServices01/fishmaster-api/internal/mailer"
	"github.com/BruksfildServices01/fishmaster-api/internal/models"
	"github.com/BruksfildServices01/fishmaster-api/internal/timezone"
)

type SignupInput struct {
	Name     string
	Email    string
	Password string
}

type SignupOptions struct {
	// DomainCheck, when set, rejects emails whose domain it refuses.
	DomainCheck  func(email string) bool
	DashboardURL string
}

type Signup struct {
	repo  domainaccount.Repository
	codes CodeSource
	mail  mailer.Queue
	audit audit.Recorder
	log   logrus.FieldLogger
	opts  SignupOptions
	now   func() time.Time
}

func NewSignup(
	repo domainaccount.Repository,
	codes CodeSource,
	mail mailer.Queue,
	audit audit.Recorder,
	log logrus.FieldLogger,
	opts SignupOptions,
) *Signup {
	return &Signup{
		repo:  repo,
		codes: codes,
		mail:  mail,
		audit: audit,
		log:   log,
		opts:  opts,
		now:   time.Now,
	}
}

func (uc *Signup) Execute(ctx context.Context, in SignupInput) (*models.User, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	email := normalizeEmail(in.Email)
	if email == "" {
		return nil, ErrEmailRequired
	}
	if len(in.Password) < minPasswordLen {
		return nil, ErrWeakPassword
	}
	if uc.opts.DomainCheck != nil && !uc.opts.DomainCheck(email) {
		return nil, ErrInvalidEmailDomain
	}

	exists, err := uc.repo.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	code, err := uc.codes.Code()
	if err != nil {
		return nil, err
	}

	u := &models.User{
		Name:               name,
		Email:              email,
		PasswordHash:       hash,
		Timezone:           timezone.DefaultTimezone,
		EmailNotifications: true,
	}
	verification.Issue(u, code, uc.now())

	if err := uc.repo.CreateUser(ctx, u); err != nil {
		// lost the race with a concurrent signup
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	sendCode(uc.mail, uc.log, u, code, verification.SignupTTL, uc.opts.DashboardURL)

	uc.audit.Dispatch(audit.Event{
		UserID:   u.ID,
		Action:   audit.ActionSignup,
		Entity:   audit.EntityUser,
		EntityID: audit.ID(u.ID),
	})

	return u, nil
}

// sendCode queues the verification email. Rendering failures are logged;
// the caller never sees them.
func sendCode(
	q mailer.Queue,
	log logrus.FieldLogger,
	u *models.User,
	code string,
	ttl time.Duration,
	dashboardURL string,
) {
	msg, err := mailer.VerificationEmail(u.Email, mailer.VerificationData{
		Name:         u.Name,
		Code:         code,
		ValidFor:     describe(ttl),
		DashboardURL: dashboardURL,
	})
	if err != nil {
		log.WithError(err).WithField("user_id", u.ID).Error("verification email not queued")
		return
	}
	q.Enqueue(msg)
}
