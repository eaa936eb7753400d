package profile

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/BruksfildServices01/fishmaster-api/internal/audit"
	"github.com/BruksfildServices01/fishmaster-api/internal/auth"
	"github.com/BruksfildServices01/fishmaster-api/internal/domain"
	"github.com/BruksfildServices01/fishmaster-api/internal/domain/account"
	"github.com/BruksfildServices01/fishmaster-api/internal/httperr"
	"github.com/BruksfildServices01/fishmaster-api/internal/models"
	"github.com/BruksfildServices01/fishmaster-api/internal/timezone"
)

var (
	ErrUserNotFound    = httperr.ErrNotFound("user_not_found", "User not found")
	ErrInvalidTimezone = httperr.ErrValidation("invalid_timezone", "Timezone must be a valid IANA zone name")
	ErrNameRequired    = httperr.ErrValidation("name_required", "Name cannot be empty")
	ErrInvalidDate     = httperr.ErrValidation("invalid_date", "Dates must use the YYYY-MM-DD format")
)

// ======================================================
// DTO
// ======================================================

type TankSummary struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	SizeLiters int    `json:"sizeLiters"`
}

type User struct {
	ID                  uint          `json:"id"`
	Name                string        `json:"name"`
	Email               string        `json:"email"`
	Timezone            string        `json:"timezone"`
	Enabled             bool          `json:"enabled"`
	OnboardingCompleted bool          `json:"onboardingCompleted"`
	ContactNumber       string        `json:"contactNumber"`
	EmailNotifications  bool          `json:"emailNotifications"`
	SMSNotifications    bool          `json:"smsNotifications"`
	Tanks               []TankSummary `json:"tanks"`
}

func ToDTO(u *models.User, tanks []models.Tank) User {
	out := User{
		ID:                  u.ID,
		Name:                u.Name,
		Email:               u.Email,
		Timezone:            u.Timezone,
		Enabled:             u.Enabled,
		OnboardingCompleted: u.OnboardingCompleted,
		ContactNumber:       u.ContactNumber,
		EmailNotifications:  u.EmailNotifications,
		SMSNotifications:    u.SMSNotifications,
		Tanks:               make([]TankSummary, 0, len(tanks)),
	}
	for _, t := range tanks {
		out.Tanks = append(out.Tanks, TankSummary{ID: t.ID, Name: t.Name, SizeLiters: t.SizeLiters})
	}
	return out
}

// UpdateInput carries the fields to change; nil means keep.
type UpdateInput struct {
	Name               *string
	ContactNumber      *string
	EmailNotifications *bool
	SMSNotifications   *bool
	Timezone           *string
}

// ======================================================
// SERVICE
// ======================================================

type Service struct {
	repo  account.Repository
	logs  *audit.Logger
	audit audit.Recorder
}

func NewService(repo account.Repository, logs *audit.Logger, rec audit.Recorder) *Service {
	return &Service{repo: repo, logs: logs, audit: rec}
}

func (s *Service) load(ctx context.Context, p auth.Principal) (*models.User, error) {
	u, err := s.repo.GetUserByID(ctx, p.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *Service) Me(ctx context.Context, p auth.Principal) (*User, error) {
	u, err := s.load(ctx, p)
	if err != nil {
		return nil, err
	}
	tanks, err := s.repo.ListTanksByOwner(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	dto := ToDTO(u, tanks)
	return &dto, nil
}

func (s *Service) Update(ctx context.Context, p auth.Principal, in UpdateInput) (*User, error) {
	u, err := s.load(ctx, p)
	if err != nil {
		return nil, err
	}

	changed := make([]string, 0, 5)
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		u.Name = name
		changed = append(changed, "name")
	}
	if in.ContactNumber != nil {
		u.ContactNumber = strings.TrimSpace(*in.ContactNumber)
		changed = append(changed, "contactNumber")
	}
	if in.EmailNotifications != nil {
		u.EmailNotifications = *in.EmailNotifications
		changed = append(changed, "emailNotifications")
	}
	if in.SMSNotifications != nil {
		u.SMSNotifications = *in.SMSNotifications
		changed = append(changed, "smsNotifications")
	}
	if in.Timezone != nil {
		if !timezone.IsValid(*in.Timezone) {
			return nil, ErrInvalidTimezone
		}
		u.Timezone = *in.Timezone
		changed = append(changed, "timezone")
	}

	if len(changed) > 0 {
		if err := s.repo.UpdateUser(ctx, u); err != nil {
			return nil, err
		}
		s.audit.Dispatch(audit.Event{
			UserID:   u.ID,
			Action:   audit.ActionProfileUpdate,
			Entity:   audit.EntityUser,
			EntityID: audit.ID(u.ID),
			Metadata: map[string]any{"fields": changed},
		})
	}

	return s.Me(ctx, p)
}

// Delete removes the caller's account with every tank it owns.
func (s *Service) Delete(ctx context.Context, p auth.Principal) error {
	if err := s.repo.DeleteUser(ctx, p.UserID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

type AuditPage struct {
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
	Total int64             `json:"total"`
	Logs  []models.AuditLog `json:"logs"`
}

const dateLayout = "2006-01-02"

// AuditQuery holds the raw audit log filter. From and To are whole days
// (YYYY-MM-DD) in the caller's timezone; To is inclusive.
type AuditQuery struct {
	Action string
	Entity string
	From   string
	To     string
	Page   int
	Limit  int
}

// dayBounds turns the optional dates into UTC instants covering whole days in loc.
func dayBounds(fromStr, toStr string, loc *time.Location) (from, to *time.Time, err error) {
	if fromStr != "" {
		d, err := time.ParseInLocation(dateLayout, fromStr, loc)
		if err != nil {
			return nil, nil, ErrInvalidDate
		}
		start := d.UTC()
		from = &start
	}
	if toStr != "" {
		d, err := time.ParseInLocation(dateLayout, toStr, loc)
		if err != nil {
			return nil, nil, ErrInvalidDate
		}
		end := d.AddDate(0, 0, 1).Add(-time.Nanosecond).UTC()
		to = &end
	}
	return from, to, nil
}

func (s *Service) AuditLogs(ctx context.Context, p auth.Principal, q AuditQuery) (*AuditPage, error) {
	u, err := s.load(ctx, p)
	if err != nil {
		return nil, err
	}

	from, to, err := dayBounds(q.From, q.To, timezone.Location(u.Timezone))
	if err != nil {
		return nil, err
	}

	f := audit.Filter{
		Action: q.Action,
		Entity: q.Entity,
		From:   from,
		To:     to,
		Page:   q.Page,
		Limit:  q.Limit,
	}
	logs, total, err := s.logs.List(ctx, u.ID, f)
	if err != nil {
		return nil, err
	}
	page, limit := f.Normalized()
	return &AuditPage{Page: page, Limit: limit, Total: total, Logs: logs}, nil
}
