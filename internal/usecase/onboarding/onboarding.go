package onboarding

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/fishmaster-api/internal/audit"
	"github.com/BruksfildServices01/fishmaster-api/internal/auth"
	"github.com/BruksfildServices01/fishmaster-api/internal/domain"
	domaintank "github.com/BruksfildServices01/fishmaster-api/internal/domain/tank"
	"github.com/BruksfildServices01/fishmaster-api/internal/domain/waterparams"
	"github.com/BruksfildServices01/fishmaster-api/internal/httperr"
	"github.com/BruksfildServices01/fishmaster-api/internal/models"
)

var (
	ErrTankNameRequired = httperr.ErrValidation("tank_name_required", "Tank name is required")
	ErrInvalidTankSize  = httperr.ErrValidation("invalid_tank_size", "Tank size must be greater than 0")
	ErrNoFish           = httperr.ErrValidation("fish_required", "At least one fish is required")
	ErrUserNotFound     = httperr.ErrNotFound("user_not_found", "User not found")
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type FishInput struct {
	Name       string
	FishTypeID uint
}

type WaterInput struct {
	Ph          *float64
	Temperature *float64
}

type CompleteInput struct {
	UserName        string
	TankName        string
	TankSize        int
	Fish            []FishInput
	WaterParameters *WaterInput
}

type CompleteResult struct {
	Success         bool                    `json:"success"`
	Message         string                  `json:"message"`
	TankID          uint                    `json:"tankId"`
	WaterParameters *models.WaterParameters `json:"waterParameters"`
	Warnings        []string                `json:"warnings,omitempty"`
}

type Status struct {
	Completed bool    `json:"completed"`
	UserName  string  `json:"userName"`
	TankName  *string `json:"tankName"`
}

// ======================================================
// FISH TYPES
// ======================================================

type ListFishTypes struct {
	repo domaintank.Repository
}

func NewListFishTypes(repo domaintank.Repository) *ListFishTypes {
	return &ListFishTypes{repo: repo}
}

// Execute lists species by name, optionally only one care level. A level
// no species has yields an empty list.
func (uc *ListFishTypes) Execute(ctx context.Context, careLevel string) ([]models.FishType, error) {
	types, err := uc.repo.ListFishTypes(ctx, strings.ToLower(strings.TrimSpace(careLevel)))
	if err != nil {
		return nil, err
	}
	if types == nil {
		types = []models.FishType{}
	}
	return types, nil
}

// ======================================================
// STATUS
// ======================================================

type GetStatus struct {
	repo domaintank.Repository
}

func NewGetStatus(repo domaintank.Repository) *GetStatus {
	return &GetStatus{repo: repo}
}

func (uc *GetStatus) Execute(ctx context.Context, p auth.Principal) (*Status, error) {
	u, err := uc.repo.GetUser(ctx, p.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	st := &Status{Completed: u.OnboardingCompleted, UserName: u.Name}

	t, err := uc.repo.FirstTankOfOwner(ctx, u.ID)
	switch {
	case err == nil:
		st.TankName = &t.Name
	case !errors.Is(err, domain.ErrNotFound):
		return nil, err
	}
	return st, nil
}

// ======================================================
// COMPLETE
// ======================================================

type Complete struct {
	repo  domaintank.Repository
	audit audit.Recorder
	log   logrus.FieldLogger
}

func NewComplete(repo domaintank.Repository, rec audit.Recorder, log logrus.FieldLogger) *Complete {
	return &Complete{repo: repo, audit: rec, log: log}
}

func validate(in CompleteInput) error {
	if strings.TrimSpace(in.TankName) == "" {
		return ErrTankNameRequired
	}
	if in.TankSize <= 0 {
		return ErrInvalidTankSize
	}
	if len(in.Fish) == 0 {
		return ErrNoFish
	}
	for i, f := range in.Fish {
		if strings.TrimSpace(f.Name) == "" {
			return httperr.ErrValidation("fish_name_required", fmt.Sprintf("Fish #%d needs a name", i+1))
		}
		if f.FishTypeID == 0 {
			return httperr.ErrValidation("fish_type_required", fmt.Sprintf("Fish #%d needs a fish type", i+1))
		}
	}
	return nil
}

// target uses the explicit pair when both values are present, otherwise the
// reconciled default.
func target(in *WaterInput, fish []models.Fish) (waterparams.Target, error) {
	if in != nil && in.Ph != nil && in.Temperature != nil {
		return waterparams.Override(*in.Ph, *in.Temperature)
	}
	return waterparams.Reconcile(domaintank.Ranges(fish)), nil
}

func (uc *Complete) Execute(ctx context.Context, p auth.Principal, in CompleteInput) (*CompleteResult, error) {
	if err := validate(in); err != nil {
		return nil, err
	}

	var (
		tank *models.Tank
		wp   *models.WaterParameters
		tgt  waterparams.Target
	)

	err := uc.repo.WithinTx(ctx, func(tx domaintank.Repository) error {
		name, err := domaintank.ValidateTank(in.TankName, in.TankSize)
		if err != nil {
			return err
		}

		tank = &models.Tank{UserID: p.UserID, Name: name, SizeLiters: in.TankSize}
		if err := tx.CreateTank(ctx, tank); err != nil {
			return err
		}

		fish := make([]models.Fish, 0, len(in.Fish))
		for _, fi := range in.Fish {
			fishName, err := domaintank.ValidateFishName(fi.Name)
			if err != nil {
				return err
			}
			ft, err := tx.GetFishType(ctx, fi.FishTypeID)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					return httperr.ErrNotFound("fish_type_not_found", fmt.Sprintf("Fish type not found: %d", fi.FishTypeID))
				}
				return err
			}

			f := models.Fish{TankID: tank.ID, FishTypeID: ft.ID, Name: fishName}
			if err := tx.CreateFish(ctx, &f); err != nil {
				return err
			}
			f.FishType = *ft
			fish = append(fish, f)
		}

		tgt, err = target(in.WaterParameters, fish)
		if err != nil {
			return err
		}
		if err := tx.SaveWaterParameters(ctx, domaintank.NewWaterParameters(tank.ID, tgt)); err != nil {
			return err
		}
		if wp, err = tx.GetWaterParameters(ctx, tank.ID); err != nil {
			return err
		}

		if err := tx.MarkOnboardingCompleted(ctx, p.UserID, strings.TrimSpace(in.UserName)); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	warnings := tgt.Warnings()
	if len(warnings) > 0 {
		uc.log.WithFields(logrus.Fields{
			"user_id":  p.UserID,
			"tank_id":  tank.ID,
			"warnings": warnings,
		}).Warn("species ranges do not overlap")
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   p.UserID,
		Action:   audit.ActionOnboardingDone,
		Entity:   audit.EntityTank,
		EntityID: audit.ID(tank.ID),
		Metadata: map[string]any{"fish": len(in.Fish), "default_parameters": tgt.IsDefault},
	})

	return &CompleteResult{
		Success:         true,
		Message:         fmt.Sprintf("Your tank '%s' is ready! 🐠", tank.Name),
		TankID:          tank.ID,
		WaterParameters: wp,
		Warnings:        warnings,
	}, nil
}
