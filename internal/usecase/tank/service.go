package tank

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/fishmaster-api/internal/audit"
	"github.com/BruksfildServices01/fishmaster-api/internal/auth"
	"github.com/BruksfildServices01/fishmaster-api/internal/domain"
	domaintank "github.com/BruksfildServices01/fishmaster-api/internal/domain/tank"
	"github.com/BruksfildServices01/fishmaster-api/internal/domain/waterparams"
	"github.com/BruksfildServices01/fishmaster-api/internal/httperr"
	"github.com/BruksfildServices01/fishmaster-api/internal/models"
	"github.com/BruksfildServices01/fishmaster-api/internal/storage"
)

var (
	ErrWaterParamsNotFound = httperr.ErrNotFound("water_parameters_not_found", "Water parameters not set for this tank")
	ErrPhotosDisabled      = httperr.ErrValidation("photos_disabled", "Photo storage is not configured")
	ErrPhotoNotFound       = httperr.ErrNotFound("photo_not_found", "Tank has no photo")
	ErrInvalidImage        = httperr.ErrValidation("invalid_image", "Photo must be a JPEG, PNG or WebP image")
	ErrImageTooLarge       = httperr.ErrValidation("image_too_large", "Photo must be at most 10 MB and 40 megapixels")
)

type TankInput struct {
	Name       string
	SizeLiters int
}

type FishInput struct {
	Name       string
	FishTypeID uint
}

// WaterResult is the tank's target after an operation that may have
// recalculated it.
type WaterResult struct {
	WaterParameters *models.WaterParameters `json:"waterParameters"`
	Warnings        []string                `json:"warnings,omitempty"`
}

type Service struct {
	repo   domaintank.Repository
	photos storage.PhotoStore
	audit  audit.Recorder
	log    logrus.FieldLogger
}

// NewService builds the tank service. photos may be nil when object storage
// is not configured.
func NewService(
	repo domaintank.Repository,
	photos storage.PhotoStore,
	rec audit.Recorder,
	log logrus.FieldLogger,
) *Service {
	return &Service{
		repo:   repo,
		photos: photos,
		audit:  rec,
		log:    log,
	}
}

// owned loads a tank through repo and checks it belongs to p.
func owned(ctx context.Context, repo domaintank.Repository, p auth.Principal, tankID uint) (*models.Tank, error) {
	t, err := repo.GetTank(ctx, tankID)
	return domaintank.Owned(t, err, p.UserID)
}

func (s *Service) record(p auth.Principal, action, entity string, id uint, meta any) {
	s.audit.Dispatch(audit.Event{
		UserID:   p.UserID,
		Action:   action,
		Entity:   entity,
		EntityID: audit.ID(id),
		Metadata: meta,
	})
}

// ======================================================
// TANK
// ======================================================

func (s *Service) List(ctx context.Context, p auth.Principal) ([]models.Tank, error) {
	return s.repo.ListTanksByOwner(ctx, p.UserID)
}

func (s *Service) Get(ctx context.Context, p auth.Principal, tankID uint) (*models.Tank, error) {
	if _, err := owned(ctx, s.repo, p, tankID); err != nil {
		return nil, err
	}
	return s.repo.GetTankDetails(ctx, tankID)
}

func (s *Service) Create(ctx context.Context, p auth.Principal, in TankInput) (*models.Tank, error) {
	name, err := domaintank.ValidateTank(in.Name, in.SizeLiters)
	if err != nil {
		return nil, err
	}

	t := &models.Tank{
		UserID:     p.UserID,
		Name:       name,
		SizeLiters: in.SizeLiters,
	}
	if err := s.repo.CreateTank(ctx, t); err != nil {
		return nil, err
	}

	s.record(p, audit.ActionTankCreate, audit.EntityTank, t.ID, map[string]any{"name": t.Name})
	return t, nil
}

func (s *Service) Update(ctx context.Context, p auth.Principal, tankID uint, in TankInput) (*models.Tank, error) {
	name, err := domaintank.ValidateTank(in.Name, in.SizeLiters)
	if err != nil {
		return nil, err
	}

	t, err := owned(ctx, s.repo, p, tankID)
	if err != nil {
		return nil, err
	}

	t.Name = name
	t.SizeLiters = in.SizeLiters
	if err := s.repo.UpdateTank(ctx, t); err != nil {
		return nil, err
	}

	s.record(p, audit.ActionTankUpdate, audit.EntityTank, t.ID, nil)
	return s.repo.GetTankDetails(ctx, t.ID)
}

func (s *Service) Delete(ctx context.Context, p auth.Principal, tankID uint) error {
	err := s.repo.WithinTx(ctx, func(tx domaintank.Repository) error {
		if _, err := owned(ctx, tx, p, tankID); err != nil {
			return err
		}
		return tx.DeleteTank(ctx, tankID)
	})
	if err != nil {
		return err
	}

	s.record(p, audit.ActionTankDelete, audit.EntityTank, tankID, nil)
	return nil
}

// ======================================================
// FISH
// ======================================================

func (s *Service) AddFish(ctx context.Context, p auth.Principal, tankID uint, in FishInput) (*models.Fish, *WaterResult, error) {
	name, err := domaintank.ValidateFishName(in.Name)
	if err != nil {
		return nil, nil, err
	}

	var (
		fish   *models.Fish
		result *WaterResult
	)
	err = s.repo.WithinTx(ctx, func(tx domaintank.Repository) error {
		if _, err := owned(ctx, tx, p, tankID); err != nil {
			return err
		}

		ft, err := tx.GetFishType(ctx, in.FishTypeID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domaintank.ErrFishTypeNotFound
			}
			return err
		}

		fish = &models.Fish{TankID: tankID, FishTypeID: ft.ID, Name: name}
		if err := tx.CreateFish(ctx, fish); err != nil {
			return err
		}
		fish.FishType = *ft

		result, err = recalculateIfDefault(ctx, tx, tankID)
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	s.record(p, audit.ActionFishAdd, audit.EntityFish, fish.ID, map[string]any{"tank_id": tankID, "fish_type_id": fish.FishTypeID})
	return fish, result, nil
}

func (s *Service) RemoveFish(ctx context.Context, p auth.Principal, tankID, fishID uint) (*WaterResult, error) {
	var result *WaterResult
	err := s.repo.WithinTx(ctx, func(tx domaintank.Repository) error {
		if _, err := owned(ctx, tx, p, tankID); err != nil {
			return err
		}

		f, err := tx.GetFish(ctx, tankID, fishID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domaintank.ErrFishNotFound
			}
			return err
		}
		if err := tx.DeleteFish(ctx, f.ID); err != nil {
			return err
		}

		result, err = recalculateIfDefault(ctx, tx, tankID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.record(p, audit.ActionFishRemove, audit.EntityFish, fishID, map[string]any{"tank_id": tankID})
	return result, nil
}

// ======================================================
// WATER PARAMETERS
// ======================================================

func (s *Service) GetWaterParameters(ctx context.Context, p auth.Principal, tankID uint) (*models.WaterParameters, error) {
	if _, err := owned(ctx, s.repo, p, tankID); err != nil {
		return nil, err
	}
	wp, err := s.repo.GetWaterParameters(ctx, tankID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrWaterParamsNotFound
		}
		return nil, err
	}
	return wp, nil
}

// SetWaterParameters stores a user override; it is kept verbatim and never
// replaced by automatic recalculation.
func (s *Service) SetWaterParameters(ctx context.Context, p auth.Principal, tankID uint, ph, temperature float64) (*models.WaterParameters, error) {
	target, err := waterparams.Override(ph, temperature)
	if err != nil {
		return nil, err
	}

	var wp *models.WaterParameters
	err = s.repo.WithinTx(ctx, func(tx domaintank.Repository) error {
		if _, err := owned(ctx, tx, p, tankID); err != nil {
			return err
		}
		wp, err = save(ctx, tx, tankID, target)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.record(p, audit.ActionWaterParamsSet, audit.EntityTank, tankID, map[string]any{"ph": ph, "temperature": temperature})
	return wp, nil
}

// RecalculateWaterParameters replaces the target, override or not, with the
// one derived from the tank's current fish.
func (s *Service) RecalculateWaterParameters(ctx context.Context, p auth.Principal, tankID uint) (*WaterResult, error) {
	var result *WaterResult
	err := s.repo.WithinTx(ctx, func(tx domaintank.Repository) error {
		if _, err := owned(ctx, tx, p, tankID); err != nil {
			return err
		}
		var err error
		result, err = recalculate(ctx, tx, tankID)
		return err
	})
	if err != nil {
		return nil, err
	}

	if len(result.Warnings) > 0 {
		s.log.WithFields(logrus.Fields{
			"tank_id":  tankID,
			"warnings": result.Warnings,
		}).Warn("species ranges do not overlap")
	}
	s.record(p, audit.ActionWaterParamsCalc, audit.EntityTank, tankID, nil)
	return result, nil
}

func recalculate(ctx context.Context, tx domaintank.Repository, tankID uint) (*WaterResult, error) {
	fish, err := tx.ListFish(ctx, tankID)
	if err != nil {
		return nil, err
	}
	target := waterparams.Reconcile(domaintank.Ranges(fish))

	wp, err := save(ctx, tx, tankID, target)
	if err != nil {
		return nil, err
	}
	return &WaterResult{WaterParameters: wp, Warnings: target.Warnings()}, nil
}

// recalculateIfDefault refreshes the target after the fish changed. A user
// override is left as is; a default or missing target is recomputed.
func recalculateIfDefault(ctx context.Context, tx domaintank.Repository, tankID uint) (*WaterResult, error) {
	wp, err := tx.GetWaterParameters(ctx, tankID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
	case err != nil:
		return nil, err
	case !wp.IsDefault:
		return &WaterResult{WaterParameters: wp}, nil
	}
	return recalculate(ctx, tx, tankID)
}

func save(ctx context.Context, tx domaintank.Repository, tankID uint, target waterparams.Target) (*models.WaterParameters, error) {
	wp := domaintank.NewWaterParameters(tankID, target)
	if err := tx.SaveWaterParameters(ctx, wp); err != nil {
		return nil, err
	}
	return tx.GetWaterParameters(ctx, tankID)
}
