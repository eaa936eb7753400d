package tank

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/fishmaster-api/internal/audit"
	"github.com/BruksfildServices01/fishmaster-api/internal/auth"
	"github.com/BruksfildServices01/fishmaster-api/internal/domain"
	domaintank "github.com/BruksfildServices01/fishmaster-api/internal/domain/tank"
	"github.com/BruksfildServices01/fishmaster-api/internal/models"
)

// GetAlertThresholds returns the stored thresholds or the defaults.
func (s *Service) GetAlertThresholds(ctx context.Context, p auth.Principal, tankID uint) (*models.AlertThreshold, error) {
	if _, err := owned(ctx, s.repo, p, tankID); err != nil {
		return nil, err
	}

	at, err := s.repo.GetAlertThreshold(ctx, tankID)
	if errors.Is(err, domain.ErrNotFound) {
		def := domaintank.DefaultAlertThreshold(tankID)
		return &def, nil
	}
	return at, err
}

func (s *Service) SetAlertThresholds(ctx context.Context, p auth.Principal, tankID uint, in models.AlertThreshold) (*models.AlertThreshold, error) {
	if err := domaintank.ValidateAlertThreshold(&in); err != nil {
		return nil, err
	}

	in.ID = 0
	in.TankID = tankID

	var saved *models.AlertThreshold
	err := s.repo.WithinTx(ctx, func(tx domaintank.Repository) error {
		if _, err := owned(ctx, tx, p, tankID); err != nil {
			return err
		}
		if err := tx.SaveAlertThreshold(ctx, &in); err != nil {
			return err
		}
		var err error
		saved, err = tx.GetAlertThreshold(ctx, tankID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.record(p, audit.ActionAlertsUpdate, audit.EntityTank, tankID, nil)
	return saved, nil
}
