package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/fishmaster-api/internal/domain"
	"github.com/BruksfildServices01/fishmaster-api/internal/models"
)

// translate maps gorm errors onto the domain sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.ErrDuplicate
	}
	return err
}

// deleteTanks removes every child row of tankIDs, then the tanks. Callers
// provide a transaction.
func deleteTanks(tx *gorm.DB, tankIDs []uint) error {
	if len(tankIDs) == 0 {
		return nil
	}
	for _, child := range []any{
		&models.Fish{},
		&models.WaterParameters{},
		&models.AlertThreshold{},
	} {
		if err := tx.Where("tank_id IN ?", tankIDs).Delete(child).Error; err != nil {
			return err
		}
	}
	return tx.Where("id IN ?", tankIDs).Delete(&models.Tank{}).Error
}
