package tank

import (
	"github.com/BruksfildServices01/fishmaster-api/internal/domain/waterparams"
	"github.com/BruksfildServices01/fishmaster-api/internal/models"
)

// Ranges extracts the species ranges of fish; FishType must be loaded.
func Ranges(fish []models.Fish) []waterparams.Range {
	out := make([]waterparams.Range, 0, len(fish))
	for _, f := range fish {
		out = append(out, waterparams.Range{
			MinPh:   f.FishType.MinPh,
			MaxPh:   f.FishType.MaxPh,
			MinTemp: f.FishType.MinTemp,
			MaxTemp: f.FishType.MaxTemp,
		})
	}
	return out
}

// NewWaterParameters is the row storing target for tankID.
func NewWaterParameters(tankID uint, target waterparams.Target) *models.WaterParameters {
	return &models.WaterParameters{
		TankID:      tankID,
		Ph:          target.Ph,
		Temperature: target.Temperature,
		IsDefault:   target.IsDefault,
	}
}
