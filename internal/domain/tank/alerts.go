package tank

import (
	"github.com/BruksfildServices01/fishmaster-api/internal/httperr"
	"github.com/BruksfildServices01/fishmaster-api/internal/models"
)

func ptr(v float64) *float64 { return &v }

// DefaultAlertThreshold is the freshwater preset used until a tank stores
// its own thresholds.
func DefaultAlertThreshold(tankID uint) models.AlertThreshold {
	return models.AlertThreshold{
		TankID:              tankID,
		GlobalAlertsEnabled: true,
		EmailAlertsEnabled:  true,
		InAppAlertsEnabled:  true,
		TemperatureEnabled:  true,
		TemperatureMin:      ptr(22.0),
		TemperatureMax:      ptr(28.0),
		PhEnabled:           true,
		PhMin:               ptr(6.5),
		PhMax:               ptr(7.5),
		TurbidityEnabled:    true,
		TurbidityMax:        ptr(5.0),
		AmmoniaEnabled:      true,
		AmmoniaMax:          ptr(0.25),
	}
}

var errInvalidThresholds = httperr.ErrValidation("invalid_thresholds", "Invalid alert thresholds")

// ValidateAlertThreshold requires min < max where both are set, non-negative
// values, and pH bounds inside [0, 14].
func ValidateAlertThreshold(at *models.AlertThreshold) error {
	if at.TemperatureMin != nil && at.TemperatureMax != nil && *at.TemperatureMin >= *at.TemperatureMax {
		return httperr.ErrValidation("invalid_thresholds", "Temperature minimum must be below maximum")
	}
	if at.PhMin != nil && at.PhMax != nil && *at.PhMin >= *at.PhMax {
		return httperr.ErrValidation("invalid_thresholds", "pH minimum must be below maximum")
	}
	if at.TemperatureMin != nil && *at.TemperatureMin < 0 {
		return errInvalidThresholds
	}
	for _, v := range []*float64{at.PhMin, at.PhMax} {
		if v != nil && (*v < 0 || *v > 14) {
			return httperr.ErrValidation("invalid_thresholds", "pH thresholds must be between 0 and 14")
		}
	}
	for _, v := range []*float64{at.TurbidityMax, at.AmmoniaMax} {
		if v != nil && *v < 0 {
			return errInvalidThresholds
		}
	}
	return nil
}
