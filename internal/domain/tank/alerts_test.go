package tank

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/fishmaster-api/internal/domain"
	"github.com/BruksfildServices01/fishmaster-api/internal/httperr"
	"github.com/BruksfildServices01/fishmaster-api/internal/models"
)

func TestDefaultAlertThreshold_IsValid(t *testing.T) {
	at := DefaultAlertThreshold(3)

	assert.Equal(t, uint(3), at.TankID)
	assert.NoError(t, ValidateAlertThreshold(&at))
	assert.Equal(t, 0.25, *at.AmmoniaMax)
}

func TestValidateAlertThreshold_Rejects(t *testing.T) {
	cases := map[string]func(at *models.AlertThreshold){
		"temp min equals max": func(at *models.AlertThreshold) { at.TemperatureMin, at.TemperatureMax = ptr(25), ptr(25) },
		"ph min above max":    func(at *models.AlertThreshold) { at.PhMin, at.PhMax = ptr(8), ptr(7) },
		"negative temp":       func(at *models.AlertThreshold) { at.TemperatureMin = ptr(-1) },
		"ph above 14":         func(at *models.AlertThreshold) { at.PhMax = ptr(14.5) },
		"negative ammonia":    func(at *models.AlertThreshold) { at.AmmoniaMax = ptr(-0.1) },
		"negative turbidity":  func(at *models.AlertThreshold) { at.TurbidityMax = ptr(-3) },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			at := DefaultAlertThreshold(1)
			mutate(&at)
			err := ValidateAlertThreshold(&at)
			assert.True(t, httperr.IsBusiness(err, "invalid_thresholds"), "got %v", err)
		})
	}
}

func TestValidateAlertThreshold_AllowsMissingBounds(t *testing.T) {
	at := models.AlertThreshold{PhMin: ptr(6.0)}
	assert.NoError(t, ValidateAlertThreshold(&at))
}

func TestOwned(t *testing.T) {
	tank := &models.Tank{ID: 5, UserID: 10}

	got, err := Owned(tank, nil, 10)
	require.NoError(t, err)
	assert.Same(t, tank, got)

	_, err = Owned(tank, nil, 11)
	assert.ErrorIs(t, err, ErrNotOwner)

	_, err = Owned(nil, domain.ErrNotFound, 10)
	assert.ErrorIs(t, err, ErrTankNotFound)

	boom := errors.New("connection reset")
	_, err = Owned(nil, boom, 10)
	assert.ErrorIs(t, err, boom)
}

func TestValidateTank(t *testing.T) {
	name, err := ValidateTank("  Reef  ", 120)
	require.NoError(t, err)
	assert.Equal(t, "Reef", name)

	_, err = ValidateTank(" ", 120)
	assert.True(t, httperr.IsBusiness(err, "tank_name_required"))

	_, err = ValidateTank("Reef", 0)
	assert.True(t, httperr.IsBusiness(err, "invalid_tank_size"))
}

func TestRanges(t *testing.T) {
	fish := []models.Fish{
		{FishType: models.FishType{MinPh: 6, MaxPh: 7, MinTemp: 22, MaxTemp: 26}},
		{FishType: models.FishType{MinPh: 6.5, MaxPh: 7.5, MinTemp: 24, MaxTemp: 28}},
	}

	r := Ranges(fish)
	require.Len(t, r, 2)
	assert.Equal(t, 7.5, r[1].MaxPh)
}
