// Package waterparams derives a tank-wide target pH and temperature from the
// safe ranges of the species living in it.
package waterparams

import (
	"math"

	"github.com/BruksfildServices01/fishmaster-api/internal/httperr"
)

const (
	NeutralPh          = 7.0
	NeutralTemperature = 24.0

	MinPh = 0.0
	MaxPh = 14.0
)

// Range is one species' safe interval for pH and temperature.
type Range struct {
	MinPh   float64
	MaxPh   float64
	MinTemp float64
	MaxTemp float64
}

type Target struct {
	Ph          float64
	Temperature float64
	IsDefault   bool

	// Overlap flags are false when the species' ranges do not intersect;
	// the target is then the midpoint of the crossed bounds.
	PhOverlap   bool
	TempOverlap bool
}

const (
	WarningNoPhOverlap   = "no_ph_overlap"
	WarningNoTempOverlap = "no_temperature_overlap"
)

func (t Target) Warnings() []string {
	var w []string
	if !t.PhOverlap {
		w = append(w, WarningNoPhOverlap)
	}
	if !t.TempOverlap {
		w = append(w, WarningNoTempOverlap)
	}
	return w
}

// Reconcile computes the default target for a set of species ranges.
func Reconcile(ranges []Range) Target {
	if len(ranges) == 0 {
		return Target{
			Ph:          NeutralPh,
			Temperature: NeutralTemperature,
			IsDefault:   true,
			PhOverlap:   true,
			TempOverlap: true,
		}
	}

	phLow, phHigh := ranges[0].MinPh, ranges[0].MaxPh
	tempLow, tempHigh := ranges[0].MinTemp, ranges[0].MaxTemp
	for _, r := range ranges[1:] {
		phLow = math.Max(phLow, r.MinPh)
		phHigh = math.Min(phHigh, r.MaxPh)
		tempLow = math.Max(tempLow, r.MinTemp)
		tempHigh = math.Min(tempHigh, r.MaxTemp)
	}

	return Target{
		Ph:          Midpoint(phLow, phHigh),
		Temperature: Midpoint(tempLow, tempHigh),
		IsDefault:   true,
		PhOverlap:   phLow <= phHigh,
		TempOverlap: tempLow <= tempHigh,
	}
}

// Override builds a user-specified target. Values are kept verbatim.
func Override(ph, temperature float64) (Target, error) {
	if err := ValidatePh(ph); err != nil {
		return Target{}, err
	}
	return Target{
		Ph:          ph,
		Temperature: temperature,
		IsDefault:   false,
		PhOverlap:   true,
		TempOverlap: true,
	}, nil
}

func ValidatePh(ph float64) error {
	if math.IsNaN(ph) || ph < MinPh || ph > MaxPh {
		return httperr.ErrValidation("invalid_ph", "pH must be between 0 and 14")
	}
	return nil
}

// Midpoint returns (a+b)/2 rounded to one decimal, half away from zero.
// Inputs carry one decimal place, so the sum is taken in whole tenths to
// avoid binary rounding on values like 6.75.
func Midpoint(a, b float64) float64 {
	sum := toTenths(a) + toTenths(b)
	half := sum / 2
	// integer division truncates toward zero; odd sums sit on a .05 tie
	if sum%2 != 0 {
		if sum > 0 {
			half++
		} else {
			half--
		}
	}
	return float64(half) / 10
}

func toTenths(v float64) int64 {
	return int64(math.Round(v * 10))
}
