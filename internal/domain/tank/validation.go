package tank

import (
	"strings"

	"github.com/BruksfildServices01/fishmaster-api/internal/httperr"
)

const maxNameLen = 100

func ValidateTank(name string, sizeLiters int) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", httperr.ErrValidation("tank_name_required", "Tank name is required")
	}
	if len(name) > maxNameLen {
		return "", httperr.ErrValidation("tank_name_too_long", "Tank name must be at most 100 characters")
	}
	if sizeLiters <= 0 {
		return "", httperr.ErrValidation("invalid_tank_size", "Tank size must be greater than 0")
	}
	return name, nil
}

func ValidateFishName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", httperr.ErrValidation("fish_name_required", "Fish name is required")
	}
	if len(name) > maxNameLen {
		return "", httperr.ErrValidation("fish_name_too_long", "Fish name must be at most 100 characters")
	}
	return name, nil
}
