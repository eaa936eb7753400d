package tank

import (
	"errors"

	"github.com/BruksfildServices01/fishmaster-api/internal/domain"
	"github.com/BruksfildServices01/fishmaster-api/internal/httperr"
	"github.com/BruksfildServices01/fishmaster-api/internal/models"
)

var (
	ErrTankNotFound     = httperr.ErrNotFound("tank_not_found", "Tank not found")
	ErrNotOwner         = httperr.ErrUnauthorized("not_tank_owner", "You are not allowed to access this tank")
	ErrFishNotFound     = httperr.ErrNotFound("fish_not_found", "Fish not found")
	ErrFishTypeNotFound = httperr.ErrNotFound("fish_type_not_found", "Fish type not found")
)

// Owned checks that t belongs to userID. A lookup error of domain.ErrNotFound
// becomes ErrTankNotFound; a tank owned by someone else is ErrNotOwner.
func Owned(t *models.Tank, lookupErr error, userID uint) (*models.Tank, error) {
	if lookupErr != nil {
		if errors.Is(lookupErr, domain.ErrNotFound) {
			return nil, ErrTankNotFound
		}
		return nil, lookupErr
	}
	if t.UserID != userID {
		return nil, ErrNotOwner
	}
	return t, nil
}
