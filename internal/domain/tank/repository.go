package tank

import (
	"context"

	"github.com/BruksfildServices01/fishmaster-api/internal/models"
)

// Repository persists tanks and everything hanging off them. Lookups return
// domain.ErrNotFound when no row matches.
type Repository interface {
	WithinTx(ctx context.Context, fn func(repo Repository) error) error

	// -------- Owner --------
	GetUser(ctx context.Context, id uint) (*models.User, error)

	MarkOnboardingCompleted(ctx context.Context, userID uint, name string) error

	// -------- Tank --------
	GetTank(ctx context.Context, id uint) (*models.Tank, error)

	// GetTankDetails preloads fish with their types and the water parameters.
	GetTankDetails(ctx context.Context, id uint) (*models.Tank, error)

	ListTanksByOwner(ctx context.Context, userID uint) ([]models.Tank, error)

	FirstTankOfOwner(ctx context.Context, userID uint) (*models.Tank, error)

	CreateTank(ctx context.Context, t *models.Tank) error

	UpdateTank(ctx context.Context, t *models.Tank) error

	// DeleteTank removes fish, water parameters and alert thresholds, then
	// the tank. Callers run it inside WithinTx.
	DeleteTank(ctx context.Context, id uint) error

	// -------- Fish types --------
	GetFishType(ctx context.Context, id uint) (*models.FishType, error)

	ListFishTypes(ctx context.Context, careLevel string) ([]models.FishType, error)

	// -------- Fish --------
	CreateFish(ctx context.Context, f *models.Fish) error

	GetFish(ctx context.Context, tankID, fishID uint) (*models.Fish, error)

	DeleteFish(ctx context.Context, id uint) error

	ListFish(ctx context.Context, tankID uint) ([]models.Fish, error)

	// -------- Water parameters --------
	GetWaterParameters(ctx context.Context, tankID uint) (*models.WaterParameters, error)

	// SaveWaterParameters inserts or replaces the single row of wp.TankID.
	SaveWaterParameters(ctx context.Context, wp *models.WaterParameters) error

	// -------- Alert thresholds --------
	GetAlertThreshold(ctx context.Context, tankID uint) (*models.AlertThreshold, error)

	SaveAlertThreshold(ctx context.Context, at *models.AlertThreshold) error
}
