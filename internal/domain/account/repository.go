package account

import (
	"context"

	"github.com/BruksfildServices01/fishmaster-api/internal/models"
)

// Repository persists user accounts. Lookups return domain.ErrNotFound when
// no row matches.
type Repository interface {
	WithinTx(ctx context.Context, fn func(repo Repository) error) error

	CreateUser(ctx context.Context, u *models.User) error

	EmailExists(ctx context.Context, email string) (bool, error)

	GetUserByID(ctx context.Context, id uint) (*models.User, error)

	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// LockUserByEmail loads the user with a row lock; call inside WithinTx.
	LockUserByEmail(ctx context.Context, email string) (*models.User, error)

	UpdateUser(ctx context.Context, u *models.User) error

	// DeleteUser removes the user and everything it owns.
	DeleteUser(ctx context.Context, id uint) error

	ListTanksByOwner(ctx context.Context, userID uint) ([]models.Tank, error)
}
