package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/fishmaster-api/internal/domain/tank"
	"github.com/BruksfildServices01/fishmaster-api/internal/models"
)

type TankGormRepository struct {
	db *gorm.DB
}

func NewTankGormRepository(db *gorm.DB) *TankGormRepository {
	return &TankGormRepository{db: db}
}

// Compile-time check
var _ domain.Repository = (*TankGormRepository)(nil)

func (r *TankGormRepository) WithinTx(
	ctx context.Context,
	fn func(repo domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&TankGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Owner
// --------------------------------------------------

func (r *TankGormRepository) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *TankGormRepository) MarkOnboardingCompleted(
	ctx context.Context,
	userID uint,
	name string,
) error {

	updates := map[string]any{"onboarding_completed": true}
	if name != "" {
		updates["name"] = name
	}

	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound)
	}
	return nil
}

// --------------------------------------------------
// Tank
// --------------------------------------------------

func (r *TankGormRepository) GetTank(ctx context.Context, id uint) (*models.Tank, error) {
	var t models.Tank
	if err := r.db.WithContext(ctx).First(&t, id).Error; err != nil {
		return nil, translate(err)
	}
	return &t, nil
}

func (r *TankGormRepository) GetTankDetails(ctx context.Context, id uint) (*models.Tank, error) {
	var t models.Tank
	if err := r.db.WithContext(ctx).
		Preload("Fish", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Fish.FishType").
		Preload("WaterParameters").
		First(&t, id).Error; err != nil {
		return nil, translate(err)
	}
	return &t, nil
}

func (r *TankGormRepository) ListTanksByOwner(ctx context.Context, userID uint) ([]models.Tank, error) {
	var tanks []models.Tank
	if err := r.db.WithContext(ctx).
		Preload("Fish", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Fish.FishType").
		Preload("WaterParameters").
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&tanks).Error; err != nil {
		return nil, err
	}
	return tanks, nil
}

func (r *TankGormRepository) FirstTankOfOwner(ctx context.Context, userID uint) (*models.Tank, error) {
	var t models.Tank
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		First(&t).Error; err != nil {
		return nil, translate(err)
	}
	return &t, nil
}

func (r *TankGormRepository) CreateTank(ctx context.Context, t *models.Tank) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(t).Error
}

func (r *TankGormRepository) UpdateTank(ctx context.Context, t *models.Tank) error {
	return r.db.WithContext(ctx).
		Model(&models.Tank{ID: t.ID}).
		Select("name", "size_liters", "photo_key", "updated_at").
		Updates(t).Error
}

func (r *TankGormRepository) DeleteTank(ctx context.Context, id uint) error {
	return deleteTanks(r.db.WithContext(ctx), []uint{id})
}

// --------------------------------------------------
// Fish types
// --------------------------------------------------

func (r *TankGormRepository) GetFishType(ctx context.Context, id uint) (*models.FishType, error) {
	var ft models.FishType
	if err := r.db.WithContext(ctx).First(&ft, id).Error; err != nil {
		return nil, translate(err)
	}
	return &ft, nil
}

func (r *TankGormRepository) ListFishTypes(ctx context.Context, careLevel string) ([]models.FishType, error) {
	q := r.db.WithContext(ctx).Order("name ASC")
	if careLevel != "" {
		q = q.Where("care_level = ?", careLevel)
	}

	var types []models.FishType
	if err := q.Find(&types).Error; err != nil {
		return nil, err
	}
	return types, nil
}

// --------------------------------------------------
// Fish
// --------------------------------------------------

func (r *TankGormRepository) CreateFish(ctx context.Context, f *models.Fish) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(f).Error
}

func (r *TankGormRepository) GetFish(ctx context.Context, tankID, fishID uint) (*models.Fish, error) {
	var f models.Fish
	if err := r.db.WithContext(ctx).
		Where("id = ? AND tank_id = ?", fishID, tankID).
		First(&f).Error; err != nil {
		return nil, translate(err)
	}
	return &f, nil
}

func (r *TankGormRepository) DeleteFish(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Fish{}, id).Error
}

func (r *TankGormRepository) ListFish(ctx context.Context, tankID uint) ([]models.Fish, error) {
	var fish []models.Fish
	if err := r.db.WithContext(ctx).
		Preload("FishType").
		Where("tank_id = ?", tankID).
		Order("id ASC").
		Find(&fish).Error; err != nil {
		return nil, err
	}
	return fish, nil
}

// --------------------------------------------------
// Water parameters
// --------------------------------------------------

func (r *TankGormRepository) GetWaterParameters(ctx context.Context, tankID uint) (*models.WaterParameters, error) {
	var wp models.WaterParameters
	if err := r.db.WithContext(ctx).
		Where("tank_id = ?", tankID).
		First(&wp).Error; err != nil {
		return nil, translate(err)
	}
	return &wp, nil
}

func (r *TankGormRepository) SaveWaterParameters(ctx context.Context, wp *models.WaterParameters) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "tank_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"ph", "temperature", "is_default", "updated_at"}),
		}).
		Create(wp).Error
}

// --------------------------------------------------
// Alert thresholds
// --------------------------------------------------

func (r *TankGormRepository) GetAlertThreshold(ctx context.Context, tankID uint) (*models.AlertThreshold, error) {
	var at models.AlertThreshold
	if err := r.db.WithContext(ctx).
		Where("tank_id = ?", tankID).
		First(&at).Error; err != nil {
		return nil, translate(err)
	}
	return &at, nil
}

func (r *TankGormRepository) SaveAlertThreshold(ctx context.Context, at *models.AlertThreshold) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "tank_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"global_alerts_enabled", "email_alerts_enabled", "in_app_alerts_enabled",
				"temperature_enabled", "temperature_min", "temperature_max",
				"ph_enabled", "ph_min", "ph_max",
				"turbidity_enabled", "turbidity_max",
				"ammonia_enabled", "ammonia_max",
				"updated_at",
			}),
		}).
		Create(at).Error
}
