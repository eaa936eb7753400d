package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/fishmaster-api/internal/models"
)

// Catalogue is the built-in list of freshwater species.
var Catalogue = []models.FishType{
	{Name: "Goldfish", MinPh: 6.5, MaxPh: 7.5, MinTemp: 18, MaxTemp: 24, CareLevel: models.CareLevelBeginner,
		Description: "Hardy coldwater fish that grows large and needs strong filtration."},
	{Name: "Betta", MinPh: 6.0, MaxPh: 7.5, MinTemp: 24, MaxTemp: 28, CareLevel: models.CareLevelBeginner,
		Description: "Labyrinth fish; males must be kept alone."},
	{Name: "Guppy", MinPh: 6.8, MaxPh: 7.8, MinTemp: 22, MaxTemp: 28, CareLevel: models.CareLevelBeginner,
		Description: "Livebearer that breeds readily in community tanks."},
	{Name: "Neon Tetra", MinPh: 6.0, MaxPh: 7.0, MinTemp: 20, MaxTemp: 26, CareLevel: models.CareLevelBeginner,
		Description: "Small schooling fish; keep in groups of six or more."},
	{Name: "Corydoras", MinPh: 6.0, MaxPh: 8.0, MinTemp: 22, MaxTemp: 26, CareLevel: models.CareLevelBeginner,
		Description: "Peaceful bottom dweller that prefers soft substrate."},
	{Name: "Zebra Danio", MinPh: 6.5, MaxPh: 7.5, MinTemp: 18, MaxTemp: 24, CareLevel: models.CareLevelBeginner,
		Description: "Active schooling fish tolerant of cooler water."},
	{Name: "Platy", MinPh: 7.0, MaxPh: 8.0, MinTemp: 20, MaxTemp: 26, CareLevel: models.CareLevelBeginner,
		Description: "Colourful livebearer for community tanks."},
	{Name: "Angelfish", MinPh: 6.0, MaxPh: 7.5, MinTemp: 24, MaxTemp: 30, CareLevel: models.CareLevelIntermediate,
		Description: "Tall cichlid that needs a deep tank; may eat very small fish."},
	{Name: "Dwarf Gourami", MinPh: 6.0, MaxPh: 7.5, MinTemp: 24, MaxTemp: 28, CareLevel: models.CareLevelIntermediate,
		Description: "Peaceful labyrinth fish sensitive to water quality."},
	{Name: "Cherry Barb", MinPh: 6.0, MaxPh: 7.0, MinTemp: 23, MaxTemp: 27, CareLevel: models.CareLevelIntermediate,
		Description: "Peaceful barb that colours up in planted tanks."},
	{Name: "Discus", MinPh: 6.0, MaxPh: 7.0, MinTemp: 28, MaxTemp: 31, CareLevel: models.CareLevelAdvanced,
		Description: "Demanding cichlid that needs warm, soft and very clean water."},
	{Name: "German Blue Ram", MinPh: 5.0, MaxPh: 7.0, MinTemp: 27, MaxTemp: 30, CareLevel: models.CareLevelAdvanced,
		Description: "Dwarf cichlid that needs stable, warm, acidic water."},
}

// SeedFishTypes inserts missing catalogue entries by name. Existing rows
// are left untouched.
func SeedFishTypes(db *gorm.DB) error {
	for _, ft := range Catalogue {
		row := ft
		if err := db.Where(models.FishType{Name: row.Name}).
			FirstOrCreate(&row).Error; err != nil {
			return fmt.Errorf("seed fish type %q: %w", row.Name, err)
		}
	}
	return nil
}
