package models

import "time"

const (
	CareLevelBeginner     = "beginner"
	CareLevelIntermediate = "intermediate"
	CareLevelAdvanced     = "advanced"
)

// FishType is reference data for a species and its safe water ranges.
type FishType struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"size:100;uniqueIndex;not null" json:"name"`
	MinPh       float64 `gorm:"type:numeric(3,1);not null" json:"minPh"`
	MaxPh       float64 `gorm:"type:numeric(3,1);not null" json:"maxPh"`
	MinTemp     float64 `gorm:"type:numeric(4,1);not null" json:"minTemp"`
	MaxTemp     float64 `gorm:"type:numeric(4,1);not null" json:"maxTemp"`
	Description string  `gorm:"type:text" json:"description"`
	CareLevel   string  `gorm:"size:20;default:'beginner'" json:"careLevel"`

	CreatedAt time.Time `json:"createdAt"`
}
