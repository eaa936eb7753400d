package models

import "time"

type WaterParameters struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	TankID      uint    `gorm:"uniqueIndex;not null" json:"tankId"`
	Ph          float64 `gorm:"type:numeric(3,1)" json:"ph"`
	Temperature float64 `gorm:"type:numeric(4,1)" json:"temperature"`
	IsDefault   bool    `gorm:"not null;default:false" json:"isDefault"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
