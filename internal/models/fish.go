package models

import "time"

type Fish struct {
	ID         uint     `gorm:"primaryKey" json:"id"`
	TankID     uint     `gorm:"index;not null" json:"tankId"`
	FishTypeID uint     `gorm:"not null" json:"fishTypeId"`
	FishType   FishType `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"fishType"`
	Name       string   `gorm:"size:100;not null" json:"name"`

	CreatedAt time.Time `json:"createdAt"`
}
