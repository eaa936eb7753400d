package models

import "time"

type Tank struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	UserID     uint   `gorm:"index;not null" json:"userId"`
	Name       string `gorm:"size:100;not null" json:"name"`
	SizeLiters int    `gorm:"not null" json:"sizeLiters"`
	PhotoKey   string `gorm:"size:255" json:"-"`

	Fish            []Fish           `gorm:"constraint:OnDelete:CASCADE;" json:"fish"`
	WaterParameters *WaterParameters `gorm:"constraint:OnDelete:CASCADE;" json:"waterParameters"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
