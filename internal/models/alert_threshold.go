package models

import "time"

type AlertThreshold struct {
	ID     uint `gorm:"primaryKey" json:"-"`
	TankID uint `gorm:"uniqueIndex;not null" json:"tankId"`

	GlobalAlertsEnabled bool `json:"globalAlertsEnabled"`
	EmailAlertsEnabled  bool `json:"emailAlertsEnabled"`
	InAppAlertsEnabled  bool `json:"inAppAlertsEnabled"`

	TemperatureEnabled bool     `json:"temperatureEnabled"`
	TemperatureMin     *float64 `gorm:"type:numeric(4,1)" json:"temperatureMin"`
	TemperatureMax     *float64 `gorm:"type:numeric(4,1)" json:"temperatureMax"`

	PhEnabled bool     `json:"phEnabled"`
	PhMin     *float64 `gorm:"type:numeric(3,1)" json:"phMin"`
	PhMax     *float64 `gorm:"type:numeric(3,1)" json:"phMax"`

	TurbidityEnabled bool     `json:"turbidityEnabled"`
	TurbidityMax     *float64 `gorm:"type:numeric(5,2)" json:"turbidityMax"`

	AmmoniaEnabled bool     `json:"ammoniaEnabled"`
	AmmoniaMax     *float64 `gorm:"type:numeric(5,2)" json:"ammoniaMax"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"updatedAt"`
}
