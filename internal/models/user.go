package models

import "time"

type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Timezone     string `gorm:"size:50;default:'UTC'" json:"timezone"`

	Enabled             bool `gorm:"not null;default:false" json:"enabled"`
	OnboardingCompleted bool `gorm:"not null;default:false" json:"onboardingCompleted"`

	VerificationCode      string     `gorm:"size:6" json:"-"`
	VerificationExpiresAt *time.Time `json:"-"`

	ContactNumber      string `gorm:"size:30" json:"contactNumber"`
	EmailNotifications bool   `gorm:"not null;default:true" json:"emailNotifications"`
	SMSNotifications   bool   `gorm:"column:sms_notifications;not null;default:false" json:"smsNotifications"`

	Tanks []Tank `gorm:"constraint:OnDelete:CASCADE;" json:"tanks,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
