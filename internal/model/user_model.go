package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	Id                uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email             string         `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash      *string        `gorm:"type:varchar(255)"`
	FullName          string         `gorm:"type:varchar(255);not null"`
	Role              string         `gorm:"type:varchar(50);not null;default:'operator'"`
	Status            string         `gorm:"type:varchar(50);not null;default:'active'"`
	RequiresTwoFactor bool           `gorm:"default:false"`
	CreatedAt         time.Time      `gorm:"autoCreateTime"`
	UpdatedAt         time.Time      `gorm:"autoUpdateTime"`
	DeletedAt         gorm.DeletedAt `gorm:"index"`
}

func (User) TableName() string {
	return "users"
}

// One row per user. A new OTP request replaces the existing row.
type UserOTP struct {
	UserId    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Otp       string    `gorm:"type:char(6);not null"`
	CreatedAt time.Time `gorm:"not null"`
}

func (UserOTP) TableName() string {
	return "user_otps"
}

// Single-row table; Id is always 1.
type AuthSetting struct {
	Id                     int       `gorm:"primaryKey"`
	GlobalTwoFactorEnabled bool      `gorm:"default:false"`
	UpdatedAt              time.Time `gorm:"autoUpdateTime"`
}

func (AuthSetting) TableName() string {
	return "auth_settings"
}
