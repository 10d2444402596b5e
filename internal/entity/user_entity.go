package entity

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string
type UserStatus string

const (
	UserRoleAdmin    UserRole = "admin"
	UserRoleOperator UserRole = "operator"
	UserRoleSystem   UserRole = "system"

	UserStatusActive  UserStatus = "active"
	UserStatusBlocked UserStatus = "blocked"
)

type User struct {
	Id                uuid.UUID
	Email             string
	PasswordHash      *string
	FullName          string
	Role              UserRole
	Status            UserStatus
	RequiresTwoFactor bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// UserOTP is the single live one-time code for a user. Issuing a new code
// overwrites the previous one; only the most recently issued code is valid.
type UserOTP struct {
	UserId    uuid.UUID
	Otp       string
	CreatedAt time.Time
}

// AuthSetting is the process-wide authentication configuration. It lives in
// its own single-row table instead of being piggybacked on a sentinel user.
type AuthSetting struct {
	Id                     int
	GlobalTwoFactorEnabled bool
	UpdatedAt              time.Time
}
