package model

import (
	"time"

	"github.com/google/uuid"
)

type ErrorLog struct {
	Id            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ApplicationId uuid.UUID  `gorm:"type:uuid;not null;index:idx_error_logs_app_status,priority:1"`
	Message       string     `gorm:"type:text;not null"`
	StackTrace    *string    `gorm:"type:text"`
	ApiEndpoint   string     `gorm:"type:varchar(500)"`
	HttpMethod    string     `gorm:"type:varchar(10)"`
	UserAgent     string     `gorm:"type:text"`
	IpAddress     string     `gorm:"type:varchar(45)"`
	Severity      string     `gorm:"type:varchar(10);not null;index"`
	Status        string     `gorm:"type:varchar(10);not null;default:'Open';index:idx_error_logs_app_status,priority:2"`
	CreatedAt     time.Time  `gorm:"autoCreateTime"`
	ResolvedAt    *time.Time `gorm:"index"`
}

func (ErrorLog) TableName() string {
	return "error_logs"
}
