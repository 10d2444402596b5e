package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Alert struct {
	Id            uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ErrorLogId    string         `gorm:"type:varchar(64);not null;index"`
	ApplicationId uuid.UUID      `gorm:"type:uuid;not null;index"`
	Name          string         `gorm:"type:varchar(255);not null"`
	Message       string         `gorm:"type:text;not null"`
	AlertLevel    string         `gorm:"type:varchar(10);not null;index"`
	AlertType     string         `gorm:"type:varchar(20);not null;default:'EMAIL'"`
	Recipients    datatypes.JSON `gorm:"type:jsonb"`
	IsActive      bool           `gorm:"default:true"`
	IsResolved    bool           `gorm:"default:false"`
	ResolvedAt    *time.Time
	CreatedAt     time.Time `gorm:"autoCreateTime"`
}

func (Alert) TableName() string {
	return "alerts"
}
