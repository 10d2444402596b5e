package dto

import (
	"time"

	"github.com/google/uuid"
)

type AlertResponse struct {
	Id            uuid.UUID  `json:"id"`
	ErrorLogId    string     `json:"error_log_id"`
	ApplicationId uuid.UUID  `json:"application_id"`
	Name          string     `json:"name"`
	Message       string     `json:"message"`
	AlertLevel    string     `json:"alert_level"`
	AlertType     string     `json:"alert_type"`
	Recipients    []string   `json:"recipients"`
	IsActive      bool       `json:"is_active"`
	IsResolved    bool       `json:"is_resolved"`
	ResolvedAt    *time.Time `json:"resolved_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

type ListAlertsResponse struct {
	Items []AlertResponse `json:"items"`
	Total int64           `json:"total"`
}
