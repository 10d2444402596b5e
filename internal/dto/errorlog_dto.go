package dto

import (
	"time"

	"github.com/google/uuid"
)

type ErrorLogResponse struct {
	Id            uuid.UUID  `json:"id"`
	ApplicationId uuid.UUID  `json:"application_id"`
	Message       string     `json:"message"`
	StackTrace    *string    `json:"stack_trace,omitempty"`
	ApiEndpoint   string     `json:"api_endpoint"`
	HttpMethod    string     `json:"http_method"`
	UserAgent     string     `json:"user_agent"`
	IpAddress     string     `json:"ip_address"`
	Severity      string     `json:"severity"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	ResolvedAt    *time.Time `json:"resolved_at,omitempty"`
}

type ListErrorLogsResponse struct {
	Items []ErrorLogResponse `json:"items"`
	Total int64              `json:"total"`
}
