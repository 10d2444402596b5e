package entity

import (
	"time"

	"errortrack-be/pkg/severity"

	"github.com/google/uuid"
)

type ErrorStatus string

const (
	ErrorStatusOpen     ErrorStatus = "Open"
	ErrorStatusResolved ErrorStatus = "Resolved"
)

// ErrorLog is one ingested runtime error. Created only by the ingestion
// pipeline; mutated only by resolve or delete.
type ErrorLog struct {
	Id            uuid.UUID
	ApplicationId uuid.UUID
	Message       string
	StackTrace    *string
	ApiEndpoint   string
	HttpMethod    string
	UserAgent     string
	IpAddress     string
	Severity      severity.Level
	Status        ErrorStatus
	CreatedAt     time.Time
	ResolvedAt    *time.Time
}
