package entity

import (
	"time"

	"github.com/google/uuid"
)

const AlertTypeEmail = "EMAIL"

// Alert is the operator-facing record correlated to exactly one ErrorLog.
// ApplicationId is always resolved and validated at creation time; an alert
// that cannot name its application is a correctness bug, not a row.
type Alert struct {
	Id            uuid.UUID
	ErrorLogId    string
	ApplicationId uuid.UUID
	Name          string
	Message       string
	AlertLevel    string
	AlertType     string
	Recipients    []string
	IsActive      bool
	IsResolved    bool
	ResolvedAt    *time.Time
	CreatedAt     time.Time
}
