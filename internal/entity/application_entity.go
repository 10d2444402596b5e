package entity

import (
	"time"

	"github.com/google/uuid"
)

// Application is a registered reporting client. Error reports resolve to an
// Application by API key or by name; unknown reporters are auto-provisioned
// under the system account.
type Application struct {
	Id          uuid.UUID
	ApiKey      string
	Name        string
	Description string
	IsActive    bool
	IsPaused    bool
	CreatedBy   uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
