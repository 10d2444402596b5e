package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "ALERT_RAISED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent embeds the common fields shared by all concrete events.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Event type codes published on the bus.
const (
	TypeErrorIngested = "ERROR_INGESTED"
	TypeAlertRaised   = "ALERT_RAISED"
	TypeUserLogin     = "USER_LOGIN"
)

func NewErrorIngested(errorLogId, applicationId, severity string) Event {
	return BaseEvent{
		Type: TypeErrorIngested,
		Data: map[string]interface{}{
			"error_log_id":   errorLogId,
			"application_id": applicationId,
			"severity":       severity,
		},
		OccurredAt: time.Now(),
	}
}

func NewAlertRaised(alertId, errorLogId, applicationId, alertLevel string) Event {
	return BaseEvent{
		Type: TypeAlertRaised,
		Data: map[string]interface{}{
			"alert_id":       alertId,
			"error_log_id":   errorLogId,
			"application_id": applicationId,
			"alert_level":    alertLevel,
		},
		OccurredAt: time.Now(),
	}
}

func NewUserLogin(userId, email string, twoFactor bool) Event {
	return BaseEvent{
		Type: TypeUserLogin,
		Data: map[string]interface{}{
			"user_id":    userId,
			"email":      email,
			"two_factor": twoFactor,
		},
		OccurredAt: time.Now(),
	}
}
