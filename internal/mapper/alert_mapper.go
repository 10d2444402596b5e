package mapper

import (
	"encoding/json"

	"errortrack-be/internal/entity"
	"errortrack-be/internal/model"

	"gorm.io/datatypes"
)

type AlertMapper struct{}

func NewAlertMapper() *AlertMapper {
	return &AlertMapper{}
}

func (m *AlertMapper) ToEntity(a *model.Alert) *entity.Alert {
	if a == nil {
		return nil
	}
	var recipients []string
	if len(a.Recipients) > 0 {
		// A malformed recipients column yields an empty list, not a failure.
		_ = json.Unmarshal(a.Recipients, &recipients)
	}
	return &entity.Alert{
		Id:            a.Id,
		ErrorLogId:    a.ErrorLogId,
		ApplicationId: a.ApplicationId,
		Name:          a.Name,
		Message:       a.Message,
		AlertLevel:    a.AlertLevel,
		AlertType:     a.AlertType,
		Recipients:    recipients,
		IsActive:      a.IsActive,
		IsResolved:    a.IsResolved,
		ResolvedAt:    a.ResolvedAt,
		CreatedAt:     a.CreatedAt,
	}
}

func (m *AlertMapper) ToModel(a *entity.Alert) *model.Alert {
	if a == nil {
		return nil
	}
	recipientsJSON, _ := json.Marshal(a.Recipients)
	return &model.Alert{
		Id:            a.Id,
		ErrorLogId:    a.ErrorLogId,
		ApplicationId: a.ApplicationId,
		Name:          a.Name,
		Message:       a.Message,
		AlertLevel:    a.AlertLevel,
		AlertType:     a.AlertType,
		Recipients:    datatypes.JSON(recipientsJSON),
		IsActive:      a.IsActive,
		IsResolved:    a.IsResolved,
		ResolvedAt:    a.ResolvedAt,
		CreatedAt:     a.CreatedAt,
	}
}

func (m *AlertMapper) ToEntities(alerts []*model.Alert) []*entity.Alert {
	entities := make([]*entity.Alert, len(alerts))
	for i, a := range alerts {
		entities[i] = m.ToEntity(a)
	}
	return entities
}
