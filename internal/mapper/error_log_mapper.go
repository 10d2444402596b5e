package mapper

import (
	"errortrack-be/internal/entity"
	"errortrack-be/internal/model"
	"errortrack-be/pkg/severity"
)

type ErrorLogMapper struct{}

func NewErrorLogMapper() *ErrorLogMapper {
	return &ErrorLogMapper{}
}

func (m *ErrorLogMapper) ToEntity(e *model.ErrorLog) *entity.ErrorLog {
	if e == nil {
		return nil
	}
	return &entity.ErrorLog{
		Id:            e.Id,
		ApplicationId: e.ApplicationId,
		Message:       e.Message,
		StackTrace:    e.StackTrace,
		ApiEndpoint:   e.ApiEndpoint,
		HttpMethod:    e.HttpMethod,
		UserAgent:     e.UserAgent,
		IpAddress:     e.IpAddress,
		Severity:      severity.Level(e.Severity),
		Status:        entity.ErrorStatus(e.Status),
		CreatedAt:     e.CreatedAt,
		ResolvedAt:    e.ResolvedAt,
	}
}

func (m *ErrorLogMapper) ToModel(e *entity.ErrorLog) *model.ErrorLog {
	if e == nil {
		return nil
	}
	return &model.ErrorLog{
		Id:            e.Id,
		ApplicationId: e.ApplicationId,
		Message:       e.Message,
		StackTrace:    e.StackTrace,
		ApiEndpoint:   e.ApiEndpoint,
		HttpMethod:    e.HttpMethod,
		UserAgent:     e.UserAgent,
		IpAddress:     e.IpAddress,
		Severity:      string(e.Severity),
		Status:        string(e.Status),
		CreatedAt:     e.CreatedAt,
		ResolvedAt:    e.ResolvedAt,
	}
}

func (m *ErrorLogMapper) ToEntities(logs []*model.ErrorLog) []*entity.ErrorLog {
	entities := make([]*entity.ErrorLog, len(logs))
	for i, e := range logs {
		entities[i] = m.ToEntity(e)
	}
	return entities
}
