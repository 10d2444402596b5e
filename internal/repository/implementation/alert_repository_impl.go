package implementation

import (
	"context"
	"errors"
	"time"

	"errortrack-be/internal/entity"
	"errortrack-be/internal/mapper"
	"errortrack-be/internal/model"
	"errortrack-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AlertRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.AlertMapper
}

func NewAlertRepository(db *gorm.DB) contract.AlertRepository {
	return &AlertRepositoryImpl{
		db:     db,
		mapper: mapper.NewAlertMapper(),
	}
}

func (r *AlertRepositoryImpl) Create(ctx context.Context, alert *entity.Alert) error {
	m := r.mapper.ToModel(alert)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*alert = *r.mapper.ToEntity(m)
	return nil
}

func (r *AlertRepositoryImpl) FindById(ctx context.Context, id uuid.UUID) (*entity.Alert, error) {
	var m model.Alert
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *AlertRepositoryImpl) List(ctx context.Context, applicationId *uuid.UUID, limit, offset int) ([]*entity.Alert, int64, error) {
	var models []*model.Alert
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Alert{})
	if applicationId != nil {
		db = db.Where("application_id = ?", *applicationId)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&models).Error
	if err != nil {
		return nil, 0, err
	}

	return r.mapper.ToEntities(models), total, nil
}

func (r *AlertRepositoryImpl) Resolve(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Alert{}).
		Where("id = ? AND is_resolved = ?", id, false).
		Updates(map[string]interface{}{
			"is_resolved": true,
			"is_active":   false,
			"resolved_at": at,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *AlertRepositoryImpl) DeleteByErrorLogId(ctx context.Context, errorLogId string) error {
	return r.db.WithContext(ctx).
		Where("error_log_id = ?", errorLogId).
		Delete(&model.Alert{}).Error
}

func (r *AlertRepositoryImpl) DeleteByApplication(ctx context.Context, applicationId uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("application_id = ?", applicationId).
		Delete(&model.Alert{}).Error
}
