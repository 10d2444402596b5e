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

type ErrorLogRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ErrorLogMapper
}

func NewErrorLogRepository(db *gorm.DB) contract.ErrorLogRepository {
	return &ErrorLogRepositoryImpl{
		db:     db,
		mapper: mapper.NewErrorLogMapper(),
	}
}

func (r *ErrorLogRepositoryImpl) Create(ctx context.Context, errorLog *entity.ErrorLog) error {
	m := r.mapper.ToModel(errorLog)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*errorLog = *r.mapper.ToEntity(m)
	return nil
}

func (r *ErrorLogRepositoryImpl) FindById(ctx context.Context, id uuid.UUID) (*entity.ErrorLog, error) {
	var m model.ErrorLog
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ErrorLogRepositoryImpl) List(ctx context.Context, applicationId *uuid.UUID, status *entity.ErrorStatus, limit, offset int) ([]*entity.ErrorLog, int64, error) {
	var models []*model.ErrorLog
	var total int64

	db := r.db.WithContext(ctx).Model(&model.ErrorLog{})
	if applicationId != nil {
		db = db.Where("application_id = ?", *applicationId)
	}
	if status != nil {
		db = db.Where("status = ?", string(*status))
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

func (r *ErrorLogRepositoryImpl) CountByApplication(ctx context.Context, applicationId uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.ErrorLog{}).
		Where("application_id = ?", applicationId).
		Count(&count).Error
	return count, err
}

func (r *ErrorLogRepositoryImpl) FindResolvedOldestFirst(ctx context.Context, applicationId uuid.UUID) ([]*entity.ErrorLog, error) {
	var models []*model.ErrorLog
	err := r.db.WithContext(ctx).
		Where("application_id = ? AND status = ?", applicationId, string(entity.ErrorStatusResolved)).
		Order("resolved_at ASC").
		Order("created_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ErrorLogRepositoryImpl) Resolve(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	// Guarding on status keeps resolved_at write-once.
	result := r.db.WithContext(ctx).
		Model(&model.ErrorLog{}).
		Where("id = ? AND status = ?", id, string(entity.ErrorStatusOpen)).
		Updates(map[string]interface{}{
			"status":      string(entity.ErrorStatusResolved),
			"resolved_at": at,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *ErrorLogRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.ErrorLog{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *ErrorLogRepositoryImpl) DeleteMany(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&model.ErrorLog{}).Error
}

func (r *ErrorLogRepositoryImpl) DeleteByApplication(ctx context.Context, applicationId uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("application_id = ?", applicationId).
		Delete(&model.ErrorLog{}).Error
}
