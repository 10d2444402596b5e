package implementation

import (
	"context"
	"errors"

	"errortrack-be/internal/entity"
	"errortrack-be/internal/mapper"
	"errortrack-be/internal/model"
	"errortrack-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.UserMapper
}

func NewUserRepository(db *gorm.DB) contract.UserRepository {
	return &UserRepositoryImpl{
		db:     db,
		mapper: mapper.NewUserMapper(),
	}
}

func (r *UserRepositoryImpl) Create(ctx context.Context, user *entity.User) error {
	m := r.mapper.ToModel(user)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*user = *r.mapper.ToEntity(m)
	return nil
}

func (r *UserRepositoryImpl) FindById(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var m model.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *UserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var m model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *UserRepositoryImpl) UpsertOTP(ctx context.Context, otp *entity.UserOTP) error {
	m := r.mapper.OTPToModel(otp)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"otp", "created_at"}),
		}).
		Create(m).Error
}

func (r *UserRepositoryImpl) GetOTP(ctx context.Context, userId uuid.UUID) (*entity.UserOTP, error) {
	var m model.UserOTP
	if err := r.db.WithContext(ctx).Where("user_id = ?", userId).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.OTPToEntity(&m), nil
}

func (r *UserRepositoryImpl) DeleteOTP(ctx context.Context, userId uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userId).
		Delete(&model.UserOTP{}).Error
}

func (r *UserRepositoryImpl) GetAuthSetting(ctx context.Context) (*entity.AuthSetting, error) {
	var m model.AuthSetting
	if err := r.db.WithContext(ctx).Where("id = ?", 1).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.AuthSettingToEntity(&m), nil
}

func (r *UserRepositoryImpl) SaveAuthSetting(ctx context.Context, setting *entity.AuthSetting) error {
	setting.Id = 1
	m := r.mapper.AuthSettingToModel(setting)
	return r.db.WithContext(ctx).Save(m).Error
}
