package mapper

import (
	"errortrack-be/internal/entity"
	"errortrack-be/internal/model"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToEntity(u *model.User) *entity.User {
	if u == nil {
		return nil
	}
	return &entity.User{
		Id:                u.Id,
		Email:             u.Email,
		PasswordHash:      u.PasswordHash,
		FullName:          u.FullName,
		Role:              entity.UserRole(u.Role),
		Status:            entity.UserStatus(u.Status),
		RequiresTwoFactor: u.RequiresTwoFactor,
		CreatedAt:         u.CreatedAt,
		UpdatedAt:         u.UpdatedAt,
	}
}

func (m *UserMapper) ToModel(u *entity.User) *model.User {
	if u == nil {
		return nil
	}
	return &model.User{
		Id:                u.Id,
		Email:             u.Email,
		PasswordHash:      u.PasswordHash,
		FullName:          u.FullName,
		Role:              string(u.Role),
		Status:            string(u.Status),
		RequiresTwoFactor: u.RequiresTwoFactor,
		CreatedAt:         u.CreatedAt,
		UpdatedAt:         u.UpdatedAt,
	}
}

func (m *UserMapper) OTPToEntity(o *model.UserOTP) *entity.UserOTP {
	if o == nil {
		return nil
	}
	return &entity.UserOTP{
		UserId:    o.UserId,
		Otp:       o.Otp,
		CreatedAt: o.CreatedAt,
	}
}

func (m *UserMapper) OTPToModel(o *entity.UserOTP) *model.UserOTP {
	if o == nil {
		return nil
	}
	return &model.UserOTP{
		UserId:    o.UserId,
		Otp:       o.Otp,
		CreatedAt: o.CreatedAt,
	}
}

func (m *UserMapper) AuthSettingToEntity(s *model.AuthSetting) *entity.AuthSetting {
	if s == nil {
		return nil
	}
	return &entity.AuthSetting{
		Id:                     s.Id,
		GlobalTwoFactorEnabled: s.GlobalTwoFactorEnabled,
		UpdatedAt:              s.UpdatedAt,
	}
}

func (m *UserMapper) AuthSettingToModel(s *entity.AuthSetting) *model.AuthSetting {
	if s == nil {
		return nil
	}
	return &model.AuthSetting{
		Id:                     s.Id,
		GlobalTwoFactorEnabled: s.GlobalTwoFactorEnabled,
		UpdatedAt:              s.UpdatedAt,
	}
}
