package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"errortrack-be/internal/dto"
	"errortrack-be/internal/entity"
	"errortrack-be/internal/pkg/mailer"
	"errortrack-be/internal/repository/unitofwork"
	"errortrack-be/pkg/events"
	pktNats "errortrack-be/pkg/nats"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type IAuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest, ipAddress, userAgent string) (*dto.LoginResponse, error)
	VerifyOtp(ctx context.Context, req *dto.VerifyOtpRequest) (*dto.VerifyOtpResponse, error)
	ResendOtp(ctx context.Context, email string) error
	GetAuthSetting(ctx context.Context) (*dto.AuthSettingResponse, error)
	UpdateAuthSetting(ctx context.Context, req *dto.UpdateAuthSettingRequest) (*dto.AuthSettingResponse, error)
}

type authService struct {
	uowFactory     unitofwork.RepositoryFactory
	emailService   mailer.IEmailService
	eventPublisher *pktNats.Publisher
	jwtSecret      string
	tokenTTL       time.Duration
	otpTTL         time.Duration
}

func NewAuthService(
	uowFactory unitofwork.RepositoryFactory,
	emailService mailer.IEmailService,
	eventPublisher *pktNats.Publisher,
	jwtSecret string,
	tokenTTLHours int,
	otpTTLSeconds int,
) IAuthService {
	if jwtSecret == "" {
		jwtSecret = "default_secret"
	}
	return &authService{
		uowFactory:     uowFactory,
		emailService:   emailService,
		eventPublisher: eventPublisher,
		jwtSecret:      jwtSecret,
		tokenTTL:       time.Duration(tokenTTLHours) * time.Hour,
		otpTTL:         time.Duration(otpTTLSeconds) * time.Second,
	}
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n), nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest, ipAddress, userAgent string) (*dto.LoginResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	// 1. Check if user exists
	user, err := uow.UserRepository().FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, errors.New("invalid credentials")
	}
	if user == nil {
		return nil, errors.New("invalid credentials")
	}

	// 2. Compare passwords. System accounts carry no password.
	if user.PasswordHash == nil {
		return nil, errors.New("invalid credentials")
	}
	err = bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password))
	if err != nil {
		return nil, errors.New("invalid credentials")
	}

	// 3. Check if user is blocked
	if user.Status == entity.UserStatusBlocked {
		return nil, errors.New("user account is blocked")
	}

	// 4. Two-factor resolution: user flag OR global flag
	required, err := s.twoFactorRequired(ctx, uow, user)
	if err != nil {
		return nil, err
	}

	if required {
		if err := s.issueOtp(ctx, uow, user); err != nil {
			return nil, err
		}
		return &dto.LoginResponse{
			OtpRequired: true,
			UserId:      user.Id.String(),
		}, nil
	}

	// 5. Generate JWT
	token, err := s.signToken(user)
	if err != nil {
		return nil, err
	}

	s.publishLogin(ctx, user, false)

	return &dto.LoginResponse{
		Token:       token,
		OtpRequired: false,
		UserId:      user.Id.String(),
	}, nil
}

func (s *authService) twoFactorRequired(ctx context.Context, uow unitofwork.UnitOfWork, user *entity.User) (bool, error) {
	if user.RequiresTwoFactor {
		return true, nil
	}
	setting, err := uow.UserRepository().GetAuthSetting(ctx)
	if err != nil {
		return false, err
	}
	return setting != nil && setting.GlobalTwoFactorEnabled, nil
}

// issueOtp replaces any previously issued code; only the newest one is valid.
func (s *authService) issueOtp(ctx context.Context, uow unitofwork.UnitOfWork, user *entity.User) error {
	code, err := generateOTP()
	if err != nil {
		return err
	}

	otp := &entity.UserOTP{
		UserId:    user.Id,
		Otp:       code,
		CreatedAt: time.Now(),
	}
	if err := uow.UserRepository().UpsertOTP(ctx, otp); err != nil {
		return err
	}

	// Delivery must not leak the code into the error path.
	go func(email, code string) {
		if err := s.emailService.SendOTP(email, code); err != nil {
			fmt.Printf("[WARN] Failed to send OTP email: %v\n", err)
		}
	}(user.Email, code)

	return nil
}

func (s *authService) VerifyOtp(ctx context.Context, req *dto.VerifyOtpRequest) (*dto.VerifyOtpResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, errors.New("invalid or expired otp code")
	}
	if user == nil {
		return nil, errors.New("invalid or expired otp code")
	}

	stored, err := uow.UserRepository().GetOTP(ctx, user.Id)
	if err != nil {
		return nil, err
	}
	// Wrong code and expired code are indistinguishable to the caller.
	if stored == nil || stored.Otp != req.Otp {
		return nil, errors.New("invalid or expired otp code")
	}
	if time.Now().After(stored.CreatedAt.Add(s.otpTTL)) {
		return nil, errors.New("invalid or expired otp code")
	}

	// Clear immediately so the code cannot be replayed.
	if err := uow.UserRepository().DeleteOTP(ctx, user.Id); err != nil {
		return nil, err
	}

	token, err := s.signToken(user)
	if err != nil {
		return nil, err
	}

	s.publishLogin(ctx, user, true)

	return &dto.VerifyOtpResponse{Token: token}, nil
}

// ResendOtp overwrites and re-sends, identical to the implicit issue on login.
func (s *authService) ResendOtp(ctx context.Context, email string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindByEmail(ctx, email)
	if err != nil {
		return errors.New("invalid credentials")
	}
	if user == nil {
		return errors.New("invalid credentials")
	}

	return s.issueOtp(ctx, uow, user)
}

func (s *authService) GetAuthSetting(ctx context.Context) (*dto.AuthSettingResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	setting, err := uow.UserRepository().GetAuthSetting(ctx)
	if err != nil {
		return nil, err
	}
	enabled := setting != nil && setting.GlobalTwoFactorEnabled
	return &dto.AuthSettingResponse{GlobalTwoFactorEnabled: enabled}, nil
}

func (s *authService) UpdateAuthSetting(ctx context.Context, req *dto.UpdateAuthSettingRequest) (*dto.AuthSettingResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	setting := &entity.AuthSetting{
		GlobalTwoFactorEnabled: req.GlobalTwoFactorEnabled,
		UpdatedAt:              time.Now(),
	}
	if err := uow.UserRepository().SaveAuthSetting(ctx, setting); err != nil {
		return nil, err
	}

	return &dto.AuthSettingResponse{GlobalTwoFactorEnabled: setting.GlobalTwoFactorEnabled}, nil
}

func (s *authService) signToken(user *entity.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.Id.String(),
		"role":    user.Role,
		"exp":     time.Now().Add(s.tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *authService) publishLogin(ctx context.Context, user *entity.User, twoFactor bool) {
	if s.eventPublisher == nil {
		return
	}
	event := events.NewUserLogin(user.Id.String(), user.Email, twoFactor)
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		fmt.Printf("[WARN] Failed to publish USER_LOGIN event: %v\n", err)
	}
}
