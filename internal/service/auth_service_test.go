package service

import (
	"context"
	"testing"
	"time"

	"errortrack-be/internal/dto"
	"errortrack-be/internal/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

func newAuthFixture(t *testing.T) (*fakeFactory, *fakeEmailService, IAuthService) {
	t.Helper()
	factory := newFakeFactory()
	email := &fakeEmailService{}
	svc := NewAuthService(factory, email, nil, "test-secret", 72, 300)
	return factory, email, svc
}

func seedUser(t *testing.T, factory *fakeFactory, email, password string, twoFactor bool) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	hashStr := string(hash)
	user := &entity.User{
		Id:                uuid.New(),
		Email:             email,
		PasswordHash:      &hashStr,
		FullName:          "Test Operator",
		Role:              entity.UserRoleOperator,
		Status:            entity.UserStatusActive,
		RequiresTwoFactor: twoFactor,
	}
	if err := factory.uow.userRepo.Create(context.Background(), user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func TestLoginWithoutTwoFactorReturnsToken(t *testing.T) {
	factory, _, svc := newAuthFixture(t)
	seedUser(t, factory, "ops@example.com", "hunter2", false)

	res, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "ops@example.com",
		Password: "hunter2",
	}, "10.0.0.1", "test-agent")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if res.OtpRequired {
		t.Error("OtpRequired = true, want false")
	}
	if res.Token == "" {
		t.Error("expected a signed token")
	}
}

func TestLoginSignsTokenWithConfiguredSecret(t *testing.T) {
	factory, _, svc := newAuthFixture(t)
	user := seedUser(t, factory, "ops@example.com", "hunter2", false)

	res, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "ops@example.com",
		Password: "hunter2",
	}, "", "")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	parsed, err := jwt.Parse(res.Token, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil {
		t.Fatalf("token must verify against the configured secret: %v", err)
	}
	if !parsed.Valid {
		t.Fatal("token must be valid")
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatal("expected map claims")
	}
	if claims["user_id"] != user.Id.String() {
		t.Errorf("user_id claim = %v, want %s", claims["user_id"], user.Id.String())
	}
}

func TestVerifyOtpHonorsConfiguredTTL(t *testing.T) {
	factory := newFakeFactory()
	svc := NewAuthService(factory, &fakeEmailService{}, nil, "test-secret", 72, 600)
	user := seedUser(t, factory, "ops@example.com", "hunter2", true)

	// 400 seconds old: stale under a five minute window, fresh under ten.
	_ = factory.uow.userRepo.UpsertOTP(context.Background(), &entity.UserOTP{
		UserId:    user.Id,
		Otp:       "042517",
		CreatedAt: time.Now().Add(-400 * time.Second),
	})

	if _, err := svc.VerifyOtp(context.Background(), &dto.VerifyOtpRequest{
		Email: "ops@example.com",
		Otp:   "042517",
	}); err != nil {
		t.Errorf("a 400 second old code must verify under a 600 second window: %v", err)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	factory, _, svc := newAuthFixture(t)
	seedUser(t, factory, "ops@example.com", "hunter2", false)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "ops@example.com",
		Password: "wrong",
	}, "", "")
	if err == nil {
		t.Fatal("expected invalid credentials error")
	}
}

func TestLoginWithUserFlagIssuesOtp(t *testing.T) {
	factory, _, svc := newAuthFixture(t)
	user := seedUser(t, factory, "ops@example.com", "hunter2", true)

	res, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "ops@example.com",
		Password: "hunter2",
	}, "", "")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if !res.OtpRequired {
		t.Fatal("OtpRequired = false, want true")
	}
	if res.Token != "" {
		t.Error("no token may be issued before OTP verification")
	}

	otp, _ := factory.uow.userRepo.GetOTP(context.Background(), user.Id)
	if otp == nil {
		t.Fatal("expected a stored OTP")
	}
	if len(otp.Otp) != 6 {
		t.Errorf("otp length = %d, want 6", len(otp.Otp))
	}
}

func TestLoginGlobalFlagForcesOtpForAllUsers(t *testing.T) {
	factory, _, svc := newAuthFixture(t)
	user := seedUser(t, factory, "ops@example.com", "hunter2", false)
	_ = factory.uow.userRepo.SaveAuthSetting(context.Background(), &entity.AuthSetting{
		GlobalTwoFactorEnabled: true,
	})

	res, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "ops@example.com",
		Password: "hunter2",
	}, "", "")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if !res.OtpRequired {
		t.Fatal("global flag must require OTP even when user flag is off")
	}

	otp, _ := factory.uow.userRepo.GetOTP(context.Background(), user.Id)
	if otp == nil {
		t.Fatal("expected a stored OTP")
	}
}

func TestVerifyOtpRoundTrip(t *testing.T) {
	factory, _, svc := newAuthFixture(t)
	user := seedUser(t, factory, "ops@example.com", "hunter2", true)

	if _, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "ops@example.com",
		Password: "hunter2",
	}, "", ""); err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	stored, _ := factory.uow.userRepo.GetOTP(context.Background(), user.Id)
	if stored == nil {
		t.Fatal("expected a stored OTP")
	}

	res, err := svc.VerifyOtp(context.Background(), &dto.VerifyOtpRequest{
		Email: "ops@example.com",
		Otp:   stored.Otp,
	})
	if err != nil {
		t.Fatalf("VerifyOtp() error = %v", err)
	}
	if res.Token == "" {
		t.Error("expected a signed token after OTP verification")
	}

	// The code is cleared on success; replaying it must fail.
	if _, err := svc.VerifyOtp(context.Background(), &dto.VerifyOtpRequest{
		Email: "ops@example.com",
		Otp:   stored.Otp,
	}); err == nil {
		t.Error("replayed OTP must be rejected")
	}
}

func TestVerifyOtpRejectsWrongCode(t *testing.T) {
	factory, _, svc := newAuthFixture(t)
	user := seedUser(t, factory, "ops@example.com", "hunter2", true)

	_ = factory.uow.userRepo.UpsertOTP(context.Background(), &entity.UserOTP{
		UserId:    user.Id,
		Otp:       "042517",
		CreatedAt: time.Now(),
	})

	if _, err := svc.VerifyOtp(context.Background(), &dto.VerifyOtpRequest{
		Email: "ops@example.com",
		Otp:   "042518",
	}); err == nil {
		t.Error("wrong code must be rejected")
	}

	// The failed attempt must not consume the stored code.
	otp, _ := factory.uow.userRepo.GetOTP(context.Background(), user.Id)
	if otp == nil {
		t.Error("stored OTP must survive a failed verification")
	}
}

func TestVerifyOtpRejectsExpiredCode(t *testing.T) {
	factory, _, svc := newAuthFixture(t)
	user := seedUser(t, factory, "ops@example.com", "hunter2", true)

	_ = factory.uow.userRepo.UpsertOTP(context.Background(), &entity.UserOTP{
		UserId:    user.Id,
		Otp:       "042517",
		CreatedAt: time.Now().Add(-301 * time.Second),
	})

	if _, err := svc.VerifyOtp(context.Background(), &dto.VerifyOtpRequest{
		Email: "ops@example.com",
		Otp:   "042517",
	}); err == nil {
		t.Error("a 301 second old code must be rejected")
	}
}

func TestVerifyOtpAcceptsLeadingZeros(t *testing.T) {
	factory, _, svc := newAuthFixture(t)
	user := seedUser(t, factory, "ops@example.com", "hunter2", true)

	_ = factory.uow.userRepo.UpsertOTP(context.Background(), &entity.UserOTP{
		UserId:    user.Id,
		Otp:       "000042",
		CreatedAt: time.Now(),
	})

	if _, err := svc.VerifyOtp(context.Background(), &dto.VerifyOtpRequest{
		Email: "ops@example.com",
		Otp:   "000042",
	}); err != nil {
		t.Errorf("zero-padded code must verify exactly: %v", err)
	}
}

func TestResendOtpOverwritesPreviousCode(t *testing.T) {
	factory, _, svc := newAuthFixture(t)
	user := seedUser(t, factory, "ops@example.com", "hunter2", true)

	_ = factory.uow.userRepo.UpsertOTP(context.Background(), &entity.UserOTP{
		UserId:    user.Id,
		Otp:       "111111",
		CreatedAt: time.Now().Add(-time.Minute),
	})

	if err := svc.ResendOtp(context.Background(), "ops@example.com"); err != nil {
		t.Fatalf("ResendOtp() error = %v", err)
	}

	otp, _ := factory.uow.userRepo.GetOTP(context.Background(), user.Id)
	if otp == nil {
		t.Fatal("expected a stored OTP")
	}
	if otp.Otp == "111111" && otp.CreatedAt.Before(time.Now().Add(-30*time.Second)) {
		t.Error("resend must overwrite the previous code or refresh its timestamp")
	}
}

func TestUpdateAuthSettingPersists(t *testing.T) {
	_, _, svc := newAuthFixture(t)

	res, err := svc.UpdateAuthSetting(context.Background(), &dto.UpdateAuthSettingRequest{
		GlobalTwoFactorEnabled: true,
	})
	if err != nil {
		t.Fatalf("UpdateAuthSetting() error = %v", err)
	}
	if !res.GlobalTwoFactorEnabled {
		t.Error("setting must be enabled after update")
	}

	got, err := svc.GetAuthSetting(context.Background())
	if err != nil {
		t.Fatalf("GetAuthSetting() error = %v", err)
	}
	if !got.GlobalTwoFactorEnabled {
		t.Error("setting must round-trip")
	}
}
