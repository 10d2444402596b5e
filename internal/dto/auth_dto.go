package dto

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries either a session token (direct login) or an OTP
// challenge marker when a second factor is required.
type LoginResponse struct {
	Token       string `json:"token,omitempty"`
	OtpRequired bool   `json:"otp_required"`
	UserId      string `json:"user_id,omitempty"`
}

type VerifyOtpRequest struct {
	Email string `json:"email" validate:"required,email"`
	Otp   string `json:"otp" validate:"required,len=6"`
}

type VerifyOtpResponse struct {
	Token string `json:"token"`
}

type UpdateAuthSettingRequest struct {
	GlobalTwoFactorEnabled bool `json:"global_two_factor_enabled"`
}

type AuthSettingResponse struct {
	GlobalTwoFactorEnabled bool `json:"global_two_factor_enabled"`
}
