package auth

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/wpras/golfku/internal/user"
)

// OTP purposes. One unused code may be active per (email, purpose).
const (
	PurposeVerify = "verify"
	PurposeLogin  = "login"
	PurposeReset  = "reset"
)

type OTP struct {
	gorm.Model
	Email     string    `gorm:"not null;index"`
	Code      string    `gorm:"not null"`
	Purpose   string    `gorm:"not null;index"`
	ExpiresAt time.Time `gorm:"not null"`
	Used      bool      `gorm:"default:false"`
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required" example:"Budi Santoso"`
	Email    string `json:"email" binding:"required,email" example:"budi@example.com"`
	Password string `json:"password" binding:"required" example:"fairway88"`
	Phone    string `json:"phone,omitempty" example:"+628123456789"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"budi@example.com"`
	Password string `json:"password" binding:"required" example:"fairway88"`
}

// VerifyOTPRequest confirms a code sent by email. The same shape serves
// the register, login and reset verification endpoints.
type VerifyOTPRequest struct {
	Email string `json:"email" binding:"required,email" example:"budi@example.com"`
	Code  string `json:"otp" binding:"required,len=6" example:"123456"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email" example:"budi@example.com"`
}

type ResetPasswordRequest struct {
	Email      string `json:"email" binding:"required,email" example:"budi@example.com"`
	ResetToken string `json:"reset_token" binding:"required" example:"reset-token-123456"`
	Password   string `json:"password" binding:"required" example:"newfairway88"`
}

type UpdateProfileRequest struct {
	Name          *string         `json:"name,omitempty" example:"Budi Santoso"`
	Phone         *string         `json:"phone,omitempty" example:"+628123456789"`
	HandicapIndex *float64        `json:"handicap_index,omitempty" example:"18.4"`
	HomeCourse    *string         `json:"home_course,omitempty" example:"pig"`
	Bio           *string         `json:"bio,omitempty" example:"Weekend golfer chasing a single-digit handicap."`
	AvatarURL     *string         `json:"avatar_url,omitempty"`
	City          *string         `json:"city,omitempty" example:"Jakarta"`
	Stats         *datatypes.JSON `json:"stats,omitempty"`
}

type AuthResponse struct {
	AccessToken string       `json:"access_token"`
	User        UserResponse `json:"user"`
}

type UserResponse struct {
	ID            uint           `json:"id"`
	Name          string         `json:"name"`
	Email         string         `json:"email"`
	Phone         string         `json:"phone"`
	Verified      bool           `json:"verified"`
	HandicapIndex *float64       `json:"handicap_index"`
	HomeCourse    string         `json:"home_course"`
	Bio           string         `json:"bio"`
	AvatarURL     string         `json:"avatar_url"`
	City          string         `json:"city"`
	Stats         datatypes.JSON `json:"stats,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

func FilterUserRecord(u *user.User) UserResponse {
	return UserResponse{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		Phone:         u.Phone,
		Verified:      u.Verified,
		HandicapIndex: u.HandicapIndex,
		HomeCourse:    u.HomeCourse,
		Bio:           u.Bio,
		AvatarURL:     u.AvatarURL,
		City:          u.City,
		Stats:         u.Stats,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}
