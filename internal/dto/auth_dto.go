package dto

import (
	"time"

	"lawconnect/internal/entity"
)

type RegisterCustomerRequest struct {
	Username        string `json:"username" validate:"required,max=150"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"password_confirm" validate:"required"`
}

// Lawyer registration arrives as multipart form data because of the bar
// certificate file; the file itself is read off the request separately.
type RegisterLawyerRequest struct {
	Username        string `form:"username" validate:"required,max=150"`
	Email           string `form:"email" validate:"required,email"`
	Password        string `form:"password" validate:"required,min=8"`
	PasswordConfirm string `form:"password_confirm" validate:"required"`
	Specialty       string `form:"specialty" validate:"required,max=200"`
	YearsExperience int    `form:"years_experience" validate:"gte=0"`
	BarNumber       string `form:"bar_number" validate:"required,max=100"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken      string `json:"access_token,omitempty"`
	ExpiresIn        int64  `json:"expires_in,omitempty"`
	RefreshToken     string `json:"refresh_token,omitempty"`
	RefreshExpiresIn int64  `json:"refresh_expires_in,omitempty"`
}

type PasswordForgotRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type PasswordResetRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

type UpdateCustomerSettingsRequest struct {
	Username    string `json:"username" validate:"omitempty,max=150"`
	Email       string `json:"email" validate:"omitempty,email"`
	NewPassword string `json:"new_password" validate:"omitempty,min=8"`
}

type UpdateLawyerSettingsRequest struct {
	Username        string `form:"username" validate:"omitempty,max=150"`
	Email           string `form:"email" validate:"omitempty,email"`
	NewPassword     string `form:"new_password" validate:"omitempty,min=8"`
	Specialty       string `form:"specialty" validate:"omitempty,max=200"`
	YearsExperience *int   `form:"years_experience" validate:"omitempty,gte=0"`
	BarNumber       string `form:"bar_number" validate:"omitempty,max=100"`
}

type LawyerProfileResponse struct {
	ID              string `json:"id"`
	Specialty       string `json:"specialty"`
	YearsExperience int    `json:"years_experience"`
	BarNumber       string `json:"bar_number,omitempty"`
	CertificateURL  string `json:"certificate_url,omitempty"`
	Approved        bool   `json:"approved"`
}

type UserResponse struct {
	ID            string                 `json:"id"`
	Username      string                 `json:"username"`
	Email         string                 `json:"email"`
	Kind          string                 `json:"kind"`
	IsActive      bool                   `json:"is_active"`
	CreatedAt     time.Time              `json:"created_at"`
	LawyerProfile *LawyerProfileResponse `json:"lawyer_profile,omitempty"`
}

func UserResponseFromEntity(user *entity.User) UserResponse {
	response := UserResponse{
		ID:        user.ID.String(),
		Username:  user.Username,
		Email:     user.Email,
		Kind:      string(user.Kind),
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
	}
	if user.LawyerProfile != nil {
		profile := LawyerProfileResponseFromEntity(user.LawyerProfile)
		response.LawyerProfile = &profile
	}
	return response
}

func LawyerProfileResponseFromEntity(profile *entity.LawyerProfile) LawyerProfileResponse {
	return LawyerProfileResponse{
		ID:              profile.ID.String(),
		Specialty:       profile.Specialty,
		YearsExperience: profile.YearsExperience,
		BarNumber:       profile.BarNumber,
		CertificateURL:  profile.CertificateURL,
		Approved:        profile.Approved,
	}
}
