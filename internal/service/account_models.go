package service

import "io"

type RegisterCustomerInput struct {
	Username        string
	Email           string
	Password        string
	PasswordConfirm string
}

type RegisterLawyerInput struct {
	Username        string
	Email           string
	Password        string
	PasswordConfirm string

	Specialty       string
	YearsExperience int
	BarNumber       string
	CertificateName string
	Certificate     io.Reader
}

type LoginInput struct {
	Username  string
	Password  string
	IPAddress *string
	UserAgent *string
}

type LoginResult struct {
	AccessToken      string
	ExpiresIn        int64
	RefreshToken     string
	RefreshExpiresIn int64
}

type UpdateCustomerSettingsInput struct {
	Username    string
	Email       string
	NewPassword string
}

type UpdateLawyerSettingsInput struct {
	Username    string
	Email       string
	NewPassword string

	Specialty       string
	YearsExperience *int
	BarNumber       string
	CertificateName string
	Certificate     io.Reader
}
