package service

import (
	"context"
	"io"
	"time"

	"lawconnect/internal/entity"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	RefreshTokenTTL time.Duration
	ResetTokenTTL   time.Duration

	// AdminReviewEmail receives a notice for every lawyer signup. Empty
	// disables the notification, it is not an error.
	AdminReviewEmail string
}

// LawyerSignupNotice summarizes a lawyer application for the reviewing admin.
type LawyerSignupNotice struct {
	Username        string
	Email           string
	Specialty       string
	YearsExperience int
	BarNumber       string
	CertificateURL  string
}

type EmailSender interface {
	SendVerificationEmail(ctx context.Context, email string, token string) error
	SendPasswordResetEmail(ctx context.Context, email string, token string) error
	SendLawyerSignupNotice(ctx context.Context, email string, notice LawyerSignupNotice) error
}

// CertificateStore persists uploaded bar certificates and returns a stable URL.
type CertificateStore interface {
	Upload(ctx context.Context, filename string, file io.Reader) (string, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash string, password string) bool
}

type AccessTokenIssuer interface {
	IssueAccessToken(user entity.User, sessionID uuid.UUID) (string, time.Duration, error)
}

type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now()
}

type BcryptPasswordHasher struct {
	Cost int
}

func (h BcryptPasswordHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func (h BcryptPasswordHasher) Verify(hash string, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
