package entity

import (
	"time"

	"github.com/google/uuid"
)

type LawyerProfile struct {
	ID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	User   User      `gorm:"constraint:OnDelete:CASCADE"`

	Specialty       string `gorm:"type:varchar(200);not null"`
	YearsExperience int    `gorm:"not null"`
	BarNumber       string `gorm:"type:varchar(100);not null"`
	CertificateURL  string `gorm:"type:text"`

	// Flipped out-of-band by an administrator after reviewing the bar
	// certificate. Gates public listing only, never answering.
	Approved bool `gorm:"default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
