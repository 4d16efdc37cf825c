package entity

import (
	"time"

	"github.com/google/uuid"
)

// Question is a public question asked by a customer. Asker name and email are
// snapshotted at ask time so the row survives account changes. Deleting the
// answering lawyer's profile nulls AnsweredByID rather than deleting the row.
type Question struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`

	Title string `gorm:"type:varchar(200);not null"`
	Body  string `gorm:"type:text;not null"`

	AskerName  string `gorm:"type:varchar(150)"`
	AskerEmail string `gorm:"type:varchar(255)"`

	IsAnswered   bool   `gorm:"default:false"`
	AnswerText   string `gorm:"type:text"`
	AnsweredByID *uuid.UUID     `gorm:"type:uuid;index"`
	AnsweredBy   *LawyerProfile `gorm:"constraint:OnDelete:SET NULL"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
