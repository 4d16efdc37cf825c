package entity

import (
	"time"

	"github.com/google/uuid"
)

type CustomerProfile struct {
	ID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	User   User      `gorm:"constraint:OnDelete:CASCADE"`

	CreatedAt time.Time
}
