package entity

import (
	"time"

	"github.com/google/uuid"
)

// AccountKind tags an account as one of the two roles the platform knows
// about. Authorization dispatches on this tag, not on profile presence.
type AccountKind string

const (
	AccountKindCustomer AccountKind = "customer"
	AccountKindLawyer   AccountKind = "lawyer"
)

type User struct {
	ID           uuid.UUID   `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Username     string      `gorm:"type:varchar(150);uniqueIndex;not null"`
	Email        string      `gorm:"type:varchar(255);not null"`
	PasswordHash string      `gorm:"type:text;not null"`
	Kind         AccountKind `gorm:"type:account_kind;not null"`

	// Accounts stay inactive until the email verification link is used.
	IsActive bool `gorm:"default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time

	CustomerProfile *CustomerProfile
	LawyerProfile   *LawyerProfile
	Sessions        []Session
}
