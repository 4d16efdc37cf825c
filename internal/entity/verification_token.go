package entity

import (
	"time"

	"github.com/google/uuid"
)

type TokenPurpose string

const (
	TokenPurposeEmailVerify   TokenPurpose = "email_verify"
	TokenPurposePasswordReset TokenPurpose = "password_reset"
)

// VerificationToken is a single-use secret proving email ownership. The raw
// token only ever travels inside the outbound email link; at rest we keep a
// sha256 hash. Rows are deleted on consumption, so a re-presented token is
// indistinguishable from one that never existed.
type VerificationToken struct {
	ID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index"`
	User   User      `gorm:"constraint:OnDelete:CASCADE"`

	TokenHash string       `gorm:"type:text;uniqueIndex;not null"`
	Purpose   TokenPurpose `gorm:"type:token_purpose;not null"`

	CreatedAt time.Time
}
