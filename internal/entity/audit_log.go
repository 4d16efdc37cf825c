package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type AuditAction string

const (
	AuditCustomerRegistered AuditAction = "customer_registered"
	AuditLawyerRegistered   AuditAction = "lawyer_registered"
	AuditEmailVerified      AuditAction = "email_verified"
	AuditLoginSuccess       AuditAction = "login_success"
	AuditLoginFailed        AuditAction = "login_failed"
	AuditLogout             AuditAction = "logout"
	AuditPasswordReset      AuditAction = "password_reset"
	AuditQuestionAnswered   AuditAction = "question_answered"
)

type AuditLog struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`

	UserID *uuid.UUID `gorm:"type:uuid;index"`
	User   *User      `gorm:"constraint:OnDelete:SET NULL"`

	IPAddress *string     `gorm:"type:varchar(45)"`
	Action    AuditAction `gorm:"type:audit_action;not null"`

	Metadata datatypes.JSON

	CreatedAt time.Time
}
