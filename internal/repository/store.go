package repository

import (
	"context"

	"gorm.io/gorm"
)

// Store bundles the repositories and carries the transaction boundary.
// Atomic runs fn against repositories bound to one database transaction;
// returning an error rolls the whole unit back.
type Store interface {
	Users() UserRepository
	CustomerProfiles() CustomerProfileRepository
	LawyerProfiles() LawyerProfileRepository
	VerificationTokens() VerificationTokenRepository
	Questions() QuestionRepository
	Sessions() SessionRepository
	AuditLogs() AuditLogRepository

	Atomic(ctx context.Context, fn func(Store) error) error
}

type gormStore struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Users() UserRepository { return NewUserRepository(s.db) }

func (s *gormStore) CustomerProfiles() CustomerProfileRepository {
	return NewCustomerProfileRepository(s.db)
}

func (s *gormStore) LawyerProfiles() LawyerProfileRepository {
	return NewLawyerProfileRepository(s.db)
}

func (s *gormStore) VerificationTokens() VerificationTokenRepository {
	return NewVerificationTokenRepository(s.db)
}

func (s *gormStore) Questions() QuestionRepository { return NewQuestionRepository(s.db) }

func (s *gormStore) Sessions() SessionRepository { return NewSessionRepository(s.db) }

func (s *gormStore) AuditLogs() AuditLogRepository { return NewAuditLogRepository(s.db) }

func (s *gormStore) Atomic(ctx context.Context, fn func(Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}
