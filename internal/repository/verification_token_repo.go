package repository

import (
	"context"
	"errors"

	"lawconnect/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VerificationTokenRepository interface {
	Create(ctx context.Context, token *entity.VerificationToken) error
	FindByHash(ctx context.Context, tokenHash string, purpose entity.TokenPurpose) (*entity.VerificationToken, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountByUser(ctx context.Context, userID uuid.UUID, purpose entity.TokenPurpose) (int64, error)
}

type verificationTokenRepository struct {
	db *gorm.DB
}

func NewVerificationTokenRepository(db *gorm.DB) VerificationTokenRepository {
	return &verificationTokenRepository{db: db}
}

func (r *verificationTokenRepository) Create(ctx context.Context, t *entity.VerificationToken) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *verificationTokenRepository) FindByHash(
	ctx context.Context,
	tokenHash string,
	purpose entity.TokenPurpose,
) (*entity.VerificationToken, error) {

	var token entity.VerificationToken
	err := r.db.WithContext(ctx).
		Where("token_hash = ? AND purpose = ?", tokenHash, purpose).
		First(&token).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &token, err
}

func (r *verificationTokenRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&entity.VerificationToken{}).
		Error
}

func (r *verificationTokenRepository) CountByUser(
	ctx context.Context,
	userID uuid.UUID,
	purpose entity.TokenPurpose,
) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.VerificationToken{}).
		Where("user_id = ? AND purpose = ?", userID, purpose).
		Count(&count).
		Error
	return count, err
}
