package repository

import (
	"context"
	"errors"

	"lawconnect/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LawyerProfileRepository interface {
	Create(ctx context.Context, profile *entity.LawyerProfile) error
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.LawyerProfile, error)
	Update(ctx context.Context, profile *entity.LawyerProfile) error
	ListApproved(ctx context.Context, limit int) ([]entity.LawyerProfile, error)
}

type lawyerProfileRepository struct {
	db *gorm.DB
}

func NewLawyerProfileRepository(db *gorm.DB) LawyerProfileRepository {
	return &lawyerProfileRepository{db: db}
}

func (r *lawyerProfileRepository) Create(ctx context.Context, profile *entity.LawyerProfile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

func (r *lawyerProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.LawyerProfile, error) {
	var profile entity.LawyerProfile
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&profile).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &profile, err
}

func (r *lawyerProfileRepository) Update(ctx context.Context, profile *entity.LawyerProfile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

func (r *lawyerProfileRepository) ListApproved(ctx context.Context, limit int) ([]entity.LawyerProfile, error) {
	var profiles []entity.LawyerProfile
	query := r.db.WithContext(ctx).
		Preload("User").
		Where("approved = true").
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}
