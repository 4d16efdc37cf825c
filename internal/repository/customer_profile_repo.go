package repository

import (
	"context"
	"errors"

	"lawconnect/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CustomerProfileRepository interface {
	Create(ctx context.Context, profile *entity.CustomerProfile) error
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.CustomerProfile, error)
}

type customerProfileRepository struct {
	db *gorm.DB
}

func NewCustomerProfileRepository(db *gorm.DB) CustomerProfileRepository {
	return &customerProfileRepository{db: db}
}

func (r *customerProfileRepository) Create(ctx context.Context, profile *entity.CustomerProfile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

func (r *customerProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.CustomerProfile, error) {
	var profile entity.CustomerProfile
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&profile).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &profile, err
}
