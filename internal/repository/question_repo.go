package repository

import (
	"context"
	"errors"

	"lawconnect/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QuestionRepository interface {
	Create(ctx context.Context, question *entity.Question) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Question, error)
	SetAnswer(ctx context.Context, id uuid.UUID, answerText string, answeredByID uuid.UUID) error
	ListAll(ctx context.Context) ([]entity.Question, error)
	ListAnswered(ctx context.Context, limit int) ([]entity.Question, error)
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Create(ctx context.Context, question *entity.Question) error {
	return r.db.WithContext(ctx).Create(question).Error
}

func (r *questionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Question, error) {
	var question entity.Question
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&question).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &question, err
}

// SetAnswer updates the answer triplet in one statement so the row never
// carries a half-applied answer.
func (r *questionRepository) SetAnswer(ctx context.Context, id uuid.UUID, answerText string, answeredByID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&entity.Question{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"answer_text":    answerText,
			"is_answered":    true,
			"answered_by_id": answeredByID,
		}).
		Error
}

func (r *questionRepository) ListAll(ctx context.Context) ([]entity.Question, error) {
	var questions []entity.Question
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepository) ListAnswered(ctx context.Context, limit int) ([]entity.Question, error) {
	var questions []entity.Question
	query := r.db.WithContext(ctx).
		Where("is_answered = true").
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}
