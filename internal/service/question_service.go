package service

import (
	"context"
	"strings"

	"lawconnect/internal/entity"
	"lawconnect/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type AskInput struct {
	Title string
	Body  string
}

// QuestionService owns the public question board: customers ask, lawyers
// answer. Approval never gates answering, only the public lawyer directory.
type QuestionService struct {
	store  repository.Store
	logger logrus.FieldLogger
}

func NewQuestionService(store repository.Store, logger logrus.FieldLogger) *QuestionService {
	return &QuestionService{store: store, logger: logger}
}

// Ask records a question with the asker's name and email snapshotted onto
// the row, so the question outlives later account changes.
func (s *QuestionService) Ask(ctx context.Context, userID uuid.UUID, input AskInput) (*entity.Question, error) {
	user, err := s.store.Users().FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if user.Kind != entity.AccountKindCustomer {
		return nil, ErrNotAuthorized
	}

	title := strings.TrimSpace(input.Title)
	body := strings.TrimSpace(input.Body)
	if title == "" || body == "" {
		return nil, ErrInvalidInput
	}

	question := &entity.Question{
		Title:      title,
		Body:       body,
		AskerName:  user.Username,
		AskerEmail: user.Email,
	}
	if err := s.store.Questions().Create(ctx, question); err != nil {
		return nil, err
	}
	return question, nil
}

// Answer sets the answer triplet on one question row. Re-answering an
// already-answered question overwrites the previous answer; that is the
// correction mechanism, not an oversight.
func (s *QuestionService) Answer(ctx context.Context, questionID uuid.UUID, userID uuid.UUID, answerText string) error {
	user, err := s.store.Users().FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	if user.Kind != entity.AccountKindLawyer {
		return ErrNotAuthorized
	}

	profile, err := s.store.LawyerProfiles().FindByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if profile == nil {
		return ErrNotAuthorized
	}

	trimmed := strings.TrimSpace(answerText)
	if trimmed == "" {
		return ErrEmptyAnswer
	}

	question, err := s.store.Questions().FindByID(ctx, questionID)
	if err != nil {
		return err
	}
	if question == nil {
		return ErrQuestionNotFound
	}

	if err := s.store.Questions().SetAnswer(ctx, questionID, trimmed, profile.ID); err != nil {
		return err
	}

	log := &entity.AuditLog{
		UserID: &userID,
		Action: entity.AuditQuestionAnswered,
	}
	if err := s.store.AuditLogs().Log(ctx, log); err != nil {
		s.log().WithError(err).Warn("audit log write failed")
	}
	return nil
}

// ListPublic returns all questions for lawyers and answered-only for
// everyone else.
func (s *QuestionService) ListPublic(ctx context.Context, viewerIsLawyer bool) ([]entity.Question, error) {
	if viewerIsLawyer {
		return s.store.Questions().ListAll(ctx)
	}
	return s.store.Questions().ListAnswered(ctx, 0)
}

func (s *QuestionService) LatestAnswered(ctx context.Context, limit int) ([]entity.Question, error) {
	return s.store.Questions().ListAnswered(ctx, limit)
}

func (s *QuestionService) log() logrus.FieldLogger {
	if s.logger == nil {
		return logrus.StandardLogger()
	}
	return s.logger
}
