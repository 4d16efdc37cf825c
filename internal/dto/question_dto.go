package dto

import (
	"time"

	"lawconnect/internal/entity"
)

type AskQuestionRequest struct {
	Title string `json:"title" validate:"required,max=200"`
	Body  string `json:"body" validate:"required"`
}

// AnswerText is not validator-gated so the workflow's own empty-answer check
// decides, whitespace included.
type AnswerQuestionRequest struct {
	AnswerText string `json:"answer_text"`
}

type QuestionResponse struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	AskerName  string    `json:"asker_name"`
	IsAnswered bool      `json:"is_answered"`
	AnswerText string    `json:"answer_text,omitempty"`
	AnsweredBy string    `json:"answered_by,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func QuestionResponseFromEntity(question *entity.Question) QuestionResponse {
	response := QuestionResponse{
		ID:         question.ID.String(),
		Title:      question.Title,
		Body:       question.Body,
		AskerName:  question.AskerName,
		IsAnswered: question.IsAnswered,
		AnswerText: question.AnswerText,
		CreatedAt:  question.CreatedAt,
	}
	if question.AnsweredByID != nil {
		response.AnsweredBy = question.AnsweredByID.String()
	}
	return response
}

func QuestionResponsesFromEntities(questions []entity.Question) []QuestionResponse {
	responses := make([]QuestionResponse, 0, len(questions))
	for i := range questions {
		responses = append(responses, QuestionResponseFromEntity(&questions[i]))
	}
	return responses
}

// PublicLawyerResponse is the directory card shown to visitors; it omits
// the certificate and bar number.
type PublicLawyerResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Specialty       string `json:"specialty"`
	YearsExperience int    `json:"years_experience"`
}

func PublicLawyerResponseFromEntity(profile *entity.LawyerProfile) PublicLawyerResponse {
	return PublicLawyerResponse{
		ID:              profile.ID.String(),
		Name:            profile.User.Username,
		Specialty:       profile.Specialty,
		YearsExperience: profile.YearsExperience,
	}
}

func PublicLawyerResponsesFromEntities(profiles []entity.LawyerProfile) []PublicLawyerResponse {
	responses := make([]PublicLawyerResponse, 0, len(profiles))
	for i := range profiles {
		responses = append(responses, PublicLawyerResponseFromEntity(&profiles[i]))
	}
	return responses
}

type HomeResponse struct {
	LatestQuestions []QuestionResponse     `json:"latest_questions"`
	Lawyers         []PublicLawyerResponse `json:"lawyers"`
}
