package handler

import (
	"errors"
	"net/http"

	"lawconnect/api/middleware"
	"lawconnect/internal/dto"
	"lawconnect/internal/entity"
	"lawconnect/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	homeQuestionLimit = 5
	homeLawyerLimit   = 6
)

type QuestionHandler struct {
	Questions *service.QuestionService
	Accounts  *service.AccountService
	Validate  *validator.Validate
}

func NewQuestionHandler(questions *service.QuestionService, accounts *service.AccountService, validate *validator.Validate) *QuestionHandler {
	return &QuestionHandler{
		Questions: questions,
		Accounts:  accounts,
		Validate:  validate,
	}
}

// Home backs the landing page: the latest answered questions plus a few
// approved lawyers.
func (h *QuestionHandler) Home(c echo.Context) error {
	ctx := c.Request().Context()
	questions, err := h.Questions.LatestAnswered(ctx, homeQuestionLimit)
	if err != nil {
		return writeServiceError(c, err)
	}
	lawyers, err := h.Accounts.ListApprovedLawyers(ctx, homeLawyerLimit)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.HomeResponse{
		LatestQuestions: dto.QuestionResponsesFromEntities(questions),
		Lawyers:         dto.PublicLawyerResponsesFromEntities(lawyers),
	})
}

func (h *QuestionHandler) List(c echo.Context) error {
	kind, _ := middleware.KindFromContext(c)
	viewerIsLawyer := kind == entity.AccountKindLawyer
	questions, err := h.Questions.ListPublic(c.Request().Context(), viewerIsLawyer)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.QuestionResponsesFromEntities(questions))
}

func (h *QuestionHandler) Ask(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}
	var req dto.AskQuestionRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	question, err := h.Questions.Ask(c.Request().Context(), userID, service.AskInput{
		Title: req.Title,
		Body:  req.Body,
	})
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, dto.QuestionResponseFromEntity(question))
}

func (h *QuestionHandler) Answer(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}
	questionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return writeError(c, http.StatusBadRequest, errors.New("invalid question id"))
	}
	var req dto.AnswerQuestionRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.Questions.Answer(c.Request().Context(), questionID, userID, req.AnswerText); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *QuestionHandler) Lawyers(c echo.Context) error {
	lawyers, err := h.Accounts.ListApprovedLawyers(c.Request().Context(), 0)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.PublicLawyerResponsesFromEntities(lawyers))
}

func (h *QuestionHandler) validate(payload any) error {
	if h.Validate == nil {
		return nil
	}
	return h.Validate.Struct(payload)
}
