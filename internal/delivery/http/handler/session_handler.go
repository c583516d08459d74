package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"hireflow/internal/delivery/http/dto"
	"hireflow/internal/delivery/http/middleware"
	"hireflow/internal/pkg/response"
	"hireflow/internal/usecase"
)

type SessionHandler struct {
	uc usecase.SessionUsecase
}

type startSessionRequest struct {
	Token string `json:"token"`
}

type submitResponseRequest struct {
	QuestionIndex int    `json:"question_index"`
	Answer        string `json:"answer"`
}

func NewSessionHandler(uc usecase.SessionUsecase) *SessionHandler {
	return &SessionHandler{uc: uc}
}

// RegisterPublicRoutes mounts the candidate-facing surface. These endpoints
// are authorized by the assessment token, not by a recruiter JWT.
func (h *SessionHandler) RegisterPublicRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/sessions", h.Start)
	r.Post("/interviews/:interview_id/responses", h.Submit)
	r.Post("/interviews/:interview_id/finalize", h.Finalize)
}

// RegisterRecruiterRoutes mounts the recruiter-facing review surface.
func (h *SessionHandler) RegisterRecruiterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/interviews/:interview_id/evaluate", h.Evaluate)
	r.Get("/interviews/:interview_id/scorecard", h.Scorecard)
}

func (h *SessionHandler) Start(c fiber.Ctx) error {
	var req startSessionRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	view, err := h.uc.StartSession(c.Context(), req.Token)
	if err != nil {
		return mapSessionError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, view)
}

func (h *SessionHandler) Submit(c fiber.Ctx) error {
	interviewID, err := uuid.Parse(c.Params("interview_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	var req submitResponseRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	result, err := h.uc.SubmitResponse(c.Context(), interviewID, req.QuestionIndex, req.Answer)
	if err != nil {
		return mapSessionError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, result)
}

func (h *SessionHandler) Finalize(c fiber.Ctx) error {
	interviewID, err := uuid.Parse(c.Params("interview_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	sc, err := h.uc.FinalizeSession(c.Context(), interviewID)
	if err != nil {
		if errors.Is(err, usecase.ErrEvaluationFailed) {
			// Completion held; only grading is outstanding.
			return response.Success(c, fiber.StatusAccepted, "completed, evaluation pending", nil)
		}
		return mapSessionError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromScorecard(sc))
}

func (h *SessionHandler) Evaluate(c fiber.Ctx) error {
	interviewID, err := uuid.Parse(c.Params("interview_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	sc, err := h.uc.EvaluateInterview(c.Context(), interviewID)
	if err != nil {
		return mapSessionError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromScorecard(sc))
}

func (h *SessionHandler) Scorecard(c fiber.Ctx) error {
	interviewID, err := uuid.Parse(c.Params("interview_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	sc, err := h.uc.GetScorecard(c.Context(), interviewID)
	if err != nil {
		return mapSessionError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromScorecard(sc))
}

func mapSessionError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrInvalidToken):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid assessment token", nil, err)
	case errors.Is(err, usecase.ErrTokenAlreadyUsed):
		return middleware.NewAppError(fiber.StatusConflict, "Assessment token already used", nil, err)
	case errors.Is(err, usecase.ErrTokenExpired):
		return middleware.NewAppError(fiber.StatusGone, "Assessment token expired", nil, err)
	case errors.Is(err, usecase.ErrInterviewNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Interview not found", nil, err)
	case errors.Is(err, usecase.ErrScorecardNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Scorecard not available", nil, err)
	case errors.Is(err, usecase.ErrInterviewNotActive):
		return middleware.NewAppError(fiber.StatusConflict, "Interview is not active", nil, err)
	case errors.Is(err, usecase.ErrSessionExpired):
		return middleware.NewAppError(fiber.StatusGone, "Interview session expired", nil, err)
	case errors.Is(err, usecase.ErrDuplicateResponse):
		return middleware.NewAppError(fiber.StatusConflict, "Response already submitted", nil, err)
	case errors.Is(err, usecase.ErrEvaluationFailed):
		return middleware.NewAppError(fiber.StatusServiceUnavailable, "Evaluation temporarily unavailable", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
