package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"hireflow/internal/ai"
	"hireflow/internal/delivery/http/middleware"
	"hireflow/internal/pkg/response"
	"hireflow/internal/usecase"
)

type ResumeHandler struct {
	uc usecase.ExtractionUsecase
}

type extractRequest struct {
	ResumeText string `json:"resume_text"`
}

func NewResumeHandler(uc usecase.ExtractionUsecase) *ResumeHandler {
	return &ResumeHandler{uc: uc}
}

func (h *ResumeHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/resumes/extract", h.Extract)
	r.Post("/candidates/:candidate_id/extract", h.ExtractCandidate)
}

// Extract runs stateless extraction over posted resume text.
func (h *ResumeHandler) Extract(c fiber.Ctx) error {
	var req extractRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	p, err := h.uc.ExtractResumeProfile(c.Context(), req.ResumeText)
	if err != nil {
		return mapExtractionError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, p)
}

// ExtractCandidate extracts the candidate's stored resume and persists the
// profile.
func (h *ResumeHandler) ExtractCandidate(c fiber.Ctx) error {
	candidateID, err := uuid.Parse(c.Params("candidate_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	p, err := h.uc.ExtractAndStore(c.Context(), candidateID)
	if err != nil {
		return mapExtractionError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, p)
}

func mapExtractionError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Resume text is required", nil, err)
	case errors.Is(err, usecase.ErrCandidateNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Candidate not found", nil, err)
	case errors.Is(err, usecase.ErrAIUnavailable), ai.IsTransient(err):
		return middleware.NewAppError(fiber.StatusServiceUnavailable, "Extraction temporarily unavailable", nil, err)
	case ai.IsPermanent(err):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Resume could not be parsed", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
