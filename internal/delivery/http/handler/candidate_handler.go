package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"hireflow/internal/delivery/http/dto"
	"hireflow/internal/delivery/http/middleware"
	"hireflow/internal/pkg/response"
	"hireflow/internal/repository"
	"hireflow/internal/usecase"
)

type CandidateHandler struct {
	candidates repository.CandidateRepository
	scoring    usecase.ScoringUsecase
}

func NewCandidateHandler(candidates repository.CandidateRepository, scoring usecase.ScoringUsecase) *CandidateHandler {
	return &CandidateHandler{candidates: candidates, scoring: scoring}
}

func (h *CandidateHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/jobs/:job_id/candidates", h.ListByJob)
	grp := r.Group("/candidates")
	grp.Get("/:candidate_id", h.Get)
	grp.Post("/:candidate_id/score", h.Score)
}

func (h *CandidateHandler) ListByJob(c fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("job_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	limit := queryInt(c, "limit", 50)
	offset := queryInt(c, "offset", 0)

	cs, err := h.candidates.ListByJob(c.Context(), jobID, limit, offset)
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromCandidates(cs))
}

func (h *CandidateHandler) Get(c fiber.Ctx) error {
	candidateID, err := uuid.Parse(c.Params("candidate_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	cand, err := h.candidates.FindByID(c.Context(), candidateID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return middleware.NewAppError(fiber.StatusNotFound, "Candidate not found", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromCandidate(cand))
}

func (h *CandidateHandler) Score(c fiber.Ctx) error {
	candidateID, err := uuid.Parse(c.Params("candidate_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	breakdown, err := h.scoring.ScoreCandidate(c.Context(), candidateID)
	if err != nil {
		return mapScoringError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, breakdown)
}

func mapScoringError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrCandidateNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Candidate not found", nil, err)
	case errors.Is(err, usecase.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	case errors.Is(err, usecase.ErrProfileMissing):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Candidate profile not extracted yet", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
