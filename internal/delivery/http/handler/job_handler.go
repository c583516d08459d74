package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"hireflow/internal/delivery/http/dto"
	"hireflow/internal/delivery/http/middleware"
	"hireflow/internal/pkg/response"
	"hireflow/internal/repository"
	"hireflow/internal/usecase"
)

const defaultShortlistSize = 10

type JobHandler struct {
	jobs    repository.JobRepository
	ranking usecase.RankingUsecase
}

func NewJobHandler(jobs repository.JobRepository, ranking usecase.RankingUsecase) *JobHandler {
	return &JobHandler{jobs: jobs, ranking: ranking}
}

func (h *JobHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/jobs")
	grp.Get("", h.List)
	grp.Get("/:job_id", h.Get)
	grp.Get("/:job_id/shortlist", h.Shortlist)
}

func (h *JobHandler) List(c fiber.Ctx) error {
	limit := queryInt(c, "limit", 50)
	offset := queryInt(c, "offset", 0)

	jobs, err := h.jobs.ListActive(c.Context(), limit, offset)
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromJobs(jobs))
}

func (h *JobHandler) Get(c fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("job_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	j, err := h.jobs.FindByID(c.Context(), jobID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromJob(j))
}

func (h *JobHandler) Shortlist(c fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("job_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	n := queryInt(c, "n", defaultShortlistSize)

	ranked, err := h.ranking.RankCandidates(c.Context(), jobID, n)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidInput):
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid shortlist size", nil, err)
		case errors.Is(err, usecase.ErrJobNotFound):
			return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
		default:
			return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
		}
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, ranked)
}

func queryInt(c fiber.Ctx, key string, def int) int {
	v := c.Query(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
