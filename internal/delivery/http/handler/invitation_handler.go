package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"hireflow/internal/delivery/http/middleware"
	"hireflow/internal/pkg/response"
	"hireflow/internal/usecase"
)

type InvitationHandler struct {
	uc usecase.InvitationUsecase
}

type inviteRequest struct {
	Count int `json:"count"`
}

func NewInvitationHandler(uc usecase.InvitationUsecase) *InvitationHandler {
	return &InvitationHandler{uc: uc}
}

func (h *InvitationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/jobs/:job_id/invitations", h.Invite)
}

// Invite runs the batch invitation for the top candidates of a job. Partial
// failure still returns 200: the summary carries the per-candidate outcomes.
func (h *InvitationHandler) Invite(c fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("job_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	req := inviteRequest{Count: defaultShortlistSize}
	if len(c.Body()) > 0 {
		if err := c.Bind().Body(&req); err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
		}
	}

	summary, err := h.uc.InviteTopCandidates(c.Context(), jobID, req.Count)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidInput):
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid invitation count", nil, err)
		case errors.Is(err, usecase.ErrJobNotFound):
			return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
		default:
			return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
		}
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, summary)
}
