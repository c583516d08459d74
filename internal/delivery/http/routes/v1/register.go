package v1

import (
	"github.com/gofiber/fiber/v3"

	"hireflow/internal/delivery/http/handler"
	"hireflow/internal/delivery/http/middleware"
)

// Handlers carries the wired handler set. The container builds it; routing
// only decides which surface each handler mounts on.
type Handlers struct {
	Auth       *handler.AuthHandler
	Resume     *handler.ResumeHandler
	Job        *handler.JobHandler
	Candidate  *handler.CandidateHandler
	Invitation *handler.InvitationHandler
	Session    *handler.SessionHandler

	AuthMW *middleware.AuthMiddleware
}

func Register(r fiber.Router, h Handlers) {
	if r == nil {
		return
	}

	if h.Auth != nil {
		h.Auth.RegisterRoutes(r.Group("/auth"))
	}

	// Candidate-facing endpoints authorize via assessment token.
	if h.Session != nil {
		h.Session.RegisterPublicRoutes(r)
	}

	if h.AuthMW == nil {
		return
	}
	protected := r.Group("", h.AuthMW.Middleware())

	if h.Resume != nil {
		h.Resume.RegisterRoutes(protected)
	}
	if h.Job != nil {
		h.Job.RegisterRoutes(protected)
	}
	if h.Candidate != nil {
		h.Candidate.RegisterRoutes(protected)
	}
	if h.Invitation != nil {
		h.Invitation.RegisterRoutes(protected)
	}
	if h.Session != nil {
		h.Session.RegisterRecruiterRoutes(protected)
	}
}
