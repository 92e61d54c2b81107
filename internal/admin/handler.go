// AngelaMos | 2026
// handler.go

package admin

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bakerycrew/crew-backend/internal/core"
	"github.com/bakerycrew/crew-backend/internal/middleware"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes expects r to already resolve the actor. The path is
// spelled out because /admin/users belongs to the user package.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequireStaff).Get("/admin/stats", h.Stats)
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		core.Unauthorized(w, "")
		return
	}

	overview, err := h.service.Overview(r.Context(), actor)
	switch {
	case errors.Is(err, core.ErrForbidden):
		core.Forbidden(w, "Access denied. Insufficient privileges.")
	case err != nil:
		core.InternalServerError(w, err)
	default:
		core.OK(w, overview)
	}
}
