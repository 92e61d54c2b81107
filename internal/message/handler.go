// AngelaMos | 2026
// handler.go

package message

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/bakerycrew/crew-backend/internal/core"
	"github.com/bakerycrew/crew-backend/internal/middleware"
	"github.com/bakerycrew/crew-backend/internal/policy"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: core.NewValidator(),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/messages", func(r chi.Router) {
		r.Post("/", h.Send)
		r.Get("/inbox", h.Inbox)
		r.Get("/sent", h.Sent)
	})
}

func (h *Handler) Send(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		core.Unauthorized(w, "")
		return
	}

	var req SendMessageRequest
	if err := core.DecodeJSON(r, &req); err != nil {
		core.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.ValidationFailed(w, core.ValidationErrors(err, sendMessages))
		return
	}

	msg, err := h.service.Send(r.Context(), actor, req)
	if err != nil {
		if appErr, ok := policy.AsAppError(err); ok {
			core.JSONError(w, appErr)
			return
		}
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "Recipient not found.")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, core.Body{
		"msg":     "Message sent successfully.",
		"message": msg,
	})
}

func (h *Handler) Inbox(w http.ResponseWriter, r *http.Request) {
	messages, err := h.service.Inbox(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		if errors.Is(err, core.ErrUnauthorized) {
			core.Unauthorized(w, "")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, core.Body{"inbox": messages})
}

func (h *Handler) Sent(w http.ResponseWriter, r *http.Request) {
	messages, err := h.service.Sent(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		if errors.Is(err, core.ErrUnauthorized) {
			core.Unauthorized(w, "")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, core.Body{"sent": messages})
}
