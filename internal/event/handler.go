// AngelaMos | 2026
// handler.go

package event

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
	r.Route("/events", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Delete("/{eventID}", h.Delete)
		r.Post("/{eventID}/apply", h.Apply)
		r.Delete("/{eventID}/cancel", h.Cancel)
		r.Get("/{eventID}/applicants", h.Applicants)
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		core.Unauthorized(w, "")
		return
	}

	var req CreateEventRequest
	if err := core.DecodeJSON(r, &req); err != nil {
		core.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.ValidationFailed(w, core.ValidationErrors(err, createMessages))
		return
	}

	event, err := h.service.Create(r.Context(), actor, req)
	if err != nil {
		writeError(w, err, "Event not found")
		return
	}

	core.Created(w, core.Body{
		"msg":   "Event created",
		"event": event,
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		core.Unauthorized(w, "")
		return
	}

	events, err := h.service.List(r.Context(), actor)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, core.Body{"events": events})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		core.Unauthorized(w, "")
		return
	}

	eventID := chi.URLParam(r, "eventID")
	if err := h.service.Delete(r.Context(), actor, eventID); err != nil {
		writeError(w, err, "Event not found")
		return
	}

	core.OK(w, core.Body{
		"msg":     "Event deleted",
		"eventId": eventID,
	})
}

func (h *Handler) Apply(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		core.Unauthorized(w, "")
		return
	}

	if err := h.service.Apply(r.Context(), actor, chi.URLParam(r, "eventID")); err != nil {
		writeError(w, err, "Event not found")
		return
	}

	core.Message(w, http.StatusCreated, "Application submitted")
}

func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		core.Unauthorized(w, "")
		return
	}

	if err := h.service.Cancel(r.Context(), actor, chi.URLParam(r, "eventID")); err != nil {
		writeError(w, err, "No application found to cancel")
		return
	}

	core.Message(w, http.StatusOK, "Application cancelled")
}

func (h *Handler) Applicants(w http.ResponseWriter, r *http.Request) {
	applicants, err := h.service.Applicants(r.Context(), chi.URLParam(r, "eventID"))
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, core.Body{"applicants": applicants})
}

func writeError(w http.ResponseWriter, err error, notFoundMsg string) {
	if appErr, ok := policy.AsAppError(err); ok {
		core.JSONError(w, appErr)
		return
	}

	switch {
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, notFoundMsg)
	case errors.Is(err, core.ErrInvalidInput):
		core.ValidationFailed(w, []core.FieldError{{
			Type:     "field",
			Msg:      "Valid ISO date required",
			Path:     "date",
			Location: "body",
		}})
	default:
		core.InternalServerError(w, err)
	}
}
