// AngelaMos | 2026
// handler.go

package donation

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
	r.Route("/donations", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/", h.ListAll)
		r.Get("/active", h.ListActive)
		r.Get("/{donationID}", h.Get)
		r.Delete("/{donationID}", h.Delete)
		r.Post("/{donationID}/confirm-payment", h.ConfirmPayment)
		r.Get("/{donationID}/applicants", h.Applicants)
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		core.Unauthorized(w, "")
		return
	}

	var req CreateDonationRequest
	if err := core.DecodeJSON(r, &req); err != nil {
		core.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.ValidationFailed(w, core.ValidationErrors(err, createMessages))
		return
	}

	donation, err := h.service.Create(r.Context(), actor, req)
	if err != nil {
		if errors.Is(err, core.ErrInvalidInput) {
			core.ValidationFailed(w, []core.FieldError{{
				Type:     "field",
				Msg:      "Invalid date",
				Path:     "deadline",
				Location: "body",
			}})
			return
		}
		writeError(w, err)
		return
	}

	core.Created(w, core.Body{
		"msg":      "Donation created",
		"donation": donation,
	})
}

func (h *Handler) ListActive(w http.ResponseWriter, r *http.Request) {
	donations, err := h.service.ListActive(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, core.Body{"donations": donations})
}

func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		core.Unauthorized(w, "")
		return
	}

	query := r.URL.Query()
	filter := ListFilter{Status: query.Get("status")}

	if filter.Status != "" &&
		filter.Status != StatusActive &&
		filter.Status != StatusExpired {
		core.BadRequest(w, "Invalid status")
		return
	}

	if raw := query.Get("created_after"); raw != "" {
		after, ok := core.ParseDate(raw)
		if !ok {
			core.BadRequest(w, "Invalid date")
			return
		}
		filter.CreatedAfter = &after
	}

	donations, err := h.service.ListAll(r.Context(), actor, filter)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, core.Body{"allDonations": donations})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		core.Unauthorized(w, "")
		return
	}

	donation, err := h.service.Get(r.Context(), actor, chi.URLParam(r, "donationID"))
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, core.Body{"donation": donation})
}

func (h *Handler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		core.Unauthorized(w, "")
		return
	}

	var req ConfirmPaymentRequest
	if err := core.DecodeJSON(r, &req); err != nil {
		core.BadRequest(w, "Invalid request body")
		return
	}

	amount, err := ParseAmount(req.Amount)
	if err != nil {
		var amountErr *amountError
		if errors.As(err, &amountErr) {
			core.ValidationFailed(w, amountErr.fields)
			return
		}
		core.BadRequest(w, "Invalid amount")
		return
	}

	contribution, err := h.service.ConfirmPayment(
		r.Context(),
		actor,
		chi.URLParam(r, "donationID"),
		amount,
	)
	if err != nil {
		if errors.Is(err, core.ErrConflict) {
			core.Conflict(w, "You have already donated")
			return
		}
		writeError(w, err)
		return
	}

	core.Created(w, core.Body{
		"msg":      "Donation recorded",
		"donation": contribution,
	})
}

func (h *Handler) Applicants(w http.ResponseWriter, r *http.Request) {
	donors, err := h.service.Donors(r.Context(), chi.URLParam(r, "donationID"))
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, core.Body{"applicants": donors})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		core.Unauthorized(w, "")
		return
	}

	donationID := chi.URLParam(r, "donationID")
	if err := h.service.Delete(r.Context(), actor, donationID); err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, core.Body{
		"msg":        "Donation deleted",
		"donationId": donationID,
	})
}

func writeError(w http.ResponseWriter, err error) {
	if appErr, ok := policy.AsAppError(err); ok {
		core.JSONError(w, appErr)
		return
	}

	if errors.Is(err, core.ErrNotFound) {
		core.NotFound(w, "Donation not found")
		return
	}

	core.InternalServerError(w, err)
}
