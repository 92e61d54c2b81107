// AngelaMos | 2026
// handler.go

package user

import (
	"errors"
	"net/http"
	"strconv"

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

// RegisterRoutes expects r to already resolve the actor.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/users", func(r chi.Router) {
		r.Patch("/me", h.UpdateMe)
		r.Delete("/{userID}", h.DeleteUser)
	})
}

// RegisterAdminRoutes mounts approval and role management. Permission
// checks happen in the service so that denials carry their reason.
func (h *Handler) RegisterAdminRoutes(r chi.Router) {
	r.Route("/admin/users", func(r chi.Router) {
		r.With(middleware.RequireStaff).Get("/", h.ListUsers)

		r.Patch("/{userID}/approve", h.Approve)
		r.Patch("/{userID}/assign-manager", h.AssignManager)
		r.Patch("/{userID}/revoke-manager", h.RevokeManager)
	})
}

func (h *Handler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		core.Unauthorized(w, "")
		return
	}

	var req UpdateProfileRequest
	if err := core.DecodeJSON(r, &req); err != nil {
		core.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.ValidationFailed(w, core.ValidationErrors(err, profileMessages))
		return
	}

	user, err := h.service.UpdateProfile(r.Context(), actor, req)
	if err != nil {
		writeError(w, err, "User not found")
		return
	}

	core.OK(w, core.Body{
		"msg":  "Profile updated.",
		"user": ToUserResponse(user),
	})
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		core.Unauthorized(w, "")
		return
	}

	user, err := h.service.Delete(r.Context(), actor, chi.URLParam(r, "userID"))
	if err != nil {
		writeError(w, err, "User not found")
		return
	}

	core.OK(w, core.Body{
		"msg":  "User deleted.",
		"user": ToUserResponse(user),
	})
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		core.Unauthorized(w, "")
		return
	}

	query := r.URL.Query()
	params := ListUsersParams{
		Page:     parseIntQuery(r, "page", 1),
		PageSize: parseIntQuery(r, "page_size", 20),
		Search:   query.Get("search"),
		Role:     query.Get("role"),
		Shift:    query.Get("shift"),
	}

	if raw := query.Get("approved"); raw != "" {
		approved, err := strconv.ParseBool(raw)
		if err != nil {
			core.BadRequest(w, "approved must be true or false")
			return
		}
		params.Approved = &approved
	}

	users, total, err := h.service.List(r.Context(), actor, params)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	params.Normalize()
	core.OK(w, UserListResponse{
		Users:    ToUserResponseList(users),
		Total:    total,
		Page:     params.Page,
		PageSize: params.PageSize,
	})
}

func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		core.Unauthorized(w, "")
		return
	}

	user, err := h.service.Approve(r.Context(), actor, chi.URLParam(r, "userID"))
	if err != nil {
		writeError(w, err, "User not found")
		return
	}

	core.OK(w, core.Body{
		"msg":  "User approved successfully",
		"user": ToUserResponse(user),
	})
}

func (h *Handler) AssignManager(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		core.Unauthorized(w, "")
		return
	}

	user, err := h.service.Promote(r.Context(), actor, chi.URLParam(r, "userID"))
	if err != nil {
		if errors.Is(err, ErrNotEligibleForPromotion) {
			core.NotFound(w, "User not found or not eligible for promotion.")
			return
		}
		writeError(w, err, "User not found")
		return
	}

	core.OK(w, core.Body{
		"msg":  "User promoted to manager.",
		"user": ToUserResponse(user),
	})
}

func (h *Handler) RevokeManager(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		core.Unauthorized(w, "")
		return
	}

	user, err := h.service.Demote(r.Context(), actor, chi.URLParam(r, "userID"))
	if err != nil {
		if errors.Is(err, ErrNotEligibleForDemotion) {
			core.NotFound(w, "User not found or not eligible for demotion.")
			return
		}
		writeError(w, err, "User not found")
		return
	}

	core.OK(w, core.Body{
		"msg":  "Manager demoted to user.",
		"user": ToUserResponse(user),
	})
}

func writeError(w http.ResponseWriter, err error, notFoundMsg string) {
	if appErr, ok := policy.AsAppError(err); ok {
		core.JSONError(w, appErr)
		return
	}

	if errors.Is(err, core.ErrNotFound) {
		core.NotFound(w, notFoundMsg)
		return
	}

	core.InternalServerError(w, err)
}

func parseIntQuery(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}

	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return parsed
}
