// AngelaMos | 2026
// response.go

package core

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
)

// Body is an ad-hoc JSON object. Responses pair a human readable "msg"
// with the affected resource under its own key.
type Body map[string]any

type ErrorBody struct {
	Msg  string `json:"msg"`
	Code string `json:"code,omitempty"`
}

type ValidationErrorBody struct {
	Errors []FieldError `json:"errors"`
}

func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("encode response", "error", err)
	}
}

func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, data)
}

func Created(w http.ResponseWriter, data any) {
	JSON(w, http.StatusCreated, data)
}

// Message writes a body carrying only a human readable message.
func Message(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, Body{"msg": msg})
}

func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func JSONError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		JSON(w, appErr.StatusCode, ErrorBody{
			Msg:  appErr.Message,
			Code: appErr.Code,
		})
		return
	}

	InternalServerError(w, err)
}

func BadRequest(w http.ResponseWriter, message string) {
	JSONError(w, BadRequestError(message))
}

func ValidationFailed(w http.ResponseWriter, fieldErrors []FieldError) {
	JSON(w, http.StatusBadRequest, ValidationErrorBody{Errors: fieldErrors})
}

func Unauthorized(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Access denied. No token provided."
	}
	JSONError(w, UnauthorizedError(message))
}

func Forbidden(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Access denied"
	}
	JSONError(w, ForbiddenError(message))
}

func NotFound(w http.ResponseWriter, message string) {
	JSONError(w, NotFoundError(message))
}

func Conflict(w http.ResponseWriter, message string) {
	JSONError(w, ConflictError(message))
}

func InternalServerError(w http.ResponseWriter, err error) {
	slog.Error("internal server error", "error", err)
	JSON(w, http.StatusInternalServerError, ErrorBody{
		Msg:  "Something went wrong",
		Code: "INTERNAL_ERROR",
	})
}
