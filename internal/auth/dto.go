// AngelaMos | 2026
// dto.go

package auth

import (
	"time"
)

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,max=128"`
}

type RegisterRequest struct {
	Name     string `json:"name"     validate:"required,notblank,max=100"`
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=128"`
	Phone    string `json:"phone"    validate:"omitempty,max=20"`
	Shift    string `json:"shift"    validate:"required,oneof=1st 2nd"`
}

var registerMessages = map[string]string{
	"name":     "Name is required",
	"email":    "Valid email is required",
	"password": "Password must be at least 6 characters",
	"phone":    "Phone must be at most 20 characters",
	"shift":    "Valid shift is required",
}

var loginMessages = map[string]string{
	"email":    "Valid email is required",
	"password": "Password is required",
}

type LoginResponse struct {
	Msg       string    `json:"msg"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type UserResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      *string   `json:"phone"`
	Role       string    `json:"role"`
	Shift      *string   `json:"shift"`
	IsApproved bool      `json:"is_approved"`
	ManagerID  *string   `json:"manager_id"`
	CreatedAt  time.Time `json:"created_at"`
}

func ToUserResponse(u *UserInfo) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Phone:      optional(u.Phone),
		Role:       u.Role,
		Shift:      optional(u.Shift),
		IsApproved: u.IsApproved,
		ManagerID:  optional(u.ManagerID),
		CreatedAt:  u.CreatedAt,
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
