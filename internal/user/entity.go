// AngelaMos | 2026
// entity.go

package user

import (
	"time"

	"github.com/bakerycrew/crew-backend/internal/policy"
)

type User struct {
	ID           string    `db:"id"`
	Name         string    `db:"name"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Phone        *string   `db:"phone"`
	Role         string    `db:"role"`
	Shift        *string   `db:"shift"`
	IsApproved   bool      `db:"is_approved"`
	ManagerID    *string   `db:"manager_id"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (u *User) ShiftValue() string {
	return deref(u.Shift)
}

func (u *User) Subject() policy.Subject {
	return policy.Subject{ID: u.ID, Role: u.Role, Shift: u.ShiftValue()}
}

func (u *User) Actor() policy.Actor {
	return policy.Actor{
		ID:        u.ID,
		Role:      u.Role,
		Shift:     u.ShiftValue(),
		ManagerID: deref(u.ManagerID),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
