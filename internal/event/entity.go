// AngelaMos | 2026
// entity.go

package event

import (
	"time"

	"github.com/bakerycrew/crew-backend/internal/policy"
)

const (
	StatusActive    = "active"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

type Event struct {
	ID          string    `db:"id"          json:"id"`
	Title       string    `db:"title"       json:"title"`
	Description string    `db:"description" json:"description"`
	Date        time.Time `db:"date"        json:"date"`
	Shift       string    `db:"shift"       json:"shift"`
	Status      string    `db:"status"      json:"status"`
	CreatedBy   string    `db:"created_by"  json:"created_by"`
	CreatedAt   time.Time `db:"created_at"  json:"created_at"`
}

func (e *Event) Owned() policy.Owned {
	return policy.Owned{ID: e.ID, CreatedBy: e.CreatedBy, Shift: e.Shift}
}

// Listing is an event as shown in the feed. Applied is only reported
// to callers who can apply.
type Listing struct {
	Event
	CreatorName string `db:"creator_name" json:"creator_name"`
	Applied     *bool  `db:"applied"      json:"applied,omitempty"`
}

type Applicant struct {
	ID    string  `db:"id"    json:"id"`
	Name  string  `db:"name"  json:"name"`
	Email string  `db:"email" json:"email"`
	Shift *string `db:"shift" json:"shift"`
}
