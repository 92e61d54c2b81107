// AngelaMos | 2026
// entity.go

package donation

import (
	"cmp"
	"time"

	"github.com/bakerycrew/crew-backend/internal/policy"
)

const (
	StatusActive  = "active"
	StatusExpired = "expired"
)

type Donation struct {
	ID          string     `db:"id"          json:"id"`
	Title       string     `db:"title"       json:"title"`
	Description string     `db:"description" json:"description"`
	Deadline    *time.Time `db:"deadline"    json:"deadline"`
	Status      string     `db:"status"      json:"status"`
	CreatedBy   string     `db:"created_by"  json:"created_by"`
	CreatedAt   time.Time  `db:"created_at"  json:"created_at"`
}

func (d *Donation) Owned() policy.Owned {
	return policy.Owned{ID: d.ID, CreatedBy: d.CreatedBy}
}

// compareDeadline orders by deadline ascending with open-ended
// donations last, then by creation time.
func compareDeadline(a, b *Donation) int {
	switch {
	case a.Deadline == nil && b.Deadline != nil:
		return 1
	case a.Deadline != nil && b.Deadline == nil:
		return -1
	case a.Deadline != nil && !a.Deadline.Equal(*b.Deadline):
		return a.Deadline.Compare(*b.Deadline)
	}
	return cmp.Compare(a.CreatedAt.UnixNano(), b.CreatedAt.UnixNano())
}

type Summary struct {
	Donation
	CreatorName string `db:"creator_name" json:"creator_name"`
}

// Overview is a donation with its running totals as seen by one
// viewer.
type Overview struct {
	Donation
	CreatorName    string  `db:"creator_name"    json:"creator_name"`
	TotalCollected float64 `db:"total_collected" json:"total_collected"`
	DonorCount     int     `db:"donor_count"     json:"donor_count"`
	HasDonated     bool    `db:"has_donated"     json:"has_donated"`
}

type Contribution struct {
	ID         string    `db:"id"          json:"id"`
	DonationID string    `db:"donation_id" json:"donation_id"`
	UserID     string    `db:"user_id"     json:"user_id"`
	Amount     float64   `db:"amount"      json:"amount"`
	DonatedAt  time.Time `db:"donated_at"  json:"donated_at"`
}

type Donor struct {
	ID     string  `db:"id"     json:"id"`
	Name   string  `db:"name"   json:"name"`
	Amount float64 `db:"amount" json:"amount"`
}
