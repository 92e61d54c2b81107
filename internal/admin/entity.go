// AngelaMos | 2026
// entity.go

package admin

// ShiftStats is the staffing picture of one shift.
type ShiftStats struct {
	Shift      string `db:"shift"      json:"shift"`
	Users      int    `db:"users"      json:"users"`
	Managers   int    `db:"managers"   json:"managers"`
	Pending    int    `db:"pending"    json:"pending_approval"`
	Unassigned int    `db:"unassigned" json:"unassigned_users"`
}

type EventTotals struct {
	Active       int `db:"active"       json:"active"`
	Upcoming     int `db:"upcoming"     json:"upcoming"`
	Applications int `db:"applications" json:"applications"`
}

// DonationTotals counts a donation past its deadline as expired even
// before a read has flipped its status.
type DonationTotals struct {
	Active         int     `db:"active"          json:"active"`
	Expired        int     `db:"expired"         json:"expired"`
	TotalCollected float64 `db:"total_collected" json:"total_collected"`
}

type Overview struct {
	Roles     map[string]int `json:"roles,omitempty"`
	Shifts    []ShiftStats   `json:"shifts"`
	Events    EventTotals    `json:"events"`
	Donations DonationTotals `json:"donations"`
}
