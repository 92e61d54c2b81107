// AngelaMos | 2026
// repository.go

package admin

import (
	"context"
	"fmt"

	"github.com/bakerycrew/crew-backend/internal/core"
)

// Repository reads aggregate counts. An empty shift means every shift.
type Repository interface {
	CountByRole(ctx context.Context) (map[string]int, error)
	ShiftBreakdown(ctx context.Context, shift string) ([]ShiftStats, error)
	EventTotals(ctx context.Context, shift string) (EventTotals, error)
	DonationTotals(ctx context.Context) (DonationTotals, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) CountByRole(ctx context.Context) (map[string]int, error) {
	var rows []struct {
		Role  string `db:"role"`
		Count int    `db:"count"`
	}

	err := r.db.SelectContext(ctx, &rows,
		`SELECT role, COUNT(*) AS count FROM users GROUP BY role`)
	if err != nil {
		return nil, fmt.Errorf("count users by role: %w", err)
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.Role] = row.Count
	}

	return counts, nil
}

func (r *repository) ShiftBreakdown(ctx context.Context, shift string) ([]ShiftStats, error) {
	query := `
		SELECT shift,
		       COUNT(*) FILTER (WHERE role = 'user') AS users,
		       COUNT(*) FILTER (WHERE role = 'manager') AS managers,
		       COUNT(*) FILTER (WHERE NOT is_approved) AS pending,
		       COUNT(*) FILTER (WHERE role = 'user' AND manager_id IS NULL) AS unassigned
		FROM users
		WHERE shift IS NOT NULL AND ($1 = '' OR shift = $1)
		GROUP BY shift
		ORDER BY shift`

	shifts := []ShiftStats{}
	if err := r.db.SelectContext(ctx, &shifts, query, shift); err != nil {
		return nil, fmt.Errorf("shift breakdown: %w", err)
	}

	return shifts, nil
}

func (r *repository) EventTotals(ctx context.Context, shift string) (EventTotals, error) {
	query := `
		SELECT COUNT(*) FILTER (WHERE e.status = 'active') AS active,
		       COUNT(*) FILTER (WHERE e.status = 'active' AND e.date >= CURRENT_DATE) AS upcoming,
		       COALESCE(SUM(a.applicants), 0)::int8 AS applications
		FROM events e
		LEFT JOIN (
		    SELECT event_id, COUNT(*) AS applicants
		    FROM event_applications
		    GROUP BY event_id
		) a ON a.event_id = e.id
		WHERE $1 = '' OR e.shift = $1`

	var totals EventTotals
	if err := r.db.GetContext(ctx, &totals, query, shift); err != nil {
		return EventTotals{}, fmt.Errorf("event totals: %w", err)
	}

	return totals, nil
}

func (r *repository) DonationTotals(ctx context.Context) (DonationTotals, error) {
	query := `
		SELECT COUNT(*) FILTER (
		           WHERE status = 'active' AND (deadline IS NULL OR deadline >= CURRENT_DATE)
		       ) AS active,
		       COUNT(*) FILTER (
		           WHERE status = 'expired' OR deadline < CURRENT_DATE
		       ) AS expired,
		       COALESCE((SELECT SUM(amount) FROM donation_applications), 0)::float8 AS total_collected
		FROM donations`

	var totals DonationTotals
	if err := r.db.GetContext(ctx, &totals, query); err != nil {
		return DonationTotals{}, fmt.Errorf("donation totals: %w", err)
	}

	return totals, nil
}
