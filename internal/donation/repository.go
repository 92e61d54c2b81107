// AngelaMos | 2026
// repository.go

package donation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/bakerycrew/crew-backend/internal/core"
)

type Repository interface {
	ExpireOverdue(ctx context.Context) (int64, error)
	Create(ctx context.Context, donation *Donation) error
	GetByID(ctx context.Context, id string) (*Donation, error)
	ListActive(ctx context.Context) ([]Summary, error)
	ListAll(ctx context.Context, viewerID string, filter ListFilter) ([]Overview, error)
	GetOverview(ctx context.Context, id, viewerID string) (*Overview, error)
	Contribute(ctx context.Context, contribution *Contribution) error
	ListDonors(ctx context.Context, donationID string) ([]Donor, error)
	Delete(ctx context.Context, id string) error
}

const donationColumns = `id, title, description, deadline, status, created_by, created_at`

const overviewSelect = `
		SELECT d.id, d.title, d.description, d.deadline, d.status,
		       d.created_by, d.created_at,
		       u.name AS creator_name,
		       COALESCE(SUM(da.amount), 0)::float8 AS total_collected,
		       COUNT(DISTINCT da.user_id) FILTER (WHERE da.amount > 0) AS donor_count,
		       EXISTS (
		           SELECT 1 FROM donation_applications mine
		           WHERE mine.donation_id = d.id AND mine.user_id = $1
		       ) AS has_donated
		FROM donations d
		JOIN users u ON u.id = d.created_by
		LEFT JOIN donation_applications da ON da.donation_id = d.id`

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

// ExpireOverdue flips active donations whose deadline has passed.
// Expiry happens only when someone reads, never on a timer.
func (r *repository) ExpireOverdue(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE donations
		SET status = 'expired'
		WHERE status = 'active' AND deadline < CURRENT_DATE`)
	if err != nil {
		return 0, fmt.Errorf("expire donations: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("expire donations: %w", err)
	}

	return rows, nil
}

func (r *repository) Create(ctx context.Context, donation *Donation) error {
	query := `
		INSERT INTO donations (id, title, description, deadline, status, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + donationColumns

	err := r.db.GetContext(ctx, donation, query,
		donation.ID,
		donation.Title,
		donation.Description,
		donation.Deadline,
		donation.Status,
		donation.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("create donation: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Donation, error) {
	var donation Donation
	err := r.db.GetContext(ctx, &donation,
		`SELECT `+donationColumns+` FROM donations WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) || core.IsInvalidTextError(err) {
		return nil, fmt.Errorf("get donation: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get donation: %w", err)
	}

	return &donation, nil
}

func (r *repository) ListActive(ctx context.Context) ([]Summary, error) {
	query := `
		SELECT d.id, d.title, d.description, d.deadline, d.status,
		       d.created_by, d.created_at,
		       u.name AS creator_name
		FROM donations d
		JOIN users u ON u.id = d.created_by
		WHERE d.status = 'active'
		ORDER BY d.deadline ASC NULLS LAST, d.created_at ASC`

	summaries := []Summary{}
	if err := r.db.SelectContext(ctx, &summaries, query); err != nil {
		return nil, fmt.Errorf("list active donations: %w", err)
	}

	return summaries, nil
}

func (r *repository) ListAll(
	ctx context.Context,
	viewerID string,
	filter ListFilter,
) ([]Overview, error) {
	var conditions []string
	args := []any{viewerID}
	argIdx := 2

	conditions = append(conditions, "TRUE")

	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("d.status = $%d", argIdx))
		args = append(args, filter.Status)
		argIdx++
	}

	if filter.CreatedAfter != nil {
		conditions = append(conditions, fmt.Sprintf("d.created_at >= $%d", argIdx))
		args = append(args, *filter.CreatedAfter)
	}

	query := fmt.Sprintf(`%s
		WHERE %s
		GROUP BY d.id, u.name
		ORDER BY d.deadline ASC NULLS LAST, d.created_at ASC`,
		overviewSelect, strings.Join(conditions, " AND "))

	overviews := []Overview{}
	if err := r.db.SelectContext(ctx, &overviews, query, args...); err != nil {
		return nil, fmt.Errorf("list donations: %w", err)
	}

	return overviews, nil
}

func (r *repository) GetOverview(
	ctx context.Context,
	id, viewerID string,
) (*Overview, error) {
	query := overviewSelect + `
		WHERE d.id = $2
		GROUP BY d.id, u.name`

	var overview Overview
	err := r.db.GetContext(ctx, &overview, query, viewerID, id)
	if errors.Is(err, sql.ErrNoRows) || core.IsInvalidTextError(err) {
		return nil, fmt.Errorf("get donation overview: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get donation overview: %w", err)
	}

	return &overview, nil
}

// Contribute records a payment. The unique (donation_id, user_id) pair
// makes a second payment by the same user a core.ErrConflict, even when
// two requests race.
func (r *repository) Contribute(
	ctx context.Context,
	contribution *Contribution,
) error {
	query := `
		INSERT INTO donation_applications (id, donation_id, user_id, amount)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (donation_id, user_id) DO NOTHING
		RETURNING id, donation_id, user_id, amount::float8 AS amount, donated_at`

	err := r.db.GetContext(ctx, contribution, query,
		contribution.ID,
		contribution.DonationID,
		contribution.UserID,
		contribution.Amount,
	)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("contribute: %w", core.ErrConflict)
	case core.IsForeignKeyError(err):
		return fmt.Errorf("contribute: %w", core.ErrNotFound)
	case err != nil:
		return fmt.Errorf("contribute: %w", err)
	}

	return nil
}

func (r *repository) ListDonors(
	ctx context.Context,
	donationID string,
) ([]Donor, error) {
	query := `
		SELECT u.id, u.name, da.amount::float8 AS amount
		FROM donation_applications da
		JOIN users u ON u.id = da.user_id
		WHERE da.donation_id = $1 AND da.amount > 0
		ORDER BY u.name ASC`

	donors := []Donor{}
	err := r.db.SelectContext(ctx, &donors, query, donationID)
	if core.IsInvalidTextError(err) {
		return donors, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list donors: %w", err)
	}

	return donors, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM donations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete donation: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete donation: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete donation: %w", core.ErrNotFound)
	}

	return nil
}
