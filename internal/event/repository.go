// AngelaMos | 2026
// repository.go

package event

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bakerycrew/crew-backend/internal/core"
)

type Repository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	ListActive(ctx context.Context, viewerID string) ([]Listing, error)
	Delete(ctx context.Context, id string) error
	Apply(ctx context.Context, eventID, userID string) (bool, error)
	Cancel(ctx context.Context, eventID, userID string) error
	ListApplicants(ctx context.Context, eventID string) ([]Applicant, error)
}

const eventColumns = `id, title, description, date, shift, status, created_by, created_at`

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, event *Event) error {
	query := `
		INSERT INTO events (id, title, description, date, shift, status, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + eventColumns

	err := r.db.GetContext(ctx, event, query,
		event.ID,
		event.Title,
		event.Description,
		event.Date,
		event.Shift,
		event.Status,
		event.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("create event: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Event, error) {
	var event Event
	err := r.db.GetContext(ctx, &event,
		`SELECT `+eventColumns+` FROM events WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) || core.IsInvalidTextError(err) {
		return nil, fmt.Errorf("get event: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}

	return &event, nil
}

// ListActive returns active events soonest first, each flagged with
// whether viewerID has applied.
func (r *repository) ListActive(
	ctx context.Context,
	viewerID string,
) ([]Listing, error) {
	query := `
		SELECT e.id, e.title, e.description, e.date, e.shift, e.status,
		       e.created_by, e.created_at,
		       u.name AS creator_name,
		       EXISTS (
		           SELECT 1 FROM event_applications ea
		           WHERE ea.event_id = e.id AND ea.user_id = $1
		       ) AS applied
		FROM events e
		JOIN users u ON u.id = e.created_by
		WHERE e.status = 'active'
		ORDER BY e.date ASC, e.created_at ASC`

	listings := []Listing{}
	if err := r.db.SelectContext(ctx, &listings, query, viewerID); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	return listings, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete event: %w", core.ErrNotFound)
	}

	return nil
}

// Apply reports whether a new application row was written. An existing
// application is left untouched.
func (r *repository) Apply(
	ctx context.Context,
	eventID, userID string,
) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO event_applications (event_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (event_id, user_id) DO NOTHING`,
		eventID, userID,
	)
	if err != nil {
		if core.IsForeignKeyError(err) {
			return false, fmt.Errorf("apply to event: %w", core.ErrNotFound)
		}
		return false, fmt.Errorf("apply to event: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("apply to event: %w", err)
	}

	return rows > 0, nil
}

func (r *repository) Cancel(ctx context.Context, eventID, userID string) error {
	result, err := r.db.ExecContext(ctx, `
		DELETE FROM event_applications
		WHERE event_id = $1 AND user_id = $2`,
		eventID, userID,
	)
	if err != nil {
		if core.IsInvalidTextError(err) {
			return fmt.Errorf("cancel application: %w", core.ErrNotFound)
		}
		return fmt.Errorf("cancel application: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("cancel application: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("cancel application: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) ListApplicants(
	ctx context.Context,
	eventID string,
) ([]Applicant, error) {
	query := `
		SELECT u.id, u.name, u.email, u.shift
		FROM event_applications ea
		JOIN users u ON u.id = ea.user_id
		WHERE ea.event_id = $1
		ORDER BY u.name ASC`

	applicants := []Applicant{}
	err := r.db.SelectContext(ctx, &applicants, query, eventID)
	if core.IsInvalidTextError(err) {
		return applicants, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list event applicants: %w", err)
	}

	return applicants, nil
}
