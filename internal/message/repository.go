// AngelaMos | 2026
// repository.go

package message

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bakerycrew/crew-backend/internal/core"
	"github.com/bakerycrew/crew-backend/internal/policy"
)

type Repository interface {
	GetRecipient(ctx context.Context, id string) (policy.Subject, error)
	Create(ctx context.Context, msg *Message) error
	ListInbox(ctx context.Context, userID string) ([]Message, error)
	ListSent(ctx context.Context, userID string) ([]Message, error)
}

const messageColumns = `id, sender_id, receiver_id, content, message_type,
		       related_entity_id, related_entity_type, sent_date`

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) GetRecipient(
	ctx context.Context,
	id string,
) (policy.Subject, error) {
	var row struct {
		ID    string  `db:"id"`
		Role  string  `db:"role"`
		Shift *string `db:"shift"`
	}

	err := r.db.GetContext(ctx, &row,
		`SELECT id, role, shift FROM users WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) || core.IsInvalidTextError(err) {
		return policy.Subject{}, fmt.Errorf("get recipient: %w", core.ErrNotFound)
	}
	if err != nil {
		return policy.Subject{}, fmt.Errorf("get recipient: %w", err)
	}

	subject := policy.Subject{ID: row.ID, Role: row.Role}
	if row.Shift != nil {
		subject.Shift = *row.Shift
	}

	return subject, nil
}

func (r *repository) Create(ctx context.Context, msg *Message) error {
	query := `
		INSERT INTO messages (id, sender_id, receiver_id, content, message_type,
		                      related_entity_id, related_entity_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + messageColumns

	err := r.db.GetContext(ctx, msg, query,
		msg.ID,
		msg.SenderID,
		msg.ReceiverID,
		msg.Content,
		msg.MessageType,
		msg.RelatedEntityID,
		msg.RelatedEntityType,
	)
	if err != nil {
		if core.IsForeignKeyError(err) {
			return fmt.Errorf("create message: %w", core.ErrNotFound)
		}
		return fmt.Errorf("create message: %w", err)
	}

	return nil
}

func (r *repository) ListInbox(
	ctx context.Context,
	userID string,
) ([]Message, error) {
	return r.list(ctx, "list inbox", "receiver_id", userID)
}

func (r *repository) ListSent(
	ctx context.Context,
	userID string,
) ([]Message, error) {
	return r.list(ctx, "list sent", "sender_id", userID)
}

// column is one of two fixed identifiers, never caller input.
func (r *repository) list(
	ctx context.Context,
	op, column, userID string,
) ([]Message, error) {
	query := `SELECT ` + messageColumns + `
		FROM messages
		WHERE ` + column + ` = $1
		ORDER BY sent_date DESC`

	messages := []Message{}
	if err := r.db.SelectContext(ctx, &messages, query, userID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return messages, nil
}
