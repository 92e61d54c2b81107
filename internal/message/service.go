// AngelaMos | 2026
// service.go

package message

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/bakerycrew/crew-backend/internal/core"
	"github.com/bakerycrew/crew-backend/internal/policy"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Send resolves the recipient, applies the hierarchy rules and stores
// the message. A missing recipient is core.ErrNotFound.
func (s *Service) Send(
	ctx context.Context,
	sender policy.Actor,
	req SendMessageRequest,
) (*Message, error) {
	recipient, err := s.repo.GetRecipient(ctx, req.RecipientID)
	if err != nil {
		return nil, err
	}

	err = policy.Check(ctx, sender, policy.Request{
		Resource: policy.ResourceMessage,
		Action:   policy.ActionSend,
		User:     recipient,
	})
	if err != nil {
		return nil, err
	}

	messageType := req.MessageType
	if messageType == "" {
		messageType = TypePersonal
	}

	msg := &Message{
		ID:                uuid.New().String(),
		SenderID:          sender.ID,
		ReceiverID:        recipient.ID,
		Content:           strings.TrimSpace(req.Content),
		MessageType:       messageType,
		RelatedEntityID:   req.RelatedEntityID,
		RelatedEntityType: req.RelatedEntityType,
	}

	if err := s.repo.Create(ctx, msg); err != nil {
		return nil, err
	}

	return msg, nil
}

func (s *Service) Inbox(ctx context.Context, userID string) ([]Message, error) {
	if userID == "" {
		return nil, fmt.Errorf("inbox: %w", core.ErrUnauthorized)
	}
	return s.repo.ListInbox(ctx, userID)
}

func (s *Service) Sent(ctx context.Context, userID string) ([]Message, error) {
	if userID == "" {
		return nil, fmt.Errorf("sent: %w", core.ErrUnauthorized)
	}
	return s.repo.ListSent(ctx, userID)
}
