// AngelaMos | 2026
// service.go

package event

import (
	"context"
	"fmt"
	"log/slog"
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

func (s *Service) Create(
	ctx context.Context,
	actor policy.Actor,
	req CreateEventRequest,
) (*Event, error) {
	date, ok := core.ParseDate(req.Date)
	if !ok {
		return nil, fmt.Errorf("create event: date %q: %w", req.Date, core.ErrInvalidInput)
	}

	err := policy.Check(ctx, actor, policy.Request{
		Resource: policy.ResourceEvent,
		Action:   policy.ActionCreate,
		Shift:    req.Shift,
	})
	if err != nil {
		return nil, err
	}

	event := &Event{
		ID:          uuid.New().String(),
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Date:        date,
		Shift:       req.Shift,
		Status:      StatusActive,
		CreatedBy:   actor.ID,
	}

	if err := s.repo.Create(ctx, event); err != nil {
		return nil, err
	}

	return event, nil
}

func (s *Service) List(
	ctx context.Context,
	actor policy.Actor,
) ([]Listing, error) {
	listings, err := s.repo.ListActive(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	if !actor.Is(policy.RoleUser) {
		for i := range listings {
			listings[i].Applied = nil
		}
	}

	return listings, nil
}

// Apply is idempotent: applying twice leaves a single application.
func (s *Service) Apply(
	ctx context.Context,
	actor policy.Actor,
	eventID string,
) error {
	event, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return err
	}

	err = policy.Check(ctx, actor, policy.Request{
		Resource: policy.ResourceEvent,
		Action:   policy.ActionApply,
		Record:   event.Owned(),
	})
	if err != nil {
		return err
	}

	created, err := s.repo.Apply(ctx, event.ID, actor.ID)
	if err != nil {
		return err
	}

	if !created {
		slog.DebugContext(ctx, "event application already exists",
			"event_id", event.ID,
			"user_id", actor.ID,
		)
	}

	return nil
}

// Cancel removes the caller's own application. There is nothing to
// authorize beyond identity.
func (s *Service) Cancel(
	ctx context.Context,
	actor policy.Actor,
	eventID string,
) error {
	return s.repo.Cancel(ctx, eventID, actor.ID)
}

func (s *Service) Delete(
	ctx context.Context,
	actor policy.Actor,
	eventID string,
) error {
	event, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return err
	}

	err = policy.Check(ctx, actor, policy.Request{
		Resource: policy.ResourceEvent,
		Action:   policy.ActionDelete,
		Record:   event.Owned(),
	})
	if err != nil {
		return err
	}

	return s.repo.Delete(ctx, event.ID)
}

func (s *Service) Applicants(
	ctx context.Context,
	eventID string,
) ([]Applicant, error) {
	return s.repo.ListApplicants(ctx, eventID)
}
