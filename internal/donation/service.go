// AngelaMos | 2026
// service.go

package donation

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
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
	req CreateDonationRequest,
) (*Donation, error) {
	donation := &Donation{
		ID:          uuid.New().String(),
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Status:      StatusActive,
		CreatedBy:   actor.ID,
	}

	if req.Deadline != nil && *req.Deadline != "" {
		deadline, ok := core.ParseDate(*req.Deadline)
		if !ok {
			return nil, fmt.Errorf("create donation: deadline %q: %w", *req.Deadline, core.ErrInvalidInput)
		}
		donation.Deadline = &deadline
	}

	err := policy.Check(ctx, actor, policy.Request{
		Resource: policy.ResourceDonation,
		Action:   policy.ActionCreate,
	})
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, donation); err != nil {
		return nil, err
	}

	return donation, nil
}

func (s *Service) ListActive(ctx context.Context) ([]Summary, error) {
	if err := s.expire(ctx); err != nil {
		return nil, err
	}

	summaries, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(summaries, func(a, b Summary) int {
		return compareDeadline(&a.Donation, &b.Donation)
	})
	return summaries, nil
}

func (s *Service) ListAll(
	ctx context.Context,
	actor policy.Actor,
	filter ListFilter,
) ([]Overview, error) {
	if err := s.expire(ctx); err != nil {
		return nil, err
	}

	overviews, err := s.repo.ListAll(ctx, actor.ID, filter)
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(overviews, func(a, b Overview) int {
		return compareDeadline(&a.Donation, &b.Donation)
	})
	return overviews, nil
}

func (s *Service) Get(
	ctx context.Context,
	actor policy.Actor,
	id string,
) (*Overview, error) {
	if err := s.expire(ctx); err != nil {
		return nil, err
	}
	return s.repo.GetOverview(ctx, id, actor.ID)
}

// ConfirmPayment records the actor's single contribution. Paying twice
// is core.ErrConflict; a missing donation is core.ErrNotFound.
func (s *Service) ConfirmPayment(
	ctx context.Context,
	actor policy.Actor,
	donationID string,
	amount float64,
) (*Contribution, error) {
	donation, err := s.repo.GetByID(ctx, donationID)
	if err != nil {
		return nil, err
	}

	contribution := &Contribution{
		ID:         uuid.New().String(),
		DonationID: donation.ID,
		UserID:     actor.ID,
		Amount:     amount,
	}

	if err := s.repo.Contribute(ctx, contribution); err != nil {
		return nil, err
	}

	return contribution, nil
}

func (s *Service) Donors(ctx context.Context, donationID string) ([]Donor, error) {
	return s.repo.ListDonors(ctx, donationID)
}

func (s *Service) Delete(
	ctx context.Context,
	actor policy.Actor,
	id string,
) error {
	donation, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	err = policy.Check(ctx, actor, policy.Request{
		Resource: policy.ResourceDonation,
		Action:   policy.ActionDelete,
		Record:   donation.Owned(),
	})
	if err != nil {
		return err
	}

	return s.repo.Delete(ctx, donation.ID)
}

func (s *Service) expire(ctx context.Context) error {
	n, err := s.repo.ExpireOverdue(ctx)
	if err != nil {
		return err
	}

	if n > 0 {
		slog.InfoContext(ctx, "donations expired", "count", n)
	}

	return nil
}
