// AngelaMos | 2026
// service.go

package admin

import (
	"context"
	"fmt"

	"github.com/bakerycrew/crew-backend/internal/core"
	"github.com/bakerycrew/crew-backend/internal/policy"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Overview gathers the dashboard numbers. Developers see every shift
// and the role roster; a manager sees only their own shift.
func (s *Service) Overview(ctx context.Context, actor policy.Actor) (*Overview, error) {
	var shift string
	switch {
	case actor.Is(policy.RoleDeveloper):
	case actor.Is(policy.RoleManager) && actor.Shift != "":
		shift = actor.Shift
	default:
		return nil, fmt.Errorf("stats overview: %w", core.ErrForbidden)
	}

	overview := &Overview{}

	if shift == "" {
		roles, err := s.repo.CountByRole(ctx)
		if err != nil {
			return nil, err
		}
		overview.Roles = roles
	}

	shifts, err := s.repo.ShiftBreakdown(ctx, shift)
	if err != nil {
		return nil, err
	}
	overview.Shifts = shifts

	if overview.Events, err = s.repo.EventTotals(ctx, shift); err != nil {
		return nil, err
	}

	if overview.Donations, err = s.repo.DonationTotals(ctx); err != nil {
		return nil, err
	}

	return overview, nil
}
