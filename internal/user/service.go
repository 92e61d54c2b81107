// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/bakerycrew/crew-backend/internal/auth"
	"github.com/bakerycrew/crew-backend/internal/core"
	"github.com/bakerycrew/crew-backend/internal/middleware"
	"github.com/bakerycrew/crew-backend/internal/policy"
)

var (
	ErrNotEligibleForPromotion = errors.New("not eligible for promotion")
	ErrNotEligibleForDemotion  = errors.New("not eligible for demotion")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetByID(
	ctx context.Context,
	id string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) GetByEmail(
	ctx context.Context,
	email string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) Create(
	ctx context.Context,
	req auth.NewUser,
) (*auth.UserInfo, error) {
	user := &User{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Email:        strings.ToLower(req.Email),
		PasswordHash: req.PasswordHash,
		Phone:        nullable(req.Phone),
		Role:         policy.RoleUser,
		Shift:        nullable(req.Shift),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) UpdatePassword(
	ctx context.Context,
	userID, passwordHash string,
) error {
	return s.repo.UpdatePassword(ctx, userID, passwordHash)
}

// LoadActor reads the caller's current authorization attributes.
func (s *Service) LoadActor(
	ctx context.Context,
	userID string,
) (policy.Actor, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return policy.Actor{}, err
	}

	return user.Actor(), nil
}

func (s *Service) UpdateProfile(
	ctx context.Context,
	actor policy.Actor,
	req UpdateProfileRequest,
) (*User, error) {
	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		req.Name = &trimmed
	}

	return s.repo.UpdateProfile(ctx, actor.ID, req.Name, req.Phone)
}

func (s *Service) Approve(
	ctx context.Context,
	actor policy.Actor,
	id string,
) (*User, error) {
	err := policy.Check(ctx, actor, policy.Request{
		Resource: policy.ResourceUser,
		Action:   policy.ActionApprove,
	})
	if err != nil {
		return nil, err
	}

	return s.repo.Approve(ctx, id)
}

func (s *Service) Promote(
	ctx context.Context,
	actor policy.Actor,
	id string,
) (*User, error) {
	err := policy.Check(ctx, actor, policy.Request{
		Resource: policy.ResourceUser,
		Action:   policy.ActionPromote,
	})
	if err != nil {
		return nil, err
	}

	user, err := s.repo.PromoteToManager(ctx, id)
	if errors.Is(err, core.ErrNotFound) {
		return nil, fmt.Errorf("promote %s: %w", id, ErrNotEligibleForPromotion)
	}
	return user, err
}

func (s *Service) Demote(
	ctx context.Context,
	actor policy.Actor,
	id string,
) (*User, error) {
	err := policy.Check(ctx, actor, policy.Request{
		Resource: policy.ResourceUser,
		Action:   policy.ActionDemote,
	})
	if err != nil {
		return nil, err
	}

	user, err := s.repo.DemoteToUser(ctx, id)
	if errors.Is(err, core.ErrNotFound) {
		return nil, fmt.Errorf("demote %s: %w", id, ErrNotEligibleForDemotion)
	}
	return user, err
}

// Delete checks existence before permission so that a missing target
// is reported as such.
func (s *Service) Delete(
	ctx context.Context,
	actor policy.Actor,
	id string,
) (*User, error) {
	target, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	err = policy.Check(ctx, actor, policy.Request{
		Resource: policy.ResourceUser,
		Action:   policy.ActionDelete,
		User:     target.Subject(),
	})
	if err != nil {
		return nil, err
	}

	return s.repo.Delete(ctx, id)
}

// List returns the roster. Managers only ever see their own shift.
func (s *Service) List(
	ctx context.Context,
	actor policy.Actor,
	params ListUsersParams,
) ([]User, int, error) {
	if actor.Is(policy.RoleManager) {
		params.Shift = actor.Shift
	}

	return s.repo.List(ctx, params)
}

func toUserInfo(u *User) *auth.UserInfo {
	return &auth.UserInfo{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Phone:        deref(u.Phone),
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		Shift:        deref(u.Shift),
		ManagerID:    deref(u.ManagerID),
		IsApproved:   u.IsApproved,
		CreatedAt:    u.CreatedAt,
	}
}

var (
	_ auth.UserProvider      = (*Service)(nil)
	_ middleware.ActorLoader = (*Service)(nil)
)
