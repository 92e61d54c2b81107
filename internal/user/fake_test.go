// AngelaMos | 2026
// fake_test.go

package user_test

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/bakerycrew/crew-backend/internal/core"
	"github.com/bakerycrew/crew-backend/internal/policy"
	"github.com/bakerycrew/crew-backend/internal/user"
)

type fakeRepo struct {
	mu    sync.Mutex
	users map[string]*user.User
}

func newFakeRepo(users ...*user.User) *fakeRepo {
	r := &fakeRepo{users: make(map[string]*user.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func strPtr(s string) *string { return &s }

func member(id, role, shift string) *user.User {
	return &user.User{
		ID:         id,
		Name:       "Name " + id,
		Email:      id + "@example.com",
		Role:       role,
		Shift:      strPtr(shift),
		IsApproved: true,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
}

func (r *fakeRepo) get(id string) (*user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}
	cp := *u
	return &cp, nil
}

func (r *fakeRepo) Create(_ context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == u.Email {
			return core.ErrDuplicateKey
		}
	}
	r.users[u.ID] = u
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.get(id)
}

func (r *fakeRepo) GetByEmail(_ context.Context, email string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, core.ErrNotFound
}

func (r *fakeRepo) UpdateProfile(
	_ context.Context,
	id string,
	name, phone *string,
) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	if name != nil {
		u.Name = *name
	}
	if phone != nil {
		u.Phone = phone
	}
	return r.get(id)
}

func (r *fakeRepo) UpdatePassword(_ context.Context, id, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return core.ErrNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (r *fakeRepo) Approve(_ context.Context, id string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	u.IsApproved = true
	return r.get(id)
}

func (r *fakeRepo) PromoteToManager(_ context.Context, id string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok || u.Role != policy.RoleUser {
		return nil, core.ErrNotFound
	}
	u.Role = policy.RoleManager
	u.ManagerID = nil
	return r.get(id)
}

func (r *fakeRepo) DemoteToUser(_ context.Context, id string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok || u.Role != policy.RoleManager {
		return nil, core.ErrNotFound
	}
	u.Role = policy.RoleUser
	return r.get(id)
}

func (r *fakeRepo) Delete(_ context.Context, id string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, err := r.get(id)
	if err != nil {
		return nil, err
	}
	delete(r.users, id)
	return u, nil
}

func (r *fakeRepo) List(
	_ context.Context,
	params user.ListUsersParams,
) ([]user.User, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []user.User{}
	for _, u := range r.users {
		if params.Shift != "" && u.ShiftValue() != params.Shift {
			continue
		}
		if params.Role != "" && u.Role != params.Role {
			continue
		}
		if params.Approved != nil && u.IsApproved != *params.Approved {
			continue
		}
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, len(out), nil
}
