// AngelaMos | 2026
// helpers_test.go

package auth_test

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/bakerycrew/crew-backend/internal/auth"
	"github.com/bakerycrew/crew-backend/internal/config"
	"github.com/bakerycrew/crew-backend/internal/core"
)

func newJWTManager(t *testing.T, expire time.Duration) *auth.JWTManager {
	t.Helper()

	dir := t.TempDir()
	privPath := filepath.Join(dir, "private.pem")
	pubPath := filepath.Join(dir, "public.pem")
	require.NoError(t, auth.GenerateKeyPair(privPath, pubPath))

	m, err := auth.NewJWTManager(config.JWTConfig{
		PrivateKeyPath:    privPath,
		PublicKeyPath:     pubPath,
		AccessTokenExpire: expire,
		Issuer:            "crew-test",
		Audience:          "crew-test-api",
	})
	require.NoError(t, err)
	return m
}

type fakeUsers struct {
	mu      sync.Mutex
	byID    map[string]*auth.UserInfo
	rehash  map[string]string
	failSet error
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{
		byID:   make(map[string]*auth.UserInfo),
		rehash: make(map[string]string),
	}
}

func (f *fakeUsers) add(t *testing.T, email, password, role string, approved bool) *auth.UserInfo {
	t.Helper()

	hash, err := core.HashPassword(password)
	require.NoError(t, err)

	u := &auth.UserInfo{
		ID:           uuid.New().String(),
		Name:         "Test " + role,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Shift:        "1st",
		IsApproved:   approved,
		CreatedAt:    time.Now(),
	}

	f.mu.Lock()
	f.byID[u.ID] = u
	f.mu.Unlock()
	return u
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*auth.UserInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, core.ErrNotFound
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*auth.UserInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, core.ErrNotFound
}

func (f *fakeUsers) Create(_ context.Context, nu auth.NewUser) (*auth.UserInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.byID {
		if strings.EqualFold(u.Email, nu.Email) {
			return nil, core.ErrDuplicateKey
		}
	}

	u := &auth.UserInfo{
		ID:           uuid.New().String(),
		Name:         nu.Name,
		Email:        nu.Email,
		Phone:        nu.Phone,
		PasswordHash: nu.PasswordHash,
		Role:         "user",
		Shift:        nu.Shift,
		CreatedAt:    time.Now(),
	}
	f.byID[u.ID] = u
	return u, nil
}

func (f *fakeUsers) UpdatePassword(_ context.Context, id, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failSet != nil {
		return f.failSet
	}
	f.rehash[id] = hash
	return nil
}

type memBlacklist struct {
	mu      sync.Mutex
	revoked map[string]time.Time
}

func newMemBlacklist() *memBlacklist {
	return &memBlacklist{revoked: make(map[string]time.Time)}
}

func (b *memBlacklist) RevokeToken(_ context.Context, jti string, exp time.Time) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.revoked[jti] = exp
	return nil
}

func (b *memBlacklist) IsTokenRevoked(_ context.Context, jti string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	_, ok := b.revoked[jti]
	return ok, nil
}
