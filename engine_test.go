package cookieAuth

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run failed: %v", err)
	}

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr, client
}

func testConfig() Config {
	cfg := defaultConfig()
	cfg.JWT.AccessSecret = []byte("test-access-secret")
	cfg.JWT.RefreshSecret = []byte("test-refresh-secret")
	// Cheap hashing keeps the suite fast; production parameters are not
	// under test here.
	cfg.Password.Memory = 8 * 1024
	cfg.Password.Time = 1
	cfg.Password.Parallelism = 1
	cfg.Security.LoginCooldownDuration = time.Minute
	return cfg
}

func newTestEngine(t *testing.T, cfg Config, up UserProvider) (*Engine, *miniredis.Miniredis) {
	t.Helper()

	mr, rdb := newTestRedis(t)
	t.Cleanup(mr.Close)

	engine, err := New().
		WithConfig(cfg).
		WithRedis(rdb).
		WithUserProvider(up).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(engine.Close)

	return engine, mr
}

type mockUserProvider struct {
	mu      sync.RWMutex
	byEmail map[string]UserRecord
	byID    map[string]UserRecord

	updatedHashes map[string]string
}

func newMockUserProvider() *mockUserProvider {
	return &mockUserProvider{
		byEmail:       map[string]UserRecord{},
		byID:          map[string]UserRecord{},
		updatedHashes: map[string]string{},
	}
}

func (p *mockUserProvider) put(user UserRecord) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.byEmail[strings.ToLower(user.Email)] = user
	p.byID[user.UserID] = user
}

func (p *mockUserProvider) GetUserByEmail(_ context.Context, email string) (UserRecord, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	user, ok := p.byEmail[strings.ToLower(email)]
	if !ok {
		return UserRecord{}, ErrUserNotFound
	}
	return user, nil
}

func (p *mockUserProvider) GetUserByID(_ context.Context, userID string) (UserRecord, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	user, ok := p.byID[userID]
	if !ok {
		return UserRecord{}, ErrUserNotFound
	}
	return user, nil
}

func (p *mockUserProvider) CreateUser(_ context.Context, input CreateUserInput) (UserRecord, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, exists := p.byEmail[strings.ToLower(input.Email)]; exists {
		return UserRecord{}, ErrAccountExists
	}
	user := UserRecord{
		UserID:       input.UserID,
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: input.PasswordHash,
		Role:         input.Role,
		AvatarID:     input.AvatarID,
		AvatarURL:    input.AvatarURL,
	}
	p.byEmail[strings.ToLower(user.Email)] = user
	p.byID[user.UserID] = user
	return user, nil
}

func (p *mockUserProvider) UpdatePasswordHash(_ context.Context, userID, newHash string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	user, ok := p.byID[userID]
	if !ok {
		return ErrUserNotFound
	}
	user.PasswordHash = newHash
	p.byID[userID] = user
	p.byEmail[strings.ToLower(user.Email)] = user
	p.updatedHashes[userID] = newHash
	return nil
}

func seedUser(t *testing.T, engine *Engine, up *mockUserProvider, userID, email, pass string, role Role) {
	t.Helper()

	hash, err := engine.passwordHash.Hash(pass)
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	up.put(UserRecord{
		UserID:       userID,
		Name:         "Test User",
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Verified:     true,
	})
}
