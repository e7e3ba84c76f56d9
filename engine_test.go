package caffauth

import (
	"context"
	"errors"
	"sync"
	"testing"

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

func authTestConfig() Config {
	cfg := defaultConfig()
	cfg.JWT.SigningMethod = "hs256"
	cfg.JWT.PrivateKey = []byte("test-secret")
	cfg.Password.Memory = 8 * 1024
	cfg.Password.Time = 1
	cfg.Password.Parallelism = 1
	return cfg
}

func newAuthEngine(t *testing.T, cfg Config, store UserStore) (*Engine, *redis.Client, func()) {
	t.Helper()

	mr, rdb := newTestRedis(t)

	engine, err := New().
		WithConfig(cfg).
		WithRedis(rdb).
		WithUserStore(store).
		Build()
	if err != nil {
		mr.Close()
		t.Fatalf("Build failed: %v", err)
	}

	return engine, rdb, func() {
		engine.Close()
		mr.Close()
	}
}

type mockUserStore struct {
	mu      sync.RWMutex
	users   map[string]UserRecord
	byEmail map[string]string

	failLookups bool
	failCreate  bool
}

func newMockUserStore() *mockUserStore {
	return &mockUserStore{
		users:   map[string]UserRecord{},
		byEmail: map[string]string{},
	}
}

var errMockStoreDown = errors.New("mock store down")

func (m *mockUserStore) put(u UserRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.UserID] = u
	m.byEmail[u.Email] = u.UserID
}

func (m *mockUserStore) FindByEmail(_ context.Context, email string) (*UserRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.failLookups {
		return nil, errMockStoreDown
	}
	id, ok := m.byEmail[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	u := m.users[id]
	return &u, nil
}

func (m *mockUserStore) FindByID(_ context.Context, userID string) (*UserRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.failLookups {
		return nil, errMockStoreDown
	}
	u, ok := m.users[userID]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &u, nil
}

func (m *mockUserStore) FindIDByEmail(_ context.Context, email string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.failLookups {
		return "", errMockStoreDown
	}
	id, ok := m.byEmail[email]
	if !ok {
		return "", ErrUserNotFound
	}
	return id, nil
}

func (m *mockUserStore) ExistsByEmail(_ context.Context, email string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.failLookups {
		return false, errMockStoreDown
	}
	_, ok := m.byEmail[email]
	return ok, nil
}

func (m *mockUserStore) Create(_ context.Context, input CreateUserInput) (*UserRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failCreate {
		return nil, errMockStoreDown
	}
	u := UserRecord{
		UserID:       input.UserID,
		Email:        input.Email,
		PasswordHash: input.PasswordHash,
		Name:         input.Name,
	}
	m.users[u.UserID] = u
	m.byEmail[u.Email] = u.UserID
	return &u, nil
}

func (m *mockUserStore) UpdateProfile(_ context.Context, userID string, update ProfileUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[userID]
	if !ok {
		return ErrUserNotFound
	}
	if update.Email != nil {
		delete(m.byEmail, u.Email)
		u.Email = *update.Email
		m.byEmail[u.Email] = userID
	}
	if update.Name != nil {
		u.Name = *update.Name
	}
	m.users[userID] = u
	return nil
}

func TestEngineHealthReflectsRedis(t *testing.T) {
	engine, _, done := newAuthEngine(t, authTestConfig(), newMockUserStore())
	defer done()

	status := engine.Health(context.Background())
	if !status.RedisAvailable {
		t.Fatal("expected healthy redis")
	}
	if status.RedisLatency <= 0 {
		t.Fatalf("expected positive latency, got %v", status.RedisLatency)
	}
}

func TestEngineHealthRedisDown(t *testing.T) {
	cfg := authTestConfig()
	mr, rdb := newTestRedis(t)

	engine, err := New().
		WithConfig(cfg).
		WithRedis(rdb).
		WithUserStore(newMockUserStore()).
		Build()
	if err != nil {
		mr.Close()
		t.Fatalf("Build failed: %v", err)
	}
	defer engine.Close()

	mr.Close()

	if status := engine.Health(context.Background()); status.RedisAvailable {
		t.Fatal("expected unhealthy redis after close")
	}
}

// seedUser registers alice through the engine so the stored hash matches the
// engine's own hasher parameters.
func seedUser(t *testing.T, engine *Engine, email, password string) string {
	t.Helper()

	res, err := engine.Register(context.Background(), RegisterRequest{
		Email:    email,
		Password: password,
		Name:     "Test User",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	return res.UserID
}
