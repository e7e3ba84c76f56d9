package blacklist

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis, func()) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run failed: %v", err)
	}

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewStore(client, "cbl"), mr, func() { mr.Close() }
}

func TestAddThenContains(t *testing.T) {
	store, _, done := newTestStore(t)
	defer done()

	ctx := context.Background()
	if err := store.Add(ctx, "token-a", time.Hour); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	found, err := store.Contains(ctx, "token-a")
	if err != nil {
		t.Fatalf("Contains failed: %v", err)
	}
	if !found {
		t.Fatal("expected token to be revoked")
	}

	found, err = store.Contains(ctx, "token-b")
	if err != nil {
		t.Fatalf("Contains failed: %v", err)
	}
	if found {
		t.Fatal("expected unrelated token to be absent")
	}
}

func TestAddZeroTTLSkipsWrite(t *testing.T) {
	store, mr, done := newTestStore(t)
	defer done()

	ctx := context.Background()
	if err := store.Add(ctx, "token-a", 0); err != nil {
		t.Fatalf("Add with zero ttl failed: %v", err)
	}
	if err := store.Add(ctx, "token-b", -time.Minute); err != nil {
		t.Fatalf("Add with negative ttl failed: %v", err)
	}

	if got := len(mr.Keys()); got != 0 {
		t.Fatalf("expected no keys written, got %d", got)
	}
}

func TestEntryExpiresWithTTL(t *testing.T) {
	store, mr, done := newTestStore(t)
	defer done()

	ctx := context.Background()
	if err := store.Add(ctx, "token-a", time.Minute); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	found, err := store.Contains(ctx, "token-a")
	if err != nil {
		t.Fatalf("Contains failed: %v", err)
	}
	if found {
		t.Fatal("expected entry to expire with its ttl")
	}
}

func TestKeysAreHashedNotRaw(t *testing.T) {
	store, mr, done := newTestStore(t)
	defer done()

	token := "very-long-refresh-token-value"
	if err := store.Add(context.Background(), token, time.Hour); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	for _, key := range mr.Keys() {
		if key == "cbl:"+token {
			t.Fatal("expected token value to be hashed in the key")
		}
	}
}

func TestStoreUnavailable(t *testing.T) {
	store, mr, _ := newTestStore(t)
	mr.Close()

	ctx := context.Background()
	if err := store.Add(ctx, "token-a", time.Hour); !errors.Is(err, ErrRedisUnavailable) {
		t.Fatalf("Add: expected ErrRedisUnavailable, got %v", err)
	}
	if _, err := store.Contains(ctx, "token-a"); !errors.Is(err, ErrRedisUnavailable) {
		t.Fatalf("Contains: expected ErrRedisUnavailable, got %v", err)
	}
}
