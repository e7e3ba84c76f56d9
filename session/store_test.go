package session

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
	return NewStore(client, "cas"), mr, func() { mr.Close() }
}

func TestSaveGetRoundTrip(t *testing.T) {
	store, _, done := newTestStore(t)
	defer done()

	ctx := context.Background()
	if err := store.Save(ctx, "u1", "token-a", time.Hour); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := store.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != "token-a" {
		t.Fatalf("expected token-a, got %q", got)
	}
}

func TestGetMissingSession(t *testing.T) {
	store, _, done := newTestStore(t)
	defer done()

	if _, err := store.Get(context.Background(), "nobody"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestSaveOverwritesPreviousValue(t *testing.T) {
	store, _, done := newTestStore(t)
	defer done()

	ctx := context.Background()
	if err := store.Save(ctx, "u1", "token-a", time.Hour); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Save(ctx, "u1", "token-b", time.Hour); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	got, err := store.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != "token-b" {
		t.Fatalf("expected token-b, got %q", got)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	store, _, done := newTestStore(t)
	defer done()

	ctx := context.Background()
	if err := store.Save(ctx, "u1", "token-a", time.Hour); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if err := store.Delete(ctx, "u1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := store.Delete(ctx, "u1"); err != nil {
		t.Fatalf("repeated Delete failed: %v", err)
	}
	if _, err := store.Get(ctx, "u1"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound after delete, got %v", err)
	}
}

func TestRotateSwapsMatchingValue(t *testing.T) {
	store, _, done := newTestStore(t)
	defer done()

	ctx := context.Background()
	if err := store.Save(ctx, "u1", "token-a", time.Hour); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if err := store.Rotate(ctx, "u1", "token-a", "token-b", time.Hour); err != nil {
		t.Fatalf("Rotate failed: %v", err)
	}

	got, err := store.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != "token-b" {
		t.Fatalf("expected token-b, got %q", got)
	}
}

func TestRotateMismatch(t *testing.T) {
	store, _, done := newTestStore(t)
	defer done()

	ctx := context.Background()
	if err := store.Save(ctx, "u1", "token-a", time.Hour); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if err := store.Rotate(ctx, "u1", "token-x", "token-b", time.Hour); !errors.Is(err, ErrTokenMismatch) {
		t.Fatalf("expected ErrTokenMismatch, got %v", err)
	}

	// The stored value is untouched by the failed swap.
	got, err := store.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != "token-a" {
		t.Fatalf("expected token-a, got %q", got)
	}
}

func TestRotateMissingSession(t *testing.T) {
	store, _, done := newTestStore(t)
	defer done()

	if err := store.Rotate(context.Background(), "nobody", "token-a", "token-b", time.Hour); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestRotateConsumedValueCannotRotateAgain(t *testing.T) {
	store, _, done := newTestStore(t)
	defer done()

	ctx := context.Background()
	if err := store.Save(ctx, "u1", "token-a", time.Hour); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Rotate(ctx, "u1", "token-a", "token-b", time.Hour); err != nil {
		t.Fatalf("Rotate failed: %v", err)
	}

	if err := store.Rotate(ctx, "u1", "token-a", "token-c", time.Hour); !errors.Is(err, ErrTokenMismatch) {
		t.Fatalf("expected ErrTokenMismatch for consumed value, got %v", err)
	}
}

func TestSessionEntryExpires(t *testing.T) {
	store, mr, done := newTestStore(t)
	defer done()

	ctx := context.Background()
	if err := store.Save(ctx, "u1", "token-a", time.Minute); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	if _, err := store.Get(ctx, "u1"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound after expiry, got %v", err)
	}
}

func TestStoreUnavailable(t *testing.T) {
	store, mr, _ := newTestStore(t)
	mr.Close()

	ctx := context.Background()
	if err := store.Save(ctx, "u1", "token-a", time.Hour); !errors.Is(err, ErrRedisUnavailable) {
		t.Fatalf("Save: expected ErrRedisUnavailable, got %v", err)
	}
	if _, err := store.Get(ctx, "u1"); !errors.Is(err, ErrRedisUnavailable) {
		t.Fatalf("Get: expected ErrRedisUnavailable, got %v", err)
	}
	if err := store.Rotate(ctx, "u1", "a", "b", time.Hour); !errors.Is(err, ErrRedisUnavailable) {
		t.Fatalf("Rotate: expected ErrRedisUnavailable, got %v", err)
	}
}
