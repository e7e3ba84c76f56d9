package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrSessionNotFound is returned when no active session exists for the user.
var ErrSessionNotFound = errors.New("session not found")

// ErrTokenMismatch is returned when the presented refresh token is not the
// stored session value. It covers stale, superseded, and concurrently-rotated
// tokens alike.
var ErrTokenMismatch = errors.New("stored refresh token mismatch")

// ErrRedisUnavailable is an exported constant or variable used by the authentication engine.
var ErrRedisUnavailable = errors.New("redis unavailable")

const (
	rotateStatusNotFound int64 = 0
	rotateStatusMismatch int64 = 1
	rotateStatusRotated  int64 = 2
)

const rotateScript = `
local current = redis.call("GET", KEYS[1])
if not current then
  return 0
end
if current ~= ARGV[1] then
  return 1
end
redis.call("SET", KEYS[1], ARGV[2], "PX", ARGV[3])
return 2
`

var rotateLua = redis.NewScript(rotateScript)

// Store is a Redis-backed session registry mapping user ID to the single
// currently valid refresh token value. Entries expire with the token itself.
type Store struct {
	redis  redis.UniversalClient
	prefix string
}

// NewStore creates a session [Store] backed by the given Redis client.
// prefix sets the Redis key namespace.
func NewStore(redisClient redis.UniversalClient, prefix string) *Store {
	if prefix == "" {
		prefix = "cas"
	}
	return &Store{
		redis:  redisClient,
		prefix: prefix,
	}
}

func (s *Store) key(userID string) string {
	return s.prefix + ":" + userID
}

// Save records refreshToken as the user's active session value, overwriting
// any previous entry. Last writer wins.
//
//	Performance: 1 Redis SET.
func (s *Store) Save(ctx context.Context, userID, refreshToken string, ttl time.Duration) error {
	if err := s.redis.Set(ctx, s.key(userID), refreshToken, ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

// Get returns the active refresh token value for the user, or
// [ErrSessionNotFound] when no session exists.
//
//	Performance: 1 Redis GET.
func (s *Store) Get(ctx context.Context, userID string) (string, error) {
	val, err := s.redis.Get(ctx, s.key(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrSessionNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return val, nil
}

// Delete removes the user's session entry. Deleting an absent entry is not
// an error.
//
//	Performance: 1 Redis DEL.
func (s *Store) Delete(ctx context.Context, userID string) error {
	if err := s.redis.Del(ctx, s.key(userID)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

// Rotate atomically replaces the stored session value with next, but only if
// the stored value still equals presented. This compare-and-swap is what
// guarantees that of two concurrent rotations using the same token, at most
// one succeeds.
//
//	Performance: 1 Lua EVALSHA (atomic compare-and-swap).
func (s *Store) Rotate(ctx context.Context, userID, presented, next string, ttl time.Duration) error {
	px := ttl.Milliseconds()
	if px <= 0 {
		px = 1
	}

	result, err := rotateLua.Run(ctx, s.redis, []string{s.key(userID)}, presented, next, px).Result()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	code, ok := result.(int64)
	if !ok {
		return fmt.Errorf("%w: invalid rotate script response", ErrRedisUnavailable)
	}

	switch code {
	case rotateStatusNotFound:
		return ErrSessionNotFound
	case rotateStatusMismatch:
		return ErrTokenMismatch
	case rotateStatusRotated:
		return nil
	default:
		return fmt.Errorf("%w: unknown rotate script status", ErrRedisUnavailable)
	}
}

// Ping returns a point-in-time Redis availability check and latency.
func (s *Store) Ping(ctx context.Context) (time.Duration, error) {
	start := time.Now()
	if err := s.redis.Ping(ctx).Err(); err != nil {
		return time.Since(start), fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return time.Since(start), nil
}
