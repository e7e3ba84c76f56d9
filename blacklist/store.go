package blacklist

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrRedisUnavailable is an exported constant or variable used by the authentication engine.
var ErrRedisUnavailable = errors.New("redis unavailable")

// Store is a Redis-backed set of consumed token values. Keys are the SHA-256
// of the token value so entry size stays fixed regardless of token length.
type Store struct {
	redis  redis.UniversalClient
	prefix string
}

// NewStore creates a blacklist [Store] backed by the given Redis client.
// prefix sets the Redis key namespace.
func NewStore(redisClient redis.UniversalClient, prefix string) *Store {
	if prefix == "" {
		prefix = "cbl"
	}
	return &Store{
		redis:  redisClient,
		prefix: prefix,
	}
}

func (s *Store) key(tokenValue string) string {
	sum := sha256.Sum256([]byte(tokenValue))
	return s.prefix + ":" + hex.EncodeToString(sum[:])
}

// Add records that tokenValue must be rejected for ttl from now. A zero or
// negative ttl skips the write: the token expires on its own immediately, so
// there is nothing to guard.
//
//	Performance: at most 1 Redis SET.
func (s *Store) Add(ctx context.Context, tokenValue string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := s.redis.Set(ctx, s.key(tokenValue), 1, ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

// Contains reports whether tokenValue has been revoked. Once Add returns for
// a value, every subsequent Contains for that value observes it.
//
//	Performance: 1 Redis EXISTS.
func (s *Store) Contains(ctx context.Context, tokenValue string) (bool, error) {
	n, err := s.redis.Exists(ctx, s.key(tokenValue)).Result()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return n > 0, nil
}
