package flows

import (
	"context"
	"time"
)

// Blacklist is the revocation-list surface shared by the rotate and logout
// flows.
type Blacklist interface {
	Contains(ctx context.Context, tokenValue string) (bool, error)
	Add(ctx context.Context, tokenValue string, ttl time.Duration) error
}
