//go:build integration
// +build integration

package test

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/qhdlehfdl/caffauth/session"
	"github.com/redis/go-redis/v9"
)

func newIntegrationSessionStore(t *testing.T) (*session.Store, redis.UniversalClient, func()) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run failed: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := session.NewStore(rdb, "cas")

	return store, rdb, func() {
		_ = rdb.Close()
		mr.Close()
	}
}
