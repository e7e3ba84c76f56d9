// Package caffauth provides the authentication core for the caffeine tracking
// service: paired JWT access/refresh tokens, single-slot Redis session tracking,
// and replay-safe refresh rotation backed by a revocation blacklist.
//
// The package is designed for concurrent server workloads: Engine methods are
// safe to call from multiple goroutines after initialization through
// [Builder.Build].
//
// # Architecture boundaries
//
// caffauth is the public surface. It exposes [Engine], [Builder], [Config], and
// value types (TokenPair, UserRecord, etc.). Flow orchestration, audit dispatch,
// and metrics counters live under internal/ and are never exported.
//
// # What this package must NOT do
//
//   - Expose Redis clients or store internals in its public API.
//   - Persist access tokens anywhere: their validity is signature + expiry only.
//   - Return a rotated token pair before the consumed refresh token is in the
//     revocation blacklist.
//
// # Performance contract
//
// Validate is the hot path and completes without Redis round-trips. Login,
// Rotate, and Logout are allowed a bounded number of Redis round-trips per call.
package caffauth
