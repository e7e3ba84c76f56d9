// Package session implements the Redis-backed single-slot session registry:
// one currently-active refresh token per user, overwritten on login and
// rotation, deleted on logout.
package session
