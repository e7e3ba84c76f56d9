// Package blacklist implements the revocation list for consumed refresh
// tokens. Entries live in Redis no longer than the token's own natural
// expiry, bounding storage growth.
package blacklist
