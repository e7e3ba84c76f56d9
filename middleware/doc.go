// Package middleware exposes HTTP middleware adapters built on top of
// caffauth.Engine validation.
//
// # Guards
//
//   - [Guard] — verifies the Authorization bearer token and injects the
//     authenticated user ID into the request context.
//
// # Architecture boundaries
//
// This package translates HTTP semantics into Engine calls. It does NOT
// implement authentication logic itself — all decisions are delegated to
// Engine.Validate.
//
// # What this package must NOT do
//
//   - Parse or create JWTs directly (delegates to Engine).
//   - Access Redis (Engine handles I/O).
//   - Make authorization decisions beyond pass/reject from Engine.Validate.
package middleware
