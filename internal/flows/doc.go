// Package flows contains the orchestration logic behind the root Engine's
// operations. Each flow takes its collaborators as an explicit Deps value and
// returns a Result carrying either the outcome or a failure kind, so the root
// package alone decides how failures map to public errors, metrics, and audit
// events.
package flows
