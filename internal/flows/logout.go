package flows

import (
	"context"
	"time"
)

// LogoutFailureKind classifies logout flow failures for root-level mapping.
type LogoutFailureKind int

const (
	LogoutFailureNone LogoutFailureKind = iota
	LogoutFailureToken
	LogoutFailureStore
)

// LogoutResult reports the outcome of a logout attempt. AlreadyRevoked is set
// when the refresh token was on the revocation list before this call; such a
// repeat is rejected as a token failure.
type LogoutResult struct {
	Failure        LogoutFailureKind
	Err            error
	UserID         string
	AlreadyRevoked bool
}

// LogoutDeps captures logout flow dependencies.
type LogoutDeps struct {
	VerifyAccess      func(tokenValue string) (string, error)
	VerifyRefresh     func(tokenValue string) (string, error)
	RemainingValidity func(tokenValue string) time.Duration
	DeleteSession     func(ctx context.Context, userID string) error
	Blacklist         Blacklist
}

// RunLogout validates both tokens of the presented pair, requires them to
// name the same identity, deletes the session slot, and revokes the refresh
// token for the remainder of its lifetime. A refresh token that is already on
// the revocation list fails the logout; revocation happens at most once.
func RunLogout(ctx context.Context, accessToken, refreshToken string, deps LogoutDeps) LogoutResult {
	accessUID, err := deps.VerifyAccess(accessToken)
	if err != nil {
		return LogoutResult{Failure: LogoutFailureToken, Err: err}
	}
	refreshUID, err := deps.VerifyRefresh(refreshToken)
	if err != nil {
		return LogoutResult{Failure: LogoutFailureToken, Err: err}
	}
	// A pair stitched together from two identities is rejected outright.
	if accessUID != refreshUID {
		return LogoutResult{Failure: LogoutFailureToken}
	}

	revoked, err := deps.Blacklist.Contains(ctx, refreshToken)
	if err != nil {
		return LogoutResult{Failure: LogoutFailureStore, Err: err, UserID: refreshUID}
	}
	if revoked {
		return LogoutResult{Failure: LogoutFailureToken, UserID: refreshUID, AlreadyRevoked: true}
	}

	if err := deps.DeleteSession(ctx, refreshUID); err != nil {
		return LogoutResult{Failure: LogoutFailureStore, Err: err, UserID: refreshUID}
	}

	if err := deps.Blacklist.Add(ctx, refreshToken, deps.RemainingValidity(refreshToken)); err != nil {
		return LogoutResult{Failure: LogoutFailureStore, Err: err, UserID: refreshUID}
	}

	return LogoutResult{UserID: refreshUID}
}
