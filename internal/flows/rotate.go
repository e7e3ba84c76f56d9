package flows

import (
	"context"
	"errors"
	"time"

	"github.com/qhdlehfdl/caffauth/jwt"
	"github.com/qhdlehfdl/caffauth/session"
)

// RotateFailureKind classifies rotation flow failures for root-level mapping.
type RotateFailureKind int

const (
	RotateFailureNone RotateFailureKind = iota
	RotateFailureExpired
	RotateFailureDecode
	RotateFailureRevoked
	RotateFailureSessionNotFound
	RotateFailureMismatch
	RotateFailureIssue
	RotateFailureStore
)

// RotateResult carries either the replacement token pair or failure metadata.
// ReuseSuspected is set when the presented token decoded cleanly but was
// already revoked or lost the session compare-and-swap, both of which point
// at a replayed token rather than an ordinary client error.
type RotateResult struct {
	Failure        RotateFailureKind
	Err            error
	UserID         string
	AccessToken    string
	RefreshToken   string
	ReuseSuspected bool
}

// RotateDeps captures rotation flow dependencies.
type RotateDeps struct {
	VerifyRefresh     func(tokenValue string) (string, error)
	RemainingValidity func(tokenValue string) time.Duration
	IssueAccess       func(userID string) (string, error)
	IssueRefresh      func(userID string) (string, error)
	// RotateSession atomically swaps the stored refresh token for userID from
	// presented to next, resetting the slot TTL. It fails with the session
	// package sentinels when no slot exists or the presented token lost.
	RotateSession func(ctx context.Context, userID, presented, next string) error
	Blacklist     Blacklist
}

// RunRotate exchanges a valid refresh token for a fresh pair. The presented
// token must decode, must not be revoked, and must win the atomic
// compare-and-swap against the stored session slot; only then is it added to
// the revocation list for the remainder of its natural lifetime. Under
// concurrent presentations of the same token exactly one caller rotates and
// the rest observe a mismatch.
func RunRotate(ctx context.Context, refreshToken string, deps RotateDeps) RotateResult {
	userID, err := deps.VerifyRefresh(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrExpired) {
			return RotateResult{Failure: RotateFailureExpired, Err: err}
		}
		return RotateResult{Failure: RotateFailureDecode, Err: err}
	}

	revoked, err := deps.Blacklist.Contains(ctx, refreshToken)
	if err != nil {
		return RotateResult{Failure: RotateFailureStore, Err: err, UserID: userID}
	}
	if revoked {
		return RotateResult{
			Failure:        RotateFailureRevoked,
			UserID:         userID,
			ReuseSuspected: true,
		}
	}

	access, err := deps.IssueAccess(userID)
	if err != nil {
		return RotateResult{Failure: RotateFailureIssue, Err: err, UserID: userID}
	}
	next, err := deps.IssueRefresh(userID)
	if err != nil {
		return RotateResult{Failure: RotateFailureIssue, Err: err, UserID: userID}
	}

	if err := deps.RotateSession(ctx, userID, refreshToken, next); err != nil {
		switch {
		case errors.Is(err, session.ErrSessionNotFound):
			return RotateResult{Failure: RotateFailureSessionNotFound, Err: err, UserID: userID}
		case errors.Is(err, session.ErrTokenMismatch):
			return RotateResult{
				Failure:        RotateFailureMismatch,
				Err:            err,
				UserID:         userID,
				ReuseSuspected: true,
			}
		default:
			return RotateResult{Failure: RotateFailureStore, Err: err, UserID: userID}
		}
	}

	// The presented token lost its active status the moment the swap landed;
	// revoking it for its remaining lifetime closes the replay window.
	if err := deps.Blacklist.Add(ctx, refreshToken, deps.RemainingValidity(refreshToken)); err != nil {
		return RotateResult{Failure: RotateFailureStore, Err: err, UserID: userID}
	}

	return RotateResult{
		UserID:       userID,
		AccessToken:  access,
		RefreshToken: next,
	}
}
