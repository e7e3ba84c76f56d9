package caffauth

import (
	"context"

	"github.com/qhdlehfdl/caffauth/internal/flows"
)

// Rotate describes the rotate operation and its observable behavior.
//
// Rotate may return an error when input validation, dependency calls, or security checks fail.
// Rotate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Rotate(ctx context.Context, refreshToken string) (*TokenPair, error) {
	if e == nil || e.jwtManager == nil || e.sessionStore == nil || e.blacklist == nil {
		return nil, ErrEngineNotReady
	}

	result := flows.RunRotate(ctx, refreshToken, flows.RotateDeps{
		VerifyRefresh:     e.jwtManager.VerifyRefresh,
		RemainingValidity: e.jwtManager.RemainingValidity,
		IssueAccess:       e.jwtManager.IssueAccess,
		IssueRefresh:      e.jwtManager.IssueRefresh,
		RotateSession: func(ctx context.Context, userID, presented, next string) error {
			return e.sessionStore.Rotate(ctx, userID, presented, next, e.config.JWT.RefreshTTL)
		},
		Blacklist: e.blacklist,
	})

	switch result.Failure {
	case flows.RotateFailureNone:
	case flows.RotateFailureExpired:
		e.metricInc(MetricRotateExpired)
		e.emitAudit(ctx, auditEventRotateExpired, false, "", ErrRefreshExpired, nil)
		return nil, ErrRefreshExpired
	case flows.RotateFailureDecode:
		e.metricInc(MetricRotateInvalid)
		e.emitAudit(ctx, auditEventRotateInvalid, false, "", ErrRefreshInvalid, func() map[string]string {
			return map[string]string{
				"reason": "decode_failed",
			}
		})
		return nil, ErrRefreshInvalid
	case flows.RotateFailureRevoked, flows.RotateFailureMismatch:
		e.metricInc(MetricRotateInvalid)
		e.metricInc(MetricRotateReuseDetected)
		e.emitAudit(ctx, auditEventRotateReuse, false, result.UserID, ErrRefreshInvalid, nil)
		return nil, ErrRefreshInvalid
	case flows.RotateFailureSessionNotFound:
		e.metricInc(MetricRotateInvalid)
		e.emitAudit(ctx, auditEventRotateInvalid, false, result.UserID, ErrRefreshInvalid, func() map[string]string {
			return map[string]string{
				"reason": "session_not_found",
			}
		})
		return nil, ErrRefreshInvalid
	case flows.RotateFailureStore:
		e.metricInc(MetricStoreFailure)
		e.emitAudit(ctx, auditEventStoreFailure, false, result.UserID, ErrStoreUnavailable, func() map[string]string {
			return map[string]string{
				"operation": "rotate",
			}
		})
		return nil, ErrStoreUnavailable
	default:
		e.metricInc(MetricRotateInvalid)
		e.emitAudit(ctx, auditEventRotateInvalid, false, result.UserID, result.Err, func() map[string]string {
			return map[string]string{
				"reason": "issue_failed",
			}
		})
		return nil, ErrInternal
	}

	e.metricInc(MetricRotateSuccess)
	e.emitAudit(ctx, auditEventRotateSuccess, true, result.UserID, nil, nil)

	return &TokenPair{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
	}, nil
}
