package caffauth

import (
	"context"

	"github.com/qhdlehfdl/caffauth/internal/flows"
)

// Logout describes the logout operation and its observable behavior.
//
// Logout may return an error when input validation, dependency calls, or security checks fail.
// Logout does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Logout(ctx context.Context, accessToken, refreshToken string) error {
	if e == nil || e.jwtManager == nil || e.sessionStore == nil || e.blacklist == nil {
		return ErrEngineNotReady
	}

	result := flows.RunLogout(ctx, accessToken, refreshToken, flows.LogoutDeps{
		VerifyAccess:      e.jwtManager.VerifyAccess,
		VerifyRefresh:     e.jwtManager.VerifyRefresh,
		RemainingValidity: e.jwtManager.RemainingValidity,
		DeleteSession:     e.sessionStore.Delete,
		Blacklist:         e.blacklist,
	})

	switch result.Failure {
	case flows.LogoutFailureNone:
	case flows.LogoutFailureToken:
		e.metricInc(MetricLogoutInvalid)
		e.emitAudit(ctx, auditEventLogoutInvalid, false, result.UserID, ErrInvalidToken, func() map[string]string {
			if !result.AlreadyRevoked {
				return nil
			}
			return map[string]string{
				"reason": "already_revoked",
			}
		})
		return ErrInvalidToken
	case flows.LogoutFailureStore:
		e.metricInc(MetricStoreFailure)
		e.emitAudit(ctx, auditEventStoreFailure, false, result.UserID, ErrStoreUnavailable, func() map[string]string {
			return map[string]string{
				"operation": "logout",
			}
		})
		return ErrStoreUnavailable
	}

	e.metricInc(MetricLogout)
	e.emitAudit(ctx, auditEventLogoutSuccess, true, result.UserID, nil, nil)

	return nil
}
