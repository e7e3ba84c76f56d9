package caffauth

import (
	"context"
	"errors"

	"github.com/qhdlehfdl/caffauth/internal/flows"
)

// Login describes the login operation and its observable behavior.
//
// Login may return an error when input validation, dependency calls, or security checks fail.
// Login does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	if e == nil || e.passwordHash == nil || e.jwtManager == nil || e.userStore == nil || e.sessionStore == nil {
		return nil, ErrEngineNotReady
	}
	if email == "" || password == "" {
		e.metricInc(MetricLoginFailure)
		e.emitAudit(ctx, auditEventLoginFailure, false, "", ErrInvalidCredentials, func() map[string]string {
			return map[string]string{
				"identifier": email,
				"reason":     "empty_input",
			}
		})
		return nil, ErrInvalidCredentials
	}

	result := flows.RunLogin(ctx, email, password, flows.LoginDeps{
		LookupCredentials: func(ctx context.Context, email string) (string, string, bool, error) {
			user, err := e.userStore.FindByEmail(ctx, email)
			if err != nil {
				if errors.Is(err, ErrUserNotFound) {
					return "", "", false, nil
				}
				return "", "", false, err
			}
			return user.UserID, user.PasswordHash, true, nil
		},
		VerifyPassword: e.passwordHash.Verify,
		IssueAccess:    e.jwtManager.IssueAccess,
		IssueRefresh:   e.jwtManager.IssueRefresh,
		SaveSession: func(ctx context.Context, userID, refreshToken string) error {
			return e.sessionStore.Save(ctx, userID, refreshToken, e.config.JWT.RefreshTTL)
		},
	})

	switch result.Failure {
	case flows.LoginFailureNone:
	case flows.LoginFailureCredentials:
		e.metricInc(MetricLoginFailure)
		e.emitAudit(ctx, auditEventLoginFailure, false, result.UserID, ErrInvalidCredentials, func() map[string]string {
			return map[string]string{
				"identifier": email,
			}
		})
		return nil, ErrInvalidCredentials
	case flows.LoginFailureStore:
		e.metricInc(MetricStoreFailure)
		e.emitAudit(ctx, auditEventStoreFailure, false, result.UserID, ErrStoreUnavailable, func() map[string]string {
			return map[string]string{
				"operation": "login",
			}
		})
		return nil, ErrStoreUnavailable
	default:
		e.metricInc(MetricLoginFailure)
		e.emitAudit(ctx, auditEventLoginFailure, false, result.UserID, result.Err, func() map[string]string {
			return map[string]string{
				"identifier": email,
				"reason":     "issue_failed",
			}
		})
		return nil, ErrInternal
	}

	e.metricInc(MetricLoginSuccess)
	e.emitAudit(ctx, auditEventLoginSuccess, true, result.UserID, nil, func() map[string]string {
		return map[string]string{
			"identifier": email,
		}
	})

	return &TokenPair{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
	}, nil
}
