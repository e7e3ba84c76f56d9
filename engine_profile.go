package caffauth

import (
	"context"
	"errors"
)

// GetUserInfo describes the getuserinfo operation and its observable behavior.
//
// GetUserInfo may return an error when input validation, dependency calls, or security checks fail.
// GetUserInfo does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) GetUserInfo(ctx context.Context, userID string) (*UserRecord, error) {
	if e == nil || e.userStore == nil {
		return nil, ErrEngineNotReady
	}

	user, err := e.userStore.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		e.metricInc(MetricStoreFailure)
		return nil, ErrStoreUnavailable
	}
	return user, nil
}

// EditUserInfo describes the edituserinfo operation and its observable behavior.
//
// EditUserInfo may return an error when input validation, dependency calls, or security checks fail.
// EditUserInfo does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) EditUserInfo(ctx context.Context, userID string, update ProfileUpdate) error {
	if e == nil || e.userStore == nil {
		return ErrEngineNotReady
	}
	if update.Email == nil && update.Name == nil {
		return nil
	}

	if update.Email != nil {
		ownerID, err := e.userStore.FindIDByEmail(ctx, *update.Email)
		switch {
		case err == nil && ownerID != userID:
			// The requested email belongs to someone else. Keeping one's own
			// email in the update is allowed.
			e.emitAudit(ctx, auditEventProfileEditFailure, false, userID, ErrDuplicateEmail, nil)
			return ErrDuplicateEmail
		case err != nil && !errors.Is(err, ErrUserNotFound):
			e.metricInc(MetricStoreFailure)
			return ErrStoreUnavailable
		}
	}

	if err := e.userStore.UpdateProfile(ctx, userID, update); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return ErrUserNotFound
		}
		e.metricInc(MetricStoreFailure)
		e.emitAudit(ctx, auditEventStoreFailure, false, userID, ErrStoreUnavailable, func() map[string]string {
			return map[string]string{
				"operation": "edit_profile",
			}
		})
		return ErrStoreUnavailable
	}
	return nil
}
