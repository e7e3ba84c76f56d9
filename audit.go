package caffauth

import (
	"context"
	"errors"
	"time"

	internalaudit "github.com/qhdlehfdl/caffauth/internal/audit"
)

const (
	auditEventLoginSuccess       = "login_success"
	auditEventLoginFailure       = "login_failure"
	auditEventRegisterSuccess    = "register_success"
	auditEventRegisterDuplicate  = "register_duplicate"
	auditEventRotateSuccess      = "rotate_success"
	auditEventRotateInvalid      = "rotate_invalid"
	auditEventRotateExpired      = "rotate_expired"
	auditEventRotateReuse        = "rotate_reuse_detected"
	auditEventLogoutSuccess      = "logout_success"
	auditEventLogoutInvalid      = "logout_invalid"
	auditEventStoreFailure       = "store_failure"
	auditEventProfileEditFailure = "profile_edit_failure"
)

// AuditErrorCode defines a public type used by caffauth APIs.
//
// AuditErrorCode instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditErrorCode string

const (
	auditErrInvalidCredentials AuditErrorCode = "invalid_credentials"
	auditErrDuplicateEmail     AuditErrorCode = "duplicate_email"
	auditErrUserNotFound       AuditErrorCode = "user_not_found"
	auditErrRefreshExpired     AuditErrorCode = "refresh_expired"
	auditErrRefreshInvalid     AuditErrorCode = "refresh_invalid"
	auditErrInvalidToken       AuditErrorCode = "invalid_token"
	auditErrUnavailable        AuditErrorCode = "backend_unavailable"
	auditErrInternal           AuditErrorCode = "internal_error"
)

func newAuditDispatcher(cfg AuditConfig, sink AuditSink) *internalaudit.Dispatcher {
	return internalaudit.NewDispatcher(internalaudit.Config{
		Enabled:    cfg.Enabled,
		BufferSize: cfg.BufferSize,
		DropIfFull: cfg.DropIfFull,
	}, sink)
}

func (e *Engine) emitAudit(
	ctx context.Context,
	eventType string,
	success bool,
	userID string,
	err error,
	metadataBuilder func() map[string]string,
) {
	if e == nil || e.audit == nil {
		return
	}

	var metadata map[string]string
	if metadataBuilder != nil {
		metadata = metadataBuilder()
	}

	event := AuditEvent{
		Timestamp: time.Now().UTC(),
		EventType: eventType,
		UserID:    userID,
		IP:        clientIPFromContext(ctx),
		Success:   success,
		Metadata:  metadata,
	}
	if code := auditErrorCode(err); code != "" {
		event.Error = string(code)
	}

	e.audit.Emit(ctx, event)
}

func auditErrorCode(err error) AuditErrorCode {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return auditErrInvalidCredentials
	case errors.Is(err, ErrDuplicateEmail):
		return auditErrDuplicateEmail
	case errors.Is(err, ErrUserNotFound):
		return auditErrUserNotFound
	case errors.Is(err, ErrRefreshExpired):
		return auditErrRefreshExpired
	case errors.Is(err, ErrRefreshInvalid):
		return auditErrRefreshInvalid
	case errors.Is(err, ErrInvalidToken):
		return auditErrInvalidToken
	case errors.Is(err, ErrStoreUnavailable):
		return auditErrUnavailable
	default:
		return auditErrInternal
	}
}
