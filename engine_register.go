package caffauth

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/qhdlehfdl/caffauth/internal/flows"
	"github.com/qhdlehfdl/caffauth/password"
)

// ErrRegisterInvalid is an exported constant or variable used by the authentication engine.
var ErrRegisterInvalid = errors.New("invalid registration input")

// Register describes the register operation and its observable behavior.
//
// Register may return an error when input validation, dependency calls, or security checks fail.
// Register does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Register(ctx context.Context, req RegisterRequest) (*RegisterResult, error) {
	if e == nil || e.passwordHash == nil || e.userStore == nil {
		return nil, ErrEngineNotReady
	}
	if req.Email == "" || req.Password == "" {
		return nil, ErrRegisterInvalid
	}

	result := flows.RunRegister(ctx, req.Email, req.Password, req.Name, flows.RegisterDeps{
		EmailTaken:   e.userStore.ExistsByEmail,
		HashPassword: e.passwordHash.Hash,
		NewUserID:    uuid.NewString,
		CreateUser: func(ctx context.Context, userID, email, passwordHash, name string) error {
			_, err := e.userStore.Create(ctx, CreateUserInput{
				UserID:       userID,
				Email:        email,
				PasswordHash: passwordHash,
				Name:         name,
			})
			return err
		},
	})

	switch result.Failure {
	case flows.RegisterFailureNone:
	case flows.RegisterFailureDuplicate:
		e.metricInc(MetricRegisterDuplicate)
		e.emitAudit(ctx, auditEventRegisterDuplicate, false, "", ErrDuplicateEmail, func() map[string]string {
			return map[string]string{
				"identifier": req.Email,
			}
		})
		return nil, ErrDuplicateEmail
	case flows.RegisterFailureHash:
		if errors.Is(result.Err, password.ErrPasswordTooShort) {
			return nil, ErrRegisterInvalid
		}
		return nil, ErrInternal
	case flows.RegisterFailureStore:
		e.metricInc(MetricStoreFailure)
		e.emitAudit(ctx, auditEventStoreFailure, false, "", ErrStoreUnavailable, func() map[string]string {
			return map[string]string{
				"operation": "register",
			}
		})
		return nil, ErrStoreUnavailable
	}

	e.metricInc(MetricRegisterSuccess)
	e.emitAudit(ctx, auditEventRegisterSuccess, true, result.UserID, nil, func() map[string]string {
		return map[string]string{
			"identifier": req.Email,
		}
	})

	return &RegisterResult{UserID: result.UserID}, nil
}
