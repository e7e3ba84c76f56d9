package caffauth

import "errors"

var (
	// ErrInvalidCredentials is an exported constant or variable used by the authentication engine.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrDuplicateEmail is an exported constant or variable used by the authentication engine.
	ErrDuplicateEmail = errors.New("email already in use")
	// ErrUserNotFound is an exported constant or variable used by the authentication engine.
	ErrUserNotFound = errors.New("user not found")
	// ErrRefreshExpired is an exported constant or variable used by the authentication engine.
	ErrRefreshExpired = errors.New("refresh token expired")
	// ErrRefreshInvalid is an exported constant or variable used by the authentication engine.
	ErrRefreshInvalid = errors.New("invalid refresh token")
	// ErrInvalidToken is an exported constant or variable used by the authentication engine.
	ErrInvalidToken = errors.New("invalid token")
	// ErrStoreUnavailable is an exported constant or variable used by the authentication engine.
	ErrStoreUnavailable = errors.New("backing store unavailable")
	// ErrEngineNotReady is an exported constant or variable used by the authentication engine.
	ErrEngineNotReady = errors.New("engine not initialized")
	// ErrInternal is an exported constant or variable used by the authentication engine.
	ErrInternal = errors.New("internal failure")
)
