package internaldefs

import (
	"github.com/qhdlehfdl/caffauth/internal/metrics"
)

// CounterDef binds a counter ID to its exposed name and help text.
//
// CounterDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CounterDef struct {
	ID   metrics.MetricID
	Name string
	Help string
}

// CounterDefs is an exported constant or variable used by the authentication engine.
var CounterDefs = []CounterDef{
	{ID: metrics.MetricLoginSuccess, Name: "caffauth_login_success_total", Help: "Successful login attempts."},
	{ID: metrics.MetricLoginFailure, Name: "caffauth_login_failure_total", Help: "Failed login attempts."},
	{ID: metrics.MetricRegisterSuccess, Name: "caffauth_register_success_total", Help: "Successful registrations."},
	{ID: metrics.MetricRegisterDuplicate, Name: "caffauth_register_duplicate_total", Help: "Registrations rejected as duplicate."},
	{ID: metrics.MetricRotateSuccess, Name: "caffauth_rotate_success_total", Help: "Successful refresh rotations."},
	{ID: metrics.MetricRotateExpired, Name: "caffauth_rotate_expired_total", Help: "Rotations rejected for expired refresh tokens."},
	{ID: metrics.MetricRotateInvalid, Name: "caffauth_rotate_invalid_total", Help: "Rotations rejected for invalid refresh tokens."},
	{ID: metrics.MetricRotateReuseDetected, Name: "caffauth_rotate_reuse_detected_total", Help: "Detected refresh token reuses."},
	{ID: metrics.MetricLogout, Name: "caffauth_logout_total", Help: "Logout operations."},
	{ID: metrics.MetricLogoutInvalid, Name: "caffauth_logout_invalid_total", Help: "Logouts rejected for invalid token pairs."},
	{ID: metrics.MetricStoreFailure, Name: "caffauth_store_failure_total", Help: "Operations aborted by backend store failures."},
}
