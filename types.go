package caffauth

import (
	"context"
	"io"

	internalaudit "github.com/qhdlehfdl/caffauth/internal/audit"
	internalmetrics "github.com/qhdlehfdl/caffauth/internal/metrics"
)

// UserRecord is the account record returned by [UserStore]. It carries the
// opaque identity, login email, credential hash, and profile fields.
type UserRecord struct {
	UserID       string
	Email        string
	PasswordHash string
	Name         string
}

// CreateUserInput is the input for [UserStore.Create]. The engine assigns
// UserID before calling Create.
type CreateUserInput struct {
	UserID       string
	Email        string
	PasswordHash string
	Name         string
}

// ProfileUpdate carries partial profile edits for [Engine.EditUserInfo].
// Nil fields are left unchanged.
type ProfileUpdate struct {
	Email *string
	Name  *string
}

// UserStore is the credential-store interface that callers must implement to
// integrate caffauth with their user database. Lookup methods return
// [ErrUserNotFound] when no record matches; any other error is treated as a
// storage fault.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*UserRecord, error)
	FindByID(ctx context.Context, userID string) (*UserRecord, error)
	FindIDByEmail(ctx context.Context, email string) (string, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, input CreateUserInput) (*UserRecord, error)
	UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) error
}

// TokenPair is returned by [Engine.Login] and [Engine.Rotate].
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// RegisterRequest is the input for [Engine.Register]. Email and Password are
// required.
type RegisterRequest struct {
	Email    string
	Password string
	Name     string
}

// RegisterResult is returned by [Engine.Register].
type RegisterResult struct {
	UserID string
}

// AuditEvent is a structured audit record emitted by the engine.
type AuditEvent = internalaudit.Event

// AuditSink receives [AuditEvent] values from the engine’s audit dispatcher.
type AuditSink = internalaudit.Sink

// NoOpSink is an [AuditSink] that silently discards all events.
type NoOpSink = internalaudit.NoOpSink

// ChannelSink is a buffered channel-based [AuditSink].
type ChannelSink = internalaudit.ChannelSink

// JSONWriterSink is an [AuditSink] that writes JSON-encoded events to an
// [io.Writer].
type JSONWriterSink = internalaudit.JSONWriterSink

// NewChannelSink creates a [ChannelSink] with the given buffer capacity.
func NewChannelSink(buffer int) *ChannelSink {
	return internalaudit.NewChannelSink(buffer)
}

// NewJSONWriterSink creates a [JSONWriterSink] that writes to w.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return internalaudit.NewJSONWriterSink(w)
}

// MetricID identifies a specific counter in the in-process metrics system.
type MetricID = internalmetrics.MetricID

const (
	// MetricLoginSuccess is an exported constant or variable used by the authentication engine.
	MetricLoginSuccess = internalmetrics.MetricLoginSuccess
	// MetricLoginFailure is an exported constant or variable used by the authentication engine.
	MetricLoginFailure = internalmetrics.MetricLoginFailure
	// MetricRegisterSuccess is an exported constant or variable used by the authentication engine.
	MetricRegisterSuccess = internalmetrics.MetricRegisterSuccess
	// MetricRegisterDuplicate is an exported constant or variable used by the authentication engine.
	MetricRegisterDuplicate = internalmetrics.MetricRegisterDuplicate
	// MetricRotateSuccess is an exported constant or variable used by the authentication engine.
	MetricRotateSuccess = internalmetrics.MetricRotateSuccess
	// MetricRotateExpired is an exported constant or variable used by the authentication engine.
	MetricRotateExpired = internalmetrics.MetricRotateExpired
	// MetricRotateInvalid is an exported constant or variable used by the authentication engine.
	MetricRotateInvalid = internalmetrics.MetricRotateInvalid
	// MetricRotateReuseDetected is an exported constant or variable used by the authentication engine.
	MetricRotateReuseDetected = internalmetrics.MetricRotateReuseDetected
	// MetricLogout is an exported constant or variable used by the authentication engine.
	MetricLogout = internalmetrics.MetricLogout
	// MetricLogoutInvalid is an exported constant or variable used by the authentication engine.
	MetricLogoutInvalid = internalmetrics.MetricLogoutInvalid
	// MetricStoreFailure is an exported constant or variable used by the authentication engine.
	MetricStoreFailure = internalmetrics.MetricStoreFailure
)

// Metrics holds atomic counters for engine operations.
type Metrics = internalmetrics.Metrics

// MetricsSnapshot is a point-in-time deep copy of all counters.
type MetricsSnapshot = internalmetrics.Snapshot

// NewMetrics creates a new [Metrics] instance configured by the given
// [MetricsConfig]. When Enabled is false, all operations are no-ops.
func NewMetrics(cfg MetricsConfig) *Metrics {
	return internalmetrics.New(internalmetrics.Config{Enabled: cfg.Enabled})
}
