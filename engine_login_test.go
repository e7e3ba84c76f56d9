package caffauth

import (
	"context"
	"errors"
	"testing"

	"github.com/qhdlehfdl/caffauth/jwt"
)

func TestLoginSuccessIssuesPairAndSavesSession(t *testing.T) {
	store := newMockUserStore()
	engine, rdb, done := newAuthEngine(t, authTestConfig(), store)
	defer done()

	ctx := context.Background()
	userID := seedUser(t, engine, "alice@example.com", "correct-password-123")

	pair, err := engine.Login(ctx, "alice@example.com", "correct-password-123")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("expected both tokens to be issued")
	}
	if pair.AccessToken == pair.RefreshToken {
		t.Fatal("expected distinct access and refresh tokens")
	}

	stored, err := rdb.Get(ctx, "cas:"+userID).Result()
	if err != nil {
		t.Fatalf("expected session entry: %v", err)
	}
	if stored != pair.RefreshToken {
		t.Fatal("expected session to hold the issued refresh token")
	}

	got, err := engine.Validate(ctx, pair.AccessToken)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if got != userID {
		t.Fatalf("expected user %s, got %s", userID, got)
	}
}

func TestLoginUnknownEmailAndWrongPasswordSameError(t *testing.T) {
	store := newMockUserStore()
	engine, _, done := newAuthEngine(t, authTestConfig(), store)
	defer done()

	ctx := context.Background()
	seedUser(t, engine, "alice@example.com", "correct-password-123")

	_, unknownErr := engine.Login(ctx, "nobody@example.com", "correct-password-123")
	_, wrongErr := engine.Login(ctx, "alice@example.com", "wrong-password-123")

	if !errors.Is(unknownErr, ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", unknownErr)
	}
	if !errors.Is(wrongErr, ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongErr)
	}
}

func TestLoginEmptyInputRejected(t *testing.T) {
	store := newMockUserStore()
	engine, _, done := newAuthEngine(t, authTestConfig(), store)
	defer done()

	if _, err := engine.Login(context.Background(), "", "correct-password-123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("empty email: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := engine.Login(context.Background(), "alice@example.com", ""); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("empty password: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginSupersedesPreviousSession(t *testing.T) {
	store := newMockUserStore()
	engine, _, done := newAuthEngine(t, authTestConfig(), store)
	defer done()

	ctx := context.Background()
	seedUser(t, engine, "alice@example.com", "correct-password-123")

	first, err := engine.Login(ctx, "alice@example.com", "correct-password-123")
	if err != nil {
		t.Fatalf("first login failed: %v", err)
	}
	if _, err := engine.Login(ctx, "alice@example.com", "correct-password-123"); err != nil {
		t.Fatalf("second login failed: %v", err)
	}

	// The first session slot was overwritten, so its refresh token no longer
	// matches the stored value.
	if _, err := engine.Rotate(ctx, first.RefreshToken); !errors.Is(err, ErrRefreshInvalid) {
		t.Fatalf("expected ErrRefreshInvalid for superseded token, got %v", err)
	}
}

func TestLoginStoreFailureSurfacesUnavailable(t *testing.T) {
	store := newMockUserStore()
	engine, _, done := newAuthEngine(t, authTestConfig(), store)
	defer done()

	seedUser(t, engine, "alice@example.com", "correct-password-123")
	store.failLookups = true

	_, err := engine.Login(context.Background(), "alice@example.com", "correct-password-123")
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
}

func TestLoginRequiresAllDependencies(t *testing.T) {
	store := newMockUserStore()
	engine, _, done := newAuthEngine(t, authTestConfig(), store)
	defer done()

	ctx := context.Background()
	seedUser(t, engine, "alice@example.com", "correct-password-123")

	userStore := engine.userStore
	engine.userStore = nil
	if _, err := engine.Login(ctx, "alice@example.com", "correct-password-123"); !errors.Is(err, ErrEngineNotReady) {
		t.Fatalf("nil user store: expected ErrEngineNotReady, got %v", err)
	}
	engine.userStore = userStore

	engine.sessionStore = nil
	if _, err := engine.Login(ctx, "alice@example.com", "correct-password-123"); !errors.Is(err, ErrEngineNotReady) {
		t.Fatalf("nil session store: expected ErrEngineNotReady, got %v", err)
	}
}

func TestLoginIssueFailureReturnsInternalError(t *testing.T) {
	store := newMockUserStore()
	engine, _, done := newAuthEngine(t, authTestConfig(), store)
	defer done()

	ctx := context.Background()
	seedUser(t, engine, "alice@example.com", "correct-password-123")

	// A zero-value manager has no usable signing key, so issuance fails after
	// the credentials already verified.
	engine.jwtManager = &jwt.Manager{}

	_, err := engine.Login(ctx, "alice@example.com", "correct-password-123")
	if !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
}

func TestLoginMetricsCount(t *testing.T) {
	store := newMockUserStore()
	engine, _, done := newAuthEngine(t, authTestConfig(), store)
	defer done()

	ctx := context.Background()
	seedUser(t, engine, "alice@example.com", "correct-password-123")

	if _, err := engine.Login(ctx, "alice@example.com", "correct-password-123"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if _, err := engine.Login(ctx, "alice@example.com", "wrong-password-123"); err == nil {
		t.Fatal("expected login failure")
	}

	snap := engine.MetricsSnapshot()
	if snap.Counters[MetricLoginSuccess] != 1 {
		t.Fatalf("expected 1 login success, got %d", snap.Counters[MetricLoginSuccess])
	}
	if snap.Counters[MetricLoginFailure] != 1 {
		t.Fatalf("expected 1 login failure, got %d", snap.Counters[MetricLoginFailure])
	}
}
