package jwt

import (
	"crypto/ed25519"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SigningMethod defines a public type used by caffauth APIs.
//
// SigningMethod instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type SigningMethod string

const (
	// MethodEd25519 is an exported constant or variable used by the authentication engine.
	MethodEd25519 SigningMethod = "ed25519"
	// MethodHS256 is an exported constant or variable used by the authentication engine.
	MethodHS256 SigningMethod = "hs256"
)

// Token kinds embedded in the "tk" claim. A token presented for verification
// under the wrong kind is invalid, never expired.
const (
	KindAccess  = "access"
	KindRefresh = "refresh"
)

var (
	// ErrExpired is returned when a token is well-formed and correctly signed
	// but past its embedded expiry.
	ErrExpired = errors.New("token expired")
	// ErrInvalid is returned for every other verification failure: bad
	// signature, wrong structure, wrong kind, missing claims.
	ErrInvalid = errors.New("token invalid")
)

// Config defines a public type used by caffauth APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	SigningMethod SigningMethod
	PrivateKey    []byte
	PublicKey     []byte
	Issuer        string
	Leeway        time.Duration
}

// Claims defines a public type used by caffauth APIs.
//
// Claims instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Claims struct {
	UID  string `json:"uid"`
	Kind string `json:"tk"`
	jwt.RegisteredClaims
}

// Manager defines a public type used by caffauth APIs.
//
// Manager instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Manager struct {
	config Config
}

// NewManager describes the newmanager operation and its observable behavior.
//
// NewManager may return an error when input validation, dependency calls, or security checks fail.
// NewManager does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewManager(cfg Config) (*Manager, error) {
	if cfg.AccessTTL <= 0 || cfg.RefreshTTL <= 0 {
		return nil, errors.New("invalid TTL configuration")
	}
	if cfg.RefreshTTL < cfg.AccessTTL {
		return nil, errors.New("refresh TTL must not be shorter than access TTL")
	}
	if cfg.Leeway < 0 || cfg.Leeway > 2*time.Minute {
		return nil, errors.New("invalid leeway configuration")
	}
	switch cfg.SigningMethod {
	case MethodHS256:
		if len(cfg.PrivateKey) == 0 {
			return nil, errors.New("hs256 requires private key")
		}
	case MethodEd25519:
		if _, err := parseEdPrivateKey(cfg.PrivateKey); err != nil {
			return nil, err
		}
		if _, err := parseEdPublicKey(cfg.PublicKey); err != nil {
			return nil, err
		}
	default:
		return nil, errors.New("unsupported signing method")
	}

	return &Manager{config: cfg}, nil
}

// IssueAccess describes the issueaccess operation and its observable behavior.
//
// IssueAccess may return an error when input validation, dependency calls, or security checks fail.
// IssueAccess does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Manager) IssueAccess(userID string) (string, error) {
	return m.issue(userID, KindAccess, m.config.AccessTTL)
}

// IssueRefresh describes the issuerefresh operation and its observable behavior.
//
// IssueRefresh may return an error when input validation, dependency calls, or security checks fail.
// IssueRefresh does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Manager) IssueRefresh(userID string) (string, error) {
	return m.issue(userID, KindRefresh, m.config.RefreshTTL)
}

func (m *Manager) issue(userID, kind string, ttl time.Duration) (string, error) {
	if userID == "" {
		return "", errors.New("empty user id")
	}

	now := time.Now()
	claims := Claims{
		UID:  userID,
		Kind: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    m.config.Issuer,
		},
	}

	token := jwt.NewWithClaims(m.method(), claims)

	signKey, err := m.signKey()
	if err != nil {
		return "", err
	}

	return token.SignedString(signKey)
}

// VerifyAccess describes the verifyaccess operation and its observable behavior.
//
// VerifyAccess may return an error when input validation, dependency calls, or security checks fail.
// VerifyAccess does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Manager) VerifyAccess(tokenStr string) (string, error) {
	return m.verify(tokenStr, KindAccess)
}

// VerifyRefresh describes the verifyrefresh operation and its observable behavior.
//
// VerifyRefresh may return an error when input validation, dependency calls, or security checks fail.
// VerifyRefresh does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Manager) VerifyRefresh(tokenStr string) (string, error) {
	return m.verify(tokenStr, KindRefresh)
}

// verify checks signature and structure first, expiry last: a token must be
// ours in every respect before it can be merely expired, so ErrExpired never
// acts as an oracle for forged input.
func (m *Manager) verify(tokenStr, kind string) (string, error) {
	claims, err := m.parseSigned(tokenStr)
	if err != nil {
		return "", ErrInvalid
	}
	if claims.UID == "" || claims.Kind != kind {
		return "", ErrInvalid
	}
	if m.config.Issuer != "" && claims.Issuer != m.config.Issuer {
		return "", ErrInvalid
	}
	if claims.ExpiresAt == nil {
		return "", ErrInvalid
	}
	if time.Now().After(claims.ExpiresAt.Time.Add(m.config.Leeway)) {
		return "", ErrExpired
	}

	return claims.UID, nil
}

// RemainingValidity returns how long the token's embedded expiry is still in
// the future, clamped at zero. The signature is checked but expiry is not
// enforced: an already-expired token yields zero, which callers treat as
// "no revocation entry needed".
func (m *Manager) RemainingValidity(tokenStr string) time.Duration {
	claims, err := m.parseSigned(tokenStr)
	if err != nil || claims.ExpiresAt == nil {
		return 0
	}

	remaining := time.Until(claims.ExpiresAt.Time)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// parseSigned validates the signature and decodes claims without enforcing
// registered-claim validity; expiry is the caller's concern.
func (m *Manager) parseSigned(tokenStr string) (*Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{m.method().Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return m.verifyKey()
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	return claims, nil
}

func (m *Manager) method() jwt.SigningMethod {
	switch m.config.SigningMethod {
	case MethodHS256:
		return jwt.SigningMethodHS256
	default:
		return jwt.SigningMethodEdDSA
	}
}

func (m *Manager) signKey() (interface{}, error) {
	switch m.config.SigningMethod {
	case MethodHS256:
		return m.config.PrivateKey, nil
	default:
		return parseEdPrivateKey(m.config.PrivateKey)
	}
}

func (m *Manager) verifyKey() (interface{}, error) {
	switch m.config.SigningMethod {
	case MethodHS256:
		return m.config.PrivateKey, nil
	default:
		return parseEdPublicKey(m.config.PublicKey)
	}
}

func parseEdPrivateKey(key []byte) (ed25519.PrivateKey, error) {
	if len(key) == ed25519.PrivateKeySize {
		return ed25519.PrivateKey(key), nil
	}
	parsed, err := jwt.ParseEdPrivateKeyFromPEM(key)
	if err != nil {
		return nil, errors.New("invalid ed25519 private key")
	}
	edKey, ok := parsed.(ed25519.PrivateKey)
	if !ok {
		return nil, errors.New("invalid ed25519 private key type")
	}
	return edKey, nil
}

func parseEdPublicKey(key []byte) (ed25519.PublicKey, error) {
	if len(key) == ed25519.PublicKeySize {
		return ed25519.PublicKey(key), nil
	}
	parsed, err := jwt.ParseEdPublicKeyFromPEM(key)
	if err != nil {
		return nil, errors.New("invalid ed25519 public key")
	}
	edKey, ok := parsed.(ed25519.PublicKey)
	if !ok {
		return nil, errors.New("invalid ed25519 public key type")
	}
	return edKey, nil
}
