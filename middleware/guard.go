package middleware

import (
	"context"
	"net/http"
	"strings"

	caffauth "github.com/qhdlehfdl/caffauth"
)

type identityContextKey struct{}

// IdentityFromContext returns the authenticated user ID injected by [Guard].
func IdentityFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(identityContextKey{}).(string)
	return userID, ok
}

// Guard returns middleware that rejects requests without a valid access token
// and injects the authenticated user ID into the request context.
func Guard(engine *caffauth.Engine) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if engine == nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			token, ok := BearerToken(r)
			if !ok {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			userID, err := engine.Validate(r.Context(), token)
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), identityContextKey{}, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BearerToken extracts the token from the request's Authorization header.
func BearerToken(r *http.Request) (string, bool) {
	const bearer = "Bearer "
	value := r.Header.Get("Authorization")
	if !strings.HasPrefix(value, bearer) {
		return "", false
	}

	token := value[len(bearer):]
	if token == "" {
		return "", false
	}

	return token, true
}

// RefreshTokenFromCookie extracts a refresh token from the named cookie.
func RefreshTokenFromCookie(r *http.Request, name string) (string, bool) {
	cookie, err := r.Cookie(name)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}
